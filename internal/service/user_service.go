package service

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Create registers a backoffice account.
func (s *userService) Create(ctx context.Context, user *model.User, password string) (*model.User, error) {
	if err := validateName(user.Name); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(user.Email) {
		return nil, model.NewValidationError("Email inválido")
	}
	if !cpfPattern.MatchString(user.CPF) {
		return nil, model.NewValidationError("CPF inválido, use o formato 000.000.000-00")
	}
	if user.Group != model.GroupAdmin && user.Group != model.GroupStock {
		return nil, model.NewValidationError(fmt.Sprintf("Grupo inválido: %s", user.Group))
	}
	if password == "" {
		return nil, model.NewValidationError("Senha é obrigatória")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Active = true

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("group", user.Group).Msg("backoffice user created")
	return user, nil
}

// List returns all backoffice accounts.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// GetByID retrieves one backoffice account.
func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.NewNotFoundError("Usuário não encontrado")
	}
	return user, nil
}

// ChangePassword replaces the account's password.
func (s *userService) ChangePassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return model.NewValidationError("Senha é obrigatória")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, id, string(hash))
}
