package service

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// loginService implements LoginService.
type loginService struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewLoginService creates a new login service.
func NewLoginService(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	logger zerolog.Logger,
) LoginService {
	return &loginService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "login").Logger(),
	}
}

// Login authenticates against the admin/staff accounts first and falls back
// to the customers table. Unknown emails and wrong passwords both return the
// same error so the endpoint leaks nothing about which accounts exist.
func (s *loginService) Login(ctx context.Context, req *model.LoginRequest) (*model.Session, error) {
	if req.Email == "" || req.Password == "" {
		return nil, model.NewValidationError("Email e senha são obrigatórios")
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if user != nil && (user.Group == model.GroupAdmin || user.Group == model.GroupStock) {
		if !user.Active {
			return nil, model.NewForbiddenError("Usuário inativo")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return nil, model.ErrBadCredentials
		}

		s.logger.Info().Int64("user_id", user.ID).Str("group", user.Group).Msg("backoffice login")
		return &model.Session{ID: user.ID, Name: user.Name, Group: user.Group}, nil
	}

	customer, err := s.customerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if customer == nil {
		return nil, model.ErrBadCredentials
	}
	if !customer.Active {
		return nil, model.ErrCustomerInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)) != nil {
		return nil, model.ErrBadCredentials
	}

	s.logger.Info().Int64("customer_id", customer.ID).Msg("customer login")
	return &model.Session{ID: customer.ID, Name: customer.Name, Group: model.GroupCustomer}, nil
}
