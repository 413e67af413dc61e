package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

var (
	cpfPattern   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const birthDateLayout = "2006-01-02"

// validateName requires at least two words of three or more letters each.
func validateName(name string) error {
	words := strings.Fields(name)
	if len(words) < 2 {
		return model.NewValidationError("Nome deve conter pelo menos duas palavras com 3 ou mais letras")
	}
	for _, word := range words {
		letters := 0
		for _, r := range word {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters < 3 {
			return model.NewValidationError("Nome deve conter pelo menos duas palavras com 3 ou mais letras")
		}
	}
	return nil
}

// Register creates a customer with its addresses after running the full
// registration validation.
func (s *customerService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Customer, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if !cpfPattern.MatchString(req.CPF) {
		return nil, model.NewValidationError("CPF inválido, use o formato 000.000.000-00")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, model.NewValidationError("Email inválido")
	}
	if req.Password == "" {
		return nil, model.NewValidationError("Senha é obrigatória")
	}
	if req.Password != req.PasswordConfirm {
		return nil, model.NewValidationError("Senha e confirmação não conferem")
	}
	if !req.Gender.Valid() {
		return nil, model.NewValidationError("Gênero inválido")
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, model.NewValidationError("Data de nascimento inválida, use o formato AAAA-MM-DD")
	}

	if err := validateAddresses(req.Addresses); err != nil {
		return nil, err
	}

	taken, err := s.customerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	if taken {
		return nil, model.ErrEmailTaken
	}

	taken, err = s.customerRepo.ExistsByCPF(ctx, req.CPF)
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	if taken {
		return nil, model.ErrCPFTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	customer := &model.Customer{
		Name:         req.Name,
		CPF:          req.CPF,
		Email:        req.Email,
		PasswordHash: string(hash),
		BirthDate:    birthDate,
		Gender:       req.Gender,
		Active:       true,
		CreatedAt:    now,
		Addresses:    make([]model.Address, len(req.Addresses)),
	}
	for i, addr := range req.Addresses {
		addr.Active = true
		addr.CreatedAt = now
		customer.Addresses[i] = addr
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("customer_id", customer.ID).Msg("customer registered")
	return customer, nil
}

// validateAddresses requires exactly one billing address and at least one
// delivery address, each with the mandatory location fields.
func validateAddresses(addresses []model.Address) error {
	billing, delivery := 0, 0
	for _, addr := range addresses {
		switch addr.Type {
		case model.AddressBilling:
			billing++
		case model.AddressDelivery:
			delivery++
		default:
			return model.NewValidationError(fmt.Sprintf("Tipo de endereço inválido: %s", addr.Type))
		}
		if err := validateAddressFields(&addr); err != nil {
			return err
		}
	}
	if billing != 1 {
		return model.NewValidationError("Informe exatamente um endereço de faturamento")
	}
	if delivery < 1 {
		return model.NewValidationError("Informe pelo menos um endereço de entrega")
	}
	return nil
}

func validateAddressFields(addr *model.Address) error {
	if addr.PostalCode == "" || addr.Street == "" || addr.Number == "" ||
		addr.District == "" || addr.City == "" || addr.State == "" {
		return model.NewValidationError("Endereço incompleto: CEP, logradouro, número, bairro, cidade e UF são obrigatórios")
	}
	return nil
}

// GetByID retrieves a customer with its addresses.
func (s *customerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	addresses, err := s.customerRepo.ListAddresses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	customer.Addresses = addresses

	return customer, nil
}

// UpdateProfile applies the editable profile fields. Email and CPF never
// change after registration.
func (s *customerService) UpdateProfile(ctx context.Context, id int64, req *model.UpdateProfileRequest) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if !req.Gender.Valid() {
		return nil, model.NewValidationError("Gênero inválido")
	}
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, model.NewValidationError("Data de nascimento inválida, use o formato AAAA-MM-DD")
	}

	customer.Name = req.Name
	customer.Gender = req.Gender
	customer.BirthDate = birthDate

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// ChangePassword replaces the customer's password after checking the
// current one.
func (s *customerService) ChangePassword(ctx context.Context, id int64, req *model.ChangePasswordRequest) error {
	if req.New == "" {
		return model.NewValidationError("Nova senha é obrigatória")
	}
	if req.New != req.Confirm {
		return model.NewValidationError("Senha e confirmação não conferem")
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	if customer == nil {
		return model.ErrCustomerNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Current)) != nil {
		return model.NewValidationError("Senha atual incorreta")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.New), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.customerRepo.UpdatePassword(ctx, id, string(hash))
}

// ListAddresses returns the customer's active addresses.
func (s *customerService) ListAddresses(ctx context.Context, customerID int64) ([]model.Address, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}
	return s.customerRepo.ListAddresses(ctx, customerID)
}

// AddAddress adds one address to an existing customer.
func (s *customerService) AddAddress(ctx context.Context, customerID int64, address *model.Address) (*model.Address, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to add address: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	if address.Type != model.AddressBilling && address.Type != model.AddressDelivery {
		return nil, model.NewValidationError(fmt.Sprintf("Tipo de endereço inválido: %s", address.Type))
	}
	if err := validateAddressFields(address); err != nil {
		return nil, err
	}

	address.CustomerID = customerID
	address.Active = true
	address.CreatedAt = time.Now()

	if err := s.customerRepo.AddAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddress applies changes to one of the customer's addresses.
func (s *customerService) UpdateAddress(ctx context.Context, customerID int64, address *model.Address) (*model.Address, error) {
	if err := validateAddressFields(address); err != nil {
		return nil, err
	}

	address.CustomerID = customerID
	if err := s.customerRepo.UpdateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// RemoveAddress soft-deletes one of the customer's addresses.
func (s *customerService) RemoveAddress(ctx context.Context, customerID, addressID int64) error {
	return s.customerRepo.DeactivateAddress(ctx, customerID, addressID)
}
