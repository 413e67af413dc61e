package service

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"
	"github.com/LidioGab/PI4-Ratech/internal/shipping"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "checkout").Logger(),
	}
}

// Start validates the customer and items and returns a totals preview. The
// fee shown is the first option of the shipping menu when a postal code is
// present, zero otherwise.
func (s *checkoutService) Start(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutSummary, error) {
	subtotal, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	fee := decimal.Zero
	if shipping.Normalize(req.PostalCode) != "" {
		options := shipping.Estimate(req.PostalCode)
		if len(options) > 0 {
			fee = options[0].Price
		}
	}

	return &model.CheckoutSummary{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
	}, nil
}

// ValidateCustomer checks the customer exists and is active.
func (s *checkoutService) ValidateCustomer(ctx context.Context, customerID int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}
	if !customer.Active {
		return nil, model.ErrCustomerInactive
	}
	return customer, nil
}

// Finalize re-runs the full validation right before order placement. It
// persists nothing; order creation repeats the checks transactionally.
func (s *checkoutService) Finalize(ctx context.Context, req *model.CheckoutRequest) error {
	_, err := s.validate(ctx, req)
	return err
}

// validate runs the shared customer and per-line checks and returns the
// subtotal computed from server-held prices.
func (s *checkoutService) validate(ctx context.Context, req *model.CheckoutRequest) (decimal.Decimal, error) {
	if req.CustomerID == nil || len(req.Items) == 0 {
		return decimal.Zero, model.NewValidationError("Cliente e itens do pedido são obrigatórios")
	}

	if _, err := s.ValidateCustomer(ctx, *req.CustomerID); err != nil {
		return decimal.Zero, err
	}

	subtotal := decimal.Zero
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return decimal.Zero, model.NewValidationError(fmt.Sprintf("Quantidade inválida para o produto %d", line.ProductID))
		}

		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to validate checkout: %w", err)
		}
		if product == nil {
			return decimal.Zero, model.NewValidationError(fmt.Sprintf("Produto não encontrado: %d", line.ProductID))
		}
		if !product.Active {
			return decimal.Zero, model.NewValidationError(fmt.Sprintf("Produto inativo: %s", product.Name))
		}
		if line.Quantity > product.Stock {
			return decimal.Zero, model.NewValidationError(fmt.Sprintf("Estoque insuficiente para o produto: %s", product.Name))
		}

		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return subtotal, nil
}
