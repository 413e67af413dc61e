package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"
	"github.com/LidioGab/PI4-Ratech/internal/shipping"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	cartRepo     repository.CartRepository
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	cartRepo repository.CartRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		cartRepo:     cartRepo,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

var (
	fallbackFloor   = decimal.NewFromInt(10)
	fallbackPercent = decimal.NewFromFloat(0.10)
)

// newOrderNumber builds the human-readable order number: a timestamp down to
// the second plus a random 3-digit suffix. Uniqueness is enforced by the
// database; a collision surfaces as a retryable conflict.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("PED%s%03d", now.Format("20060102150405"), rand.IntN(1000))
}

// CreateOrder creates a new order. Stock decrements and the order insert
// share one transaction; the cart clear afterwards is best-effort.
func (s *orderService) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if req.CustomerID == nil || len(req.Items) == 0 {
		return nil, model.NewValidationError("Cliente e itens do pedido são obrigatórios")
	}

	customer, err := s.customerRepo.GetByID(ctx, *req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}
	if !customer.Active {
		return nil, model.ErrCustomerInactive
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	subtotal := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		if line.Quantity <= 0 {
			err = model.NewValidationError(fmt.Sprintf("Quantidade inválida para o produto %d", line.ProductID))
			return nil, err
		}

		var product *model.Product
		product, err = s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if product == nil {
			err = model.NewValidationError(fmt.Sprintf("Produto não encontrado: %d", line.ProductID))
			return nil, err
		}
		if !product.Active {
			err = model.NewValidationError(fmt.Sprintf("Produto inativo: %s", product.Name))
			return nil, err
		}

		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, product.ID, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if !ok {
			err = model.NewValidationError(fmt.Sprintf("Estoque insuficiente para o produto: %s", product.Name))
			return nil, err
		}

		// Totals always come from the server-held price; the price in the
		// request body is ignored.
		lineSubtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)

		item := model.OrderItem{
			ProductID:   product.ID,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    lineSubtotal,
			ProductName: product.Name,
		}
		if product.Description != nil {
			item.ProductDescription = *product.Description
		}
		items = append(items, item)
	}

	fee := s.resolveShippingFee(req, subtotal)
	now := time.Now()

	order := &model.Order{
		CustomerID:   customer.ID,
		Number:       newOrderNumber(now),
		Status:       model.StatusAwaitingPayment,
		Subtotal:     subtotal,
		ShippingFee:  fee,
		Total:        subtotal.Add(fee),
		PostalCode:   req.PostalCode,
		Street:       req.Street,
		StreetNumber: req.Number,
		Complement:   req.Complement,
		District:     req.District,
		City:         req.City,
		State:        req.State,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		Items:        items,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit order transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order exists at this point; a cart-clear failure must never undo it.
	if clearErr := s.cartRepo.ClearByCustomer(ctx, customer.ID); clearErr != nil {
		s.logger.Warn().
			Err(clearErr).
			Int64("customer_id", customer.ID).
			Str("order_number", order.Number).
			Msg("failed to clear cart after order creation")
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("order_number", order.Number).
		Str("total", order.Total.String()).
		Msg("order created")

	return order, nil
}

// resolveShippingFee picks the fee for the order: the caller's explicit
// choice verbatim, otherwise the estimator's default for the delivery postal
// code. A zero default falls back to max(10.00, 10% of the subtotal), even
// when the zero came from a genuine free-shipping option.
func (s *orderService) resolveShippingFee(req *model.CreateOrderRequest, subtotal decimal.Decimal) decimal.Decimal {
	if req.ChosenFee != nil {
		return *req.ChosenFee
	}

	fee := shipping.DefaultPrice(shipping.Estimate(req.PostalCode))
	if !fee.IsZero() {
		return fee
	}

	fallback := subtotal.Mul(fallbackPercent).Round(2)
	if fallback.LessThan(fallbackFloor) {
		fallback = fallbackFloor
	}
	return fallback
}

// GetByID retrieves an order with its items.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// GetByNumber retrieves an order by its human-readable number.
func (s *orderService) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	order, err := s.orderRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (s *orderService) ListByCustomer(ctx context.Context, customerID int64, page, size int) (model.Page[model.Order], error) {
	page, size = clampPage(page, size)

	orders, total, err := s.orderRepo.ListByCustomer(ctx, customerID, page, size)
	if err != nil {
		return model.Page[model.Order]{}, fmt.Errorf("failed to list orders: %w", err)
	}

	return model.NewPage(orders, total, page, size), nil
}

// ListAll returns all orders, newest first, optionally filtered by status.
func (s *orderService) ListAll(ctx context.Context, status *model.OrderStatus, page, size int) (model.Page[model.Order], error) {
	if status != nil && !status.Valid() {
		return model.Page[model.Order]{}, model.NewValidationError(fmt.Sprintf("Status inválido: %s", *status))
	}
	page, size = clampPage(page, size)

	orders, total, err := s.orderRepo.ListAll(ctx, status, page, size)
	if err != nil {
		return model.Page[model.Order]{}, fmt.Errorf("failed to list orders: %w", err)
	}

	return model.NewPage(orders, total, page, size), nil
}

// SetStatus moves the order to the given status and returns the updated
// order. Transitions are not restricted.
func (s *orderService) SetStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.NewValidationError(fmt.Sprintf("Status inválido: %s", status))
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Int64("order_id", id).
		Str("status", string(status)).
		Msg("order status updated")

	return order, nil
}
