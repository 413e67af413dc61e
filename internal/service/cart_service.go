package service

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Add puts a product in the cart. Adding a product already in the cart
// merges the quantities; the combined quantity must fit in current stock.
func (s *cartService) Add(ctx context.Context, req *model.CartAddRequest) (*model.CartItem, error) {
	if req.CustomerID <= 0 || req.ProductID <= 0 {
		return nil, model.NewValidationError("Cliente e produto são obrigatórios")
	}
	if req.Quantity <= 0 {
		return nil, model.NewValidationError("Quantidade deve ser maior que zero")
	}

	product, err := s.lookupProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	existing, err := s.cartRepo.Get(ctx, req.CustomerID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if existing != nil {
		quantity += existing.Quantity
	}

	if quantity > product.Stock {
		return nil, model.NewValidationError(fmt.Sprintf("Estoque insuficiente para o produto: %s", product.Name))
	}

	item := &model.CartItem{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   quantity,
	}
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	item.Product = product

	s.logger.Debug().
		Int64("customer_id", req.CustomerID).
		Int64("product_id", req.ProductID).
		Int("quantity", quantity).
		Msg("cart item saved")

	return item, nil
}

// UpdateQuantity replaces one line's quantity.
func (s *cartService) UpdateQuantity(ctx context.Context, req *model.CartQuantityRequest) (*model.CartItem, error) {
	if req.Quantity <= 0 {
		return nil, model.NewValidationError("Quantidade deve ser maior que zero")
	}

	existing, err := s.cartRepo.Get(ctx, req.CustomerID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	if existing == nil {
		return nil, model.ErrCartItemNotFound
	}

	product, err := s.lookupProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if req.Quantity > product.Stock {
		return nil, model.NewValidationError(fmt.Sprintf("Estoque insuficiente para o produto: %s", product.Name))
	}

	existing.Quantity = req.Quantity
	if err := s.cartRepo.Save(ctx, existing); err != nil {
		return nil, err
	}
	existing.Product = product

	return existing, nil
}

// Remove deletes one cart line.
func (s *cartService) Remove(ctx context.Context, customerID, productID int64) error {
	return s.cartRepo.DeleteItem(ctx, customerID, productID)
}

// Clear empties the customer's cart.
func (s *cartService) Clear(ctx context.Context, customerID int64) error {
	return s.cartRepo.ClearByCustomer(ctx, customerID)
}

// List returns the cart contents with product data.
func (s *cartService) List(ctx context.Context, customerID int64) ([]model.CartItem, error) {
	return s.cartRepo.ListByCustomer(ctx, customerID)
}

// Count sums the quantities in the customer's cart.
func (s *cartService) Count(ctx context.Context, customerID int64) (int, error) {
	return s.cartRepo.CountByCustomer(ctx, customerID)
}

func (s *cartService) lookupProduct(ctx context.Context, productID int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if !product.Active {
		return nil, model.NewValidationError(fmt.Sprintf("Produto inativo: %s", product.Name))
	}
	return product, nil
}
