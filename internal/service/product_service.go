package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	imageRepo   repository.ProductImageRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	imageRepo repository.ProductImageRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

var (
	ratingMin = decimal.NewFromInt(1)
	ratingMax = decimal.NewFromInt(5)
	two       = decimal.NewFromInt(2)
)

const maxDescriptionLen = 2000

// validateProduct checks the rating grid and description length rules shared
// by create and update.
func validateProduct(p *model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return model.NewValidationError("Nome do produto é obrigatório")
	}
	if !p.Price.IsPositive() {
		return model.NewValidationError("Preço deve ser maior que zero")
	}
	if p.Stock < 0 {
		return model.NewValidationError("Quantidade em estoque não pode ser negativa")
	}
	if p.Description != nil {
		if *p.Description == "" || len(*p.Description) > maxDescriptionLen {
			return model.NewValidationError("Descrição deve ter entre 1 e 2000 caracteres")
		}
	}
	if p.Rating != nil {
		r := *p.Rating
		// Valid ratings sit on the half-point grid between 1.0 and 5.0.
		if r.LessThan(ratingMin) || r.GreaterThan(ratingMax) || !r.Mul(two).IsInteger() {
			return model.NewValidationError("Avaliação deve estar entre 1.0 e 5.0 em incrementos de 0.5")
		}
	}
	return nil
}

// Create inserts a product. Stock defaults to zero and the product starts
// active.
func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.Active = true
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// GetByID retrieves a product with its images.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	images, err := s.imageRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	product.Images = images

	return product, nil
}

// Search performs a paged catalogue search.
func (s *productService) Search(ctx context.Context, params model.ProductSearch) (model.Page[model.Product], error) {
	params.Page, params.Size = clampPage(params.Page, params.Size)

	products, total, err := s.productRepo.Search(ctx, params)
	if err != nil {
		return model.Page[model.Product]{}, fmt.Errorf("failed to search products: %w", err)
	}

	return model.NewPage(products, total, params.Page, params.Size), nil
}

// Update applies only the non-nil fields of the partial update and
// re-validates the resulting product.
func (s *productService) Update(ctx context.Context, id int64, update *model.ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	if update.Rating != nil {
		product.Rating = update.Rating
	}
	if update.Description != nil {
		product.Description = update.Description
	}
	if update.Active != nil {
		product.Active = *update.Active
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

// SetActive toggles the product's active flag and returns the updated row.
func (s *productService) SetActive(ctx context.Context, id int64, active bool) (*model.Product, error) {
	if err := s.productRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}
