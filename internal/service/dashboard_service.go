package service

import (
	"context"
	"fmt"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/rs/zerolog"
)

// lowStockThreshold is the stock level at or below which a product counts as
// critical on the dashboard.
const lowStockThreshold = 5

// dashboardService implements DashboardService.
type dashboardService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "dashboard").Logger(),
	}
}

// Stats aggregates the backoffice landing page counters.
func (s *dashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	total, err := s.productRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	active, err := s.productRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	lowStock, err := s.productRepo.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	inventoryValue, err := s.productRepo.InventoryValue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	return &model.DashboardStats{
		TotalProducts:    total,
		ActiveProducts:   active,
		InactiveProducts: total - active,
		LowStock:         lowStock,
		InventoryValue:   inventoryValue,
		TotalUsers:       users,
	}, nil
}

// CriticalProducts lists products at or below the low-stock threshold,
// emptiest first.
func (s *dashboardService) CriticalProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.ListLowStock(ctx, lowStockThreshold)
}

// TopPriced lists the five most expensive products.
func (s *dashboardService) TopPriced(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.ListTopPriced(ctx, 5)
}
