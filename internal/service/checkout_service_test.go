package service

import (
	"context"
	"testing"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutService_Start_UsesFirstMenuOption(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCustomerRepo := new(MockCustomerRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 100.00, 5), nil)

	service := NewCheckoutService(mockCustomerRepo, mockProductRepo, logger)

	summary, err := service.Start(ctx, &model.CheckoutRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 2}},
		PostalCode: "01310-100",
	})

	require.NoError(t, err)
	assert.True(t, summary.Subtotal.Equal(decimal.NewFromInt(200)))
	// The preview always shows the first menu option, not the default price.
	assert.True(t, summary.ShippingFee.Equal(decimal.NewFromFloat(15.90)), "fee = %s", summary.ShippingFee)
	assert.True(t, summary.Total.Equal(decimal.NewFromFloat(215.90)))
}

func TestCheckoutService_Start_NoPostalCodeNoFee(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCustomerRepo := new(MockCustomerRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 50.00, 5), nil)

	service := NewCheckoutService(mockCustomerRepo, mockProductRepo, logger)

	summary, err := service.Start(ctx, &model.CheckoutRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.True(t, summary.ShippingFee.IsZero())
	assert.True(t, summary.Total.Equal(summary.Subtotal))
}

func TestCheckoutService_Start_InsufficientStock(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCustomerRepo := new(MockCustomerRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 50.00, 1), nil)

	service := NewCheckoutService(mockCustomerRepo, mockProductRepo, logger)

	_, err := service.Start(ctx, &model.CheckoutRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 2}},
	})

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
}

func TestCheckoutService_ValidateCustomer(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCustomerRepo := new(MockCustomerRepository)
	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockCustomerRepo.On("GetByID", ctx, int64(2)).Return(nil, nil)

	service := NewCheckoutService(mockCustomerRepo, new(MockProductRepository), logger)

	customer, err := service.ValidateCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), customer.ID)

	_, err = service.ValidateCustomer(ctx, 2)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)
}

func TestCheckoutService_Finalize_ValidatesOnly(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockCustomerRepo := new(MockCustomerRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 50.00, 5), nil)

	service := NewCheckoutService(mockCustomerRepo, mockProductRepo, logger)

	err := service.Finalize(ctx, &model.CheckoutRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 1}},
	})

	require.NoError(t, err)
}
