package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func activeCustomer(id int64) *model.Customer {
	return &model.Customer{ID: id, Name: "Maria Silva", Email: "maria@example.com", Active: true}
}

func catalogProduct(id int64, price float64, stock int) *model.Product {
	return &model.Product{
		ID:     id,
		Name:   "Produto Teste",
		Price:  decimal.NewFromFloat(price),
		Stock:  stock,
		Active: true,
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	clientPrice := decimal.NewFromFloat(0.01)
	req := &model.CreateOrderRequest{
		CustomerID: int64Ptr(1),
		Items: []model.OrderItemRequest{
			// The client-supplied price must be ignored for totals.
			{ProductID: 10, Quantity: 2, UnitPrice: &clientPrice},
			{ProductID: 11, Quantity: 1},
		},
		PostalCode: "99000-000",
		Street:     "Rua das Flores",
		Number:     "42",
		City:       "Curitiba",
		State:      "PR",
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockCartRepo := new(MockCartRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCustomerRepo, mockCartRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 10.00, 5), nil)
	mockProductRepo.On("GetByID", ctx, int64(11)).Return(catalogProduct(11, 20.00, 5), nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, int64(10), 2).Return(true, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, int64(11), 1).Return(true, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockCartRepo.On("ClearByCustomer", ctx, int64(1)).Return(nil)

	order, err := service.CreateOrder(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.StatusAwaitingPayment, order.Status)
	assert.Len(t, order.Items, 2)

	// Subtotal from server-held prices: 2*10 + 1*20 = 40.
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(40)), "subtotal = %s", order.Subtotal)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	// No chosen fee, estimator default is zero (free option): fallback
	// max(10, 40*0.10) = 10.
	assert.True(t, order.ShippingFee.Equal(decimal.NewFromInt(10)), "fee = %s", order.ShippingFee)
	assert.True(t, order.Total.Equal(order.Subtotal.Add(order.ShippingFee)))

	assert.True(t, mockTx.committed)
	assert.False(t, mockTx.rolledBack)
	mockOrderRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
	mockCartRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_FallbackFeeTenPercent(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.CreateOrderRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 2}},
		PostalCode: "01310-100",
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockCartRepo := new(MockCartRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCustomerRepo, mockCartRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 100.00, 5), nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, int64(10), 2).Return(true, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockCartRepo.On("ClearByCustomer", ctx, int64(1)).Return(nil)

	order, err := service.CreateOrder(ctx, req)

	require.NoError(t, err)
	// Subtotal 200: ten percent beats the 10.00 floor.
	assert.True(t, order.ShippingFee.Equal(decimal.NewFromInt(20)), "fee = %s", order.ShippingFee)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(220)))
}

func TestOrderService_CreateOrder_ChosenFeeVerbatim(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	chosen := decimal.NewFromFloat(29.90)
	req := &model.CreateOrderRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 1}},
		PostalCode: "01310-100",
		ChosenFee:  &chosen,
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockCartRepo := new(MockCartRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCustomerRepo, mockCartRepo, logger)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 50.00, 5), nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, int64(10), 1).Return(true, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockCartRepo.On("ClearByCustomer", ctx, int64(1)).Return(nil)

	order, err := service.CreateOrder(ctx, req)

	require.NoError(t, err)
	assert.True(t, order.ShippingFee.Equal(chosen))
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(79.90)))
}

func TestOrderService_CreateOrder_MissingCustomerOrItems(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	service := NewOrderService(new(MockOrderRepository), new(MockProductRepository),
		new(MockCustomerRepository), new(MockCartRepository), logger)

	_, err := service.CreateOrder(ctx, &model.CreateOrderRequest{})
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)

	_, err = service.CreateOrder(ctx, &model.CreateOrderRequest{CustomerID: int64Ptr(1)})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
}

func TestOrderService_CreateOrder_CustomerNotFoundOrInactive(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.CreateOrderRequest{
		CustomerID: int64Ptr(7),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 1}},
	}

	mockCustomerRepo := new(MockCustomerRepository)
	mockCustomerRepo.On("GetByID", ctx, int64(7)).Return(nil, nil)

	service := NewOrderService(new(MockOrderRepository), new(MockProductRepository),
		mockCustomerRepo, new(MockCartRepository), logger)

	_, err := service.CreateOrder(ctx, req)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)

	inactive := activeCustomer(7)
	inactive.Active = false
	mockCustomerRepo2 := new(MockCustomerRepository)
	mockCustomerRepo2.On("GetByID", ctx, int64(7)).Return(inactive, nil)

	service = NewOrderService(new(MockOrderRepository), new(MockProductRepository),
		mockCustomerRepo2, new(MockCartRepository), logger)

	_, err = service.CreateOrder(ctx, req)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeForbidden, domainErr.Code)
}

func TestOrderService_CreateOrder_UnknownProductNamesID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.CreateOrderRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 99, Quantity: 1}},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockTx := new(MockTx)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCustomerRepo, new(MockCartRepository), logger)

	_, err := service.CreateOrder(ctx, req)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
	assert.Contains(t, domainErr.Message, "99")
	assert.True(t, mockTx.rolledBack)
}

func TestOrderService_CreateOrder_InsufficientStockRollsBack(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.CreateOrderRequest{
		CustomerID: int64Ptr(1),
		Items: []model.OrderItemRequest{
			{ProductID: 10, Quantity: 1},
			{ProductID: 11, Quantity: 3},
		},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockTx := new(MockTx)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 10.00, 5), nil)
	mockProductRepo.On("GetByID", ctx, int64(11)).Return(catalogProduct(11, 20.00, 2), nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, int64(10), 1).Return(true, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, int64(11), 3).Return(false, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCustomerRepo, new(MockCartRepository), logger)

	_, err := service.CreateOrder(ctx, req)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
	// The earlier decrement on product 10 rolls back with the rest.
	assert.True(t, mockTx.rolledBack)
	assert.False(t, mockTx.committed)
	mockOrderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_DuplicateNumberIsConflict(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.CreateOrderRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 1}},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockTx := new(MockTx)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 10.00, 5), nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, int64(10), 1).Return(true, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).
		Return(model.NewConflictError("Número de pedido já existe, tente novamente"))
	mockTx.On("Rollback", ctx).Return(nil)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCustomerRepo, new(MockCartRepository), logger)

	_, err := service.CreateOrder(ctx, req)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeConflict, domainErr.Code)
	assert.True(t, mockTx.rolledBack)
}

func TestOrderService_CreateOrder_CartClearFailureSwallowed(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.CreateOrderRequest{
		CustomerID: int64Ptr(1),
		Items:      []model.OrderItemRequest{{ProductID: 10, Quantity: 1}},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCustomerRepo := new(MockCustomerRepository)
	mockCartRepo := new(MockCartRepository)
	mockTx := new(MockTx)

	mockCustomerRepo.On("GetByID", ctx, int64(1)).Return(activeCustomer(1), nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("GetByID", ctx, int64(10)).Return(catalogProduct(10, 10.00, 5), nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, int64(10), 1).Return(true, nil)
	mockOrderRepo.On("CreateOrder", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockCartRepo.On("ClearByCustomer", ctx, int64(1)).Return(errors.New("connection reset"))

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCustomerRepo, mockCartRepo, logger)

	order, err := service.CreateOrder(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, mockTx.committed)
	mockCartRepo.AssertExpectations(t)
}

func TestNewOrderNumber_Format(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 45, 0, time.UTC)

	number := newOrderNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^PED20250315143045\d{3}$`), number)
}

func TestOrderService_SetStatus(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	updated := &model.Order{ID: 5, Status: model.StatusInTransit}
	mockOrderRepo.On("UpdateStatus", ctx, int64(5), model.StatusInTransit).Return(nil)
	mockOrderRepo.On("GetByID", ctx, int64(5)).Return(updated, nil)

	service := NewOrderService(mockOrderRepo, new(MockProductRepository),
		new(MockCustomerRepository), new(MockCartRepository), logger)

	order, err := service.SetStatus(ctx, 5, model.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInTransit, order.Status)

	_, err = service.SetStatus(ctx, 5, model.OrderStatus("SHIPPED"))
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockOrderRepo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	service := NewOrderService(mockOrderRepo, new(MockProductRepository),
		new(MockCustomerRepository), new(MockCartRepository), logger)

	_, err := service.GetByID(ctx, 404)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)
}
