package integration

import (
	"context"
	"testing"
	"time"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Search returns seeded products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, total, err := repo.Search(ctx, model.ProductSearch{Page: 0, Size: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, products, 5)
	})

	t.Run("Search filters by name and active flag", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		active := true
		products, total, err := repo.Search(ctx, model.ProductSearch{
			Name:   "teclado",
			Active: &active,
			Page:   0,
			Size:   20,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, "Teclado Mecânico", products[0].Name)
	})

	t.Run("GetByID returns decimal price", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		product, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(199.90)))
		assert.Equal(t, 10, product.Stock)
	})

	t.Run("GetByID returns nil for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		product, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("DecrementStock succeeds within stock", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)

		ok, err := repo.DecrementStock(ctx, tx, ids[0], 4)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, tx.Commit(ctx))

		product, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, 6, product.Stock)
	})

	t.Run("DecrementStock refuses to go negative", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		tx, err := testDB.Pool.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		ok, err := repo.DecrementStock(ctx, tx, ids[1], 6)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Dashboard aggregations", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		total, err := repo.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)

		active, err := repo.CountActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), active)

		low, err := repo.CountLowStock(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(3), low)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	newOrder := func(customerID int64, productID int64, number string) *model.Order {
		return &model.Order{
			CustomerID:   customerID,
			Number:       number,
			Status:       model.StatusAwaitingPayment,
			Subtotal:     decimal.NewFromFloat(399.80),
			ShippingFee:  decimal.NewFromFloat(39.98),
			Total:        decimal.NewFromFloat(439.78),
			PostalCode:   "01310-100",
			Street:       "Avenida Paulista",
			StreetNumber: "1000",
			District:     "Bela Vista",
			City:         "São Paulo",
			State:        "SP",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
			Items: []model.OrderItem{
				{
					ProductID:   productID,
					Quantity:    2,
					UnitPrice:   decimal.NewFromFloat(199.90),
					Subtotal:    decimal.NewFromFloat(399.80),
					ProductName: "Teclado Mecânico",
				},
			},
		}
	}

	t.Run("CreateOrder persists the aggregate", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customerID := SeedCustomer(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder(customerID, ids[0], "PED20250315143045001")
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		assert.NotZero(t, order.ID)
		require.NoError(t, tx.Commit(ctx))

		retrieved, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, retrieved)
		assert.Equal(t, "PED20250315143045001", retrieved.Number)
		assert.True(t, retrieved.Total.Equal(decimal.NewFromFloat(439.78)))
		require.Len(t, retrieved.Items, 1)
		assert.Equal(t, "Teclado Mecânico", retrieved.Items[0].ProductName)
	})

	t.Run("Duplicate order number is a conflict", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customerID := SeedCustomer(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrder(ctx, tx, newOrder(customerID, ids[0], "PED20250315143045002")))
		require.NoError(t, tx.Commit(ctx))

		tx2, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		defer tx2.Rollback(ctx)

		err = repo.CreateOrder(ctx, tx2, newOrder(customerID, ids[0], "PED20250315143045002"))
		require.Error(t, err)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeConflict, domainErr.Code)
	})

	t.Run("Rollback leaves nothing behind", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customerID := SeedCustomer(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder(customerID, ids[0], "PED20250315143045003")
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		retrieved, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, retrieved)
	})

	t.Run("ListAll filters by status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customerID := SeedCustomer(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrder(ctx, tx, newOrder(customerID, ids[0], "PED20250315143045004")))
		require.NoError(t, tx.Commit(ctx))

		delivered := model.StatusDelivered
		orders, total, err := repo.ListAll(ctx, &delivered, 0, 20)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)

		awaiting := model.StatusAwaitingPayment
		orders, total, err = repo.ListAll(ctx, &awaiting, 0, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, orders, 1)
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCartRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Save then list and clear", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customerID := SeedCustomer(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		require.NoError(t, repo.Save(ctx, &model.CartItem{
			CustomerID: customerID,
			ProductID:  ids[0],
			Quantity:   2,
		}))
		require.NoError(t, repo.Save(ctx, &model.CartItem{
			CustomerID: customerID,
			ProductID:  ids[1],
			Quantity:   1,
		}))

		items, err := repo.ListByCustomer(ctx, customerID)
		require.NoError(t, err)
		assert.Len(t, items, 2)

		count, err := repo.CountByCustomer(ctx, customerID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		require.NoError(t, repo.ClearByCustomer(ctx, customerID))

		items, err = repo.ListByCustomer(ctx, customerID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Save upserts the same product line", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		customerID := SeedCustomer(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		require.NoError(t, repo.Save(ctx, &model.CartItem{
			CustomerID: customerID,
			ProductID:  ids[0],
			Quantity:   2,
		}))
		require.NoError(t, repo.Save(ctx, &model.CartItem{
			CustomerID: customerID,
			ProductID:  ids[0],
			Quantity:   5,
		}))

		item, err := repo.Get(ctx, customerID, ids[0])
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, 5, item.Quantity)
	})
}
