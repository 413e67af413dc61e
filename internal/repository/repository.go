package repository

import (
	"context"
	"errors"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// Create inserts a customer and its addresses in one transaction.
	Create(ctx context.Context, customer *model.Customer) error

	// GetByID retrieves a customer by id, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Customer, error)

	// GetByEmail retrieves a customer by email, or nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)

	// ExistsByEmail reports whether a customer with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByCPF reports whether a customer with the CPF exists.
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)

	// Update applies profile changes (name, birth date, gender).
	Update(ctx context.Context, customer *model.Customer) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// ListAddresses returns the customer's addresses, billing first.
	ListAddresses(ctx context.Context, customerID int64) ([]model.Address, error)

	// AddAddress inserts one address for an existing customer.
	AddAddress(ctx context.Context, address *model.Address) error

	// UpdateAddress applies changes to an existing address.
	UpdateAddress(ctx context.Context, address *model.Address) error

	// DeactivateAddress soft-deletes an address.
	DeactivateAddress(ctx context.Context, customerID, addressID int64) error

	// GetDefaultAddress returns the customer's default delivery address, or nil.
	GetDefaultAddress(ctx context.Context, customerID int64) (*model.Address, error)
}

// ProductRepository defines the interface for catalogue data access operations.
type ProductRepository interface {
	// GetByID retrieves a product by id, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Search performs a paged catalogue search by name substring and active flag.
	Search(ctx context.Context, params model.ProductSearch) ([]model.Product, int64, error)

	// Create inserts a product.
	Create(ctx context.Context, product *model.Product) error

	// Update persists the full product row.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// SetActive toggles the product's active flag.
	SetActive(ctx context.Context, id int64, active bool) error

	// DecrementStock atomically subtracts quantity within the transaction.
	// Returns false when current stock is insufficient; no row is changed then.
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error)

	// Dashboard aggregations.
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	ListLowStock(ctx context.Context, threshold int) ([]model.Product, error)
	ListTopPriced(ctx context.Context, limit int) ([]model.Product, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// ListByCustomer returns all cart rows for a customer with product data.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.CartItem, error)

	// Get returns the (customer, product) row, or nil when absent.
	Get(ctx context.Context, customerID, productID int64) (*model.CartItem, error)

	// Save inserts or updates a cart row.
	Save(ctx context.Context, item *model.CartItem) error

	// DeleteItem removes one (customer, product) row.
	DeleteItem(ctx context.Context, customerID, productID int64) error

	// ClearByCustomer removes every cart row of the customer.
	ClearByCustomer(ctx context.Context, customerID int64) error

	// CountByCustomer sums the quantities in the customer's cart.
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts the order and its line items within the transaction,
	// filling generated ids on the aggregate.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order with its items, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetByNumber retrieves an order by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*model.Order, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID int64, page, size int) ([]model.Order, int64, error)

	// ListAll returns all orders, newest first, optionally filtered by status.
	ListAll(ctx context.Context, status *model.OrderStatus, page, size int) ([]model.Order, int64, error)

	// UpdateStatus sets the order status and bumps the update timestamp.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
}

// UserRepository defines the interface for admin/staff account operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// ProductImageRepository defines the interface for product image metadata.
type ProductImageRepository interface {
	ListByProduct(ctx context.Context, productID int64) ([]model.ProductImage, error)
	GetByID(ctx context.Context, id int64) (*model.ProductImage, error)
	Add(ctx context.Context, image *model.ProductImage) error
	// SetPrimary flags one image as primary and clears the flag on siblings.
	SetPrimary(ctx context.Context, productID, imageID int64) error
	Delete(ctx context.Context, id int64) error
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// noRows reports whether err is the pgx no-rows sentinel.
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
