package service

import (
	"context"
	"io"

	"github.com/LidioGab/PI4-Ratech/internal/model"
)

// OrderService defines the order workflow operations.
type OrderService interface {
	// CreateOrder validates the request, recomputes totals from server-held
	// prices, decrements stock and persists the order atomically, then clears
	// the customer's cart best-effort.
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetByNumber retrieves an order by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*model.Order, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID int64, page, size int) (model.Page[model.Order], error)

	// ListAll returns all orders, newest first, optionally filtered by status.
	ListAll(ctx context.Context, status *model.OrderStatus, page, size int) (model.Page[model.Order], error)

	// SetStatus moves the order to the given status. Any status may be set
	// from any other.
	SetStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
}

// CheckoutService defines the pre-order validation operations. Nothing here
// persists data or reserves stock.
type CheckoutService interface {
	// Start computes a totals preview for the cart about to be ordered.
	Start(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutSummary, error)

	// ValidateCustomer checks the customer exists and is active.
	ValidateCustomer(ctx context.Context, customerID int64) (*model.Customer, error)

	// Finalize re-runs the full validation right before order placement.
	Finalize(ctx context.Context, req *model.CheckoutRequest) error
}

// ProductService defines the catalogue operations.
type ProductService interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Search(ctx context.Context, params model.ProductSearch) (model.Page[model.Product], error)
	// Update applies only the non-nil fields of the partial update.
	Update(ctx context.Context, id int64, update *model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) (*model.Product, error)
}

// CartService defines the shopping cart operations.
type CartService interface {
	// Add puts a product in the cart, merging quantities with any existing
	// line. The combined quantity must not exceed current stock.
	Add(ctx context.Context, req *model.CartAddRequest) (*model.CartItem, error)

	// UpdateQuantity replaces one line's quantity.
	UpdateQuantity(ctx context.Context, req *model.CartQuantityRequest) (*model.CartItem, error)

	Remove(ctx context.Context, customerID, productID int64) error
	Clear(ctx context.Context, customerID int64) error
	List(ctx context.Context, customerID int64) ([]model.CartItem, error)
	Count(ctx context.Context, customerID int64) (int, error)
}

// CustomerService defines customer account and address operations.
type CustomerService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	UpdateProfile(ctx context.Context, id int64, req *model.UpdateProfileRequest) (*model.Customer, error)
	ChangePassword(ctx context.Context, id int64, req *model.ChangePasswordRequest) error
	ListAddresses(ctx context.Context, customerID int64) ([]model.Address, error)
	AddAddress(ctx context.Context, customerID int64, address *model.Address) (*model.Address, error)
	UpdateAddress(ctx context.Context, customerID int64, address *model.Address) (*model.Address, error)
	RemoveAddress(ctx context.Context, customerID, addressID int64) error
}

// LoginService authenticates backoffice users and storefront customers.
type LoginService interface {
	// Login checks the admin/staff accounts first, then the customers table.
	Login(ctx context.Context, req *model.LoginRequest) (*model.Session, error)
}

// UserService manages the admin/staff accounts.
type UserService interface {
	// Create registers a backoffice account in the Administrador or
	// Estoquista group.
	Create(ctx context.Context, user *model.User, password string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	ChangePassword(ctx context.Context, id int64, password string) error
}

// DashboardService aggregates the backoffice landing page data.
type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
	// CriticalProducts lists products at or below the low-stock threshold.
	CriticalProducts(ctx context.Context) ([]model.Product, error)
	// TopPriced lists the five most expensive products.
	TopPriced(ctx context.Context) ([]model.Product, error)
}

// ImageService stores product image files and their metadata.
type ImageService interface {
	Upload(ctx context.Context, productID int64, fileName string, file io.Reader, primary bool) (*model.ProductImage, error)
	List(ctx context.Context, productID int64) ([]model.ProductImage, error)
	SetPrimary(ctx context.Context, productID, imageID int64) error
	Delete(ctx context.Context, imageID int64) error
}

// clampPage normalises paging parameters to sane bounds.
func clampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}
