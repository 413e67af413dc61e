package router

import (
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/handler"
	"github.com/LidioGab/PI4-Ratech/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Order     *handler.OrderHandler
	Shipping  *handler.ShippingHandler
	Checkout  *handler.CheckoutHandler
	Product   *handler.ProductHandler
	Image     *handler.ImageHandler
	Cart      *handler.CartHandler
	Customer  *handler.CustomerHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
}

// New creates the HTTP router with all routes and middleware configured.
// uploadsDir is served read-only under the /uploads/ prefix.
func New(h Handlers, uploadsDir string, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	// Orders
	r.HandleFunc("/api/pedidos", h.Order.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/pedidos/admin", h.Order.ListAll).Methods(http.MethodGet)
	r.HandleFunc("/api/pedidos/numero/{numero}", h.Order.GetByNumber).Methods(http.MethodGet)
	r.HandleFunc("/api/pedidos/cliente/{clienteId:[0-9]+}", h.Order.ListByCustomer).Methods(http.MethodGet)
	r.HandleFunc("/api/pedidos/{id:[0-9]+}", h.Order.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/api/pedidos/{id:[0-9]+}/status", h.Order.UpdateStatus).Methods(http.MethodPut)

	// Shipping estimation
	r.HandleFunc("/api/frete", h.Shipping.Estimate).Methods(http.MethodGet)
	r.HandleFunc("/api/frete/{cep}", h.Shipping.Estimate).Methods(http.MethodGet)

	// Checkout
	r.HandleFunc("/api/checkout/iniciar", h.Checkout.Start).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout/validar-cliente", h.Checkout.ValidateCustomer).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout/finalizar", h.Checkout.Finalize).Methods(http.MethodPost)

	// Cart
	r.HandleFunc("/api/carrinho/adicionar", h.Cart.Add).Methods(http.MethodPost)
	r.HandleFunc("/api/carrinho/atualizar", h.Cart.UpdateQuantity).Methods(http.MethodPut)
	r.HandleFunc("/api/carrinho/{clienteId:[0-9]+}", h.Cart.List).Methods(http.MethodGet)
	r.HandleFunc("/api/carrinho/{clienteId:[0-9]+}", h.Cart.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/api/carrinho/{clienteId:[0-9]+}/contagem", h.Cart.Count).Methods(http.MethodGet)
	r.HandleFunc("/api/carrinho/{clienteId:[0-9]+}/item/{produtoId:[0-9]+}", h.Cart.Remove).Methods(http.MethodDelete)

	// Customers and addresses
	r.HandleFunc("/api/clientes", h.Customer.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/clientes/{id:[0-9]+}", h.Customer.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/api/clientes/{id:[0-9]+}", h.Customer.UpdateProfile).Methods(http.MethodPut)
	r.HandleFunc("/api/clientes/{id:[0-9]+}/senha", h.Customer.ChangePassword).Methods(http.MethodPut)
	r.HandleFunc("/api/clientes/{id:[0-9]+}/enderecos", h.Customer.ListAddresses).Methods(http.MethodGet)
	r.HandleFunc("/api/clientes/{id:[0-9]+}/enderecos", h.Customer.AddAddress).Methods(http.MethodPost)
	r.HandleFunc("/api/enderecos/{id:[0-9]+}", h.Customer.UpdateAddress).Methods(http.MethodPut)
	r.HandleFunc("/api/enderecos/{id:[0-9]+}", h.Customer.RemoveAddress).Methods(http.MethodDelete)

	// Authentication and backoffice users
	r.HandleFunc("/api/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/logout", h.Auth.Logout).Methods(http.MethodPost)
	r.HandleFunc("/api/usuarios", h.User.List).Methods(http.MethodGet)
	r.HandleFunc("/api/usuarios", h.User.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/usuarios/{id:[0-9]+}", h.User.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/api/usuarios/{id:[0-9]+}/senha", h.User.ChangePassword).Methods(http.MethodPut)

	// Catalogue
	r.HandleFunc("/produtos", h.Product.Search).Methods(http.MethodGet)
	r.HandleFunc("/produtos", h.Product.Create).Methods(http.MethodPost)
	r.HandleFunc("/produtos/{id:[0-9]+}", h.Product.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/produtos/{id:[0-9]+}", h.Product.Update).Methods(http.MethodPut)
	r.HandleFunc("/produtos/{id:[0-9]+}", h.Product.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/produtos/{id:[0-9]+}/status", h.Product.SetActive).Methods(http.MethodPatch)
	r.HandleFunc("/produtos/{id:[0-9]+}/imagens", h.Image.List).Methods(http.MethodGet)
	r.HandleFunc("/produtos/{id:[0-9]+}/imagens", h.Image.Upload).Methods(http.MethodPost)
	r.HandleFunc("/produtos/{id:[0-9]+}/imagens/{imagemId:[0-9]+}/principal", h.Image.SetPrimary).Methods(http.MethodPut)
	r.HandleFunc("/produtos/{id:[0-9]+}/imagens/{imagemId:[0-9]+}", h.Image.Delete).Methods(http.MethodDelete)

	// Dashboard
	r.HandleFunc("/dashboard", h.Dashboard.Stats).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/produtos-criticos", h.Dashboard.CriticalProducts).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/top-produtos", h.Dashboard.TopPriced).Methods(http.MethodGet)

	// Uploaded product images
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	var chained http.Handler = r
	chained = middleware.CORS(chained)
	chained = middleware.Logging(logger)(chained)
	chained = middleware.RequestID(chained)
	chained = middleware.Recovery(logger)(chained)

	return chained
}
