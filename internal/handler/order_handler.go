package handler

import (
	"encoding/json"
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/pedidos.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/pedidos/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de pedido inválido", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// GetByNumber handles GET /api/pedidos/numero/{numero}.
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["numero"]

	order, err := h.service.GetByNumber(r.Context(), number)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListByCustomer handles GET /api/pedidos/cliente/{clienteId}.
func (h *OrderHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "clienteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	page, size := paging(r)
	orders, err := h.service.ListByCustomer(r.Context(), customerID, page, size)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// ListAll handles GET /api/pedidos/admin.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	var status *model.OrderStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := model.OrderStatus(v)
		status = &s
	}

	page, size := paging(r)
	orders, err := h.service.ListAll(r.Context(), status, page, size)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/pedidos/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de pedido inválido", h.logger)
		return
	}

	var body struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	order, err := h.service.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
