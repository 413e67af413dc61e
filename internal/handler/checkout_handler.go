package handler

import (
	"encoding/json"
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles the pre-order checkout endpoints.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Start handles POST /api/checkout/iniciar.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	summary, err := h.service.Start(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ValidateCustomer handles POST /api/checkout/validar-cliente.
func (h *CheckoutHandler) ValidateCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID *int64 `json:"clienteId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CustomerID == nil {
		writeError(w, http.StatusBadRequest, "Cliente é obrigatório", h.logger)
		return
	}

	customer, err := h.service.ValidateCustomer(r.Context(), *body.CustomerID)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valido":  true,
		"cliente": customer,
	})
}

// Finalize handles POST /api/checkout/finalizar.
func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	if err := h.service.Finalize(r.Context(), &req); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valido": true})
}
