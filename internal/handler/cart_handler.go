package handler

import (
	"encoding/json"
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles shopping cart HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Add handles POST /api/carrinho/adicionar.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.CartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	item, err := h.service.Add(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateQuantity handles PUT /api/carrinho/atualizar.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req model.CartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	item, err := h.service.UpdateQuantity(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// List handles GET /api/carrinho/{clienteId}.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "clienteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	items, err := h.service.List(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Count handles GET /api/carrinho/{clienteId}/contagem.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "clienteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	count, err := h.service.Count(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"quantidade": count})
}

// Remove handles DELETE /api/carrinho/{clienteId}/item/{produtoId}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "clienteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}
	productID, err := pathID(r, "produtoId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de produto inválido", h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), customerID, productID); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/carrinho/{clienteId}.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r, "clienteId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), customerID); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
