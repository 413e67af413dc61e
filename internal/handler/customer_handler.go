package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer account and address HTTP requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// Register handles POST /api/clientes.
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	customer, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// GetByID handles GET /api/clientes/{id}.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	customer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// UpdateProfile handles PUT /api/clientes/{id}.
func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	customer, err := h.service.UpdateProfile(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// ChangePassword handles PUT /api/clientes/{id}/senha.
func (h *CustomerHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	if err := h.service.ChangePassword(r.Context(), id, &req); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Senha alterada com sucesso"})
}

// ListAddresses handles GET /api/clientes/{id}/enderecos.
func (h *CustomerHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, addresses)
}

// AddAddress handles POST /api/clientes/{id}/enderecos.
func (h *CustomerHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	var address model.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	created, err := h.service.AddAddress(r.Context(), id, &address)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateAddress handles PUT /api/enderecos/{id}. The customer id travels in
// the body.
func (h *CustomerHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de endereço inválido", h.logger)
		return
	}

	var address model.Address
	if err := json.NewDecoder(r.Body).Decode(&address); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}
	address.ID = id

	updated, err := h.service.UpdateAddress(r.Context(), address.CustomerID, &address)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// RemoveAddress handles DELETE /api/enderecos/{id}?clienteId=N.
func (h *CustomerHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de endereço inválido", h.logger)
		return
	}

	customerID, err := strconv.ParseInt(r.URL.Query().Get("clienteId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de cliente inválido", h.logger)
		return
	}

	if err := h.service.RemoveAddress(r.Context(), customerID, id); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
