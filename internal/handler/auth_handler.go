package handler

import (
	"encoding/json"
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	service service.LoginService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.LoginService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	session, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Logout handles POST /api/logout. There is no server-side session state;
// the endpoint exists so the frontend has a single logout call.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Logout efetuado"})
}
