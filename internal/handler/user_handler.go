package handler

import (
	"encoding/json"
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/model"
	"github.com/LidioGab/PI4-Ratech/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles backoffice account HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

type createUserRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	CPF      string `json:"cpf"`
	Phone    string `json:"telefone"`
	Group    string `json:"grupo"`
	Password string `json:"senha"`
}

// Create handles POST /api/usuarios.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		CPF:   req.CPF,
		Phone: req.Phone,
		Group: req.Group,
	}

	created, err := h.service.Create(r.Context(), user, req.Password)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/usuarios.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetByID handles GET /api/usuarios/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de usuário inválido", h.logger)
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ChangePassword handles PUT /api/usuarios/{id}/senha.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de usuário inválido", h.logger)
		return
	}

	var body struct {
		Password string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido", h.logger)
		return
	}

	if err := h.service.ChangePassword(r.Context(), id, body.Password); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Senha alterada com sucesso"})
}
