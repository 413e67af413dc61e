package handler

import (
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler handles the backoffice dashboard endpoints.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Stats handles GET /dashboard.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// CriticalProducts handles GET /dashboard/produtos-criticos.
func (h *DashboardHandler) CriticalProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.CriticalProducts(r.Context())
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// TopPriced handles GET /dashboard/top-produtos.
func (h *DashboardHandler) TopPriced(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.TopPriced(r.Context())
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
