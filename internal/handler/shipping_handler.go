package handler

import (
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/shipping"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ShippingHandler handles shipping estimation requests.
type ShippingHandler struct {
	logger zerolog.Logger
}

// NewShippingHandler creates a new shipping handler.
func NewShippingHandler(logger zerolog.Logger) *ShippingHandler {
	return &ShippingHandler{
		logger: logger.With().Str("handler", "shipping").Logger(),
	}
}

type shippingResponse struct {
	PostalCode string                     `json:"cep"`
	Options    map[string]decimal.Decimal `json:"opcoes"`
	Default    decimal.Decimal            `json:"padrao"`
}

// Estimate handles GET /api/frete?cep= and GET /api/frete/{cep}.
func (h *ShippingHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	cep := mux.Vars(r)["cep"]
	if cep == "" {
		cep = r.URL.Query().Get("cep")
	}
	if cep == "" {
		writeError(w, http.StatusBadRequest, "CEP é obrigatório", h.logger)
		return
	}

	options := shipping.Estimate(cep)

	menu := make(map[string]decimal.Decimal, len(options))
	for _, opt := range options {
		menu[opt.Label] = opt.Price
	}

	writeJSON(w, http.StatusOK, shippingResponse{
		PostalCode: shipping.Normalize(cep),
		Options:    menu,
		Default:    shipping.DefaultPrice(options),
	})
}
