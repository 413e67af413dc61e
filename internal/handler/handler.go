package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/LidioGab/PI4-Ratech/internal/model"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// handleServiceError maps a domain error to its HTTP status. Conflicts map
// to 400, matching what the frontend already handles.
func handleServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch domainErr.Code {
		case model.ErrCodeValidation, model.ErrCodeConflict:
			status = http.StatusBadRequest
		case model.ErrCodeNotFound:
			status = http.StatusNotFound
		case model.ErrCodeForbidden:
			status = http.StatusForbidden
		}
		writeError(w, status, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, "Erro interno do servidor", logger)
}

// pathID extracts a numeric path variable.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// paging reads the page and size query parameters, defaulting to 0 and 20.
func paging(r *http.Request) (int, int) {
	page, size := 0, 20
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			size = n
		}
	}
	return page, size
}
