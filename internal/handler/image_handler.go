package handler

import (
	"net/http"

	"github.com/LidioGab/PI4-Ratech/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadSize caps product image uploads at 5 MiB.
const maxUploadSize = 5 << 20

// ImageHandler handles product image upload and management.
type ImageHandler struct {
	service service.ImageService
	logger  zerolog.Logger
}

// NewImageHandler creates a new image handler.
func NewImageHandler(service service.ImageService, logger zerolog.Logger) *ImageHandler {
	return &ImageHandler{
		service: service,
		logger:  logger.With().Str("handler", "image").Logger(),
	}
}

// Upload handles POST /produtos/{id}/imagens with a multipart body. The file
// field is "arquivo"; "principal" marks the image as primary.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de produto inválido", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Arquivo de imagem inválido ou muito grande", h.logger)
		return
	}

	file, header, err := r.FormFile("arquivo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Arquivo de imagem é obrigatório", h.logger)
		return
	}
	defer file.Close()

	primary := r.FormValue("principal") == "true"

	image, err := h.service.Upload(r.Context(), productID, header.Filename, file, primary)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, image)
}

// List handles GET /produtos/{id}/imagens.
func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de produto inválido", h.logger)
		return
	}

	images, err := h.service.List(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, images)
}

// SetPrimary handles PUT /produtos/{id}/imagens/{imagemId}/principal.
func (h *ImageHandler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de produto inválido", h.logger)
		return
	}
	imageID, err := pathID(r, "imagemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de imagem inválido", h.logger)
		return
	}

	if err := h.service.SetPrimary(r.Context(), productID, imageID); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /produtos/{id}/imagens/{imagemId}.
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "imagemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID de imagem inválido", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), imageID); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
