package handlers

import (
	"errors"
	"net/http"

	"staffing-awards/internal/uploads"
)

// UploadHandler handles nominee image uploads
type UploadHandler struct {
	uploads *uploads.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *uploads.Service) *UploadHandler {
	return &UploadHandler{
		uploads: uploadService,
	}
}

// UploadImage stores a nominee image
// @Summary Upload a nominee image
// @Description Upload a nominee image (jpg, jpeg, png, or svg, up to 5 MB) and get back its public URL
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]string "Image URL"
// @Failure 400 {object} map[string]string "Invalid upload"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /uploads/image [post]
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxImageSize)
	if err := r.ParseMultipartForm(uploads.MaxImageSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Image exceeds the 5 MB limit")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	url, err := h.uploads.StoreImage(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		if errors.Is(err, uploads.ErrUnsupportedType) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"url": url})
}
