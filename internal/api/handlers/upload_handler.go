package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

// UploadHandler stores uploaded images on disk and returns their public URL.
type UploadHandler struct {
	dir    string
	domain string
}

// NewUploadHandler creates a new UploadHandler writing into dir.
func NewUploadHandler(dir, domain string) *UploadHandler {
	return &UploadHandler{dir: dir, domain: domain}
}

// Upload accepts a multipart image in the "image" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing image field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		respondError(w, http.StatusBadRequest, "Only jpg, jpeg, png and gif images are allowed")
		return
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.dir, filename))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create upload file")
		respondError(w, http.StatusInternalServerError, "Unable to store the image.")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Error().Err(err).Msg("Failed to write upload file")
		respondError(w, http.StatusInternalServerError, "Unable to store the image.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Image uploaded successfully.",
		"filename": h.domain + "/uploads/" + filename,
		"success":  true,
	})
}
