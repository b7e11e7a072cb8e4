package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/retetaapp/reteta-server/internal/http/response"
)

// maxImageUploadSize limits recipe image uploads to 10 MB.
const maxImageUploadSize = 10 << 20

// handleUploadRecipeImage accepts a multipart upload for a recipe's image.
// The file must arrive in the "image" form field and decode as an image.
func (s *Server) handleUploadRecipeImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.authenticateRequest(ctx, r.Header.Get("Authorization"))
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token", s.logger)
		return
	}

	recipeID := chi.URLParam(r, "id")
	if recipeID == "" {
		response.BadRequest(w, "Recipe ID is required", s.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadSize)
	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		response.FieldErrors(w, map[string]string{"image": "could not parse multipart form"}, s.logger)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		response.FieldErrors(w, map[string]string{"image": "no image file provided"}, s.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("Failed to read uploaded image", "error", err, "recipe_id", recipeID)
		response.InternalError(w, "Failed to read uploaded file", s.logger)
		return
	}

	detail, err := s.services.Recipe.UploadImage(ctx, userID, recipeID, data)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]string{
		"id":    detail.ID,
		"image": recipeImageURL(detail.ImagePath),
	}, s.logger)
}

// handleGetRecipeImage serves a stored recipe image blob.
func (s *Server) handleGetRecipeImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	data, err := s.images.Get(filename)
	if err != nil {
		response.NotFound(w, "Image not found", s.logger)
		return
	}

	w.Header().Set("Content-Type", imageContentType(filename))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// imageContentType maps a stored image filename to its MIME type.
func imageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
