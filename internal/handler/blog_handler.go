package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog-api/internal/container"
	"blog-api/internal/domain"
	"blog-api/internal/middleware"
	"blog-api/pkg/errors"
)

// BlogHandler handles blog CRUD requests
type BlogHandler struct {
	container *container.Container
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(c *container.Container) *BlogHandler {
	return &BlogHandler{container: c}
}

// Create handles POST /blogs
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.NewAuthenticationError("User not authenticated"), logger)
		return
	}

	var req domain.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidationError("Invalid request body", nil), logger)
		return
	}

	if err := h.validateCreateBlogRequest(&req); err != nil {
		writeError(w, errors.NewValidationError(err.Error(), nil), logger)
		return
	}

	logger.WithField("title", req.Title).Info("Received request to create a new blog")

	blog, err := h.container.GetBlogService().Create(r.Context(), &req, user.ID)
	if err != nil {
		writeAppError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusCreated, blog, logger)
}

// List handles GET /blogs with pagination
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	query := domain.BlogListQuery{
		Page:  parseIntQuery(r, "page", domain.DefaultPageNumber),
		Limit: parseIntQuery(r, "limit", domain.DefaultPageSize),
	}

	logger.WithFields(map[string]interface{}{
		"page":  query.Page,
		"limit": query.Limit,
	}).Debug("Received request to fetch blogs")

	result, err := h.container.GetBlogService().List(r.Context(), query)
	if err != nil {
		writeAppError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, result, logger)
}

// Get handles GET /blogs/{id}
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	id, err := blogIDParam(r)
	if err != nil {
		writeError(w, errors.NewValidationError(err.Error(), nil), logger)
		return
	}

	blog, err := h.container.GetBlogService().Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err, logger)
		return
	}
	if blog == nil {
		writeError(w, errors.NewNotFoundError(fmt.Sprintf("Blog with ID %q not found", id)), logger)
		return
	}

	writeJSON(w, http.StatusOK, blog, logger)
}

// Update handles PUT /blogs/{id}
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	id, err := blogIDParam(r)
	if err != nil {
		writeError(w, errors.NewValidationError(err.Error(), nil), logger)
		return
	}

	var req domain.UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidationError("Invalid request body", nil), logger)
		return
	}

	if err := h.validateUpdateBlogRequest(&req); err != nil {
		writeError(w, errors.NewValidationError(err.Error(), nil), logger)
		return
	}

	logger.WithField("blog_id", id).Info("Received request to update blog")

	blog, err := h.container.GetBlogService().Update(r.Context(), id, &req)
	if err != nil {
		writeAppError(w, err, logger)
		return
	}
	if blog == nil {
		writeError(w, errors.NewNotFoundError(fmt.Sprintf("Blog with ID %q not found", id)), logger)
		return
	}

	writeJSON(w, http.StatusOK, blog, logger)
}

// Delete handles DELETE /blogs/{id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	id, err := blogIDParam(r)
	if err != nil {
		writeError(w, errors.NewValidationError(err.Error(), nil), logger)
		return
	}

	logger.WithField("blog_id", id).Info("Received request to delete blog")

	blog, err := h.container.GetBlogService().Delete(r.Context(), id)
	if err != nil {
		writeAppError(w, err, logger)
		return
	}
	if blog == nil {
		writeError(w, errors.NewNotFoundError(fmt.Sprintf("Blog with ID %q not found", id)), logger)
		return
	}

	writeJSON(w, http.StatusOK, blog, logger)
}

// validateCreateBlogRequest checks a blog creation payload
func (h *BlogHandler) validateCreateBlogRequest(req *domain.CreateBlogRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("content must not be empty")
	}
	return nil
}

// validateUpdateBlogRequest checks a partial update payload; absent fields are
// fine, present fields must not be blank
func (h *BlogHandler) validateUpdateBlogRequest(req *domain.UpdateBlogRequest) error {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return fmt.Errorf("content must not be empty")
	}
	return nil
}

// blogIDParam extracts and validates the blog id path parameter
func blogIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return "", fmt.Errorf("invalid ID: %s", id)
	}
	return id, nil
}

// parseIntQuery parses a positive integer query parameter with a fallback
func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
