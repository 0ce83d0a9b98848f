package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/velann/socialize-be/internal/auth"
	"github.com/velann/socialize-be/internal/services"
	"github.com/velann/socialize-be/internal/validation"
)

// PostHandler handles HTTP requests for post management.
type PostHandler struct {
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider) *PostHandler {
	return &PostHandler{service: service}
}

// PostPayload defines the structure for post create/update requests.
type PostPayload struct {
	Title     string `json:"title" validate:"required,min=3"`
	Content   string `json:"content" validate:"required"`
	PostImage string `json:"postImage"`
}

// CommentPayload defines the structure for comment requests.
type CommentPayload struct {
	Text string `json:"text" validate:"required"`
}

// Create publishes a new post by the authenticated account.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve account from token")
		return
	}

	var payload PostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post fields")
		return
	}

	post, err := h.service.CreatePost(r.Context(), claims.AccountID, payload.Title, payload.Content, payload.PostImage)
	if err != nil {
		log.Error().Err(err).Str("account_id", claims.AccountID).Msg("Failed to create post")
		respondError(w, http.StatusBadRequest, "Unable to create the post.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Your post is published.",
		"post":    post,
		"success": true,
	})
}

// Update rewrites a post owned by the authenticated account.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve account from token")
		return
	}
	id := chi.URLParam(r, "id")

	var payload PostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post fields")
		return
	}

	post, err := h.service.UpdatePost(r.Context(), id, claims.AccountID, payload.Title, payload.Content, payload.PostImage)
	if err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Post updated successfully.",
		"post":    post,
		"success": true,
	})
}

// List returns one page of posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	postPage, err := h.service.ListPosts(r.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		respondError(w, http.StatusInternalServerError, "Unable to list posts.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"posts":      postPage.Posts,
		"page":       postPage.Page,
		"limit":      postPage.Limit,
		"totalCount": postPage.TotalCount,
		"success":    true,
	})
}

// GetBySlug returns a single post by slug.
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	postSlug := chi.URLParam(r, "slug")

	post, err := h.service.GetPostBySlug(r.Context(), postSlug)
	if err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"post":    post,
		"success": true,
	})
}

// Like records a like by the authenticated account.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve account from token")
		return
	}
	id := chi.URLParam(r, "id")

	post, err := h.service.LikePost(r.Context(), id, claims.AccountID)
	if err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "You liked this post.",
		"post":    post,
		"success": true,
	})
}

// AddComment appends a comment by the authenticated account.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve account from token")
		return
	}
	id := chi.URLParam(r, "id")

	var payload CommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, "Comment text is required")
		return
	}

	comment, err := h.service.AddComment(r.Context(), id, claims.AccountID, payload.Text)
	if err != nil {
		respondError(w, statusForError(err), messageForError(err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"comment": comment,
		"success": true,
	})
}

// GetComments lists a post's comments.
func (h *PostHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	comments, err := h.service.GetComments(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to list comments.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"comments": comments,
		"success":  true,
	})
}
