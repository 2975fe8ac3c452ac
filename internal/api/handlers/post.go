package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/datatypes"

	"github.com/devjh/commboard/internal/api/middleware"
	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/service"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type PostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	BoardID    uint     `json:"boardId"`
	CategoryID uint     `json:"categoryId"`
}

type PostResponse struct {
	ID         uint     `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	BoardID    uint     `json:"boardId"`
	CategoryID uint     `json:"categoryId"`
	AuthorID   uint     `json:"authorId"`
	CreatedAt  string   `json:"createdAt"`
}

func toPostResponse(p *domain.Post) PostResponse {
	var tags []string
	json.Unmarshal(p.Tags, &tags)

	return PostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Tags:       tags,
		BoardID:    p.BoardID,
		CategoryID: p.CategoryID,
		AuthorID:   p.AuthorID,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.BoardID == 0 {
		writeError(w, http.StatusBadRequest, "Title and board are required")
		return
	}

	tags, _ := json.Marshal(req.Tags)

	post, err := h.postService.Create(r.Context(), actor, service.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       datatypes.JSON(tags),
		BoardID:    req.BoardID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBoardNotFound) {
			writeError(w, http.StatusNotFound, "Board not found")
			return
		}
		log.Printf("ERROR [post.Create]: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) ListByBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	posts, err := h.postService.ListByBoard(r.Context(), boardID, limit, offset)
	if err != nil {
		log.Printf("ERROR [post.ListByBoard] boardID=%d: %v", boardID, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]PostResponse, len(posts))
	for i, p := range posts {
		resp[i] = toPostResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	tags, _ := json.Marshal(req.Tags)

	post, err := h.postService.Update(r.Context(), actor, id, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    datatypes.JSON(tags),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Only the author or an admin can edit a post")
		default:
			log.Printf("ERROR [post.Update] postID=%d: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Only the author or an admin can delete a post")
		default:
			log.Printf("ERROR [post.Delete] postID=%d: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
