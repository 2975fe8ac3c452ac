package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/devjh/commboard/internal/api/middleware"
	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/service"
)

type BoardHandler struct {
	boardService *service.BoardService
}

func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

type BoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req BoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Board name is required")
		return
	}

	board, err := h.boardService.Create(r.Context(), actor, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			writeError(w, http.StatusForbidden, "Admin role required")
			return
		}
		log.Printf("ERROR [board.Create]: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, board)
}

func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	board, err := h.boardService.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Board not found")
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boardService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [board.List]: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, boards)
}

func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	var req BoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Board name is required")
		return
	}

	board, err := h.boardService.Update(r.Context(), actor, id, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Admin role required")
		case errors.Is(err, domain.ErrBoardNotFound):
			writeError(w, http.StatusNotFound, "Board not found")
		default:
			log.Printf("ERROR [board.Update]: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	if err := h.boardService.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "Admin role required")
		case errors.Is(err, domain.ErrBoardNotFound):
			writeError(w, http.StatusNotFound, "Board not found")
		default:
			log.Printf("ERROR [board.Delete]: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
