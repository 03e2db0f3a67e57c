package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inmodescribe/backend/internal/domain"
	"github.com/inmodescribe/backend/internal/service"
)

// HistoryHandler serves the authenticated user's generation history.
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// HandleList returns the user's history, most recent first.
// GET /api/history
// Response: {"entries": [...]}
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	entries, err := h.history.ListByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("list history", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": toHistoryEntryDTOs(entries),
	})
}

// HandleGet returns a single history entry owned by the user.
// GET /api/history/{id}
// Response: {"entry": {...}} or 404
func (h *HistoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid history entry ID.")
		return
	}

	entry, err := h.history.GetByID(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "History entry not found.")
			return
		}
		slog.Error("get history entry", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entry": toHistoryEntryDTO(entry),
	})
}
