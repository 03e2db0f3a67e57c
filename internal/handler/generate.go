package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inmodescribe/backend/internal/domain"
	"github.com/inmodescribe/backend/internal/service"
)

// GenerateHandler handles description generation requests.
type GenerateHandler struct {
	generation *service.GenerationService
	limiter    *service.TokenBucket
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(generation *service.GenerationService, limiter *service.TokenBucket) *GenerateHandler {
	return &GenerateHandler{generation: generation, limiter: limiter}
}

// HandleGenerate produces a marketing description for the submitted property.
// POST /api/generate
// Request:  PropertyRequestDTO
// Response: {"description":..., "source":..., "creditsLeft":..., "entry":{...}}
// Errors:   402 when out of credits, 422 for invalid input, 429 when rate limited
func (h *GenerateHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	if !h.limiter.Allow(strconv.FormatInt(user.ID, 10)) {
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please wait a moment.")
		return
	}

	var req PropertyRequestDTO
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	outcome, err := h.generation.RequestGeneration(r.Context(), user, req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientCredits) {
			writeError(w, http.StatusPaymentRequired, "No credits remaining. Upgrade your plan to keep generating.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("generate description", "error", err,
			"request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, toGenerationDTO(outcome))
}
