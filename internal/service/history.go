package service

import (
	"context"

	"github.com/inmodescribe/backend/internal/domain"
)

// HistoryService exposes read access to a user's generation history.
type HistoryService struct {
	history domain.HistoryRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(history domain.HistoryRepository) *HistoryService {
	return &HistoryService{history: history}
}

// ListByUser returns the user's history, most recent first.
func (s *HistoryService) ListByUser(ctx context.Context, userID int64) ([]domain.HistoryEntry, error) {
	return s.history.ListByUser(ctx, userID)
}

// GetByID returns a single entry owned by the user.
func (s *HistoryService) GetByID(ctx context.Context, userID, id int64) (*domain.HistoryEntry, error) {
	return s.history.GetByID(ctx, userID, id)
}
