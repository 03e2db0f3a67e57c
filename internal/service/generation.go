package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inmodescribe/backend/internal/domain"
)

// GenerationService coordinates one description request end to end: credit
// pre-check, generation, history append, credit debit. It holds no state
// between calls.
type GenerationService struct {
	users     domain.UserRepository
	history   domain.HistoryRepository
	generator DescriptionGenerator
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(users domain.UserRepository, history domain.HistoryRepository, generator DescriptionGenerator) *GenerationService {
	return &GenerationService{
		users:     users,
		history:   history,
		generator: generator,
	}
}

// RequestGeneration produces a description for the request on behalf of user.
// It returns ErrInsufficientCredits without invoking the generator when the
// user has no credits left. On success exactly one credit is debited and the
// entry is recorded in the user's history.
//
// History is appended before the credit is debited, so a write failure can
// leave an extra entry but never a lost credit.
func (s *GenerationService) RequestGeneration(ctx context.Context, user *domain.User, req domain.PropertyRequest) (*domain.GenerationOutcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if user.Credits <= 0 {
		return nil, domain.ErrInsufficientCredits
	}

	description, source := s.generator.Generate(ctx, req)

	entry := &domain.HistoryEntry{
		UserID:          user.ID,
		PropertyRequest: req,
		Description:     description,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	updated, err := s.users.DebitCredits(ctx, user.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("debit credit: %w", err)
	}

	slog.Info("description generated",
		"user_id", user.ID, "source", source, "credits_left", updated.Credits)

	return &domain.GenerationOutcome{
		Description: description,
		Source:      source,
		CreditsLeft: updated.Credits,
		Entry:       entry,
	}, nil
}

func validateRequest(req domain.PropertyRequest) error {
	if strings.TrimSpace(req.PropertyType) == "" {
		return fmt.Errorf("%w: property type is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	return nil
}
