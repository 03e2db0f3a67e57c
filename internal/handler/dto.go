package handler

import (
	"time"

	"github.com/inmodescribe/backend/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Credits     int    `json:"credits"`
	Plan        string `json:"plan"`
	CreatedAt   string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Credits:     u.Credits,
		Plan:        u.Plan,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// PropertyRequestDTO is the JSON shape of a generation request body.
type PropertyRequestDTO struct {
	PropertyType string `json:"propertyType"`
	Rooms        string `json:"rooms"`
	Bathrooms    string `json:"bathrooms"`
	Size         string `json:"size"`
	Location     string `json:"location"`
	Features     string `json:"features"`
	Style        string `json:"style"`
}

func (d PropertyRequestDTO) toDomain() domain.PropertyRequest {
	return domain.PropertyRequest{
		PropertyType: d.PropertyType,
		Rooms:        d.Rooms,
		Bathrooms:    d.Bathrooms,
		Size:         d.Size,
		Location:     d.Location,
		Features:     d.Features,
		Style:        d.Style,
	}
}

// HistoryEntryDTO is the JSON representation of a history entry.
type HistoryEntryDTO struct {
	ID           int64  `json:"id"`
	PropertyType string `json:"propertyType"`
	Rooms        string `json:"rooms,omitempty"`
	Bathrooms    string `json:"bathrooms,omitempty"`
	Size         string `json:"size,omitempty"`
	Location     string `json:"location"`
	Features     string `json:"features,omitempty"`
	Style        string `json:"style,omitempty"`
	Description  string `json:"description"`
	CreatedAt    string `json:"createdAt"`
}

func toHistoryEntryDTO(e *domain.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:           e.ID,
		PropertyType: e.PropertyType,
		Rooms:        e.Rooms,
		Bathrooms:    e.Bathrooms,
		Size:         e.Size,
		Location:     e.Location,
		Features:     e.Features,
		Style:        e.Style,
		Description:  e.Description,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}

func toHistoryEntryDTOs(entries []domain.HistoryEntry) []HistoryEntryDTO {
	dtos := make([]HistoryEntryDTO, len(entries))
	for i := range entries {
		dtos[i] = toHistoryEntryDTO(&entries[i])
	}
	return dtos
}

// GenerationDTO is the JSON representation of a successful generation.
type GenerationDTO struct {
	Description string          `json:"description"`
	Source      string          `json:"source"`
	CreditsLeft int             `json:"creditsLeft"`
	Entry       HistoryEntryDTO `json:"entry"`
}

func toGenerationDTO(o *domain.GenerationOutcome) GenerationDTO {
	return GenerationDTO{
		Description: o.Description,
		Source:      string(o.Source),
		CreditsLeft: o.CreditsLeft,
		Entry:       toHistoryEntryDTO(o.Entry),
	}
}
