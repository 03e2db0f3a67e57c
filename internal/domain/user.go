package domain

import (
	"context"
	"time"
)

// Plan names for user accounts.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// FreePlanCredits is the number of generation credits a new account starts with.
const FreePlanCredits = 3

// User represents a registered account and its remaining generation credits.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	Credits      int
	Plan         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// DebitCredits atomically subtracts amount from the user's balance and
	// returns the updated user. It fails with ErrInsufficientCredits when the
	// balance would go negative; the stored balance is never written below zero.
	DebitCredits(ctx context.Context, userID int64, amount int) (*User, error)
}
