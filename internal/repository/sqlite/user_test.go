package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/inmodescribe/backend/internal/domain"
	"github.com/inmodescribe/backend/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, repo *sqlite.UserRepository, email string, credits int) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        email,
		DisplayName:  "Test User",
		PasswordHash: "hashedpw",
		Credits:      credits,
		Plan:         domain.PlanFree,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return user
}

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	user := createTestUser(t, repo, "test@example.com", 3)

	if user.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "dup@example.com", 3)

	err := repo.Create(ctx, &domain.User{
		Email:        "dup@example.com",
		DisplayName:  "User 2",
		PasswordHash: "hash2",
		Credits:      3,
		Plan:         domain.PlanFree,
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "byemail@example.com", 3)

	found, err := repo.GetByEmail(ctx, "byemail@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected ID %d, got %d", user.ID, found.ID)
	}
	if found.Credits != 3 {
		t.Fatalf("expected 3 credits, got %d", found.Credits)
	}
	if found.Plan != domain.PlanFree {
		t.Fatalf("expected plan %q, got %q", domain.PlanFree, found.Plan)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DebitCredits(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "debit@example.com", 3)

	updated, err := repo.DebitCredits(ctx, user.ID, 1)
	if err != nil {
		t.Fatalf("DebitCredits: %v", err)
	}
	if updated.Credits != 2 {
		t.Fatalf("expected 2 credits after debit, got %d", updated.Credits)
	}
}

func TestUserRepository_DebitCredits_Insufficient(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "broke@example.com", 0)

	_, err := repo.DebitCredits(ctx, user.ID, 1)
	if !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}

	// The stored balance must be untouched.
	found, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Credits != 0 {
		t.Fatalf("expected credits to stay 0, got %d", found.Credits)
	}
}

func TestUserRepository_DebitCredits_NeverNegative(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "twoleft@example.com", 2)

	_, err := repo.DebitCredits(ctx, user.ID, 3)
	if !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits when amount exceeds balance, got %v", err)
	}

	found, _ := repo.GetByID(ctx, user.ID)
	if found.Credits != 2 {
		t.Fatalf("expected credits to stay 2, got %d", found.Credits)
	}
}

func TestUserRepository_DebitCredits_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)

	_, err := repo.DebitCredits(context.Background(), 99999, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DebitCredits_InvalidAmount(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "invalid@example.com", 3)

	for _, amount := range []int{0, -1} {
		if _, err := repo.DebitCredits(ctx, user.ID, amount); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("amount %d: expected ErrInvalidInput, got %v", amount, err)
		}
	}
}

func TestUserRepository_ReopenReproducesUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	user := &domain.User{
		Email:        "durable@example.com",
		DisplayName:  "Durable",
		PasswordHash: "hash",
		Credits:      2,
		Plan:         domain.PlanFree,
	}
	if err := db.Users().Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	found, err := reopened.Users().GetByEmail(ctx, "durable@example.com")
	if err != nil {
		t.Fatalf("GetByEmail after reopen: %v", err)
	}
	if found.ID != user.ID || found.Credits != 2 || found.DisplayName != "Durable" {
		t.Fatalf("reloaded user differs: %+v vs %+v", found, user)
	}
}
