package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inmodescribe/backend/internal/domain"
)

// HistoryRepository implements domain.HistoryRepository using SQLite.
// Entry IDs come from the table's AUTOINCREMENT rowid, so they are monotonic
// and collision-free under rapid successive appends.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite-backed HistoryRepository.
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db.SqlDB}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO history_entries
		 (user_id, property_type, rooms, bathrooms, size, location, features, style, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.PropertyType, entry.Rooms, entry.Bathrooms, entry.Size,
		entry.Location, entry.Features, entry.Style, entry.Description, now,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get history entry id: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = now

	// Evict everything older than the newest HistoryLimit entries.
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM history_entries
		 WHERE user_id = ? AND id NOT IN (
		     SELECT id FROM history_entries WHERE user_id = ? ORDER BY id DESC LIMIT ?
		 )`,
		entry.UserID, entry.UserID, domain.HistoryLimit,
	)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	return nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, property_type, rooms, bathrooms, size, location, features, style, description, created_at
		 FROM history_entries WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, domain.HistoryLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := scanHistoryEntry(rows.Scan, &e); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *HistoryRepository) GetByID(ctx context.Context, userID, id int64) (*domain.HistoryEntry, error) {
	e := &domain.HistoryEntry{}
	err := scanHistoryEntry(r.db.QueryRowContext(ctx,
		`SELECT id, user_id, property_type, rooms, bathrooms, size, location, features, style, description, created_at
		 FROM history_entries WHERE user_id = ? AND id = ?`,
		userID, id,
	).Scan, e)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query history entry: %w", err)
	}
	return e, nil
}

func scanHistoryEntry(scan func(...any) error, e *domain.HistoryEntry) error {
	return scan(&e.ID, &e.UserID, &e.PropertyType, &e.Rooms, &e.Bathrooms, &e.Size,
		&e.Location, &e.Features, &e.Style, &e.Description, &e.CreatedAt)
}
