package domain

import "context"

// Database defines lifecycle operations for the underlying storage. Each
// implementation owns its own migration files and strategy, so the durable
// store stays swappable as long as it honors the repository contracts.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
