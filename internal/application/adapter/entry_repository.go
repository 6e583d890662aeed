// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// EntryRepository defines the interface for ledger entry persistence operations.
// Each call is a single logical unit of work; there are no multi-entry
// transaction guarantees. Entries returned to callers are independent
// snapshots of the durable rows.
type EntryRepository interface {
	// Create inserts a new entry, assigning its ID and CreatedAt.
	Create(ctx context.Context, entry *entity.LedgerEntry) error

	// FindAll retrieves every entry in insertion order.
	FindAll(ctx context.Context) ([]*entity.LedgerEntry, error)

	// FindByID retrieves an entry by its ID.
	// Returns domainerror.ErrEntryNotFound on a miss.
	FindByID(ctx context.Context, id uint) (*entity.LedgerEntry, error)

	// FindByDateRange retrieves entries with start <= OccurredOn <= end.
	// Bounds are inclusive YYYY-MM-DD strings compared lexicographically.
	FindByDateRange(ctx context.Context, start, end string) ([]*entity.LedgerEntry, error)

	// FindByCategory retrieves entries with an exact category match.
	FindByCategory(ctx context.Context, category string) ([]*entity.LedgerEntry, error)

	// Update replaces all mutable fields of an existing entry.
	// Returns domainerror.ErrEntryNotFound on a miss.
	Update(ctx context.Context, entry *entity.LedgerEntry) error

	// Delete removes an entry by ID.
	// Returns domainerror.ErrEntryNotFound on a miss.
	Delete(ctx context.Context, id uint) error
}
