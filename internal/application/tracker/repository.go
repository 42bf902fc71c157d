package tracker

import (
	"context"

	"github.com/rezkam/tasktrack/internal/domain"
)

// Repository defines durable storage for the tracker state.
// Every Save replaces the whole stored collection; there is no partial update.
type Repository interface {
	// === Task Lists ===

	// LoadTaskLists returns the pending and completed collections in stored order.
	// Missing storage yields two empty collections and no error.
	LoadTaskLists(ctx context.Context) (pending, completed []domain.Task, err error)

	// SaveTaskLists replaces both live collections.
	SaveTaskLists(ctx context.Context, pending, completed []domain.Task) error

	// === Recycle Bin ===

	// LoadRecycleBin returns the recycled collection.
	// Missing storage yields an empty collection and no error.
	LoadRecycleBin(ctx context.Context) ([]domain.Task, error)

	// SaveRecycleBin replaces the recycled collection.
	SaveRecycleBin(ctx context.Context, recycled []domain.Task) error

	// === Performance Ledger ===

	// LoadLedger returns the stored performance records.
	// Missing storage yields no records and no error.
	// Returns domain.ErrMalformedDocument if the stored document cannot be decoded.
	LoadLedger(ctx context.Context) ([]domain.PerformanceRecord, error)

	// SaveLedger replaces the stored performance records.
	SaveLedger(ctx context.Context, records []domain.PerformanceRecord) error
}
