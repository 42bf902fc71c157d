package tracker

import (
	"context"

	"github.com/rezkam/tasktrack/internal/domain"
)

// Operation names used in spans, metrics, logs and rejection events.
const (
	OpAdd               = "Add"
	OpComplete          = "Complete"
	OpClearSelected     = "ClearSelected"
	OpClearAllCompleted = "ClearAllCompleted"
	OpRestore           = "Restore"
	OpDeleteForever     = "DeleteForever"
	OpMoveToPending     = "MoveToPending"
	OpDeletePending     = "DeletePending"
)

// Add normalizes text and appends it to the pending tasks.
// Text that normalizes to nothing is ignored: the zero Task and a nil error
// are returned. Returns domain.ErrDuplicateCompleted or
// domain.ErrDuplicatePending when the task already exists.
func (s *Service) Add(ctx context.Context, text string) (domain.Task, error) {
	var added domain.Task
	err := s.run(ctx, OpAdd, effects{taskLists: true}, func(b *domain.Board) (int, error) {
		t, err := b.Add(text)
		if err != nil || t == "" {
			return 0, err
		}
		added = t
		return 1, nil
	})
	return added, err
}

// Complete moves the pending tasks at the given positions to completed.
// Positions refer to the pending list as it is at call time.
// When no pending task remains, AllTasksCompleted is published.
func (s *Service) Complete(ctx context.Context, positions []int) ([]domain.Task, error) {
	var moved []domain.Task
	err := s.run(ctx, OpComplete, effects{taskLists: true, notifyAllCompleted: true}, func(b *domain.Board) (int, error) {
		var err error
		moved, err = b.Complete(positions)
		return len(moved), err
	})
	return moved, err
}

// ClearSelected moves the completed tasks at the given positions to the recycle bin.
func (s *Service) ClearSelected(ctx context.Context, positions []int) ([]domain.Task, error) {
	var cleared []domain.Task
	err := s.run(ctx, OpClearSelected, effects{taskLists: true, recycleBin: true}, func(b *domain.Board) (int, error) {
		var err error
		cleared, err = b.ClearSelected(positions)
		return len(cleared), err
	})
	return cleared, err
}

// ClearAllCompleted moves every completed task to the recycle bin.
// Returns domain.ErrNoSelection when nothing is completed.
func (s *Service) ClearAllCompleted(ctx context.Context) ([]domain.Task, error) {
	var cleared []domain.Task
	err := s.run(ctx, OpClearAllCompleted, effects{taskLists: true, recycleBin: true}, func(b *domain.Board) (int, error) {
		var err error
		cleared, err = b.ClearAll()
		return len(cleared), err
	})
	return cleared, err
}

// Restore takes the recycled tasks at the given positions back to completed.
// Tasks already live are dropped from the bin without being duplicated.
func (s *Service) Restore(ctx context.Context, positions []int) (domain.RestoreResult, error) {
	var res domain.RestoreResult
	err := s.run(ctx, OpRestore, effects{taskLists: true, recycleBin: true}, func(b *domain.Board) (int, error) {
		var err error
		res, err = b.Restore(positions)
		return len(res.Restored) + len(res.Skipped), err
	})
	return res, err
}

// DeleteForever removes the given tasks from the recycle bin.
//
// IRREVERSIBLE: the tasks are gone from every file once this returns.
func (s *Service) DeleteForever(ctx context.Context, items []domain.Task) ([]domain.Task, error) {
	var removed []domain.Task
	err := s.run(ctx, OpDeleteForever, effects{recycleBin: true}, func(b *domain.Board) (int, error) {
		var err error
		removed, err = b.DeleteForever(items)
		return len(removed), err
	})
	return removed, err
}

// MoveToPending takes the given tasks out of completed and appends them to pending.
func (s *Service) MoveToPending(ctx context.Context, items []domain.Task) ([]domain.Task, error) {
	var moved []domain.Task
	err := s.run(ctx, OpMoveToPending, effects{taskLists: true}, func(b *domain.Board) (int, error) {
		var err error
		moved, err = b.MoveToPending(items)
		return len(moved), err
	})
	return moved, err
}

// DeletePending drops the given pending tasks without completing them.
// They skip the recycle bin, and their performance records are pruned.
func (s *Service) DeletePending(ctx context.Context, items []domain.Task) ([]domain.Task, error) {
	var removed []domain.Task
	err := s.run(ctx, OpDeletePending, effects{taskLists: true}, func(b *domain.Board) (int, error) {
		var err error
		removed, err = b.DeletePending(items)
		return len(removed), err
	})
	return removed, err
}

// Snapshot returns a copy of the three collections.
func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Snapshot{}, err
	}
	return s.board.Snapshot(), nil
}

// Progress returns the collection counts.
func (s *Service) Progress(ctx context.Context) (domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Progress{}, err
	}
	return s.board.Progress(), nil
}
