package domain

import (
	"fmt"
	"slices"
)

// Board is the aggregate root holding the three task collections.
//
// Invariants:
//   - a task appears in at most one of Pending and Completed
//   - no collection holds the same task twice
//   - Pending and Completed keep insertion order
//
// Recycled is a quarantine: a task may sit there while absent from the live
// collections, but restoring it never duplicates a live entry.
//
// Every method validates its whole input before mutating, so a rejected
// call leaves the board unchanged.
type Board struct {
	Pending   []Task
	Completed []Task
	Recycled  []Task
}

// LoadReport describes the entries dropped while building a Board from
// persisted collections.
type LoadReport struct {
	DuplicatesDropped int
}

// NewBoard builds a Board from persisted collections, dropping entries that
// would violate the board invariants. The first occurrence wins; a task found
// in both live collections stays pending.
func NewBoard(pending, completed, recycled []Task) (*Board, LoadReport) {
	var report LoadReport

	p, n := dedupe(pending, nil)
	report.DuplicatesDropped += n

	c, n := dedupe(completed, func(t Task) bool { return slices.Contains(p, t) })
	report.DuplicatesDropped += n

	r, n := dedupe(recycled, nil)
	report.DuplicatesDropped += n

	return &Board{Pending: p, Completed: c, Recycled: r}, report
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		Pending:   slices.Clone(b.Pending),
		Completed: slices.Clone(b.Completed),
		Recycled:  slices.Clone(b.Recycled),
	}
}

// Add appends the normalized text to Pending. Text that normalizes to the
// empty string is ignored and returns the zero Task with a nil error.
func (b *Board) Add(text string) (Task, error) {
	task := NormalizeTask(text)
	if task == "" {
		return "", nil
	}
	if slices.Contains(b.Completed, task) {
		return "", fmt.Errorf("%w: %s", ErrDuplicateCompleted, task)
	}
	if slices.Contains(b.Pending, task) {
		return "", fmt.Errorf("%w: %s", ErrDuplicatePending, task)
	}
	b.Pending = append(b.Pending, task)
	return task, nil
}

// Complete moves the pending tasks at the selected positions to Completed.
// Tasks are appended in descending original-index order.
func (b *Board) Complete(positions []int) ([]Task, error) {
	kept, removed, err := removeAt(b.Pending, positions)
	if err != nil {
		return nil, err
	}
	b.Pending = kept
	for _, t := range removed {
		b.Completed, _ = appendUnique(b.Completed, t)
	}
	return removed, nil
}

// ClearSelected moves the completed tasks at the selected positions to Recycled.
func (b *Board) ClearSelected(positions []int) ([]Task, error) {
	kept, removed, err := removeAt(b.Completed, positions)
	if err != nil {
		return nil, err
	}
	b.Completed = kept
	b.recycle(removed)
	return removed, nil
}

// ClearAll moves every completed task to Recycled.
func (b *Board) ClearAll() ([]Task, error) {
	if len(b.Completed) == 0 {
		return nil, ErrNoSelection
	}
	removed := b.Completed
	b.Completed = nil
	b.recycle(removed)
	return removed, nil
}

func (b *Board) recycle(tasks []Task) {
	for _, t := range tasks {
		b.Recycled, _ = appendUnique(b.Recycled, t)
	}
}

// RestoreResult reports the outcome of a restore batch. Every selected task
// leaves the recycle bin; only those absent from both live collections are
// appended to Completed.
type RestoreResult struct {
	Restored []Task
	Skipped  []Task
}

// Restore takes the recycled tasks at the selected positions back to Completed.
func (b *Board) Restore(positions []int) (RestoreResult, error) {
	kept, removed, err := removeAt(b.Recycled, positions)
	if err != nil {
		return RestoreResult{}, err
	}
	b.Recycled = kept

	var res RestoreResult
	for _, t := range removed {
		if slices.Contains(b.Completed, t) || slices.Contains(b.Pending, t) {
			res.Skipped = append(res.Skipped, t)
			continue
		}
		b.Completed = append(b.Completed, t)
		res.Restored = append(res.Restored, t)
	}
	return res, nil
}

// DeleteForever removes the given tasks from Recycled by value.
// There is no way to undo it.
func (b *Board) DeleteForever(items []Task) ([]Task, error) {
	kept, removed, err := removeValues(b.Recycled, items)
	if err != nil {
		return nil, err
	}
	b.Recycled = kept
	return removed, nil
}

// MoveToPending takes the given tasks out of Completed and appends them to Pending.
func (b *Board) MoveToPending(items []Task) ([]Task, error) {
	kept, removed, err := removeValues(b.Completed, items)
	if err != nil {
		return nil, err
	}
	b.Completed = kept
	for _, t := range removed {
		b.Pending, _ = appendUnique(b.Pending, t)
	}
	return removed, nil
}

// DeletePending drops the given tasks from Pending without completing them.
// They do not pass through the recycle bin.
func (b *Board) DeletePending(items []Task) ([]Task, error) {
	kept, removed, err := removeValues(b.Pending, items)
	if err != nil {
		return nil, err
	}
	b.Pending = kept
	return removed, nil
}

// Snapshot is a read-only copy of the three collections.
type Snapshot struct {
	Pending   []Task
	Completed []Task
	Recycled  []Task
}

// Snapshot copies the current collections.
func (b *Board) Snapshot() Snapshot {
	c := b.Clone()
	return Snapshot{Pending: c.Pending, Completed: c.Completed, Recycled: c.Recycled}
}

// Progress summarizes how far the user is through their tasks.
type Progress struct {
	Pending   int
	Completed int
	Recycled  int
}

// Progress counts the collections.
func (b *Board) Progress() Progress {
	return Progress{
		Pending:   len(b.Pending),
		Completed: len(b.Completed),
		Recycled:  len(b.Recycled),
	}
}

// CompletionRate returns completed / (pending + completed) as a percentage.
// With nothing pending the rate is 100.
func (p Progress) CompletionRate() float64 {
	if p.Pending == 0 {
		return 100
	}
	return float64(p.Completed) / float64(p.Pending+p.Completed) * 100
}
