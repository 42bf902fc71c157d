// Package memory provides an in-memory tracker.Repository.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/rezkam/tasktrack/internal/domain"
)

// Target names one of the stored collections.
type Target string

const (
	TargetTaskLists  Target = "task_lists"
	TargetRecycleBin Target = "recycle_bin"
	TargetLedger     Target = "ledger"
)

// Store keeps the tracker state in memory. It never touches disk and is safe
// for concurrent use.
type Store struct {
	mu        sync.RWMutex
	pending   []domain.Task
	completed []domain.Task
	recycled  []domain.Task
	records   []domain.PerformanceRecord

	saves    map[Target]int
	failures map[Target]error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		saves:    make(map[Target]int),
		failures: make(map[Target]error),
	}
}

// FailSaves makes every later save of target return err. A nil err clears it.
func (s *Store) FailSaves(target Target, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, target)
		return
	}
	s.failures[target] = err
}

// Saves returns how many times target was successfully saved.
func (s *Store) Saves(target Target) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves[target]
}

// save runs apply under the lock unless saves of target are set to fail.
func (s *Store) save(target Target, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures[target]; err != nil {
		return err
	}
	apply()
	s.saves[target]++
	return nil
}

// LoadTaskLists returns copies of the pending and completed lists.
func (s *Store) LoadTaskLists(ctx context.Context) ([]domain.Task, []domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.pending), slices.Clone(s.completed), nil
}

// SaveTaskLists replaces both task lists.
func (s *Store) SaveTaskLists(ctx context.Context, pending, completed []domain.Task) error {
	return s.save(TargetTaskLists, func() {
		s.pending = slices.Clone(pending)
		s.completed = slices.Clone(completed)
	})
}

// LoadRecycleBin returns a copy of the recycled list.
func (s *Store) LoadRecycleBin(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recycled), nil
}

// SaveRecycleBin replaces the recycled list.
func (s *Store) SaveRecycleBin(ctx context.Context, recycled []domain.Task) error {
	return s.save(TargetRecycleBin, func() {
		s.recycled = slices.Clone(recycled)
	})
}

// LoadLedger returns a copy of the performance records.
func (s *Store) LoadLedger(ctx context.Context) ([]domain.PerformanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

// SaveLedger replaces the performance records.
func (s *Store) SaveLedger(ctx context.Context, records []domain.PerformanceRecord) error {
	return s.save(TargetLedger, func() {
		s.records = slices.Clone(records)
	})
}
