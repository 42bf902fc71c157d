package tracker

import (
	"context"

	"github.com/rezkam/tasktrack/internal/domain"
	"go.opentelemetry.io/otel/codes"
)

// Reconcile aligns the performance ledger with the pending tasks and saves it
// if anything changed.
func (s *Service) Reconcile(ctx context.Context) error {
	return s.withLedger(ctx, "Reconcile", func(*domain.Ledger) (bool, error) {
		return false, nil
	})
}

// Performance reconciles the ledger and returns every record classified
// against today.
func (s *Service) Performance(ctx context.Context) ([]domain.PerformanceEntry, error) {
	var entries []domain.PerformanceEntry
	today := s.Today()
	err := s.withLedger(ctx, "Performance", func(l *domain.Ledger) (bool, error) {
		entries = l.Entries(today)
		return false, nil
	})
	return entries, err
}

// DaysRemaining returns the signed number of days from ref to the task's
// deadline together with its classification.
// Returns domain.ErrRecordNotFound if the task is not pending.
func (s *Service) DaysRemaining(ctx context.Context, task domain.Task, ref domain.Date) (int, domain.DeadlineStatus, error) {
	var days int
	err := s.withLedger(ctx, "DaysRemaining", func(l *domain.Ledger) (bool, error) {
		var err error
		days, err = l.DaysRemaining(task, ref)
		return false, err
	})
	if err != nil {
		return 0, "", err
	}
	return days, domain.ClassifyDaysRemaining(days), nil
}

// UpdateRecord overwrites the supplied fields of a pending task's record.
// It reports false, and changes nothing, when the task is not pending.
func (s *Service) UpdateRecord(ctx context.Context, task domain.Task, upd domain.RecordUpdate) (bool, error) {
	var updated bool
	err := s.withLedger(ctx, "UpdateRecord", func(l *domain.Ledger) (bool, error) {
		updated = l.Update(task, upd)
		return updated && !upd.IsEmpty(), nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// withLedger reconciles a copy of the ledger and hands it to fn. When the
// reconciliation or fn changed the copy, it is saved before it replaces the
// live ledger. An error from fn discards the copy.
func (s *Service) withLedger(ctx context.Context, name string, fn func(*domain.Ledger) (bool, error)) error {
	ctx, span := s.tracer.Start(ctx, "tracker."+name)
	defer span.End()

	events, err := s.withLedgerLocked(ctx, fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.publish(ctx, events)
	return err
}

func (s *Service) withLedgerLocked(ctx context.Context, fn func(*domain.Ledger) (bool, error)) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	ledger := s.ledger.Clone()
	res := ledger.Reconcile(s.board.Pending, s.Today())
	dirty, err := fn(ledger)
	if err != nil {
		return nil, err
	}
	if !res.Changed() && !dirty {
		return nil, nil
	}

	if err := s.saveLedger(context.WithoutCancel(ctx), ledger); err != nil {
		return nil, err
	}
	s.ledger = ledger

	if res.Changed() {
		s.cfg.Logger.DebugContext(ctx, "performance ledger reconciled",
			"created", len(res.Created),
			"pruned", len(res.Pruned))
	}
	return []domain.Event{s.ledgerChanged(ledger)}, nil
}
