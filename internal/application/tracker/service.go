package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rezkam/tasktrack/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/rezkam/tasktrack/internal/application/tracker"

// Publisher receives events after the state they describe is committed.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Event) {}

// Config holds configuration for the Service.
type Config struct {
	// Now returns the current time (default: time.Now).
	Now func() time.Time

	// Location decides which calendar day "today" is (default: time.Local).
	Location *time.Location

	Logger         *slog.Logger         // default: slog.Default()
	TracerProvider trace.TracerProvider // default: otel.GetTracerProvider()
	MeterProvider  metric.MeterProvider // default: otel.GetMeterProvider()
}

// Service is the task lifecycle engine. It owns the Board and Ledger, runs
// every intent to completion under one lock and writes each affected file
// through the Repository before the intent returns.
//
// An intent works on a copy of the state. The copy replaces the live state
// only after every write succeeded, so a failed write leaves memory as it was
// before the call. Whole-file saves mean the next successful write also
// repairs any file a partially failed intent left ahead of memory.
type Service struct {
	repo Repository
	pub  Publisher
	cfg  Config

	tracer      trace.Tracer
	transitions metric.Int64Counter
	rejections  metric.Int64Counter

	mu     sync.Mutex
	board  *domain.Board
	ledger *domain.Ledger
}

// NewService creates a new tracker service.
// Applies defaults for nil config values. A nil publisher drops events.
func NewService(repo Repository, pub Publisher, cfg Config) (*Service, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}
	if pub == nil {
		pub = nopPublisher{}
	}

	meter := cfg.MeterProvider.Meter(instrumentationName)
	transitions, err := meter.Int64Counter("tasktrack.tasks.transitions",
		metric.WithDescription("Tasks moved, added or removed by an operation"),
		metric.WithUnit("{task}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create transitions counter: %w", err)
	}
	rejections, err := meter.Int64Counter("tasktrack.operations.rejected",
		metric.WithDescription("Operations rejected by validation"),
		metric.WithUnit("{operation}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rejections counter: %w", err)
	}

	return &Service{
		repo:        repo,
		pub:         pub,
		cfg:         cfg,
		tracer:      cfg.TracerProvider.Tracer(instrumentationName),
		transitions: transitions,
		rejections:  rejections,
	}, nil
}

// Today returns the current calendar day in the configured location.
func (s *Service) Today() domain.Date {
	return domain.Today(s.cfg.Now(), s.cfg.Location)
}

// Load replaces the in-memory state with what the repository holds.
// Missing files are a first run and yield empty collections.
func (s *Service) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "tracker.Load")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s *Service) load(ctx context.Context) error {
	pending, completed, err := s.repo.LoadTaskLists(ctx)
	if err != nil {
		return fmt.Errorf("failed to load task lists: %w", err)
	}
	recycled, err := s.repo.LoadRecycleBin(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recycle bin: %w", err)
	}
	records, err := s.repo.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("failed to load performance ledger: %w", err)
	}

	board, report := domain.NewBoard(pending, completed, recycled)
	s.board = board
	s.ledger = domain.NewLedger(records)

	if report.DuplicatesDropped > 0 {
		s.cfg.Logger.WarnContext(ctx, "dropped duplicate tasks while loading",
			"count", report.DuplicatesDropped)
	}
	s.cfg.Logger.DebugContext(ctx, "tracker state loaded",
		"pending", len(board.Pending),
		"completed", len(board.Completed),
		"recycled", len(board.Recycled),
		"records", s.ledger.Len())
	return nil
}

// ensureLoaded loads state on first use. Callers hold s.mu.
func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.board != nil {
		return nil
	}
	return s.load(ctx)
}

// effects lists what an intent touches besides the board.
type effects struct {
	taskLists  bool // rewrite the task file and reconcile the ledger
	recycleBin bool // rewrite the recycle file

	// announce AllTasksCompleted when pending ends up empty
	notifyAllCompleted bool
}

// intent is a state change computed on a copy of the board.
// It returns how many tasks it touched.
type intent func(b *domain.Board) (int, error)

// run executes op against a copy of the board, persists the affected files,
// reconciles the ledger and commits. Events are published after the lock is
// released.
func (s *Service) run(ctx context.Context, name string, w effects, op intent) error {
	ctx, span := s.tracer.Start(ctx, "tracker."+name)
	defer span.End()

	events, err := s.runLocked(ctx, name, w, op)
	if err != nil {
		span.RecordError(err)
		if !domain.IsRejection(err) {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	s.publish(ctx, events)
	return err
}

func (s *Service) runLocked(ctx context.Context, name string, w effects, op intent) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	next := s.board.Clone()
	n, err := op(next)
	if err != nil {
		if reason, ok := domain.Rejection(err); ok {
			return []domain.Event{s.rejected(ctx, name, reason, err)}, err
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	// Once the first file is written the rest must follow, so cancellation
	// stops at this point.
	ctx = context.WithoutCancel(ctx)

	var events []domain.Event
	snap := next.Snapshot()
	if w.taskLists {
		if err := s.repo.SaveTaskLists(ctx, next.Pending, next.Completed); err != nil {
			s.cfg.Logger.ErrorContext(ctx, "failed to save task lists", "operation", name, "error", err)
			return nil, fmt.Errorf("failed to save task lists: %w", err)
		}
		events = append(events, s.event(domain.Event{
			Kind:      domain.EventTaskListChanged,
			Pending:   snap.Pending,
			Completed: snap.Completed,
		}))
	}
	if w.recycleBin {
		if err := s.repo.SaveRecycleBin(ctx, next.Recycled); err != nil {
			s.cfg.Logger.ErrorContext(ctx, "failed to save recycle bin", "operation", name, "error", err)
			return nil, fmt.Errorf("failed to save recycle bin: %w", err)
		}
		events = append(events, s.event(domain.Event{
			Kind:     domain.EventRecycleBinChanged,
			Recycled: snap.Recycled,
		}))
	}

	ledger := s.ledger.Clone()
	if w.taskLists {
		ev, err := s.reconcile(ctx, ledger, next.Pending)
		if err != nil {
			return nil, err
		}
		events = append(events, ev...)
	}

	s.board = next
	s.ledger = ledger

	if w.notifyAllCompleted && len(next.Pending) == 0 {
		events = append(events, s.event(domain.Event{Kind: domain.EventAllTasksCompleted}))
	}

	s.transitions.Add(ctx, int64(n), metric.WithAttributes(attribute.String("operation", name)))
	s.cfg.Logger.DebugContext(ctx, "operation applied",
		"operation", name,
		"tasks", n,
		"pending", len(next.Pending),
		"completed", len(next.Completed),
		"recycled", len(next.Recycled))
	return events, nil
}

// reconcile aligns ledger with pending and saves it when it changed.
func (s *Service) reconcile(ctx context.Context, ledger *domain.Ledger, pending []domain.Task) ([]domain.Event, error) {
	res := ledger.Reconcile(pending, s.Today())
	if !res.Changed() {
		return nil, nil
	}
	if err := s.saveLedger(ctx, ledger); err != nil {
		return nil, err
	}
	s.cfg.Logger.DebugContext(ctx, "performance ledger reconciled",
		"created", len(res.Created),
		"pruned", len(res.Pruned))
	return []domain.Event{s.ledgerChanged(ledger)}, nil
}

func (s *Service) saveLedger(ctx context.Context, ledger *domain.Ledger) error {
	if err := s.repo.SaveLedger(ctx, ledger.Records()); err != nil {
		s.cfg.Logger.ErrorContext(ctx, "failed to save performance ledger", "error", err)
		return fmt.Errorf("failed to save performance ledger: %w", err)
	}
	return nil
}

func (s *Service) ledgerChanged(ledger *domain.Ledger) domain.Event {
	return s.event(domain.Event{Kind: domain.EventLedgerChanged, Records: ledger.Records()})
}

func (s *Service) rejected(ctx context.Context, operation string, reason domain.RejectionReason, err error) domain.Event {
	s.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("reason", string(reason)),
	))
	s.cfg.Logger.InfoContext(ctx, "operation rejected",
		"operation", operation,
		"reason", reason,
		"detail", err.Error())
	return s.event(domain.Event{
		Kind:      domain.EventOperationRejected,
		Operation: operation,
		Reason:    reason,
		Detail:    err.Error(),
	})
}

// event stamps e with an id and time.
func (s *Service) event(e domain.Event) domain.Event {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	e.ID = id.String()
	e.At = s.cfg.Now().UTC()
	return e
}

func (s *Service) publish(ctx context.Context, events []domain.Event) {
	for _, e := range events {
		s.pub.Publish(ctx, e)
	}
}
