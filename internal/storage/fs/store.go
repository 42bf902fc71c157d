package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/rezkam/tasktrack/internal/domain"
)

// Default file names inside the data directory.
const (
	DefaultTasksFile       = "tasks.txt"
	DefaultRecycleFile     = "tasks_recycle_bin.txt"
	DefaultPerformanceFile = "user_performance.json"
)

const filePerm = 0o644

// Config holds configuration for the filesystem store.
type Config struct {
	Dir             string
	TasksFile       string
	RecycleFile     string
	PerformanceFile string
	Logger          *slog.Logger // defaults to slog.Default()
}

// Store is a filesystem-based implementation of tracker.Repository.
// Each collection lives in its own plain-text file under one directory.
type Store struct {
	tasksPath       string
	recyclePath     string
	performancePath string
	logger          *slog.Logger
	mu              sync.RWMutex
}

// NewStore creates a new filesystem store, creating the directory if needed.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if cfg.TasksFile == "" {
		cfg.TasksFile = DefaultTasksFile
	}
	if cfg.RecycleFile == "" {
		cfg.RecycleFile = DefaultRecycleFile
	}
	if cfg.PerformanceFile == "" {
		cfg.PerformanceFile = DefaultPerformanceFile
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{
		tasksPath:       filepath.Join(cfg.Dir, cfg.TasksFile),
		recyclePath:     filepath.Join(cfg.Dir, cfg.RecycleFile),
		performancePath: filepath.Join(cfg.Dir, cfg.PerformanceFile),
		logger:          cfg.Logger,
	}, nil
}

// readOptional returns the file content, or nil if the file does not exist.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// LoadTaskLists reads the task file.
func (s *Store) LoadTaskLists(ctx context.Context) ([]domain.Task, []domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := readOptional(s.tasksPath)
	if err != nil {
		return nil, nil, err
	}
	pending, completed := decodeTaskFile(data)
	return pending, completed, nil
}

// SaveTaskLists rewrites the task file.
func (s *Store) SaveTaskLists(ctx context.Context, pending, completed []domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.tasksPath, encodeTaskFile(pending, completed), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.tasksPath, err)
	}
	return nil
}

// LoadRecycleBin reads the recycle file.
func (s *Store) LoadRecycleBin(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := readOptional(s.recyclePath)
	if err != nil {
		return nil, err
	}
	return decodeRecycleFile(data), nil
}

// SaveRecycleBin rewrites the recycle file.
func (s *Store) SaveRecycleBin(ctx context.Context, recycled []domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.recyclePath, encodeRecycleFile(recycled), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.recyclePath, err)
	}
	return nil
}

// LoadLedger reads the performance document. Records that cannot be used are
// logged and left out.
func (s *Store) LoadLedger(ctx context.Context) ([]domain.PerformanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := readOptional(s.performancePath)
	if err != nil {
		return nil, err
	}

	records, skipped, err := decodePerformance(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.performancePath, err)
	}
	for _, sk := range skipped {
		s.logger.WarnContext(ctx, "skipping unusable performance record",
			"path", s.performancePath,
			"task_name", sk.TaskName,
			"error", sk.Err)
	}
	return records, nil
}

// SaveLedger rewrites the performance document.
func (s *Store) SaveLedger(ctx context.Context, records []domain.PerformanceRecord) error {
	data, err := encodePerformance(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.performancePath, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.performancePath, err)
	}
	return nil
}
