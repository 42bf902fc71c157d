package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rezkam/tasktrack/internal/domain"
	"github.com/rezkam/tasktrack/internal/ptr"
	"github.com/rezkam/tasktrack/internal/storage/fs"
	"github.com/rezkam/tasktrack/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2024, time.May, 3, 10, 0, 0, 0, time.UTC)
	testToday = domain.Date{Year: 2024, Month: time.May, Day: 3}
)

// recorder is a Publisher that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Publish(_ context.Context, e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []domain.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.EventKind
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *recorder) last() domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func testConfig() Config {
	return Config{
		Now:      func() time.Time { return testNow },
		Location: time.UTC,
	}
}

func newTestService(t *testing.T, repo Repository) (*Service, *recorder) {
	t.Helper()
	rec := &recorder{}
	svc, err := NewService(repo, rec, testConfig())
	require.NoError(t, err)
	require.NoError(t, svc.Load(context.Background()))
	return svc, rec
}

func snapshot(t *testing.T, svc *Service) domain.Snapshot {
	t.Helper()
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	return snap
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, rec := newTestService(t, store)

	task, err := svc.Add(ctx, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, domain.Task("BUY MILK"), task)

	pending, _, err := store.LoadTaskLists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"BUY MILK"}, pending, "write-through")

	records, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.NewPerformanceRecord("BUY MILK", testToday), records[0])

	assert.Equal(t, []domain.EventKind{domain.EventTaskListChanged, domain.EventLedgerChanged}, rec.kinds())
	assert.NotEmpty(t, rec.events[0].ID)
	assert.Equal(t, testNow, rec.events[0].At)
}

func TestService_Add_Rejections(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc, rec := newTestService(t, store)

	_, err := svc.Add(ctx, "Buy milk")
	require.NoError(t, err)
	rec.reset()

	_, err = svc.Add(ctx, "buy milk")
	assert.ErrorIs(t, err, domain.ErrDuplicatePending)
	assert.Equal(t, []domain.EventKind{domain.EventOperationRejected}, rec.kinds())
	assert.Equal(t, domain.ReasonDuplicatePending, rec.last().Reason)
	assert.Equal(t, OpAdd, rec.last().Operation)

	_, err = svc.Complete(ctx, []int{0})
	require.NoError(t, err)
	rec.reset()

	_, err = svc.Add(ctx, "BUY MILK")
	assert.ErrorIs(t, err, domain.ErrDuplicateCompleted)
	assert.Equal(t, domain.ReasonDuplicateCompleted, rec.last().Reason)

	snap := snapshot(t, svc)
	assert.Empty(t, snap.Pending)
	assert.Equal(t, []domain.Task{"BUY MILK"}, snap.Completed)
}

func TestService_Add_EmptyIsIgnored(t *testing.T) {
	store := memory.NewStore()
	svc, rec := newTestService(t, store)

	task, err := svc.Add(context.Background(), " \t ")
	require.NoError(t, err)
	assert.Empty(t, task)
	assert.Empty(t, rec.kinds())
	assert.Zero(t, store.Saves(memory.TargetTaskLists))
}

func TestService_Complete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, []domain.Task{"A", "B", "C"}, nil))
	svc, rec := newTestService(t, store)

	moved, err := svc.Complete(ctx, []int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"C", "A"}, moved)
	assert.NotContains(t, rec.kinds(), domain.EventAllTasksCompleted)

	rec.reset()
	_, err = svc.Complete(ctx, []int{0})
	require.NoError(t, err)
	assert.Contains(t, rec.kinds(), domain.EventAllTasksCompleted)

	pending, completed, err := store.LoadTaskLists(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, []domain.Task{"C", "A", "B"}, completed)
}

func TestService_Complete_Rejections(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, []domain.Task{"A"}, nil))
	svc, rec := newTestService(t, store)

	_, err := svc.Complete(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrNoSelection)

	_, err = svc.Complete(ctx, []int{0, 5})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	assert.Equal(t, []domain.EventKind{domain.EventOperationRejected, domain.EventOperationRejected}, rec.kinds())
	assert.Equal(t, []domain.Task{"A"}, snapshot(t, svc).Pending)
	assert.Equal(t, 1, store.Saves(memory.TargetTaskLists), "only the seed write")
}

func TestService_ClearAndRestore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, nil, []domain.Task{"A", "B", "C"}))
	svc, rec := newTestService(t, store)

	cleared, err := svc.ClearSelected(ctx, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"B"}, cleared)
	assert.Equal(t, []domain.EventKind{domain.EventTaskListChanged, domain.EventRecycleBinChanged}, rec.kinds())

	cleared, err = svc.ClearAllCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"A", "C"}, cleared)

	_, err = svc.ClearAllCompleted(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSelection)

	recycled, err := store.LoadRecycleBin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"B", "A", "C"}, recycled)

	// "A" comes back to life as pending before it is restored.
	_, err = svc.Add(ctx, "a")
	require.NoError(t, err)

	res, err := svc.Restore(ctx, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"B"}, res.Restored)
	assert.Equal(t, []domain.Task{"A"}, res.Skipped)

	snap := snapshot(t, svc)
	assert.Equal(t, []domain.Task{"A"}, snap.Pending)
	assert.Equal(t, []domain.Task{"B"}, snap.Completed)
	assert.Equal(t, []domain.Task{"C"}, snap.Recycled)
}

func TestService_Restore_DoesNotDuplicateCompleted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, nil, []domain.Task{"X"}))
	require.NoError(t, store.SaveRecycleBin(ctx, []domain.Task{"X"}))
	svc, _ := newTestService(t, store)

	res, err := svc.Restore(ctx, []int{0})
	require.NoError(t, err)
	assert.Empty(t, res.Restored)

	snap := snapshot(t, svc)
	assert.Equal(t, []domain.Task{"X"}, snap.Completed)
	assert.Empty(t, snap.Recycled)
}

func TestService_MoveAndDeletePending(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, []domain.Task{"P"}, []domain.Task{"C"}))
	svc, _ := newTestService(t, store)

	moved, err := svc.MoveToPending(ctx, []domain.Task{"C"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"C"}, moved)

	_, ok := recordFor(t, svc, "C")
	assert.True(t, ok, "uncompleted task gets a ledger record")

	removed, err := svc.DeletePending(ctx, []domain.Task{"P"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"P"}, removed)

	_, ok = recordFor(t, svc, "P")
	assert.False(t, ok)

	snap := snapshot(t, svc)
	assert.Equal(t, []domain.Task{"C"}, snap.Pending)
	assert.Empty(t, snap.Completed)
	assert.Empty(t, snap.Recycled, "deleted pending tasks skip the bin")

	_, err = svc.DeletePending(ctx, []domain.Task{"MISSING"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func recordFor(t *testing.T, svc *Service, task domain.Task) (domain.PerformanceEntry, bool) {
	t.Helper()
	entries, err := svc.Performance(context.Background())
	require.NoError(t, err)
	for _, e := range entries {
		if e.Task == task {
			return e, true
		}
	}
	return domain.PerformanceEntry{}, false
}

func TestService_FailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, []domain.Task{"A"}, nil))
	svc, rec := newTestService(t, store)
	boom := errors.New("disk full")

	store.FailSaves(memory.TargetTaskLists, boom)
	_, err := svc.Complete(ctx, []int{0})
	require.ErrorIs(t, err, boom)
	assert.False(t, domain.IsRejection(err))
	assert.Empty(t, rec.kinds(), "nothing committed, nothing announced")
	assert.Equal(t, []domain.Task{"A"}, snapshot(t, svc).Pending)

	store.FailSaves(memory.TargetTaskLists, nil)
	_, err = svc.Complete(ctx, []int{0})
	require.NoError(t, err)
	assert.Empty(t, snapshot(t, svc).Pending)
}

func TestService_FailedRecycleWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, nil, []domain.Task{"A"}))
	svc, _ := newTestService(t, store)

	store.FailSaves(memory.TargetRecycleBin, errors.New("read-only"))
	_, err := svc.ClearAllCompleted(ctx)
	require.Error(t, err)

	snap := snapshot(t, svc)
	assert.Equal(t, []domain.Task{"A"}, snap.Completed)
	assert.Empty(t, snap.Recycled)
}

// cancelingStore cancels the caller's context right after the task lists are
// written and refuses later saves under a canceled context.
type cancelingStore struct {
	*memory.Store
	cancel context.CancelFunc
}

func (c *cancelingStore) SaveTaskLists(ctx context.Context, pending, completed []domain.Task) error {
	if err := c.Store.SaveTaskLists(ctx, pending, completed); err != nil {
		return err
	}
	c.cancel()
	return nil
}

func (c *cancelingStore) SaveRecycleBin(ctx context.Context, recycled []domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Store.SaveRecycleBin(ctx, recycled)
}

func (c *cancelingStore) SaveLedger(ctx context.Context, records []domain.PerformanceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Store.SaveLedger(ctx, records)
}

func TestService_CancelDuringWriteKeepsClearedTask(t *testing.T) {
	mem := memory.NewStore()
	require.NoError(t, mem.SaveTaskLists(context.Background(), []domain.Task{"B"}, []domain.Task{"A"}))
	svc, _ := newTestService(t, mem)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.repo = &cancelingStore{Store: mem, cancel: cancel}

	cleared, err := svc.ClearAllCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"A"}, cleared)
	require.ErrorIs(t, ctx.Err(), context.Canceled)

	_, completed, err := mem.LoadTaskLists(context.Background())
	require.NoError(t, err)
	assert.Empty(t, completed)
	recycled, err := mem.LoadRecycleBin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"A"}, recycled, "task removed from the lists must reach the bin")
}

func TestService_CanceledContextStillWritesFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := fs.NewStore(fs.Config{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, store.SaveTaskLists(context.Background(), nil, []domain.Task{"A"}))
	svc, _ := newTestService(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.ClearSelected(ctx, []int{0})
	require.NoError(t, err)

	reopened, err := fs.NewStore(fs.Config{Dir: dir})
	require.NoError(t, err)
	recycled, err := reopened.LoadRecycleBin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"A"}, recycled)
}

func TestService_Performance(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, []domain.Task{"Y"}, nil))
	require.NoError(t, store.SaveLedger(ctx, []domain.PerformanceRecord{
		domain.NewPerformanceRecord("X", testToday),
	}))
	svc, rec := newTestService(t, store)

	entries, err := svc.Performance(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.Task("Y"), entries[0].Task)
	assert.Equal(t, testToday, entries[0].Deadline)
	assert.Equal(t, 0, entries[0].DaysRemaining)
	assert.Equal(t, domain.DeadlineDueToday, entries[0].Status)
	assert.Equal(t, []domain.EventKind{domain.EventLedgerChanged}, rec.kinds())

	stored, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.Task("Y"), stored[0].Task)

	saves := store.Saves(memory.TargetLedger)
	require.NoError(t, svc.Reconcile(ctx))
	assert.Equal(t, saves, store.Saves(memory.TargetLedger), "no write when nothing changed")
}

func TestService_UpdateRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveTaskLists(ctx, []domain.Task{"T"}, []domain.Task{"DONE"}))
	svc, _ := newTestService(t, store)

	deadline := domain.Date{Year: 2024, Month: time.May, Day: 1}
	ok, err := svc.UpdateRecord(ctx, "T", domain.RecordUpdate{
		Deadline: &deadline,
		Type:     ptr.To(domain.TaskTypeProgramming),
		Comment:  ptr.To("ship it"),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, deadline, stored[0].Deadline)
	assert.Equal(t, domain.TaskTypeProgramming, stored[0].Type)
	assert.Equal(t, domain.TaskPriorityAverage, stored[0].Priority)
	assert.Equal(t, "ship it", stored[0].Comment)

	days, status, err := svc.DaysRemaining(ctx, "T", testToday)
	require.NoError(t, err)
	assert.Equal(t, -2, days)
	assert.Equal(t, domain.DeadlineOverdue, status)

	ok, err = svc.UpdateRecord(ctx, "DONE", domain.RecordUpdate{Comment: ptr.To("nope")})
	require.NoError(t, err)
	assert.False(t, ok, "completed tasks have no record")

	_, _, err = svc.DaysRemaining(ctx, "DONE", testToday)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("drops duplicates", func(t *testing.T) {
		store := memory.NewStore()
		require.NoError(t, store.SaveTaskLists(ctx, []domain.Task{"A", "A"}, []domain.Task{"A", "B"}))
		svc, _ := newTestService(t, store)

		snap := snapshot(t, svc)
		assert.Equal(t, []domain.Task{"A"}, snap.Pending)
		assert.Equal(t, []domain.Task{"B"}, snap.Completed)
	})

	t.Run("malformed ledger fails", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, fs.DefaultPerformanceFile), []byte("{not json"), 0o644))
		store, err := fs.NewStore(fs.Config{Dir: dir})
		require.NoError(t, err)

		svc, err := NewService(store, nil, testConfig())
		require.NoError(t, err)
		err = svc.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrMalformedDocument)

		_, err = svc.Add(ctx, "anything")
		assert.ErrorIs(t, err, domain.ErrMalformedDocument, "lazy load surfaces the same failure")
	})

	t.Run("lazy load on first use", func(t *testing.T) {
		store := memory.NewStore()
		require.NoError(t, store.SaveTaskLists(ctx, []domain.Task{"A"}, nil))
		svc, err := NewService(store, nil, testConfig())
		require.NoError(t, err)

		progress, err := svc.Progress(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, progress.Pending)
	})
}

// Start empty, add, reject the case-insensitive duplicate, complete, clear
// everything and purge the bin: nothing survives in any of the three files.
func TestService_Lifecycle_FileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := fs.NewStore(fs.Config{Dir: dir})
	require.NoError(t, err)
	svc, rec := newTestService(t, store)

	_, err = svc.Add(ctx, "Buy milk")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "buy milk")
	require.ErrorIs(t, err, domain.ErrDuplicatePending)

	_, err = svc.Complete(ctx, []int{0})
	require.NoError(t, err)
	assert.Contains(t, rec.kinds(), domain.EventAllTasksCompleted)

	cleared, err := svc.ClearAllCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"BUY MILK"}, cleared)

	_, err = svc.DeleteForever(ctx, []domain.Task{"BUY MILK"})
	require.NoError(t, err)

	tasks, err := os.ReadFile(filepath.Join(dir, fs.DefaultTasksFile))
	require.NoError(t, err)
	assert.Equal(t, "Pending Tasks:\nCompleted Tasks:\n", string(tasks))

	recycled, err := os.ReadFile(filepath.Join(dir, fs.DefaultRecycleFile))
	require.NoError(t, err)
	assert.Empty(t, recycled)

	perf, err := os.ReadFile(filepath.Join(dir, fs.DefaultPerformanceFile))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(perf))

	// A fresh service sees the same empty state.
	reloaded, _ := newTestService(t, store)
	progress, err := reloaded.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Progress{}, progress)
}

func TestService_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, memory.NewStore())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Add(ctx, "same task")
		}()
	}
	wg.Wait()

	assert.Equal(t, []domain.Task{"SAME TASK"}, snapshot(t, svc).Pending)
}
