package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/rezkam/tasktrack/internal/application/tracker"
	"github.com/rezkam/tasktrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRepositoryComplianceTest runs a standard set of tests against a tracker.Repository.
// setup is a function that returns a fresh (clean) Repository instance for the test.
// cleanup is called after the test to clean up resources (if any).
func RunRepositoryComplianceTest(t *testing.T, setup func() (tracker.Repository, func())) {
	t.Run("FirstLoadIsEmpty", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		pending, completed, err := repo.LoadTaskLists(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
		assert.Empty(t, completed)

		recycled, err := repo.LoadRecycleBin(ctx)
		require.NoError(t, err)
		assert.Empty(t, recycled)

		records, err := repo.LoadLedger(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("TaskListsRoundTrip", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		pending := []domain.Task{"WRITE REPORT", "BUY MILK", "CALL MOM"}
		completed := []domain.Task{"WATER PLANTS", "PAY RENT"}
		require.NoError(t, repo.SaveTaskLists(ctx, pending, completed))

		gotPending, gotCompleted, err := repo.LoadTaskLists(ctx)
		require.NoError(t, err)
		assert.Equal(t, pending, gotPending)
		assert.Equal(t, completed, gotCompleted)
	})

	t.Run("TaskListsSaveReplaces", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, repo.SaveTaskLists(ctx, []domain.Task{"A", "B"}, []domain.Task{"C"}))
		require.NoError(t, repo.SaveTaskLists(ctx, []domain.Task{"B"}, nil))

		pending, completed, err := repo.LoadTaskLists(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Task{"B"}, pending)
		assert.Empty(t, completed)
	})

	t.Run("RecycleBinRoundTrip", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		recycled := []domain.Task{"OLD TASK", "ANOTHER"}
		require.NoError(t, repo.SaveRecycleBin(ctx, recycled))

		got, err := repo.LoadRecycleBin(ctx)
		require.NoError(t, err)
		assert.Equal(t, recycled, got)

		require.NoError(t, repo.SaveRecycleBin(ctx, nil))
		got, err = repo.LoadRecycleBin(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("LedgerRoundTrip", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		records := []domain.PerformanceRecord{
			{
				Task:     "WRITE REPORT",
				Deadline: domain.Date{Year: 2024, Month: time.May, Day: 1},
				Type:     domain.TaskTypeWork,
				Priority: domain.TaskPriorityHigh,
				Comment:  "quarterly numbers",
			},
			domain.NewPerformanceRecord("BUY MILK", domain.Date{Year: 2024, Month: time.May, Day: 3}),
		}
		require.NoError(t, repo.SaveLedger(ctx, records))

		got, err := repo.LoadLedger(ctx)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("LedgerSaveReplaces", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		today := domain.Date{Year: 2024, Month: time.May, Day: 3}
		require.NoError(t, repo.SaveLedger(ctx, []domain.PerformanceRecord{
			domain.NewPerformanceRecord("A", today),
			domain.NewPerformanceRecord("B", today),
		}))
		require.NoError(t, repo.SaveLedger(ctx, []domain.PerformanceRecord{
			domain.NewPerformanceRecord("B", today),
		}))

		got, err := repo.LoadLedger(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.Task("B"), got[0].Task)
	})

	t.Run("CollectionsAreIndependent", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, repo.SaveRecycleBin(ctx, []domain.Task{"R"}))

		pending, completed, err := repo.LoadTaskLists(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
		assert.Empty(t, completed)
	})
}
