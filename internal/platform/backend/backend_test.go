package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/focus-api/internal/config"
	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/service/focus"
	"github.com/phrazzld/focus-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle", URL: "x"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported database driver "oracle"`)
}

func TestOpen_SQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	log, _ := logger.NewTestLogger()

	b, err := Open(ctx, config.DatabaseConfig{
		Driver:       DriverSQLite,
		URL:          filepath.Join(t.TempDir(), "focus.db"),
		MaxOpenConns: 1,
		AutoMigrate:  true,
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	wsID, err := b.Tasks.CreateWorkspace(ctx, store.NewWorkspace{Name: "Home"})
	require.NoError(t, err)
	itemID, err := b.Tasks.CreateItem(ctx, store.NewItem{WorkspaceID: wsID, Title: "Garden"})
	require.NoError(t, err)

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	firstID, err := b.Tasks.CreateTask(ctx, store.NewTask{
		ItemID: itemID, Sequence: 1, Content: "Buy seeds", Priority: domain.PriorityHigh,
		DueAt: now.Add(12 * time.Hour), AssigneeID: 1,
	})
	require.NoError(t, err)
	_, err = b.Tasks.CreateTask(ctx, store.NewTask{
		ItemID: itemID, Sequence: 2, Content: "Plant seeds", DueAt: now.Add(30 * 24 * time.Hour),
		PredecessorID: &firstID, AssigneeID: 1,
	})
	require.NoError(t, err)

	clock := func() time.Time { return now }
	for _, snapshot := range []bool{false, true} {
		svc := b.FocusService(config.FocusConfig{ConsistentSnapshot: snapshot}, log, focus.WithClock(clock))

		result, err := svc.GetFocusTasks(ctx, focus.NewQuery(1))
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalTaskCount)
		require.Len(t, result.FocusTasks, 1)
		assert.Equal(t, firstID, result.FocusTasks[0].ID)
		assert.Equal(t, 1, result.FocusTasks[0].SuccessorCount)
		require.Len(t, result.WaitingTasks, 1)
		assert.False(t, result.WaitingTasks[0].CanStart)
	}

	// Applying migrations again is a no-op.
	require.NoError(t, b.Migrate(ctx))
}
