package fixtures

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/platform/sqlite"
	"github.com/phrazzld/focus-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*sql.DB, *sqlite.SQLiteTaskStore) {
	t.Helper()
	db := testdb.OpenSQLite(t)
	return db, sqlite.NewSQLiteTaskStore(db, nil)
}

func TestLoader_Load(t *testing.T) {
	db, s := openStore(t)
	log, _ := logger.NewTestLogger()
	now := time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)

	doc, err := Parse([]byte(validDoc))
	require.NoError(t, err)

	summary, err := NewLoader(db, s, func() time.Time { return now }, log).Load(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Workspaces)
	assert.Equal(t, 1, summary.Items)
	assert.Equal(t, 2, summary.Tasks)
	require.Contains(t, summary.IDs, "seeds")

	tasks, err := s.FetchOpenTasksForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	byContent := map[string]*domain.Task{}
	for _, task := range tasks {
		byContent[task.Content] = task
	}

	seeds := byContent["Buy seeds"]
	require.NotNil(t, seeds)
	assert.Equal(t, summary.IDs["seeds"], seeds.ID)
	assert.Equal(t, domain.PriorityHigh, seeds.Priority)
	assert.Equal(t, 2, seeds.Sequence)
	assert.True(t, seeds.DueAt.Equal(now.Add(48*time.Hour)))
	assert.Nil(t, seeds.Predecessor)

	plant := byContent["Plant seeds"]
	require.NotNil(t, plant)
	assert.Equal(t, 1, plant.Sequence)
	require.NotNil(t, plant.Predecessor)
	assert.Equal(t, seeds.ID, plant.Predecessor.ID)
	assert.Equal(t, "Garden", plant.ItemTitle)
	assert.Equal(t, "Home", plant.WorkspaceName)
}

func TestLoader_RollsBackOnInvalidDocument(t *testing.T) {
	db, s := openStore(t)

	doc := &Document{Workspaces: []Workspace{{Name: ""}}}
	_, err := NewLoader(db, s, nil, nil).Load(context.Background(), doc)
	require.ErrorIs(t, err, ErrInvalidDocument)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM workspaces").Scan(&count))
	assert.Zero(t, count)
}

func TestNewLoader_Panics(t *testing.T) {
	db, s := openStore(t)
	assert.Panics(t, func() { NewLoader(nil, s, nil, nil) })
	assert.Panics(t, func() { NewLoader(db, nil, nil, nil) })
}

func TestNewTask_RejectsUnknownPriority(t *testing.T) {
	p := pendingTask{itemID: 3, sequence: 1, task: Task{Content: "Prune roses", Priority: "urgent", Assignee: 1}}

	_, err := newTask(p, nil, time.Now())
	require.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, err.Error(), "Prune roses")

	p.task.Priority = "low"
	p.task.DueIn = "soon"
	_, err = newTask(p, nil, time.Now())
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestNewTask_MapsFields(t *testing.T) {
	now := time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)
	pred := int64(9)
	p := pendingTask{itemID: 3, sequence: 2, task: Task{Content: "Water", Priority: "high", DueIn: "2d", Assignee: 4}}

	nt, err := newTask(p, &pred, now)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, nt.Priority)
	assert.Equal(t, int64(3), nt.ItemID)
	assert.Equal(t, 2, nt.Sequence)
	assert.Equal(t, &pred, nt.PredecessorID)
	assert.Equal(t, int64(4), nt.AssigneeID)
	assert.Equal(t, now.Add(48*time.Hour), nt.DueAt)
}
