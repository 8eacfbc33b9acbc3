package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/focus-api/internal/domain"
)

// TaskStore defines the read operations the focus engine needs from task persistence.
type TaskStore interface {
	// FetchOpenTasksForUser returns every task assigned to userID that is
	// neither completed nor discarded, with its predecessor summary and its
	// item and workspace display fields resolved. Order is by ID ascending.
	// An empty slice (not an error) is returned when the user has no open tasks.
	FetchOpenTasksForUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// FetchSuccessorCounts returns, for each id in taskIDs that has at least
	// one live successor, the number of tasks that are neither completed nor
	// discarded and name that id as their predecessor. The count is taken over
	// all tasks, regardless of assignee. Ids without live successors are absent.
	FetchSuccessorCounts(ctx context.Context, taskIDs []int64) (map[int64]int, error)

	// WithTxTaskStore returns a TaskStore that runs its queries on tx.
	WithTxTaskStore(tx *sql.Tx) TaskStore
}

// NewWorkspace is the input for TaskWriter.CreateWorkspace.
type NewWorkspace struct {
	Name string
}

// NewItem is the input for TaskWriter.CreateItem.
type NewItem struct {
	WorkspaceID int64
	Title       string
}

// NewTask is the input for TaskWriter.CreateTask.
type NewTask struct {
	ItemID          int64
	Sequence        int
	Content         string
	Priority        domain.Priority
	DueAt           time.Time
	EstimatedHours  float64
	ProgressPercent int
	PredecessorID   *int64
	IsCompleted     bool
	IsDiscarded     bool
	AssigneeID      int64
}

// TaskWriter inserts seed data. It is used by fixture loading and tests only;
// the focus engine itself never writes.
type TaskWriter interface {
	CreateWorkspace(ctx context.Context, w NewWorkspace) (int64, error)
	CreateItem(ctx context.Context, item NewItem) (int64, error)
	CreateTask(ctx context.Context, task NewTask) (int64, error)

	// WithTxTaskWriter returns a TaskWriter that runs its statements on tx.
	WithTxTaskWriter(tx *sql.Tx) TaskWriter
}
