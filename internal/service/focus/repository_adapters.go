package focus

import (
	"context"
	"database/sql"

	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/store"
)

// TaskRepository defines the reads the focus service needs, with transaction support.
type TaskRepository interface {
	// FetchOpenTasksForUser returns the user's tasks that are neither completed
	// nor discarded, with predecessor, item and workspace resolved.
	FetchOpenTasksForUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// FetchSuccessorCounts returns live successor counts keyed by task id.
	// Ids without live successors may be absent.
	FetchSuccessorCounts(ctx context.Context, taskIDs []int64) (map[int64]int, error)

	// WithTx returns a repository instance that reads through tx.
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// NewTaskRepositoryAdapter creates an adapter that allows a store.TaskStore
// to be used where a TaskRepository is expected.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		taskStore: taskStore,
		db:        db,
	}
}

// taskRepositoryAdapter adapts a store.TaskStore to the TaskRepository interface
type taskRepositoryAdapter struct {
	taskStore store.TaskStore
	db        *sql.DB
}

// FetchOpenTasksForUser implements TaskRepository.FetchOpenTasksForUser
func (a *taskRepositoryAdapter) FetchOpenTasksForUser(
	ctx context.Context,
	userID int64,
) ([]*domain.Task, error) {
	return a.taskStore.FetchOpenTasksForUser(ctx, userID)
}

// FetchSuccessorCounts implements TaskRepository.FetchSuccessorCounts
func (a *taskRepositoryAdapter) FetchSuccessorCounts(
	ctx context.Context,
	taskIDs []int64,
) (map[int64]int, error) {
	return a.taskStore.FetchSuccessorCounts(ctx, taskIDs)
}

// WithTx implements TaskRepository.WithTx
func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &taskRepositoryAdapter{
		taskStore: a.taskStore.WithTxTaskStore(tx),
		db:        a.db,
	}
}

// DB implements TaskRepository.DB
func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}
