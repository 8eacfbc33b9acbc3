package focus

import (
	"context"
	"database/sql"

	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// mockTaskRepository is a testify mock of TaskRepository.
type mockTaskRepository struct {
	mock.Mock
}

func (m *mockTaskRepository) FetchOpenTasksForUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskRepository) FetchSuccessorCounts(ctx context.Context, taskIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, taskIDs)
	counts, _ := args.Get(0).(map[int64]int)
	return counts, args.Error(1)
}

func (m *mockTaskRepository) WithTx(tx *sql.Tx) TaskRepository {
	return m
}

func (m *mockTaskRepository) DB() *sql.DB {
	return nil
}
