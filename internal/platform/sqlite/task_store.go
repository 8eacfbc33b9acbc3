package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/platform/sqlscan"
	"github.com/phrazzld/focus-api/internal/store"
)

// maxIDsPerQuery keeps IN lists well below SQLite's bound-parameter limit.
const maxIDsPerQuery = 500

// SQLiteTaskStore implements store.TaskStore and store.TaskWriter on SQLite.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteTaskStore creates a new SQLite task store.
// If logger is nil, the default logger is used.
func NewSQLiteTaskStore(db store.DBTX, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var (
	_ store.TaskStore  = (*SQLiteTaskStore)(nil)
	_ store.TaskWriter = (*SQLiteTaskStore)(nil)
)

// SnapshotTxOptions returns nil: a SQLite transaction already reads from a
// single snapshot, and modernc rejects non-default isolation levels.
func SnapshotTxOptions() *sql.TxOptions {
	return nil
}

// FetchOpenTasksForUser implements store.TaskStore.FetchOpenTasksForUser.
func (s *SQLiteTaskStore) FetchOpenTasksForUser(
	ctx context.Context,
	userID int64,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := sqlscan.OpenTaskSelect + `
		WHERE t.assignee_id = ?
		  AND t.is_completed = 0
		  AND t.is_discarded = 0
		ORDER BY t.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query open tasks",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "fetch_open", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks, err := sqlscan.ScanTasks(rows)
	if err != nil {
		log.Error("failed to read open tasks",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("fetched open tasks",
		slog.Int64("user_id", userID),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// FetchSuccessorCounts implements store.TaskStore.FetchSuccessorCounts.
func (s *SQLiteTaskStore) FetchSuccessorCounts(
	ctx context.Context,
	taskIDs []int64,
) (map[int64]int, error) {
	counts := make(map[int64]int)
	log := logger.FromContextOrDefault(ctx, s.logger)

	for start := 0; start < len(taskIDs); start += maxIDsPerQuery {
		end := min(start+maxIDsPerQuery, len(taskIDs))
		chunk := taskIDs[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		query := `
			SELECT predecessor_id, COUNT(*)
			FROM tasks
			WHERE predecessor_id IN (` + placeholders + `)
			  AND is_completed = 0
			  AND is_discarded = 0
			GROUP BY predecessor_id
		`

		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		if err := s.scanCountChunk(ctx, query, args, counts); err != nil {
			log.Error("failed to query successor counts",
				slog.Int("task_count", len(taskIDs)),
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	return counts, nil
}

func (s *SQLiteTaskStore) scanCountChunk(
	ctx context.Context,
	query string,
	args []any,
	counts map[int64]int,
) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return store.NewStoreError("task", "count_successors", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	return sqlscan.ScanCounts(rows, counts)
}

// WithTxTaskStore implements store.TaskStore.WithTxTaskStore.
func (s *SQLiteTaskStore) WithTxTaskStore(tx *sql.Tx) store.TaskStore {
	return &SQLiteTaskStore{db: tx, logger: s.logger}
}

// WithTxTaskWriter implements store.TaskWriter.WithTxTaskWriter.
func (s *SQLiteTaskStore) WithTxTaskWriter(tx *sql.Tx) store.TaskWriter {
	return &SQLiteTaskStore{db: tx, logger: s.logger}
}

// CreateWorkspace implements store.TaskWriter.CreateWorkspace.
func (s *SQLiteTaskStore) CreateWorkspace(ctx context.Context, w store.NewWorkspace) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO workspaces (name) VALUES (?)`, w.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert workspace: %w", MapError(err))
	}
	return res.LastInsertId()
}

// CreateItem implements store.TaskWriter.CreateItem.
func (s *SQLiteTaskStore) CreateItem(ctx context.Context, item store.NewItem) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (workspace_id, title) VALUES (?, ?)`,
		item.WorkspaceID,
		item.Title,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: %w", store.ErrWorkspaceNotFound, err)
		}
		return 0, fmt.Errorf("failed to insert item: %w", MapError(err))
	}
	return res.LastInsertId()
}

// CreateTask implements store.TaskWriter.CreateTask.
func (s *SQLiteTaskStore) CreateTask(ctx context.Context, task store.NewTask) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (
			item_id, sequence, content, priority, due_at, estimated_hours,
			progress_percent, predecessor_id, is_completed, is_discarded, assignee_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		task.ItemID,
		task.Sequence,
		task.Content,
		sqlscan.PriorityArg(task.Priority),
		task.DueAt,
		task.EstimatedHours,
		task.ProgressPercent,
		sqlscan.NullableID(task.PredecessorID),
		task.IsCompleted,
		task.IsDiscarded,
		task.AssigneeID,
	)
	if err != nil {
		log.Warn("failed to insert task",
			slog.Int64("item_id", task.ItemID),
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to insert task: %w", MapError(err))
	}

	return res.LastInsertId()
}
