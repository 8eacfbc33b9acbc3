package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/platform/sqlscan"
	"github.com/phrazzld/focus-api/internal/store"
)

// PostgresTaskStore implements store.TaskStore and store.TaskWriter
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL task store.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var (
	_ store.TaskStore  = (*PostgresTaskStore)(nil)
	_ store.TaskWriter = (*PostgresTaskStore)(nil)
)

// SnapshotTxOptions are the transaction options used when both focus reads
// must observe the same snapshot.
func SnapshotTxOptions() *sql.TxOptions {
	return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
}

// FetchOpenTasksForUser implements store.TaskStore.FetchOpenTasksForUser.
func (s *PostgresTaskStore) FetchOpenTasksForUser(
	ctx context.Context,
	userID int64,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := sqlscan.OpenTaskSelect + `
		WHERE t.assignee_id = $1
		  AND NOT t.is_completed
		  AND NOT t.is_discarded
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
func (s *PostgresTaskStore) FetchSuccessorCounts(
	ctx context.Context,
	taskIDs []int64,
) (map[int64]int, error) {
	counts := make(map[int64]int)
	if len(taskIDs) == 0 {
		return counts, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT predecessor_id, COUNT(*)
		FROM tasks
		WHERE predecessor_id = ANY($1)
		  AND NOT is_completed
		  AND NOT is_discarded
		GROUP BY predecessor_id
	`

	rows, err := s.db.QueryContext(ctx, query, taskIDs)
	if err != nil {
		log.Error("failed to query successor counts",
			slog.Int("task_count", len(taskIDs)),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "count_successors", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	if err := sqlscan.ScanCounts(rows, counts); err != nil {
		log.Error("failed to read successor counts", slog.String("error", err.Error()))
		return nil, err
	}

	return counts, nil
}

// WithTxTaskStore implements store.TaskStore.WithTxTaskStore.
func (s *PostgresTaskStore) WithTxTaskStore(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// WithTxTaskWriter implements store.TaskWriter.WithTxTaskWriter.
func (s *PostgresTaskStore) WithTxTaskWriter(tx *sql.Tx) store.TaskWriter {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateWorkspace implements store.TaskWriter.CreateWorkspace.
func (s *PostgresTaskStore) CreateWorkspace(ctx context.Context, w store.NewWorkspace) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO workspaces (name) VALUES ($1) RETURNING id`,
		w.Name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert workspace: %w", MapError(err))
	}
	return id, nil
}

// CreateItem implements store.TaskWriter.CreateItem.
func (s *PostgresTaskStore) CreateItem(ctx context.Context, item store.NewItem) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO items (workspace_id, title) VALUES ($1, $2) RETURNING id`,
		item.WorkspaceID,
		item.Title,
	).Scan(&id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: %w", store.ErrWorkspaceNotFound, err)
		}
		return 0, fmt.Errorf("failed to insert item: %w", MapError(err))
	}
	return id, nil
}

// CreateTask implements store.TaskWriter.CreateTask.
func (s *PostgresTaskStore) CreateTask(ctx context.Context, task store.NewTask) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (
			item_id, sequence, content, priority, due_at, estimated_hours,
			progress_percent, predecessor_id, is_completed, is_discarded, assignee_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
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
	).Scan(&id)
	if err != nil {
		log.Warn("failed to insert task",
			slog.Int64("item_id", task.ItemID),
			slog.String("error", err.Error()))
		if IsForeignKeyViolation(err) {
			missing := store.ErrItemNotFound
			if ViolatedConstraint(err) == predecessorForeignKey {
				missing = store.ErrTaskNotFound
			}
			return 0, fmt.Errorf("%w: %w", missing, MapError(err))
		}
		return 0, fmt.Errorf("failed to insert task: %w", MapError(err))
	}

	return id, nil
}
