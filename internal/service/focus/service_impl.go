package focus

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"
	"time"

	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/domain/scoring"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*focusServiceImpl)(nil)

// Option configures the focus service.
type Option func(*focusServiceImpl)

// WithClock replaces time.Now as the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(s *focusServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithConsistentSnapshot makes both reads run inside one read-only
// transaction started with opts, so the successor counts are taken from the
// same snapshot as the candidate list. The repository must expose a DB.
func WithConsistentSnapshot(opts *sql.TxOptions) Option {
	return func(s *focusServiceImpl) {
		s.snapshot = true
		s.txOpts = opts
	}
}

// focusServiceImpl implements the Service interface.
type focusServiceImpl struct {
	repo     TaskRepository
	scorer   scoring.Service
	logger   *slog.Logger
	now      func() time.Time
	snapshot bool
	txOpts   *sql.TxOptions
}

// NewFocusService creates a new focus list provider.
func NewFocusService(
	repo TaskRepository,
	scorer scoring.Service,
	logger *slog.Logger,
	opts ...Option,
) Service {
	if repo == nil {
		panic("repo cannot be nil")
	}
	if scorer == nil {
		panic("scorer cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &focusServiceImpl{
		repo:   repo,
		scorer: scorer,
		logger: logger.With(slog.String("component", "focus_service")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.snapshot && repo.DB() == nil {
		panic("consistent snapshot requires a repository with a DB")
	}
	return s
}

// GetFocusTasks implements Service.GetFocusTasks.
func (s *focusServiceImpl) GetFocusTasks(
	ctx context.Context,
	q Query,
) (*domain.FocusTaskResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.Int64("user_id", q.UserID))

	if err := q.Validate(); err != nil {
		log.Warn("invalid focus query", slog.String("error", err.Error()))
		return nil, err
	}

	mode := q.Mode
	if mode == "" {
		mode = domain.DefaultScoreMode
	}
	now := s.now()

	var (
		candidates []*domain.Task
		counts     map[int64]int
	)
	read := func(ctx context.Context, repo TaskRepository) error {
		var err error
		candidates, counts, err = s.fetch(ctx, log, repo, q.UserID)
		return err
	}

	var err error
	if s.snapshot {
		err = store.RunInTransaction(ctx, s.repo.DB(), s.txOpts,
			func(ctx context.Context, tx *sql.Tx) error {
				return read(ctx, s.repo.WithTx(tx))
			})
	} else {
		err = read(ctx, s.repo)
	}
	if err != nil {
		return nil, err
	}

	result := domain.NewEmptyFocusTaskResult(mode, now)
	result.TotalTaskCount = len(candidates)
	if len(candidates) == 0 {
		log.Debug("no open tasks")
		return result, nil
	}

	for _, task := range candidates {
		count := counts[task.ID]
		eval := s.scorer.Evaluate(task, count, mode, now)
		info := newFocusTaskInfo(task, count, eval)
		if eval.CanStart {
			result.FocusTasks = append(result.FocusTasks, info)
		} else {
			result.WaitingTasks = append(result.WaitingTasks, info)
		}
	}

	rank(result.FocusTasks)
	rank(result.WaitingTasks)

	startable, blocked := len(result.FocusTasks), len(result.WaitingTasks)
	result.FocusTasks = truncate(result.FocusTasks, q.FocusLimit)
	result.WaitingTasks = truncate(result.WaitingTasks, q.WaitingLimit)

	log.Debug("computed focus list",
		slog.String("mode", string(mode)),
		slog.Int("total", result.TotalTaskCount),
		slog.Int("startable", startable),
		slog.Int("blocked", blocked))
	return result, nil
}

// fetch reads the candidates and, when there are any, their successor counts.
// Repository errors are returned unchanged.
func (s *focusServiceImpl) fetch(
	ctx context.Context,
	log *slog.Logger,
	repo TaskRepository,
	userID int64,
) ([]*domain.Task, map[int64]int, error) {
	tasks, err := repo.FetchOpenTasksForUser(ctx, userID)
	if err != nil {
		log.Error("failed to fetch open tasks", slog.String("error", err.Error()))
		return nil, nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil, nil
	}

	ids := make([]int64, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}

	counts, err := repo.FetchSuccessorCounts(ctx, ids)
	if err != nil {
		log.Error("failed to fetch successor counts",
			slog.Int("task_count", len(ids)),
			slog.String("error", err.Error()))
		return nil, nil, err
	}
	return tasks, counts, nil
}

func newFocusTaskInfo(task *domain.Task, successorCount int, eval scoring.Evaluation) domain.FocusTaskInfo {
	if successorCount < 0 {
		successorCount = 0
	}

	var pred *domain.TaskRef
	if task.Predecessor != nil {
		ref := *task.Predecessor
		pred = &ref
	}

	return domain.FocusTaskInfo{
		ID:              task.ID,
		Sequence:        task.Sequence,
		ItemID:          task.ItemID,
		ItemTitle:       task.ItemTitle,
		WorkspaceID:     task.WorkspaceID,
		WorkspaceName:   task.WorkspaceName,
		Content:         task.Content,
		Priority:        task.Priority,
		DueAt:           task.DueAt,
		EstimatedHours:  task.EstimatedHours,
		ProgressPercent: task.ProgressPercent,
		TotalScore:      eval.TotalScore,
		SuccessorCount:  successorCount,
		CanStart:        eval.CanStart,
		Predecessor:     pred,
		Breakdown:       eval.Breakdown,
	}
}

// rank orders by total score descending, then by ID ascending.
func rank(tasks []domain.FocusTaskInfo) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].TotalScore != tasks[j].TotalScore {
			return tasks[i].TotalScore > tasks[j].TotalScore
		}
		return tasks[i].ID < tasks[j].ID
	})
}

func truncate(tasks []domain.FocusTaskInfo, limit int) []domain.FocusTaskInfo {
	if len(tasks) > limit {
		return tasks[:limit]
	}
	return tasks
}
