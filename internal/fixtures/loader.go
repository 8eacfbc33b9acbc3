package fixtures

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/store"
)

// Summary reports what Load inserted.
type Summary struct {
	Workspaces int
	Items      int
	Tasks      int
	// IDs maps each task key to the id it was stored under.
	IDs map[string]int64
}

// Loader inserts fixture documents through a store.TaskWriter.
type Loader struct {
	db     *sql.DB
	writer store.TaskWriter
	now    func() time.Time
	logger *slog.Logger
}

// NewLoader creates a Loader. Relative due dates are resolved against now;
// a nil now means time.Now.
func NewLoader(db *sql.DB, writer store.TaskWriter, now func() time.Time, logger *slog.Logger) *Loader {
	if db == nil {
		panic("db cannot be nil")
	}
	if writer == nil {
		panic("writer cannot be nil")
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		db:     db,
		writer: writer,
		now:    now,
		logger: logger.With(slog.String("component", "fixture_loader")),
	}
}

// pendingTask is a task whose item id is known but which may still wait for
// its predecessor to be inserted.
type pendingTask struct {
	itemID   int64
	sequence int
	task     Task
}

// Load validates doc and inserts it in a single transaction. Tasks are
// inserted after their predecessors regardless of document order.
func (l *Loader) Load(ctx context.Context, doc *Document) (*Summary, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromContextOrDefault(ctx, l.logger)
	now := l.now()
	summary := &Summary{IDs: make(map[string]int64)}

	err := store.RunInTransaction(ctx, l.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		w := l.writer.WithTxTaskWriter(tx)

		var pending []pendingTask
		for _, ws := range doc.Workspaces {
			wsID, err := w.CreateWorkspace(ctx, store.NewWorkspace{Name: ws.Name})
			if err != nil {
				return fmt.Errorf("failed to create workspace %q: %w", ws.Name, err)
			}
			summary.Workspaces++

			for _, item := range ws.Items {
				itemID, err := w.CreateItem(ctx, store.NewItem{WorkspaceID: wsID, Title: item.Title})
				if err != nil {
					return fmt.Errorf("failed to create item %q: %w", item.Title, err)
				}
				summary.Items++

				for i, task := range item.Tasks {
					seq := task.Sequence
					if seq == 0 {
						seq = i + 1
					}
					pending = append(pending, pendingTask{itemID: itemID, sequence: seq, task: task})
				}
			}
		}

		for len(pending) > 0 {
			var deferred []pendingTask
			for _, p := range pending {
				var predecessorID *int64
				if p.task.After != "" {
					id, ok := summary.IDs[p.task.After]
					if !ok {
						deferred = append(deferred, p)
						continue
					}
					predecessorID = &id
				}

				nt, err := newTask(p, predecessorID, now)
				if err != nil {
					return err
				}
				id, err := w.CreateTask(ctx, nt)
				if err != nil {
					return fmt.Errorf("failed to create task %q: %w", p.task.Content, err)
				}
				summary.Tasks++
				if p.task.Key != "" {
					summary.IDs[p.task.Key] = id
				}
			}

			if len(deferred) == len(pending) {
				return fmt.Errorf("%w: unresolvable predecessors", ErrInvalidDocument)
			}
			pending = deferred
		}
		return nil
	})
	if err != nil {
		log.Error("failed to load fixtures", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("fixtures loaded",
		slog.Int("workspaces", summary.Workspaces),
		slog.Int("items", summary.Items),
		slog.Int("tasks", summary.Tasks))
	return summary, nil
}

func newTask(p pendingTask, predecessorID *int64, now time.Time) (store.NewTask, error) {
	priority, err := domain.ParsePriority(p.task.Priority)
	if err != nil {
		return store.NewTask{}, fmt.Errorf("%w: task %q: %v", ErrInvalidDocument, p.task.Content, err)
	}
	dueAt, err := p.task.dueAt(now)
	if err != nil {
		return store.NewTask{}, fmt.Errorf("%w: task %q: %v", ErrInvalidDocument, p.task.Content, err)
	}
	return store.NewTask{
		ItemID:          p.itemID,
		Sequence:        p.sequence,
		Content:         p.task.Content,
		Priority:        priority,
		DueAt:           dueAt,
		EstimatedHours:  p.task.EstimatedHours,
		ProgressPercent: p.task.ProgressPercent,
		PredecessorID:   predecessorID,
		IsCompleted:     p.task.Completed,
		IsDiscarded:     p.task.Discarded,
		AssigneeID:      p.task.Assignee,
	}, nil
}
