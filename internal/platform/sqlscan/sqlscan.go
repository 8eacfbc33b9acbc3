// Package sqlscan holds the SQL fragments and row scanning shared by the
// database/sql task stores. Only placeholders differ between backends, so
// each store appends its own WHERE clause to the shared select.
package sqlscan

import (
	"database/sql"
	"fmt"

	"github.com/phrazzld/focus-api/internal/domain"
)

// OpenTaskSelect selects a task joined with its item, workspace and
// predecessor. Callers append a WHERE clause filtering t.*.
const OpenTaskSelect = `
	SELECT t.id, t.sequence, t.item_id, i.title, i.workspace_id, w.name,
	       t.content, t.priority, t.due_at, t.estimated_hours, t.progress_percent,
	       t.is_completed, t.is_discarded, t.assignee_id,
	       p.id, p.sequence, p.content, p.is_completed, p.is_discarded
	FROM tasks t
	JOIN items i ON i.id = t.item_id
	JOIN workspaces w ON w.id = i.workspace_id
	LEFT JOIN tasks p ON p.id = t.predecessor_id
`

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanTask reads one row produced by OpenTaskSelect.
func ScanTask(s Scanner) (*domain.Task, error) {
	var (
		task     domain.Task
		priority sql.NullString
		predID   sql.NullInt64
		predSeq  sql.NullInt64
		predText sql.NullString
		predDone sql.NullBool
		predGone sql.NullBool
	)

	err := s.Scan(
		&task.ID,
		&task.Sequence,
		&task.ItemID,
		&task.ItemTitle,
		&task.WorkspaceID,
		&task.WorkspaceName,
		&task.Content,
		&priority,
		&task.DueAt,
		&task.EstimatedHours,
		&task.ProgressPercent,
		&task.IsCompleted,
		&task.IsDiscarded,
		&task.AssigneeID,
		&predID,
		&predSeq,
		&predText,
		&predDone,
		&predGone,
	)
	if err != nil {
		return nil, err
	}

	if priority.Valid {
		p, err := domain.ParsePriority(priority.String)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", task.ID, err)
		}
		task.Priority = p
	}

	if predID.Valid {
		task.Predecessor = &domain.TaskRef{
			ID:          predID.Int64,
			Sequence:    int(predSeq.Int64),
			Content:     predText.String,
			IsCompleted: predDone.Bool,
			IsDiscarded: predGone.Bool,
		}
	}

	return &task, nil
}

// ScanTasks drains rows produced by OpenTaskSelect. It never returns a nil slice
// on success.
func ScanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// ScanCounts drains (predecessor_id, count) rows into dst.
func ScanCounts(rows *sql.Rows, dst map[int64]int) error {
	for rows.Next() {
		var (
			id    int64
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return fmt.Errorf("failed to scan successor count row: %w", err)
		}
		dst[id] = count
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating successor count rows: %w", err)
	}
	return nil
}

// PriorityArg converts a priority into a nullable column value.
func PriorityArg(p domain.Priority) any {
	if p == domain.PriorityUnset {
		return nil
	}
	return string(p)
}

// NullableID converts an optional id into a nullable column value.
func NullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
