package domain

import (
	"strings"
	"time"
)

// Priority is the user-assigned importance of a task.
// The zero value means the task has no priority set.
type Priority string

// Possible priority values
const (
	PriorityUnset    Priority = ""
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// IsValid reports whether p is one of the known priorities or unset.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityUnset, PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority converts a case-insensitive string into a Priority.
// An empty string yields PriorityUnset.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return PriorityUnset, NewValidationError("priority", "must be one of critical, high, medium, low", ErrInvalidPriority)
	}
	return p, nil
}

// TaskRef is a short summary of another task, used to describe a predecessor.
type TaskRef struct {
	ID          int64  `json:"id" yaml:"id"`
	Sequence    int    `json:"sequence" yaml:"sequence"`
	Content     string `json:"content" yaml:"content"`
	IsCompleted bool   `json:"is_completed" yaml:"is_completed"`
	IsDiscarded bool   `json:"is_discarded" yaml:"is_discarded"`
}

// Task is a unit of work assigned to a user inside an item of a workspace.
// A task declares at most one predecessor, so the dependency structure is a
// forest of chains.
type Task struct {
	ID              int64     `json:"id"`
	Sequence        int       `json:"sequence"`
	ItemID          int64     `json:"item_id"`
	ItemTitle       string    `json:"item_title"`
	WorkspaceID     int64     `json:"workspace_id"`
	WorkspaceName   string    `json:"workspace_name"`
	Content         string    `json:"content"`
	Priority        Priority  `json:"priority,omitempty"`
	DueAt           time.Time `json:"due_at"`
	EstimatedHours  float64   `json:"estimated_hours"`
	ProgressPercent int       `json:"progress_percent"`
	Predecessor     *TaskRef  `json:"predecessor,omitempty"`
	IsCompleted     bool      `json:"is_completed"`
	IsDiscarded     bool      `json:"is_discarded"`
	AssigneeID      int64     `json:"assignee_id"`
}

// IsOpen reports whether the task is neither completed nor discarded.
func (t *Task) IsOpen() bool {
	return !t.IsCompleted && !t.IsDiscarded
}

// Validate checks the invariants a stored task must satisfy.
func (t *Task) Validate() error {
	if t.ID <= 0 {
		return NewValidationError("id", "must be positive", ErrInvalidID)
	}
	if !t.Priority.IsValid() {
		return NewValidationError("priority", "is not a known priority", ErrInvalidPriority)
	}
	if t.ProgressPercent < 0 || t.ProgressPercent > 100 {
		return NewValidationError("progress_percent", "must be between 0 and 100", nil)
	}
	if t.EstimatedHours < 0 {
		return NewValidationError("estimated_hours", "cannot be negative", nil)
	}
	if t.Predecessor != nil && t.Predecessor.ID == t.ID {
		return NewValidationError("predecessor", "cannot reference the task itself", nil)
	}
	return nil
}
