package domain

import (
	"strconv"
	"strings"
	"time"
)

// ScorePriorityMode selects which weight profile is used to rank tasks.
type ScorePriorityMode string

// Possible score priority modes
const (
	ScoreModeDefault         ScorePriorityMode = "default"
	ScoreModePriority        ScorePriorityMode = "priority"
	ScoreModeDeadline        ScorePriorityMode = "deadline"
	ScoreModeSuccessorImpact ScorePriorityMode = "successor_impact"
)

// Default values applied at the caller boundary.
const (
	DefaultFocusTasksLimit   = 5
	DefaultWaitingTasksLimit = 5
	DefaultScoreMode         = ScoreModeDeadline
)

// ParseScorePriorityMode converts a case-insensitive string into a mode.
// Both "successor_impact" and "successorimpact" are accepted.
func ParseScorePriorityMode(s string) (ScorePriorityMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "":
		return DefaultScoreMode, nil
	case string(ScoreModePriority):
		return ScoreModePriority, nil
	case string(ScoreModeDeadline):
		return ScoreModeDeadline, nil
	case string(ScoreModeSuccessorImpact), "successorimpact", "successor-impact":
		return ScoreModeSuccessorImpact, nil
	case string(ScoreModeDefault):
		return ScoreModeDefault, nil
	default:
		return "", NewValidationError("mode", "must be one of priority, deadline, successor_impact", ErrInvalidScoreMode)
	}
}

// ScoreBreakdown holds the sub-scores that make up a task's total score.
type ScoreBreakdown struct {
	PriorityScore        int `json:"priority_score" yaml:"priority_score"`
	DeadlineScore        int `json:"deadline_score" yaml:"deadline_score"`
	SuccessorImpactScore int `json:"successor_impact_score" yaml:"successor_impact_score"`
}

// FocusTaskInfo is a ranked candidate task in a focus result.
type FocusTaskInfo struct {
	ID              int64          `json:"id" yaml:"id"`
	Sequence        int            `json:"sequence" yaml:"sequence"`
	ItemID          int64          `json:"item_id" yaml:"item_id"`
	ItemTitle       string         `json:"item_title" yaml:"item_title"`
	WorkspaceID     int64          `json:"workspace_id" yaml:"workspace_id"`
	WorkspaceName   string         `json:"workspace_name" yaml:"workspace_name"`
	Content         string         `json:"content" yaml:"content"`
	Priority        Priority       `json:"priority,omitempty" yaml:"priority,omitempty"`
	DueAt           time.Time      `json:"due_at" yaml:"due_at"`
	EstimatedHours  float64        `json:"estimated_hours" yaml:"estimated_hours"`
	ProgressPercent int            `json:"progress_percent" yaml:"progress_percent"`
	TotalScore      float64        `json:"total_score" yaml:"total_score"`
	SuccessorCount  int            `json:"successor_count" yaml:"successor_count"`
	CanStart        bool           `json:"can_start" yaml:"can_start"`
	Predecessor     *TaskRef       `json:"predecessor,omitempty" yaml:"predecessor,omitempty"`
	Breakdown       ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
}

// PredecessorSummary renders the predecessor for display, e.g. "#3 Draft outline".
// It returns an empty string when the task has no predecessor.
func (f *FocusTaskInfo) PredecessorSummary() string {
	if f.Predecessor == nil {
		return ""
	}
	return "#" + strconv.Itoa(f.Predecessor.Sequence) + " " + f.Predecessor.Content
}

// FocusTaskResult is the ranked snapshot returned for one user.
// FocusTasks and WaitingTasks are never nil.
type FocusTaskResult struct {
	FocusTasks     []FocusTaskInfo   `json:"focus_tasks" yaml:"focus_tasks"`
	WaitingTasks   []FocusTaskInfo   `json:"waiting_tasks" yaml:"waiting_tasks"`
	TotalTaskCount int               `json:"total_task_count" yaml:"total_task_count"`
	Mode           ScorePriorityMode `json:"mode" yaml:"mode"`
	GeneratedAt    time.Time         `json:"generated_at" yaml:"generated_at"`
}

// NewEmptyFocusTaskResult returns a result with empty, non-nil task lists.
func NewEmptyFocusTaskResult(mode ScorePriorityMode, now time.Time) *FocusTaskResult {
	return &FocusTaskResult{
		FocusTasks:   []FocusTaskInfo{},
		WaitingTasks: []FocusTaskInfo{},
		Mode:         mode,
		GeneratedAt:  now,
	}
}
