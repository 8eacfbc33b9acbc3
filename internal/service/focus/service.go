package focus

import (
	"context"

	"github.com/phrazzld/focus-api/internal/domain"
)

// Query describes one focus list request.
type Query struct {
	// UserID is the assignee whose open tasks are ranked.
	UserID int64
	// FocusLimit caps the number of startable tasks returned. Zero is allowed.
	FocusLimit int
	// WaitingLimit caps the number of blocked tasks returned. Zero is allowed.
	WaitingLimit int
	// Mode selects the weight profile. Empty means domain.DefaultScoreMode.
	Mode domain.ScorePriorityMode
}

// NewQuery returns a query for userID with the default limits and mode.
func NewQuery(userID int64) Query {
	return Query{
		UserID:       userID,
		FocusLimit:   domain.DefaultFocusTasksLimit,
		WaitingLimit: domain.DefaultWaitingTasksLimit,
		Mode:         domain.DefaultScoreMode,
	}
}

// Validate checks the query. It returns a *domain.ValidationError.
func (q Query) Validate() error {
	if q.UserID <= 0 {
		return domain.NewValidationError("user_id", "must be positive", domain.ErrInvalidID)
	}
	if q.FocusLimit < 0 {
		return domain.NewValidationError("focus_limit", "cannot be negative", nil)
	}
	if q.WaitingLimit < 0 {
		return domain.NewValidationError("waiting_limit", "cannot be negative", nil)
	}
	return nil
}

// Service provides the ranked focus list for a user.
type Service interface {
	// GetFocusTasks partitions the user's open tasks into startable and
	// blocked lists, each sorted by total score descending and then by task
	// ID ascending, and truncated to the query limits.
	//
	// Returns:
	//   - (*domain.FocusTaskResult, nil): the ranked snapshot; lists are never nil
	//   - (nil, *domain.ValidationError): the query is invalid
	//   - (nil, error): a data-access error, returned exactly as the repository produced it
	//
	// The method performs no writes and keeps no state between calls.
	GetFocusTasks(ctx context.Context, q Query) (*domain.FocusTaskResult, error)
}
