package scoring

import (
	"time"

	"github.com/phrazzld/focus-api/internal/domain"
)

// Evaluation is the outcome of scoring and classifying one task.
type Evaluation struct {
	Breakdown  domain.ScoreBreakdown
	TotalScore float64
	CanStart   bool
}

// Service defines the scoring operations used by the focus list provider.
type Service interface {
	// Evaluate scores a task under the given mode and decides its readiness.
	Evaluate(
		task *domain.Task,
		successorCount int,
		mode domain.ScorePriorityMode,
		now time.Time,
	) Evaluation
}

// defaultService is the standard implementation of the Service interface
type defaultService struct{}

// NewDefaultService creates a scoring service using the built-in weight table.
func NewDefaultService() Service {
	return &defaultService{}
}

// Evaluate implements Service.
func (s *defaultService) Evaluate(
	task *domain.Task,
	successorCount int,
	mode domain.ScorePriorityMode,
	now time.Time,
) Evaluation {
	breakdown := Breakdown(task, successorCount, now)
	return Evaluation{
		Breakdown:  breakdown,
		TotalScore: TotalScore(breakdown, Weights(mode)),
		CanStart:   CanStart(task),
	}
}
