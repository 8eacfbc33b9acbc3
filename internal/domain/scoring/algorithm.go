package scoring

import (
	"time"

	"github.com/phrazzld/focus-api/internal/domain"
)

// Deadline band upper bounds. Each bound is inclusive.
const (
	dueWithinDay      = 24 * time.Hour
	dueWithinTwoDays  = 48 * time.Hour
	dueWithinThreeDay = 72 * time.Hour
	dueWithinWeek     = 7 * 24 * time.Hour
	dueWithinTwoWeeks = 14 * 24 * time.Hour
)

// PriorityScore maps a task priority to its sub-score.
// An unset or unknown priority scores the same as PriorityLow.
func PriorityScore(p domain.Priority) int {
	switch p {
	case domain.PriorityCritical:
		return 4
	case domain.PriorityHigh:
		return 3
	case domain.PriorityMedium:
		return 2
	default:
		return 1
	}
}

// DeadlineScore maps the time remaining until dueAt to an urgency sub-score.
//
// Bands, with Δ = dueAt - now:
//   - Δ < 0 (overdue): 10
//   - 0 ≤ Δ ≤ 24h: 8
//   - 24h < Δ ≤ 48h: 6
//   - 48h < Δ ≤ 72h: 4
//   - 72h < Δ ≤ 7d: 3
//   - 7d < Δ ≤ 14d: 2
//   - Δ > 14d: 1
//
// The score never increases as Δ grows.
func DeadlineScore(dueAt, now time.Time) int {
	remaining := dueAt.Sub(now)

	switch {
	case remaining < 0:
		return 10
	case remaining <= dueWithinDay:
		return 8
	case remaining <= dueWithinTwoDays:
		return 6
	case remaining <= dueWithinThreeDay:
		return 4
	case remaining <= dueWithinWeek:
		return 3
	case remaining <= dueWithinTwoWeeks:
		return 2
	default:
		return 1
	}
}

// SuccessorImpactScore maps the number of live successors to a sub-score.
// Counts of three or more saturate at 10.
func SuccessorImpactScore(successorCount int) int {
	switch {
	case successorCount <= 0:
		return 0
	case successorCount == 1:
		return 3
	case successorCount == 2:
		return 6
	default:
		return 10
	}
}

// TotalScore combines a breakdown with a weight profile.
func TotalScore(b domain.ScoreBreakdown, w WeightProfile) float64 {
	return float64(b.PriorityScore)*w.Priority +
		float64(b.DeadlineScore)*w.Deadline +
		float64(b.SuccessorImpactScore)*w.SuccessorImpact
}

// Breakdown computes the three sub-scores of a task.
func Breakdown(task *domain.Task, successorCount int, now time.Time) domain.ScoreBreakdown {
	return domain.ScoreBreakdown{
		PriorityScore:        PriorityScore(task.Priority),
		DeadlineScore:        DeadlineScore(task.DueAt, now),
		SuccessorImpactScore: SuccessorImpactScore(successorCount),
	}
}
