package scoring

import "github.com/phrazzld/focus-api/internal/domain"

// WeightProfile holds the multipliers applied to each sub-score.
type WeightProfile struct {
	Priority        float64 `json:"priority"`
	Deadline        float64 `json:"deadline"`
	SuccessorImpact float64 `json:"successor_impact"`
}

// defaultWeights applies to ScoreModeDefault and to any unrecognised mode.
var defaultWeights = WeightProfile{Priority: 2, Deadline: 3, SuccessorImpact: 5}

// weightTable maps every known mode to its profile. It is never mutated;
// Weights returns copies.
var weightTable = map[domain.ScorePriorityMode]WeightProfile{
	domain.ScoreModePriority:        {Priority: 4, Deadline: 3, SuccessorImpact: 5},
	domain.ScoreModeDeadline:        {Priority: 2, Deadline: 5, SuccessorImpact: 5},
	domain.ScoreModeSuccessorImpact: {Priority: 2, Deadline: 3, SuccessorImpact: 7},
	domain.ScoreModeDefault:         defaultWeights,
}

// Weights returns the weight profile for the given mode.
func Weights(mode domain.ScorePriorityMode) WeightProfile {
	if w, ok := weightTable[mode]; ok {
		return w
	}
	return defaultWeights
}
