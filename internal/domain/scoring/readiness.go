package scoring

import "github.com/phrazzld/focus-api/internal/domain"

// CanStart reports whether a task is immediately actionable: it has no
// predecessor, or its predecessor is completed.
//
// A discarded predecessor that was never completed still blocks the task.
func CanStart(task *domain.Task) bool {
	return task.Predecessor == nil || task.Predecessor.IsCompleted
}
