// Package scoring implements the pure task-ranking rules: priority, deadline
// urgency and successor impact sub-scores, the per-mode weight profiles that
// combine them, and the readiness predicate that decides whether a task can
// be started now.
//
// Nothing in this package performs I/O. Every function is deterministic given
// its inputs, and the current time is always passed in explicitly.
package scoring
