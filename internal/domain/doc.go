// Package domain contains the core business entities, value objects, and
// domain errors of the focus engine: tasks with their optional predecessor,
// the score priority modes, and the read-only focus result returned to callers.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
