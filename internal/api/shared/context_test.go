package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	withTrace := SetTraceID(ctx)
	traceID := GetTraceID(withTrace)
	assert.True(t, IsValidTraceID(traceID), "generated trace id %q should be a UUID", traceID)
	assert.Empty(t, GetTraceID(ctx), "original context must be unchanged")
}

func TestGetTraceIDWithInvalidType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestNewTraceIDUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool, 500)
	for i := 0; i < 500; i++ {
		id := NewTraceID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsValidTraceID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidTraceID("5f1c2a9e-3b7d-4c8f-9a61-0d2e4b6c8a10"))
	assert.False(t, IsValidTraceID(""))
	assert.False(t, IsValidTraceID("not-a-uuid"))
	assert.False(t, IsValidTraceID("5f1c2a9e3b7d4c8f9a610d2e4b6c8a10"))
	assert.False(t, IsValidTraceID("{5f1c2a9e-3b7d-4c8f-9a61-0d2e4b6c8a10}"))
}

func TestUserIDContext(t *testing.T) {
	t.Parallel()

	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	id, ok := GetUserID(WithUserID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = GetUserID(WithUserID(context.Background(), 0))
	assert.False(t, ok)

	_, ok = GetUserID(context.WithValue(context.Background(), UserIDContextKey, "42"))
	assert.False(t, ok)
}
