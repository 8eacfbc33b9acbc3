package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/service/auth"
)

var fixedNow = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

const seedYAML = `
workspaces:
  - name: Studio
    items:
      - title: Album
        tasks:
          - key: mix
            content: Mix tracks
            priority: critical
            due_in: -1d
            assignee: 7
          - key: master
            content: Master tracks
            after: mix
            due_in: 3d
            assignee: 7
          - content: Press vinyl
            after: master
            due_in: 20d
            assignee: 8
`

func clock() time.Time { return fixedNow }

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FOCUS_CONFIG_FILE", "")
	t.Setenv("FOCUS_DATABASE_URL", "")
	t.Setenv("FOCUS_DATABASE_DRIVER", "")
	t.Setenv("FOCUS_AUTH_JWT_SECRET", "")
}

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))
	return path
}

func TestRun_SeedAndRankJSON(t *testing.T) {
	isolateEnv(t)
	dbPath := filepath.Join(t.TempDir(), "focus.db")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-driver", "sqlite", "-db", dbPath, "-migrate",
		"-seed", writeSeed(t), "-user", "7", "-o", "json",
	}, &stdout, &stderr, clock)
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stderr.String(), "seeded 1 workspaces, 1 items, 3 tasks")

	var result domain.FocusTaskResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, 2, result.TotalTaskCount)
	require.Len(t, result.FocusTasks, 1)
	assert.Equal(t, "Mix tracks", result.FocusTasks[0].Content)
	require.Len(t, result.WaitingTasks, 1)
	assert.Equal(t, "Master tracks", result.WaitingTasks[0].Content)
	// The successor assigned to user 8 still counts.
	assert.Equal(t, 1, result.WaitingTasks[0].SuccessorCount)
}

func TestRun_TableAgainstExistingDatabase(t *testing.T) {
	isolateEnv(t)
	dbPath := filepath.Join(t.TempDir(), "focus.db")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{
		"-driver", "sqlite", "-db", dbPath, "-migrate", "-seed", writeSeed(t),
	}, &stdout, &stderr, clock))
	assert.Empty(t, stdout.String())

	stdout.Reset()
	require.NoError(t, run(context.Background(), []string{
		"-driver", "sqlite", "-db", dbPath, "-user", "7", "-mode", "priority", "-focus-limit", "0",
	}, &stdout, &stderr, clock))

	out := stdout.String()
	assert.Contains(t, out, "mode priority")
	assert.Contains(t, out, "Nothing ready to start")
	assert.Contains(t, out, "Master tracks")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"missing user", []string{"-driver", "sqlite", "-db", ":memory:"}, "-user is required"},
		{"bad format", []string{"-o", "xml"}, "unknown output format"},
		{"bad mode", []string{"-driver", "sqlite", "-db", ":memory:", "-migrate", "-user", "1", "-mode", "fast"}, "mode"},
		{"stray argument", []string{"extra"}, "unexpected arguments"},
		{"token without user", []string{"-driver", "sqlite", "-db", ":memory:", "-print-token"}, "positive -user"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolateEnv(t)
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tc.args, &stdout, &stderr, clock)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestRun_PrintToken(t *testing.T) {
	isolateEnv(t)
	secret := "focusctl-test-secret-with-32-chars-or-more"
	t.Setenv("FOCUS_AUTH_JWT_SECRET", secret)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{
		"-driver", "sqlite", "-db", ":memory:", "-print-token", "-user", "42",
	}, &stdout, &stderr, clock))

	token := strings.TrimSpace(stdout.String())
	require.NotEmpty(t, token)

	svc := auth.NewTestJWTService(secret, "", time.Hour, time.Now)
	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}
