package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/focus-api/internal/config"
	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/service/focus"
)

type mockFocusService struct {
	mock.Mock
}

func (m *mockFocusService) GetFocusTasks(ctx context.Context, q focus.Query) (*domain.FocusTaskResult, error) {
	args := m.Called(ctx, q)
	result, _ := args.Get(0).(*domain.FocusTaskResult)
	return result, args.Error(1)
}

var defaults = config.FocusConfig{
	DefaultFocusLimit:   5,
	DefaultWaitingLimit: 5,
	MaxLimit:            20,
	DefaultMode:         "deadline",
}

func callTool(t *testing.T, svc focus.Service, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()

	log, _ := logger.NewTestLogger()
	s := NewServer(svc, defaults, log, "test")

	tool := s.GetTool(ToolGetFocusTasks)
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{}
	req.Params.Name = ToolGetFocusTasks
	req.Params.Arguments = args

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	return result
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestGetFocusTasks_ReturnsJSON(t *testing.T) {
	svc := new(mockFocusService)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	want := domain.NewEmptyFocusTaskResult(domain.ScoreModeSuccessorImpact, now)
	want.FocusTasks = []domain.FocusTaskInfo{{ID: 11, Content: "Unblock team", TotalScore: 78, CanStart: true}}
	want.TotalTaskCount = 3

	svc.On("GetFocusTasks", mock.Anything, focus.Query{
		UserID: 4, FocusLimit: 2, WaitingLimit: 5, Mode: domain.ScoreModeSuccessorImpact,
	}).Return(want, nil).Once()

	result := callTool(t, svc, map[string]interface{}{
		"user_id":     float64(4),
		"focus_limit": float64(2),
		"mode":        "successor_impact",
	})
	require.False(t, result.IsError, textOf(t, result))

	var got domain.FocusTaskResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &got))
	assert.Equal(t, 3, got.TotalTaskCount)
	require.Len(t, got.FocusTasks, 1)
	assert.Equal(t, int64(11), got.FocusTasks[0].ID)
	assert.Empty(t, got.WaitingTasks)
	svc.AssertExpectations(t)
}

func TestGetFocusTasks_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		svcErr  error
		wantMsg string
	}{
		{
			name:    "missing user",
			args:    map[string]interface{}{},
			wantMsg: "user_id is required",
		},
		{
			name:    "unknown mode",
			args:    map[string]interface{}{"user_id": float64(1), "mode": "random"},
			wantMsg: "mode",
		},
		{
			name:    "limit above maximum",
			args:    map[string]interface{}{"user_id": float64(1), "waiting_limit": float64(21)},
			wantMsg: "limits cannot exceed 20",
		},
		{
			name:    "validation error from service",
			args:    map[string]interface{}{"user_id": float64(1), "focus_limit": float64(-1)},
			svcErr:  domain.NewValidationError("focus_limit", "cannot be negative", nil),
			wantMsg: "focus_limit cannot be negative",
		},
		{
			name:    "store failure is not leaked",
			args:    map[string]interface{}{"user_id": float64(1)},
			svcErr:  errors.New("pq: connection refused to 10.1.2.3"),
			wantMsg: "failed to compute focus list",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockFocusService)
			if tc.svcErr != nil {
				svc.On("GetFocusTasks", mock.Anything, mock.Anything).Return(nil, tc.svcErr).Once()
			}

			result := callTool(t, svc, tc.args)
			assert.True(t, result.IsError)
			assert.Contains(t, textOf(t, result), tc.wantMsg)
			assert.NotContains(t, textOf(t, result), "10.1.2.3")
			svc.AssertExpectations(t)
		})
	}
}

func TestNewServer_PanicsOnNilService(t *testing.T) {
	assert.Panics(t, func() { NewServer(nil, defaults, nil, "test") })
}
