// Package mcp exposes the focus list as a Model Context Protocol tool so that
// assistants can ask which of a user's tasks to work on next.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/phrazzld/focus-api/internal/config"
	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/redact"
	"github.com/phrazzld/focus-api/internal/service/focus"
)

// ToolGetFocusTasks is the name of the focus list tool.
const ToolGetFocusTasks = "get_focus_tasks"

// NewServer creates an MCP server with the focus tools registered.
func NewServer(focusService focus.Service, defaults config.FocusConfig, log *slog.Logger, version string) *server.MCPServer {
	if focusService == nil {
		panic("focusService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := server.NewMCPServer("focus", version)

	s.AddTool(mcp.NewTool(ToolGetFocusTasks,
		mcp.WithDescription("Rank a user's open tasks. Returns the tasks that can be started now "+
			"(focus_tasks) and the tasks blocked by an unfinished predecessor (waiting_tasks), "+
			"each ordered by total score."),
		mcp.WithNumber("user_id", mcp.Description("Numeric id of the assignee"), mcp.Required()),
		mcp.WithNumber("focus_limit", mcp.Description("Maximum number of ready tasks to return")),
		mcp.WithNumber("waiting_limit", mcp.Description("Maximum number of blocked tasks to return")),
		mcp.WithString("mode", mcp.Description("Weighting profile: priority, deadline or successor_impact")),
	), getFocusTasksHandler(focusService, defaults, log.With(slog.String("component", "mcp_server"))))

	return s
}

// Serve starts the MCP server on stdio.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func getFocusTasksHandler(svc focus.Service, defaults config.FocusConfig, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID := mcp.ParseInt64(request, "user_id", 0)
		if userID <= 0 {
			return mcp.NewToolResultError("user_id is required and must be a positive integer"), nil
		}

		modeName := mcp.ParseString(request, "mode", defaults.DefaultMode)
		mode, err := domain.ParseScorePriorityMode(modeName)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		q := focus.Query{
			UserID:       userID,
			FocusLimit:   mcp.ParseInt(request, "focus_limit", defaults.DefaultFocusLimit),
			WaitingLimit: mcp.ParseInt(request, "waiting_limit", defaults.DefaultWaitingLimit),
			Mode:         mode,
		}
		if defaults.MaxLimit > 0 && (q.FocusLimit > defaults.MaxLimit || q.WaitingLimit > defaults.MaxLimit) {
			return mcp.NewToolResultError("limits cannot exceed " + strconv.Itoa(defaults.MaxLimit)), nil
		}

		result, err := svc.GetFocusTasks(ctx, q)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			logger.FromContextOrDefault(ctx, log).Error("focus tool failed",
				slog.Int64("user_id", userID),
				slog.String("error", redact.Error(err)))
			return mcp.NewToolResultError("failed to compute focus list"), nil
		}

		data, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
