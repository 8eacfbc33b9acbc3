package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/focus-api/internal/api/shared"
	"github.com/phrazzld/focus-api/internal/config"
	"github.com/phrazzld/focus-api/internal/domain"
	"github.com/phrazzld/focus-api/internal/platform/logger"
	"github.com/phrazzld/focus-api/internal/service/focus"
)

// FocusHandler serves the ranked focus list of the authenticated user.
type FocusHandler struct {
	focusService focus.Service
	defaults     config.FocusConfig
	logger       *slog.Logger
}

// NewFocusHandler creates a new FocusHandler. defaults supplies the limits
// and mode used when the client omits them, and the maximum accepted limit.
func NewFocusHandler(
	focusService focus.Service,
	defaults config.FocusConfig,
	logger *slog.Logger,
) *FocusHandler {
	if focusService == nil {
		panic("focusService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FocusHandler{
		focusService: focusService,
		defaults:     defaults,
		logger:       logger.With(slog.String("component", "focus_handler")),
	}
}

// GetFocusTasks handles GET /api/focus.
//
// Query parameters: focus_limit, waiting_limit (non-negative integers) and
// mode (priority, deadline, successor_impact). The response body is a
// domain.FocusTaskResult.
func (h *FocusHandler) GetFocusTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		log.Warn("focus request without authenticated user")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	req, err := h.parseRequest(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	mode, err := domain.ParseScorePriorityMode(req.Mode)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	result, err := h.focusService.GetFocusTasks(r.Context(), focus.Query{
		UserID:       userID,
		FocusLimit:   req.FocusLimit,
		WaitingLimit: req.WaitingLimit,
		Mode:         mode,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("served focus list",
		slog.Int("focus_count", len(result.FocusTasks)),
		slog.Int("waiting_count", len(result.WaitingTasks)),
		slog.Int("total", result.TotalTaskCount))

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// parseRequest reads the query string and applies the configured defaults.
func (h *FocusHandler) parseRequest(r *http.Request) (FocusRequest, error) {
	req := FocusRequest{MaxLimit: h.defaults.MaxLimit}

	var err error
	if req.FocusLimit, err = shared.QueryInt(r, "focus_limit", h.defaults.DefaultFocusLimit); err != nil {
		return req, errInvalidInteger("focus_limit")
	}
	if req.WaitingLimit, err = shared.QueryInt(r, "waiting_limit", h.defaults.DefaultWaitingLimit); err != nil {
		return req, errInvalidInteger("waiting_limit")
	}

	req.Mode = strings.ToLower(strings.TrimSpace(r.URL.Query().Get("mode")))
	if req.Mode == "" {
		req.Mode = h.defaults.DefaultMode
	}

	return req, nil
}

func errInvalidInteger(param string) error {
	return domain.NewValidationError(param, "must be an integer", nil)
}
