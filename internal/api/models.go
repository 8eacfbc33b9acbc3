package api

// FocusRequest holds the query parameters of GET /api/focus after defaults
// have been applied. MaxLimit is server configuration, not client input.
type FocusRequest struct {
	FocusLimit   int    `query:"focus_limit" validate:"gte=0,ltefield=MaxLimit"`
	WaitingLimit int    `query:"waiting_limit" validate:"gte=0,ltefield=MaxLimit"`
	Mode         string `query:"mode" validate:"omitempty,oneof=priority deadline successor_impact successorimpact successor-impact default"`
	MaxLimit     int    `query:"-"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
