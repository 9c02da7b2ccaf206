package dto

import "time"

// Freshness is embedded in data responses to flag data that failed to refresh.
type Freshness struct {
	Stale     bool   `json:"stale"`
	LastError string `json:"lastError,omitempty"`
}

// IssueResponse is an inconsistency found in backend data.
type IssueResponse struct {
	OrderID     int64  `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Problem     string `json:"problem"`
}

// StatusResponse describes the synchronisation state.
type StatusResponse struct {
	Loaded      bool            `json:"loaded"`
	Sequence    uint64          `json:"sequence"`
	FetchedAt   *time.Time      `json:"fetchedAt"`
	Stale       bool            `json:"stale"`
	LastError   string          `json:"lastError,omitempty"`
	LastErrorAt *time.Time      `json:"lastErrorAt,omitempty"`
	Issues      []IssueResponse `json:"issues"`
	Updated     *bool           `json:"updated,omitempty"`
}

// WaitQuery configures the status long-poll.
type WaitQuery struct {
	Since   uint64 `form:"since"`
	Timeout int    `form:"timeout" validate:"omitempty,min=1,max=60"`
}
