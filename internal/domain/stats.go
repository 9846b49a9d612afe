package domain

// DashboardStats is the admin dashboard rollup, recomputed on every call.
type DashboardStats struct {
	TotalUsers             int64 `json:"total_users"`
	TotalSchools           int64 `json:"total_schools"`
	TotalEvents            int64 `json:"total_events"`
	UpcomingEvents         int64 `json:"upcoming_events"`
	PendingEventRequests   int64 `json:"pending_event_requests"`
	PendingSpeakerRequests int64 `json:"pending_speaker_requests"`
}

// RequestBreakdown groups event and speaker requests by status.
type RequestBreakdown struct {
	EventRequests   map[RequestStatus]int64 `json:"event_requests"`
	SpeakerRequests map[RequestStatus]int64 `json:"speaker_requests"`
}

// SchoolRank is one row of the top-N schools rollup.
type SchoolRank struct {
	SchoolID   uint   `json:"school_id"`
	SchoolName string `json:"school_name"`
	EventCount int64  `json:"event_count"`
}
