package domain

import "time"

type Feedback struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedbackStats is the per-event rating rollup returned by the stats endpoint.
type FeedbackStats struct {
	EventID       uint        `json:"event_id"`
	AverageRating float64     `json:"average_rating"`
	TotalRatings  int         `json:"total_ratings"`
	Histogram     map[int]int `json:"histogram"` // rating value -> count
}
