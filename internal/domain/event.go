package domain

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type Event struct {
	ID            uint        `json:"id"`
	HostSchoolID  uint        `json:"host_school_id"`
	OrganizerID   uint        `json:"organizer_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Date          time.Time   `json:"date"`
	Location      string      `json:"location"`
	Capacity      int         `json:"capacity"`
	MaxSpeakers   int         `json:"max_speakers"`
	Price         float64     `json:"price"`
	Requirements  string      `json:"requirements,omitempty"`
	Status        EventStatus `json:"status"`
	IsPublic      bool        `json:"is_public"`
	AverageRating float64     `json:"average_rating"`
	TotalRatings  int         `json:"total_ratings"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type SpeakerStatus string

const (
	SpeakerPending  SpeakerStatus = "pending"
	SpeakerApproved SpeakerStatus = "approved"
	SpeakerRejected SpeakerStatus = "rejected"
)

// EventSpeaker is a speaker slot on an event. Slots live in their own table
// referencing the event by ID so the max-speakers ceiling can be enforced
// with a count query in the same transaction as the insert.
type EventSpeaker struct {
	ID        uint          `json:"id"`
	EventID   uint          `json:"event_id"`
	UserID    uint          `json:"user_id"`
	Topic     string        `json:"topic"`
	Duration  int           `json:"duration"` // minutes
	Status    SpeakerStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type EventRegistration struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
