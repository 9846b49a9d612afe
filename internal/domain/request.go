package domain

import "time"

type RequestStatus string

const (
	RequestPending       RequestStatus = "pending"
	RequestApproved      RequestStatus = "approved"
	RequestRejected      RequestStatus = "rejected"
	RequestNeedsRevision RequestStatus = "needs_revision"
	RequestWaitlisted    RequestStatus = "waitlisted"
)

// Final reports whether no further edit or review is permitted. Note that
// waitlisted is not final: a waitlisted speaker request stays reviewable.
func (s RequestStatus) Final() bool {
	return s == RequestApproved || s == RequestRejected
}

// EventRequest is a school's proposal for a new event. Approval materializes
// an Event and links it back via ApprovedEventID, which is set exactly once.
type EventRequest struct {
	ID               uint          `json:"id"`
	SchoolID         uint          `json:"school_id"`
	RequestedBy      uint          `json:"requested_by"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	ProposedDate     time.Time     `json:"proposed_date"`
	Location         string        `json:"location"`
	ExpectedCapacity int           `json:"expected_capacity"`
	MaxSpeakers      int           `json:"max_speakers"`
	Price            float64       `json:"price"`
	Requirements     string        `json:"requirements,omitempty"`
	Justification    string        `json:"justification,omitempty"`
	Status           RequestStatus `json:"status"`
	ReviewedBy       *uint         `json:"reviewed_by,omitempty"`
	ReviewNote       string        `json:"review_note,omitempty"`
	ApprovedEventID  *uint         `json:"approved_event_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// SpeakerRequest is a speaker's application to present at a published event,
// unique per (event, speaker) pair.
type SpeakerRequest struct {
	ID         uint          `json:"id"`
	EventID    uint          `json:"event_id"`
	SpeakerID  uint          `json:"speaker_id"`
	Topic      string        `json:"topic"`
	Duration   int           `json:"duration"` // minutes
	Abstract   string        `json:"abstract,omitempty"`
	Status     RequestStatus `json:"status"`
	ReviewedBy *uint         `json:"reviewed_by,omitempty"`
	ReviewNote string        `json:"review_note,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
