package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Date         string  `json:"date"` // DD/MM/YYYY
	Location     string  `json:"location"`
	Capacity     int     `json:"capacity"`
	MaxSpeakers  int     `json:"max_speakers"`
	Price        float64 `json:"price"`
	Requirements string  `json:"requirements"`
	IsPublic     *bool   `json:"is_public"`
	SchoolID     uint    `json:"school_id,omitempty"` // super admins only
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date("02/01/2006")),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.MaxSpeakers, validation.Min(0)),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

type UpdateEventRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	Location     string  `json:"location"`
	Capacity     int     `json:"capacity"`
	MaxSpeakers  int     `json:"max_speakers"`
	Price        float64 `json:"price"`
	Requirements string  `json:"requirements"`
	Status       string  `json:"status"`
	IsPublic     *bool   `json:"is_public"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date("02/01/2006")),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.MaxSpeakers, validation.Min(0)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Status, validation.In("draft", "published", "cancelled", "completed")),
	)
}

type ReviewSpeakerRequest struct {
	Status string `json:"status"`
}

func (req *ReviewSpeakerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("approved", "rejected")),
	)
}
