package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitEventRequestRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	ProposedDate     string  `json:"proposed_date"` // DD/MM/YYYY
	Location         string  `json:"location"`
	ExpectedCapacity int     `json:"expected_capacity"`
	MaxSpeakers      int     `json:"max_speakers"`
	Price            float64 `json:"price"`
	Requirements     string  `json:"requirements"`
	Justification    string  `json:"justification"`
}

func (req *SubmitEventRequestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.ProposedDate, validation.Required, validation.Date("02/01/2006")),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.ExpectedCapacity, validation.Required, validation.Min(1)),
		validation.Field(&req.MaxSpeakers, validation.Min(0)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Justification, validation.Required),
	)
}

type ReviewRequestRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (req *ReviewRequestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}
