package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitFeedbackRequest struct {
	EventID uint   `json:"event_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (req *SubmitFeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comment, validation.Length(0, 2000)),
	)
}

type UpdateFeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (req *UpdateFeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comment, validation.Length(0, 2000)),
	)
}
