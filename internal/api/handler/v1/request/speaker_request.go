package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitSpeakerRequestRequest struct {
	EventID  uint   `json:"event_id"`
	Topic    string `json:"topic"`
	Duration int    `json:"duration"` // minutes
	Abstract string `json:"abstract"`
}

func (req *SubmitSpeakerRequestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Topic, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Duration, validation.Required, validation.Min(5), validation.Max(480)),
		validation.Field(&req.Abstract, validation.Required),
	)
}

type EditSpeakerRequestRequest struct {
	Topic    string `json:"topic"`
	Duration int    `json:"duration"`
	Abstract string `json:"abstract"`
}

func (req *EditSpeakerRequestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Topic, validation.Required, validation.Length(3, 200)),
		validation.Field(&req.Duration, validation.Required, validation.Min(5), validation.Max(480)),
		validation.Field(&req.Abstract, validation.Required),
	)
}
