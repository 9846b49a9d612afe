package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProposal() SubmitEventRequestRequest {
	return SubmitEventRequestRequest{
		Title:            "Science Fair",
		Description:      "Annual school science fair",
		ProposedDate:     "15/10/2026",
		Location:         "Main hall",
		ExpectedCapacity: 120,
		MaxSpeakers:      3,
		Price:            0,
		Justification:    "Yearly tradition with strong turnout",
	}
}

func TestSubmitEventRequestRequest_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := validProposal()
		assert.NoError(t, req.Validate())
	})

	t.Run("date must be DD/MM/YYYY", func(t *testing.T) {
		for _, date := range []string{"2026-10-15", "15.10.2026", "32/01/2026", ""} {
			req := validProposal()
			req.ProposedDate = date
			assert.Error(t, req.Validate())
		}
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		req := validProposal()
		req.ExpectedCapacity = 0
		assert.Error(t, req.Validate())
	})

	t.Run("price cannot be negative", func(t *testing.T) {
		req := validProposal()
		req.Price = -1
		assert.Error(t, req.Validate())
	})

	t.Run("justification is required", func(t *testing.T) {
		req := validProposal()
		req.Justification = ""
		assert.Error(t, req.Validate())
	})
}

func TestReviewRequestRequest_Validate(t *testing.T) {
	req := ReviewRequestRequest{Status: "approved"}
	assert.NoError(t, req.Validate())

	req.Status = ""
	assert.Error(t, req.Validate())
}
