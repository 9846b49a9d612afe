package response

import (
	"math"

	"github.com/vietanh2810/edu-events-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type ListResponse[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
}

func NewListResponse[T any](items []T, total int64, page, limit int) ListResponse[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	if items == nil {
		items = []T{}
	}

	return ListResponse[T]{
		Items:       items,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
