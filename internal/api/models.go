package api

import (
	"time"

	"github.com/mentorhub/mentorhub-api/internal/api/shared"
)

// CreateSessionRequest is the body for requesting a mentoring session.
type CreateSessionRequest struct {
	Topic   string    `json:"topic"    validate:"required,min=1,max=200"`
	Problem string    `json:"problem"  validate:"required,min=1,max=2000"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at"   validate:"required"`
}

// UpdateSessionRequest is the body for responding to or cancelling a session.
type UpdateSessionRequest struct {
	Action string `json:"action" validate:"required,oneof=accepted declined cancelled"`
}

// SubmitReviewRequest is the body for reviewing a completed session.
type SubmitReviewRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
}

// ListResponse wraps a page of items with its pagination metadata.
type ListResponse struct {
	Items      interface{}       `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}
