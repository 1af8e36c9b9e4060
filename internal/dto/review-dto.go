package dto

import "time"

type CreateReviewRequest struct {
	Text   string `json:"text" validate:"required"`
	Rating string `json:"rating" validate:"required,oneof=1 2 3 4 5"`
}

type UpdateReviewRequest struct {
	Text   *string `json:"text,omitempty"`
	Rating *string `json:"rating,omitempty"`
}

// ReviewWithUser is a review row joined with its author's display fields.
type ReviewWithUser struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	Text      string    `json:"text"`
	Rating    string    `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      *string   `json:"name"`
	Picture   *string   `json:"picture"`
}

type PageMetaData struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}
