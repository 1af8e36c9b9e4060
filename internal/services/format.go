package services

import (
	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/repository"
)

// formatUserData builds the client-facing user shape. The review lookup is
// advisory only; a storage hiccup degrades to is_left_review=false rather
// than failing the whole request.
func formatUserData(reviews repository.ReviewRepository, user *domain.User) dto.UserData {
	left := false
	if reviews != nil {
		if _, err := reviews.FindReviewByUser(user.ID); err == nil {
			left = true
		}
	}
	return dto.UserData{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Picture:      user.Picture,
		IsLeftReview: left,
	}
}
