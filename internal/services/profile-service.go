package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/interfaces"
	"github.com/cinematik/backend/internal/repository"
)

const avatarUploadTimeout = 20 * time.Second

type ProfileService interface {
	GetProfile(caller *domain.User) (dto.UserData, error)
	UpdateProfile(input dto.UpdateProfileRequest, caller *domain.User) (dto.UserData, error)
	UpdatePicture(ctx context.Context, filename string, data []byte, caller *domain.User) (dto.UserData, error)
	DeleteProfile(caller *domain.User) error
}

type profileService struct {
	users      repository.UserRepository
	reviewRepo repository.ReviewRepository
	uploader   interfaces.Uploader
}

func NewProfileService(
	users repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	uploader interfaces.Uploader,
) ProfileService {
	return &profileService{
		users:      users,
		reviewRepo: reviewRepo,
		uploader:   uploader,
	}
}

func (s *profileService) GetProfile(caller *domain.User) (dto.UserData, error) {
	return formatUserData(s.reviewRepo, caller), nil
}

func (s *profileService) UpdateProfile(input dto.UpdateProfileRequest, caller *domain.User) (dto.UserData, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return dto.UserData{}, errors.New("name cannot be empty")
		}
		caller.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email == "" {
			return dto.UserData{}, errors.New("email cannot be empty")
		}
		caller.Email = email
	}

	if err := s.users.SaveUser(caller); err != nil {
		return dto.UserData{}, err
	}
	return formatUserData(s.reviewRepo, caller), nil
}

func (s *profileService) UpdatePicture(ctx context.Context, filename string, data []byte, caller *domain.User) (dto.UserData, error) {
	if s.uploader == nil {
		return dto.UserData{}, errors.New("uploader is not configured")
	}
	if len(data) == 0 {
		return dto.UserData{}, errors.New("file is required")
	}

	ctx, cancel := context.WithTimeout(ctx, avatarUploadTimeout)
	defer cancel()

	url, err := s.uploader.UploadBytes(ctx, "cinematik/avatars", filename, data)
	if err != nil {
		return dto.UserData{}, err
	}

	caller.Picture = &url
	if err := s.users.SaveUser(caller); err != nil {
		return dto.UserData{}, err
	}
	return formatUserData(s.reviewRepo, caller), nil
}

func (s *profileService) DeleteProfile(caller *domain.User) error {
	// Reviews, movies and reset tokens go with the account via the FK
	// cascade.
	return s.users.DeleteUser(caller.ID)
}
