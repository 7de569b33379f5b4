package service

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserProfile couples a user with the viewer-dependent subscription flag.
type UserProfile struct {
	User         *models.User
	IsSubscribed bool
}

type UserService interface {
	GetProfile(ctx context.Context, viewerID, userID string) (*UserProfile, error)
	ListProfiles(ctx context.Context, viewerID string, page, pageSize int) ([]UserProfile, int64, error)
}

type userService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
}

func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository) UserService {
	return &userService{userRepo: userRepo, subRepo: subRepo}
}

func (s *userService) GetProfile(ctx context.Context, viewerID, userID string) (*UserProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	profile := &UserProfile{User: user}
	if viewerID != "" && viewerID != userID {
		subscribed, err := s.subRepo.Exists(ctx, viewerID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
		profile.IsSubscribed = subscribed
	}
	return profile, nil
}

func (s *userService) ListProfiles(ctx context.Context, viewerID string, page, pageSize int) ([]UserProfile, int64, error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	subscribed := map[string]bool{}
	if viewerID != "" && len(users) > 0 {
		ids := make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		subscribed, err = s.subRepo.FilterAuthorIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to check subscriptions: %w", err)
		}
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, UserProfile{
			User:         &users[i],
			IsSubscribed: subscribed[users[i].ID],
		})
	}
	return profiles, total, nil
}
