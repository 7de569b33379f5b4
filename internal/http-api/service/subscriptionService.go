package service

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
)

var (
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
)

// SubscriptionView is an author the viewer follows plus a recent slice
// of their recipes. RecipesCount is the author's full total even when
// Recipes is truncated by a recipes_limit.
type SubscriptionView struct {
	Author       *models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (*SubscriptionView, error)
	Unsubscribe(ctx context.Context, userID, authorID string) error
	ListSubscriptions(ctx context.Context, userID string, recipesLimit, page, pageSize int) ([]SubscriptionView, int64, error)
}

type subscriptionService struct {
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo *repository.RecipeRepo
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo *repository.RecipeRepo,
) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo, recipeRepo: recipeRepo}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (*SubscriptionView, error) {
	if userID == authorID {
		return nil, ErrSelfSubscription
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch author: %w", err)
	}

	if err := s.subRepo.Add(ctx, userID, authorID); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	return s.buildView(ctx, author, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	if err := s.subRepo.Remove(ctx, userID, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotSubscribed
		}
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID string, recipesLimit, page, pageSize int) ([]SubscriptionView, int64, error) {
	subs, total, err := s.subRepo.ListAuthors(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	views := make([]SubscriptionView, 0, len(subs))
	for i := range subs {
		view, err := s.buildView(ctx, subs[i].Author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

func (s *subscriptionService) buildView(ctx context.Context, author *models.User, recipesLimit int) (*SubscriptionView, error) {
	recipes, err := s.recipeRepo.RecentByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch author recipes: %w", err)
	}
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count author recipes: %w", err)
	}
	return &SubscriptionView{Author: author, Recipes: recipes, RecipesCount: count}, nil
}
