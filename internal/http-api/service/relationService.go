package service

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
)

var (
	ErrAlreadyInList = errors.New("recipe already in the list")
	ErrNotInList     = errors.New("recipe is not in the list")
)

// RelationService manages the two per-user recipe lists (favorites and
// the shopping cart), which share the same add/remove shape.
type RelationService interface {
	Add(ctx context.Context, kind repository.RelationKind, userID string, recipeID int64) (*models.Recipe, error)
	Remove(ctx context.Context, kind repository.RelationKind, userID string, recipeID int64) error
}

type relationService struct {
	relationRepo repository.RelationRepository
	recipeRepo   *repository.RecipeRepo
}

func NewRelationService(relationRepo repository.RelationRepository, recipeRepo *repository.RecipeRepo) RelationService {
	return &relationService{relationRepo: relationRepo, recipeRepo: recipeRepo}
}

func (s *relationService) Add(ctx context.Context, kind repository.RelationKind, userID string, recipeID int64) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if err := s.relationRepo.Add(ctx, kind, userID, recipeID); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrAlreadyInList
		}
		return nil, fmt.Errorf("failed to add %s: %w", kind, err)
	}
	return recipe, nil
}

func (s *relationService) Remove(ctx context.Context, kind repository.RelationKind, userID string, recipeID int64) error {
	if err := s.relationRepo.Remove(ctx, kind, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotInList
		}
		return fmt.Errorf("failed to remove %s: %w", kind, err)
	}
	return nil
}
