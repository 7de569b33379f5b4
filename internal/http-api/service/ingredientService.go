package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"foodgram/internal/cache"
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
)

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrIngredientConflict = errors.New("ingredient already exists")
)

type IngredientService interface {
	// Search lists all ingredients when name is empty, otherwise runs the
	// two-tier name match (prefix hits first, substring hits after).
	Search(ctx context.Context, name string) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*models.Ingredient, error)
	Create(ctx context.Context, ing *models.Ingredient) error
}

type ingredientService struct {
	repo   *repository.IngredientRepo
	cache  *cache.Cache
	logger *slog.Logger
}

func NewIngredientService(repo *repository.IngredientRepo, c *cache.Cache, logger *slog.Logger) IngredientService {
	return &ingredientService{repo: repo, cache: c, logger: logger}
}

func (s *ingredientService) Search(ctx context.Context, name string) ([]models.Ingredient, error) {
	name = strings.TrimSpace(name)
	cacheKey := "ingredients:search:" + strings.ToLower(name)

	var ingredients []models.Ingredient
	if ok, err := s.cache.GetJSON(ctx, cacheKey, &ingredients); err != nil {
		s.logger.Warn("ingredient cache read failed", "error", err)
	} else if ok {
		return ingredients, nil
	}

	var err error
	if name == "" {
		ingredients, err = s.repo.GetAll(ctx)
	} else {
		ingredients, err = s.repo.SearchByName(ctx, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}

	if err := s.cache.SetJSON(ctx, cacheKey, ingredients); err != nil {
		s.logger.Warn("ingredient cache write failed", "error", err)
	}
	return ingredients, nil
}

func (s *ingredientService) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	ing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ing, nil
}

func (s *ingredientService) Create(ctx context.Context, ing *models.Ingredient) error {
	ing.Name = strings.TrimSpace(ing.Name)
	if err := s.repo.Create(ctx, ing); err != nil {
		if repository.IsDuplicateKey(err) {
			return ErrIngredientConflict
		}
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	if err := s.cache.InvalidatePrefix(ctx, "ingredients:"); err != nil {
		s.logger.Warn("ingredient cache invalidation failed", "error", err)
	}
	return nil
}
