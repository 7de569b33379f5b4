package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
	"foodgram/internal/storage"
)

var (
	ErrRecipeNotFound             = errors.New("recipe not found")
	ErrForbidden                  = errors.New("operation not allowed for this user")
	ErrMissingTags                = errors.New("recipe needs at least one tag")
	ErrInvalidTagReference        = errors.New("recipe references an unknown tag")
	ErrMissingIngredients         = errors.New("recipe needs at least one ingredient")
	ErrDuplicateIngredient        = errors.New("recipe lists the same ingredient twice")
	ErrInvalidIngredientAmount    = errors.New("ingredient amount must be at least 1")
	ErrInvalidIngredientReference = errors.New("recipe references an unknown ingredient")
	ErrInvalidCookingTime         = errors.New("cooking time must be at least 1 minute")
	ErrInvalidImage               = errors.New("recipe image is missing or malformed")
)

type IngredientAmount struct {
	ID     int64
	Amount int
}

// RecipeInput carries a create/update payload before validation. Image
// is a base64 data URI; empty on update means keep the current file.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string
	CookingTime int
	TagIDs      []int64
	Ingredients []IngredientAmount
}

// RecipeView is a recipe plus the viewer-dependent flags.
type RecipeView struct {
	Recipe             *models.Recipe
	IsFavorited        bool
	IsInShoppingCart   bool
	AuthorIsSubscribed bool
}

type RecipeListFilters struct {
	AuthorID       string
	TagSlugs       []string
	FavoritedOnly  bool
	InShoppingCart bool
	Page           int
	PageSize       int
}

type RecipeService interface {
	List(ctx context.Context, viewerID string, f RecipeListFilters) ([]RecipeView, int64, error)
	GetByID(ctx context.Context, viewerID string, id int64) (*RecipeView, error)
	Create(ctx context.Context, authorID string, in RecipeInput) (*RecipeView, error)
	Update(ctx context.Context, actorID, actorRole string, id int64, in RecipeInput) (*RecipeView, error)
	Delete(ctx context.Context, actorID, actorRole string, id int64) error
}

type recipeService struct {
	recipeRepo     *repository.RecipeRepo
	tagRepo        *repository.TagRepo
	ingredientRepo *repository.IngredientRepo
	relationRepo   repository.RelationRepository
	subRepo        repository.SubscriptionRepository
	images         *storage.ImageStore
	logger         *slog.Logger
}

func NewRecipeService(
	recipeRepo *repository.RecipeRepo,
	tagRepo *repository.TagRepo,
	ingredientRepo *repository.IngredientRepo,
	relationRepo repository.RelationRepository,
	subRepo repository.SubscriptionRepository,
	images *storage.ImageStore,
	logger *slog.Logger,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		relationRepo:   relationRepo,
		subRepo:        subRepo,
		images:         images,
		logger:         logger,
	}
}

// validate checks the payload against the catalog and returns the
// deduplicated tag IDs plus the ingredient rows ready for storage.
func (s *recipeService) validate(ctx context.Context, in RecipeInput) ([]int64, []models.RecipeIngredient, error) {
	if in.CookingTime < 1 {
		return nil, nil, ErrInvalidCookingTime
	}

	if len(in.TagIDs) == 0 {
		return nil, nil, ErrMissingTags
	}
	tagIDs := make([]int64, 0, len(in.TagIDs))
	seenTags := make(map[int64]struct{}, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if _, ok := seenTags[id]; ok {
			continue
		}
		seenTags[id] = struct{}{}
		tagIDs = append(tagIDs, id)
	}
	tags, err := s.tagRepo.FindByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, ErrInvalidTagReference
	}

	if len(in.Ingredients) == 0 {
		return nil, nil, ErrMissingIngredients
	}
	rows := make([]models.RecipeIngredient, 0, len(in.Ingredients))
	seen := make(map[int64]struct{}, len(in.Ingredients))
	ids := make([]int64, 0, len(in.Ingredients))
	for _, ia := range in.Ingredients {
		if ia.Amount < 1 {
			return nil, nil, ErrInvalidIngredientAmount
		}
		if _, ok := seen[ia.ID]; ok {
			return nil, nil, ErrDuplicateIngredient
		}
		seen[ia.ID] = struct{}{}
		ids = append(ids, ia.ID)
		rows = append(rows, models.RecipeIngredient{IngredientID: ia.ID, Amount: ia.Amount})
	}
	known, err := s.ingredientRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve ingredients: %w", err)
	}
	if len(known) != len(ids) {
		return nil, nil, ErrInvalidIngredientReference
	}

	return tagIDs, rows, nil
}

func (s *recipeService) Create(ctx context.Context, authorID string, in RecipeInput) (*RecipeView, error) {
	tagIDs, amounts, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.Image == "" {
		return nil, ErrInvalidImage
	}
	imageName, err := s.images.SaveDataURI(in.Image)
	if err != nil {
		return nil, ErrInvalidImage
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       imageName,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	if err := s.recipeRepo.Create(ctx, recipe, tagIDs, amounts); err != nil {
		s.images.Remove(imageName)
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return s.GetByID(ctx, authorID, recipe.ID)
}

func (s *recipeService) Update(ctx context.Context, actorID, actorRole string, id int64, in RecipeInput) (*RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != actorID && actorRole != "admin" {
		return nil, ErrForbidden
	}

	tagIDs, amounts, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	newImage := ""
	if in.Image != "" {
		newImage, err = s.images.SaveDataURI(in.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
		recipe.Image = newImage
	}

	recipe.Name = in.Name
	recipe.Text = in.Text
	recipe.CookingTime = in.CookingTime

	if err := s.recipeRepo.Update(ctx, recipe, tagIDs, amounts); err != nil {
		if newImage != "" {
			s.images.Remove(newImage)
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	if newImage != "" && oldImage != "" && oldImage != newImage {
		s.images.Remove(oldImage)
	}

	return s.GetByID(ctx, actorID, id)
}

func (s *recipeService) Delete(ctx context.Context, actorID, actorRole string, id int64) error {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != actorID && actorRole != "admin" {
		return ErrForbidden
	}

	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if recipe.Image != "" {
		if err := s.images.Remove(recipe.Image); err != nil {
			s.logger.Warn("failed to remove recipe image", "recipe_id", id, "error", err)
		}
	}
	return nil
}

func (s *recipeService) GetByID(ctx context.Context, viewerID string, id int64) (*RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	view := &RecipeView{Recipe: recipe}
	if viewerID == "" {
		return view, nil
	}

	if view.IsFavorited, err = s.relationRepo.Exists(ctx, repository.KindFavorite, viewerID, id); err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if view.IsInShoppingCart, err = s.relationRepo.Exists(ctx, repository.KindShoppingCart, viewerID, id); err != nil {
		return nil, fmt.Errorf("failed to check shopping cart: %w", err)
	}
	if recipe.AuthorID != viewerID {
		if view.AuthorIsSubscribed, err = s.subRepo.Exists(ctx, viewerID, recipe.AuthorID); err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
	}
	return view, nil
}

func (s *recipeService) List(ctx context.Context, viewerID string, f RecipeListFilters) ([]RecipeView, int64, error) {
	filters := repository.RecipeFilters{
		AuthorID: f.AuthorID,
		TagSlugs: f.TagSlugs,
		Page:     f.Page,
		PageSize: f.PageSize,
	}
	// Viewer-scoped filters are no-ops for anonymous requests.
	if viewerID != "" {
		if f.FavoritedOnly {
			filters.FavoritedBy = viewerID
		}
		if f.InShoppingCart {
			filters.InCartOf = viewerID
		}
	} else if f.FavoritedOnly || f.InShoppingCart {
		return []RecipeView{}, 0, nil
	}

	recipes, total, err := s.recipeRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}

	views := make([]RecipeView, 0, len(recipes))
	if viewerID == "" || len(recipes) == 0 {
		for i := range recipes {
			views = append(views, RecipeView{Recipe: &recipes[i]})
		}
		return views, total, nil
	}

	recipeIDs := make([]int64, 0, len(recipes))
	authorIDs := make([]string, 0, len(recipes))
	for i := range recipes {
		recipeIDs = append(recipeIDs, recipes[i].ID)
		authorIDs = append(authorIDs, recipes[i].AuthorID)
	}

	favorited, err := s.relationRepo.FilterRecipeIDs(ctx, repository.KindFavorite, viewerID, recipeIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check favorites: %w", err)
	}
	inCart, err := s.relationRepo.FilterRecipeIDs(ctx, repository.KindShoppingCart, viewerID, recipeIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check shopping cart: %w", err)
	}
	subscribed, err := s.subRepo.FilterAuthorIDs(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check subscriptions: %w", err)
	}

	for i := range recipes {
		views = append(views, RecipeView{
			Recipe:             &recipes[i],
			IsFavorited:        favorited[recipes[i].ID],
			IsInShoppingCart:   inCart[recipes[i].ID],
			AuthorIsSubscribed: subscribed[recipes[i].AuthorID],
		})
	}
	return views, total, nil
}
