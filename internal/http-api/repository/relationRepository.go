package repository

import (
	"context"
	"fmt"

	"foodgram/internal/http-api/models"

	"gorm.io/gorm"
)

// RelationKind distinguishes the two structurally identical user-recipe
// relations; one repository serves both.
type RelationKind string

const (
	KindFavorite     RelationKind = "favorite"
	KindShoppingCart RelationKind = "shopping_cart"
)

// CartLine is one aggregated shopping-list row. Grouping is by
// (name, measurement unit), not ingredient id: two ingredient records with
// the same display name and unit merge into one line.
type CartLine struct {
	Name  string
	Unit  string
	Total int
}

type RelationRepository interface {
	Add(ctx context.Context, kind RelationKind, userID string, recipeID int64) error
	Remove(ctx context.Context, kind RelationKind, userID string, recipeID int64) error
	Exists(ctx context.Context, kind RelationKind, userID string, recipeID int64) (bool, error)
	// FilterRecipeIDs returns which of recipeIDs are in the relation for the
	// user; used to batch is_favorited / is_in_shopping_cart lookups.
	FilterRecipeIDs(ctx context.Context, kind RelationKind, userID string, recipeIDs []int64) (map[int64]bool, error)
	AggregateCart(ctx context.Context, userID string) ([]CartLine, error)
}

type relationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) record(kind RelationKind, userID string, recipeID int64) any {
	if kind == KindShoppingCart {
		return &models.ShoppingCartItem{UserID: userID, RecipeID: recipeID}
	}
	return &models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
}

func (r *relationRepository) model(kind RelationKind) any {
	if kind == KindShoppingCart {
		return &models.ShoppingCartItem{}
	}
	return &models.FavoriteRecipe{}
}

func (r *relationRepository) Add(ctx context.Context, kind RelationKind, userID string, recipeID int64) error {
	if err := r.db.WithContext(ctx).Create(r.record(kind, userID, recipeID)).Error; err != nil {
		// leave duplicate-key errors recognizable for the service layer
		if IsDuplicateKey(err) {
			return err
		}
		return fmt.Errorf("add %s: %w", kind, err)
	}
	return nil
}

func (r *relationRepository) Remove(ctx context.Context, kind RelationKind, userID string, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(r.model(kind))
	if result.Error != nil {
		return fmt.Errorf("remove %s: %w", kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *relationRepository) Exists(ctx context.Context, kind RelationKind, userID string, recipeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(r.model(kind)).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *relationRepository) FilterRecipeIDs(ctx context.Context, kind RelationKind, userID string, recipeIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return out, nil
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(r.model(kind)).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("filter %s: %w", kind, err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// AggregateCart sums ingredient amounts over every recipe in the user's
// shopping cart, grouped by (name, unit), biggest totals first.
func (r *relationRepository) AggregateCart(ctx context.Context, userID string) ([]CartLine, error) {
	var lines []CartLine
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts sc ON sc.recipe_id = recipe_ingredients.recipe_id").
		Where("sc.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("total desc, name asc").
		Scan(&lines).Error; err != nil {
		return nil, fmt.Errorf("aggregate cart: %w", err)
	}
	return lines, nil
}
