package repository

import (
	"context"
	"fmt"
	"sort"

	"foodgram/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeFilters narrows the recipe list. Zero values mean "no filter".
type RecipeFilters struct {
	AuthorID    string
	TagSlugs    []string // OR-match on tag slug
	FavoritedBy string   // user id, only recipes this user favorited
	InCartOf    string   // user id, only recipes in this user's cart
	Page        int
	PageSize    int
}

type RecipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{db: db}
}

// List returns the filtered, paginated recipe ids ordered
// reverse-chronologically, then loads full rows with associations. The
// two-phase fetch keeps the tag join from duplicating rows.
func (r *RecipeRepo) List(ctx context.Context, f RecipeFilters) ([]models.Recipe, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Recipe{})

	if f.AuthorID != "" {
		base = base.Where("recipes.author_id = ?", f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		base = base.
			Joins("JOIN recipe_tags rt ON rt.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = rt.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
	}
	if f.FavoritedBy != "" {
		base = base.Joins(
			"JOIN favorite_recipes fav ON fav.recipe_id = recipes.id AND fav.user_id = ?",
			f.FavoritedBy,
		)
	}
	if f.InCartOf != "" {
		base = base.Joins(
			"JOIN shopping_carts sc ON sc.recipe_id = recipes.id AND sc.user_id = ?",
			f.InCartOf,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("recipes.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	page, pageSize := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	// pub_date is selected alongside id because postgres requires ORDER BY
	// columns to appear in a DISTINCT select
	var idRows []struct {
		ID int64
	}
	if err := base.Session(&gorm.Session{}).
		Select("DISTINCT recipes.id, recipes.pub_date").
		Order("recipes.pub_date desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(&idRows).Error; err != nil {
		return nil, 0, fmt.Errorf("list recipe ids: %w", err)
	}
	if len(idRows) == 0 {
		return []models.Recipe{}, total, nil
	}
	ids := make([]int64, 0, len(idRows))
	for _, row := range idRows {
		ids = append(ids, row.ID)
	}

	var list []models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("recipes.id IN ?", ids).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("load recipes: %w", err)
	}

	// IN loses the pub_date ordering, restore it
	sort.Slice(list, func(i, j int) bool {
		if list[i].PubDate.Equal(list[j].PubDate) {
			return list[i].ID > list[j].ID
		}
		return list[i].PubDate.After(list[j].PubDate)
	})

	return list, total, nil
}

func (r *RecipeRepo) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var rec models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create persists the recipe row, its tag set and its ingredient-amount rows
// in one transaction.
func (r *RecipeRepo) Create(ctx context.Context, rec *models.Recipe, tagIDs []int64, amounts []models.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if err := replaceTags(tx, rec, tagIDs); err != nil {
			return err
		}
		return insertAmounts(tx, rec.ID, amounts)
	})
}

// Update saves the recipe row and, when tagIDs/amounts are non-nil, replaces
// the tag set and ingredient-amount rows wholesale. The clear-then-insert
// runs inside the transaction so a concurrent reader sees either the old
// full set or the new full set, never a partial one.
func (r *RecipeRepo) Update(ctx context.Context, rec *models.Recipe, tagIDs []int64, amounts []models.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(rec).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if tagIDs != nil {
			if err := replaceTags(tx, rec, tagIDs); err != nil {
				return err
			}
		}
		if amounts != nil {
			if err := tx.Where("recipe_id = ?", rec.ID).
				Delete(&models.RecipeIngredient{}).Error; err != nil {
				return fmt.Errorf("clear ingredient amounts: %w", err)
			}
			if err := insertAmounts(tx, rec.ID, amounts); err != nil {
				return err
			}
		}
		return nil
	})
}

func replaceTags(tx *gorm.DB, rec *models.Recipe, tagIDs []int64) error {
	tags := make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, models.Tag{ID: id})
	}
	if err := tx.Model(rec).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}
	return nil
}

func insertAmounts(tx *gorm.DB, recipeID int64, amounts []models.RecipeIngredient) error {
	if len(amounts) == 0 {
		return nil
	}
	for i := range amounts {
		amounts[i].ID = 0
		amounts[i].RecipeID = recipeID
	}
	if err := tx.Create(&amounts).Error; err != nil {
		return fmt.Errorf("insert ingredient amounts: %w", err)
	}
	return nil
}

func (r *RecipeRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sqlite in tests does not enforce the declared cascades, clear the
		// dependents explicitly
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("delete ingredient amounts: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.FavoriteRecipe{}).Error; err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCartItem{}).Error; err != nil {
			return fmt.Errorf("delete cart entries: %w", err)
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete tag links: %w", err)
		}
		if err := tx.Delete(&models.Recipe{}, id).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
}

// RecentByAuthor returns the author's recipes newest-first, truncated to
// limit when limit > 0.
func (r *RecipeRepo) RecentByAuthor(ctx context.Context, authorID string, limit int) ([]models.Recipe, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []models.Recipe
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("recipes by author: %w", err)
	}
	return list, nil
}

func (r *RecipeRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count recipes by author: %w", err)
	}
	return n, nil
}
