package repository

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/http-api/models"

	"gorm.io/gorm"
)

type IngredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) *IngredientRepo {
	return &IngredientRepo{db: db}
}

func (r *IngredientRepo) GetAll(ctx context.Context) ([]models.Ingredient, error) {
	var list []models.Ingredient
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get ingredients: %w", err)
	}
	return list, nil
}

func (r *IngredientRepo) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *IngredientRepo) FindByIDs(ctx context.Context, ids []int64) ([]models.Ingredient, error) {
	var list []models.Ingredient
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find ingredients: %w", err)
	}
	return list, nil
}

func (r *IngredientRepo) Create(ctx context.Context, ing *models.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(ing).Error; err != nil {
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

// BulkImport inserts every ingredient whose (name, measurement_unit) pair is
// not already present and reports how many rows were created. Existing rows
// are left untouched so the import can be re-run safely.
func (r *IngredientRepo) BulkImport(ctx context.Context, items []models.Ingredient) (int64, error) {
	var created int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Ingredient
		if err := tx.Select("name", "measurement_unit").Find(&existing).Error; err != nil {
			return fmt.Errorf("load existing ingredients: %w", err)
		}
		seen := make(map[string]bool, len(existing)+len(items))
		for _, ing := range existing {
			seen[ing.Name+"\x00"+ing.MeasurementUnit] = true
		}

		var missing []models.Ingredient
		for _, ing := range items {
			key := ing.Name + "\x00" + ing.MeasurementUnit
			if seen[key] {
				continue
			}
			seen[key] = true
			missing = append(missing, models.Ingredient{
				Name:            ing.Name,
				MeasurementUnit: ing.MeasurementUnit,
			})
		}
		if len(missing) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(missing, 500).Error; err != nil {
			return fmt.Errorf("insert ingredients: %w", err)
		}
		created = int64(len(missing))
		return nil
	})
	return created, err
}

// SearchByName performs the two-tier prefix search: names starting with the
// query rank before names merely containing it, each tier ordered by name so
// results are stable between calls. Empty query returns everything.
func (r *IngredientRepo) SearchByName(ctx context.Context, query string) ([]models.Ingredient, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return r.GetAll(ctx)
	}

	p := escapeLike(strings.ToLower(q))
	db := r.db.WithContext(ctx)

	var starts []models.Ingredient
	if err := db.
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, p+"%").
		Order("name asc").
		Find(&starts).Error; err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}

	var contains []models.Ingredient
	if err := db.
		Where(`LOWER(name) LIKE ? ESCAPE '\' AND LOWER(name) NOT LIKE ? ESCAPE '\'`, "%"+p+"%", p+"%").
		Order("name asc").
		Find(&contains).Error; err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}

	return append(starts, contains...), nil
}

// escapeLike neutralizes LIKE wildcards in user input
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
