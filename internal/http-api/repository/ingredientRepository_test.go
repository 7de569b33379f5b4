package repository

import (
	"context"
	"testing"

	"foodgram/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByNameTwoTier(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientRepo(db)
	ctx := context.Background()

	seedIngredient(t, db, "cherry tomato", "г")
	seedIngredient(t, db, "tomatillo", "г")
	seedIngredient(t, db, "tomato", "г")
	seedIngredient(t, db, "basil", "г")

	got, err := repo.SearchByName(ctx, "tom")
	require.NoError(t, err)
	require.Len(t, got, 3)

	// prefix matches first (alphabetical), substring matches after
	assert.Equal(t, "tomatillo", got[0].Name)
	assert.Equal(t, "tomato", got[1].Name)
	assert.Equal(t, "cherry tomato", got[2].Name)
}

func TestSearchByNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientRepo(db)

	seedIngredient(t, db, "Tomato", "г")

	got, err := repo.SearchByName(context.Background(), "toM")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tomato", got[0].Name)
}

func TestSearchByNameEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientRepo(db)

	seedIngredient(t, db, "tomato", "г")
	seedIngredient(t, db, "100% cocoa", "г")

	// a literal % must not act as a match-all
	got, err := repo.SearchByName(context.Background(), "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% cocoa", got[0].Name)
}

func TestSearchByNameNoMatches(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientRepo(db)

	seedIngredient(t, db, "tomato", "г")

	got, err := repo.SearchByName(context.Background(), "zucchini")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBulkImportSkipsExisting(t *testing.T) {
	db := newTestDB(t)
	repo := NewIngredientRepo(db)
	ctx := context.Background()

	seedIngredient(t, db, "flour", "г")

	created, err := repo.BulkImport(ctx, []models.Ingredient{
		{Name: "flour", MeasurementUnit: "г"},  // already in the catalog
		{Name: "flour", MeasurementUnit: "кг"}, // same name, new unit
		{Name: "egg", MeasurementUnit: "шт"},
		{Name: "egg", MeasurementUnit: "шт"}, // duplicate inside the file
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// re-running the same import is a no-op
	created, err = repo.BulkImport(ctx, []models.Ingredient{
		{Name: "flour", MeasurementUnit: "кг"},
		{Name: "egg", MeasurementUnit: "шт"},
	})
	require.NoError(t, err)
	assert.Zero(t, created)
}
