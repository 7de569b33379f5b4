package service

import (
	"context"
	"testing"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShoppingList(t *testing.T) {
	db := newTestDB(t)
	relationRepo := repository.NewRelationRepository(db)
	recipeRepo := repository.NewRecipeRepo(db)
	svc := NewShoppingListService(relationRepo)
	ctx := context.Background()

	user := seedUser(t, db, "guest")
	chef := seedUser(t, db, "chef")
	tag := &models.Tag{Name: "Dinner", Color: "#49B64E", Slug: "dinner"}
	require.NoError(t, db.Create(tag).Error)
	flour := &models.Ingredient{Name: "flour", MeasurementUnit: "г"}
	egg := &models.Ingredient{Name: "egg", MeasurementUnit: "шт"}
	require.NoError(t, db.Create(flour).Error)
	require.NoError(t, db.Create(egg).Error)

	pancakes := &models.Recipe{AuthorID: chef.ID, Name: "Pancakes", Image: "p.png", Text: "x", CookingTime: 5}
	require.NoError(t, recipeRepo.Create(ctx, pancakes, []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: egg.ID, Amount: 2},
	}))
	bread := &models.Recipe{AuthorID: chef.ID, Name: "Bread", Image: "b.png", Text: "y", CookingTime: 60}
	require.NoError(t, recipeRepo.Create(ctx, bread, []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 500},
	}))

	require.NoError(t, relationRepo.Add(ctx, repository.KindShoppingCart, user.ID, pancakes.ID))
	require.NoError(t, relationRepo.Add(ctx, repository.KindShoppingCart, user.ID, bread.ID))

	text, err := svc.BuildShoppingList(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "flour (г) - 700\negg (шт) - 2", text)
}

func TestBuildShoppingListEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewShoppingListService(repository.NewRelationRepository(db))
	user := seedUser(t, db, "guest")

	text, err := svc.BuildShoppingList(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, text)
}
