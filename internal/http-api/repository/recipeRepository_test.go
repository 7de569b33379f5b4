package repository

import (
	"context"
	"testing"
	"time"

	"foodgram/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRecipe(t *testing.T, repo *RecipeRepo, authorID, name string, tagIDs []int64, rows []models.RecipeIngredient) *models.Recipe {
	t.Helper()
	rec := &models.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       "test.png",
		Text:        "steps",
		CookingTime: 10,
	}
	require.NoError(t, repo.Create(context.Background(), rec, tagIDs, rows))
	return rec
}

func TestRecipeCreateWithRelations(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")
	flour := seedIngredient(t, db, "flour", "г")
	egg := seedIngredient(t, db, "egg", "шт")

	rec := createRecipe(t, repo, author.ID, "Pancakes", []int64{breakfast.ID}, []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: egg.ID, Amount: 2},
	})

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "chef", got.Author.Username)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "breakfast", got.Tags[0].Slug)
	require.Len(t, got.Ingredients, 2)
	require.NotNil(t, got.Ingredients[0].Ingredient)
}

func TestRecipeUpdateReplacesIngredients(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	tag := seedTag(t, db, "Dinner", "dinner")
	flour := seedIngredient(t, db, "flour", "г")
	egg := seedIngredient(t, db, "egg", "шт")
	milk := seedIngredient(t, db, "milk", "мл")

	rec := createRecipe(t, repo, author.ID, "Pancakes", []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: egg.ID, Amount: 2},
	})

	rec.Name = "Crepes"
	err := repo.Update(ctx, rec, []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: milk.ID, Amount: 300},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crepes", got.Name)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, milk.ID, got.Ingredients[0].IngredientID)
	assert.Equal(t, 300, got.Ingredients[0].Amount)

	// no orphaned rows left behind
	var count int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", rec.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecipeListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)
	ctx := context.Background()

	author := seedUser(t, db, "chef")
	tag := seedTag(t, db, "Dinner", "dinner")
	flour := seedIngredient(t, db, "flour", "г")
	rows := []models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}}

	old := createRecipe(t, repo, author.ID, "Old", []int64{tag.ID}, rows)
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", old.ID).
		Update("pub_date", time.Now().Add(-time.Hour)).Error)
	fresh := createRecipe(t, repo, author.ID, "Fresh", []int64{tag.ID}, rows)

	list, total, err := repo.List(ctx, RecipeFilters{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, fresh.ID, list[0].ID)
	assert.Equal(t, old.ID, list[1].ID)
}

func TestRecipeListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	chef := seedUser(t, db, "chef")
	guest := seedUser(t, db, "guest")
	breakfast := seedTag(t, db, "Breakfast", "breakfast")
	dinner := seedTag(t, db, "Dinner", "dinner")
	flour := seedIngredient(t, db, "flour", "г")
	rows := []models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}}

	pancakes := createRecipe(t, repo, chef.ID, "Pancakes", []int64{breakfast.ID}, rows)
	soup := createRecipe(t, repo, guest.ID, "Soup", []int64{dinner.ID}, rows)
	require.NoError(t, relations.Add(ctx, KindFavorite, guest.ID, pancakes.ID))

	byTag, _, err := repo.List(ctx, RecipeFilters{TagSlugs: []string{"breakfast"}, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, pancakes.ID, byTag[0].ID)

	byBoth, _, err := repo.List(ctx, RecipeFilters{TagSlugs: []string{"breakfast", "dinner"}, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, byBoth, 2)

	byAuthor, _, err := repo.List(ctx, RecipeFilters{AuthorID: guest.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, soup.ID, byAuthor[0].ID)

	favorited, _, err := repo.List(ctx, RecipeFilters{FavoritedBy: guest.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, favorited, 1)
	assert.Equal(t, pancakes.ID, favorited[0].ID)

	favoritedByChef, _, err := repo.List(ctx, RecipeFilters{FavoritedBy: chef.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, favoritedByChef)
}

func TestRecipeDeleteCleansRelations(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecipeRepo(db)
	relations := NewRelationRepository(db)
	ctx := context.Background()

	chef := seedUser(t, db, "chef")
	tag := seedTag(t, db, "Dinner", "dinner")
	flour := seedIngredient(t, db, "flour", "г")

	rec := createRecipe(t, repo, chef.ID, "Soup", []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 100},
	})
	require.NoError(t, relations.Add(ctx, KindShoppingCart, chef.ID, rec.ID))

	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err := repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", rec.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.ShoppingCartItem{}).Where("recipe_id = ?", rec.ID).Count(&count).Error)
	assert.Zero(t, count)
}
