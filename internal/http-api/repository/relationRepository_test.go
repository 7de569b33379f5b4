package repository

import (
	"context"
	"testing"

	"foodgram/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationAddAndRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewRelationRepository(db)
	recipes := NewRecipeRepo(db)
	ctx := context.Background()

	user := seedUser(t, db, "guest")
	chef := seedUser(t, db, "chef")
	tag := seedTag(t, db, "Dinner", "dinner")
	flour := seedIngredient(t, db, "flour", "г")
	rec := createRecipe(t, recipes, chef.ID, "Soup", []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 100},
	})

	for _, kind := range []RelationKind{KindFavorite, KindShoppingCart} {
		require.NoError(t, repo.Add(ctx, kind, user.ID, rec.ID))

		exists, err := repo.Exists(ctx, kind, user.ID, rec.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		// second add hits the unique constraint
		err = repo.Add(ctx, kind, user.ID, rec.ID)
		assert.True(t, IsDuplicateKey(err))

		require.NoError(t, repo.Remove(ctx, kind, user.ID, rec.ID))

		exists, err = repo.Exists(ctx, kind, user.ID, rec.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		// second remove finds nothing
		assert.ErrorIs(t, repo.Remove(ctx, kind, user.ID, rec.ID), ErrNotFound)
	}
}

func TestRelationFilterRecipeIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewRelationRepository(db)
	recipes := NewRecipeRepo(db)
	ctx := context.Background()

	user := seedUser(t, db, "guest")
	chef := seedUser(t, db, "chef")
	tag := seedTag(t, db, "Dinner", "dinner")
	flour := seedIngredient(t, db, "flour", "г")
	rows := []models.RecipeIngredient{{IngredientID: flour.ID, Amount: 100}}

	a := createRecipe(t, recipes, chef.ID, "A", []int64{tag.ID}, rows)
	b := createRecipe(t, recipes, chef.ID, "B", []int64{tag.ID}, rows)

	require.NoError(t, repo.Add(ctx, KindFavorite, user.ID, a.ID))

	got, err := repo.FilterRecipeIDs(ctx, KindFavorite, user.ID, []int64{a.ID, b.ID})
	require.NoError(t, err)
	assert.True(t, got[a.ID])
	assert.False(t, got[b.ID])
}

func TestAggregateCartSumsAcrossRecipes(t *testing.T) {
	db := newTestDB(t)
	repo := NewRelationRepository(db)
	recipes := NewRecipeRepo(db)
	ctx := context.Background()

	user := seedUser(t, db, "guest")
	chef := seedUser(t, db, "chef")
	tag := seedTag(t, db, "Dinner", "dinner")
	flour := seedIngredient(t, db, "flour", "г")
	egg := seedIngredient(t, db, "egg", "шт")

	pancakes := createRecipe(t, recipes, chef.ID, "Pancakes", []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: egg.ID, Amount: 2},
	})
	bread := createRecipe(t, recipes, chef.ID, "Bread", []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 500},
	})
	// not in the cart, must not leak into the totals
	createRecipe(t, recipes, chef.ID, "Omelette", []int64{tag.ID}, []models.RecipeIngredient{
		{IngredientID: egg.ID, Amount: 4},
	})

	require.NoError(t, repo.Add(ctx, KindShoppingCart, user.ID, pancakes.ID))
	require.NoError(t, repo.Add(ctx, KindShoppingCart, user.ID, bread.ID))

	lines, err := repo.AggregateCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// biggest total first
	assert.Equal(t, CartLine{Name: "flour", Unit: "г", Total: 700}, lines[0])
	assert.Equal(t, CartLine{Name: "egg", Unit: "шт", Total: 2}, lines[1])
}

func TestAggregateCartEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewRelationRepository(db)

	user := seedUser(t, db, "guest")

	lines, err := repo.AggregateCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
