package service

import (
	"context"
	"testing"

	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubscriptionService(t *testing.T) (SubscriptionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
		repository.NewRecipeRepo(db),
	)
	return svc, db
}

func seedAuthorRecipes(t *testing.T, db *gorm.DB, authorID string, n int) {
	t.Helper()
	tag := &models.Tag{Name: "Dinner", Color: "#49B64E", Slug: "dinner"}
	require.NoError(t, db.Create(tag).Error)
	repo := repository.NewRecipeRepo(db)
	ing := &models.Ingredient{Name: "flour", MeasurementUnit: "г"}
	require.NoError(t, db.Create(ing).Error)

	for i := 0; i < n; i++ {
		rec := &models.Recipe{
			AuthorID:    authorID,
			Name:        "Recipe",
			Image:       "img.png",
			Text:        "steps",
			CookingTime: 5,
		}
		require.NoError(t, repo.Create(context.Background(), rec, []int64{tag.ID}, []models.RecipeIngredient{
			{IngredientID: ing.ID, Amount: 100},
		}))
	}
}

func TestSubscribeToSelf(t *testing.T) {
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "loner")

	_, err := svc.Subscribe(context.Background(), user.ID, user.ID, 0)
	assert.ErrorIs(t, err, ErrSelfSubscription)
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	svc, db := newSubscriptionService(t)
	user := seedUser(t, db, "follower")

	_, err := svc.Subscribe(context.Background(), user.ID, "no-such-user", 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubscribeTwice(t *testing.T) {
	svc, db := newSubscriptionService(t)
	ctx := context.Background()
	follower := seedUser(t, db, "follower")
	author := seedUser(t, db, "author")

	_, err := svc.Subscribe(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)

	_, err = svc.Subscribe(ctx, follower.ID, author.ID, 0)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	svc, db := newSubscriptionService(t)
	follower := seedUser(t, db, "follower")
	author := seedUser(t, db, "author")

	err := svc.Unsubscribe(context.Background(), follower.ID, author.ID)
	assert.ErrorIs(t, err, ErrNotSubscribed)
}

func TestListSubscriptionsRecipesLimit(t *testing.T) {
	svc, db := newSubscriptionService(t)
	ctx := context.Background()
	follower := seedUser(t, db, "follower")
	author := seedUser(t, db, "author")
	seedAuthorRecipes(t, db, author.ID, 5)

	_, err := svc.Subscribe(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)

	views, total, err := svc.ListSubscriptions(ctx, follower.ID, 2, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, views, 1)

	// the list is truncated, the count is not
	assert.Len(t, views[0].Recipes, 2)
	assert.EqualValues(t, 5, views[0].RecipesCount)
	assert.Equal(t, "author", views[0].Author.Username)
}

func TestListSubscriptionsUnlimited(t *testing.T) {
	svc, db := newSubscriptionService(t)
	ctx := context.Background()
	follower := seedUser(t, db, "follower")
	author := seedUser(t, db, "author")
	seedAuthorRecipes(t, db, author.ID, 3)

	_, err := svc.Subscribe(ctx, follower.ID, author.ID, 0)
	require.NoError(t, err)

	views, _, err := svc.ListSubscriptions(ctx, follower.ID, 0, 1, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Len(t, views[0].Recipes, 3)
}
