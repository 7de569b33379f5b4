package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionAddRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	follower := seedUser(t, db, "follower")
	author := seedUser(t, db, "author")

	require.NoError(t, repo.Add(ctx, follower.ID, author.ID))

	exists, err := repo.Exists(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Add(ctx, follower.ID, author.ID)
	assert.True(t, IsDuplicateKey(err))

	require.NoError(t, repo.Remove(ctx, follower.ID, author.ID))
	assert.ErrorIs(t, repo.Remove(ctx, follower.ID, author.ID), ErrNotFound)
}

func TestSubscriptionListAuthors(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	follower := seedUser(t, db, "follower")
	first := seedUser(t, db, "first")
	second := seedUser(t, db, "second")

	require.NoError(t, repo.Add(ctx, follower.ID, first.ID))
	require.NoError(t, repo.Add(ctx, follower.ID, second.ID))

	subs, total, err := repo.ListAuthors(ctx, follower.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, subs, 2)
	require.NotNil(t, subs[0].Author)

	flags, err := repo.FilterAuthorIDs(ctx, follower.ID, []string{first.ID, follower.ID})
	require.NoError(t, err)
	assert.True(t, flags[first.ID])
	assert.False(t, flags[follower.ID])
}
