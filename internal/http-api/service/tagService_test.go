package service

import (
	"context"
	"testing"
	"time"

	"foodgram/internal/cache"
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Breakfast":        "breakfast",
		"  Quick Dinner  ": "quick-dinner",
		"Low-Carb!":        "low-carb",
		"Завтрак":          "",
	}
	for name, want := range cases {
		assert.Equal(t, want, generateSlug(name), "name=%q", name)
	}
}

func newTagService(t *testing.T) TagService {
	t.Helper()
	db := newTestDB(t)
	c, err := cache.New("", "", time.Hour)
	require.NoError(t, err)
	return NewTagService(repository.NewTagRepo(db), c, discardLogger())
}

func TestTagCreateDerivesSlug(t *testing.T) {
	svc := newTagService(t)
	ctx := context.Background()

	tag := &models.Tag{Name: "Quick Dinner", Color: "#49B64E"}
	require.NoError(t, svc.CreateTag(ctx, tag))
	assert.Equal(t, "quick-dinner", tag.Slug)
	assert.NotZero(t, tag.ID)
}

func TestTagCreateConflicts(t *testing.T) {
	svc := newTagService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateTag(ctx, &models.Tag{Name: "Dinner", Color: "#49B64E", Slug: "dinner"}))

	err := svc.CreateTag(ctx, &models.Tag{Name: "Dinner", Color: "#111111", Slug: "dinner-2"})
	assert.ErrorIs(t, err, ErrTagConflict)

	err = svc.CreateTag(ctx, &models.Tag{Name: "   ", Color: "#111111"})
	assert.ErrorIs(t, err, ErrTagEmptyName)
}

func TestTagUpdateAndDelete(t *testing.T) {
	svc := newTagService(t)
	ctx := context.Background()

	tag := &models.Tag{Name: "Dinner", Color: "#49B64E", Slug: "dinner"}
	require.NoError(t, svc.CreateTag(ctx, tag))

	tag.Name = "Late Dinner"
	require.NoError(t, svc.UpdateTag(ctx, tag))

	got, err := svc.GetTagByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "Late Dinner", got.Name)

	require.NoError(t, svc.DeleteTag(ctx, tag.ID))
	_, err = svc.GetTagByID(ctx, tag.ID)
	assert.ErrorIs(t, err, ErrTagNotFound)

	assert.ErrorIs(t, svc.DeleteTag(ctx, tag.ID), ErrTagNotFound)
}
