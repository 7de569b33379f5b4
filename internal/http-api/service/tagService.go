package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"foodgram/internal/cache"
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
)

var (
	ErrTagNotFound  = errors.New("tag not found")
	ErrTagConflict  = errors.New("tag name or slug already exists")
	ErrTagEmptyName = errors.New("tag name must not be empty")
)

const tagsCacheKey = "tags:all"

var slugCleanup = regexp.MustCompile(`[^a-z0-9-]+`)

// generateSlug builds a URL-safe slug from a tag name. Names that
// slugify to nothing (e.g. pure cyrillic) keep whatever slug the
// caller supplied.
func generateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugCleanup.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, "-")
	return slug
}

type TagService interface {
	GetAllTags(ctx context.Context) ([]models.Tag, error)
	GetTagByID(ctx context.Context, id int64) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTag(ctx context.Context, id int64) error
}

type tagService struct {
	repo   *repository.TagRepo
	cache  *cache.Cache
	logger *slog.Logger
}

func NewTagService(repo *repository.TagRepo, c *cache.Cache, logger *slog.Logger) TagService {
	return &tagService{repo: repo, cache: c, logger: logger}
}

func (s *tagService) GetAllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if ok, err := s.cache.GetJSON(ctx, tagsCacheKey, &tags); err != nil {
		s.logger.Warn("tag cache read failed", "error", err)
	} else if ok {
		return tags, nil
	}

	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}

	if err := s.cache.SetJSON(ctx, tagsCacheKey, tags); err != nil {
		s.logger.Warn("tag cache write failed", "error", err)
	}
	return tags, nil
}

func (s *tagService) GetTagByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) CreateTag(ctx context.Context, tag *models.Tag) error {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return ErrTagEmptyName
	}
	if tag.Slug == "" {
		tag.Slug = generateSlug(tag.Name)
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		if repository.IsDuplicateKey(err) {
			return ErrTagConflict
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *tagService) UpdateTag(ctx context.Context, tag *models.Tag) error {
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return ErrTagEmptyName
	}
	if tag.Slug == "" {
		tag.Slug = generateSlug(tag.Name)
	}
	if err := s.repo.Update(ctx, tag); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrTagNotFound
		case repository.IsDuplicateKey(err):
			return ErrTagConflict
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *tagService) DeleteTag(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *tagService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidatePrefix(ctx, "tags:"); err != nil {
		s.logger.Warn("tag cache invalidation failed", "error", err)
	}
}
