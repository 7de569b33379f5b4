package service

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/http-api/repository"
)

type ShoppingListService interface {
	// BuildShoppingList renders the user's aggregated cart as plain text,
	// one "<name> (<unit>) - <total>" line per ingredient. An empty cart
	// yields an empty string.
	BuildShoppingList(ctx context.Context, userID string) (string, error)
}

type shoppingListService struct {
	relationRepo repository.RelationRepository
}

func NewShoppingListService(relationRepo repository.RelationRepository) ShoppingListService {
	return &shoppingListService{relationRepo: relationRepo}
}

func (s *shoppingListService) BuildShoppingList(ctx context.Context, userID string) (string, error) {
	lines, err := s.relationRepo.AggregateCart(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate shopping cart: %w", err)
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%s) - %d", line.Name, line.Unit, line.Total)
	}
	return b.String(), nil
}
