package dto

import "foodgram/internal/http-api/service"

// SubscriptionResponse: an author the viewer follows plus their recent
// recipes; recipes_count keeps the full total when the list is truncated
type SubscriptionResponse struct {
	ID           string                `json:"id"`
	Email        string                `json:"email"`
	Username     string                `json:"username"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	IsSubscribed bool                  `json:"is_subscribed"`
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// SubscriptionListResponse: paginated subscription listing
type SubscriptionListResponse struct {
	Count   int64                  `json:"count"`
	Results []SubscriptionResponse `json:"results"`
}

func SubscriptionFromView(v *service.SubscriptionView) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:           v.Author.ID,
		Email:        v.Author.Email,
		Username:     v.Author.Username,
		FirstName:    v.Author.FirstName,
		LastName:     v.Author.LastName,
		IsSubscribed: true,
		Recipes:      make([]RecipeShortResponse, 0, len(v.Recipes)),
		RecipesCount: v.RecipesCount,
	}
	for i := range v.Recipes {
		resp.Recipes = append(resp.Recipes, RecipeShortFromModel(&v.Recipes[i]))
	}
	return resp
}

func SubscriptionListFromViews(views []service.SubscriptionView, total int64) SubscriptionListResponse {
	out := SubscriptionListResponse{Count: total, Results: make([]SubscriptionResponse, 0, len(views))}
	for i := range views {
		out.Results = append(out.Results, SubscriptionFromView(&views[i]))
	}
	return out
}
