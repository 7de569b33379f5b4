package dto

import (
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/service"
)

// mediaURLPrefix is where the static file route serves stored recipe images.
const mediaURLPrefix = "/media/recipes/"

func imageURL(name string) string {
	if name == "" {
		return ""
	}
	return mediaURLPrefix + name
}

// IngredientAmountDTO: one ingredient reference with its quantity
type IngredientAmountDTO struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount" binding:"required"`
}

// CreateRecipeDTO for POST /api/recipes; image is a base64 data URI
type CreateRecipeDTO struct {
	Name        string                `json:"name" binding:"required,max=200"`
	Text        string                `json:"text" binding:"required"`
	CookingTime int                   `json:"cooking_time" binding:"required"`
	Image       string                `json:"image" binding:"required"`
	Tags        []int64               `json:"tags"`
	Ingredients []IngredientAmountDTO `json:"ingredients"`
}

// UpdateRecipeDTO for PATCH /api/recipes/:id; omitting image keeps the
// stored file, everything else is resubmitted in full
type UpdateRecipeDTO struct {
	Name        string                `json:"name" binding:"required,max=200"`
	Text        string                `json:"text" binding:"required"`
	CookingTime int                   `json:"cooking_time" binding:"required"`
	Image       string                `json:"image"`
	Tags        []int64               `json:"tags"`
	Ingredients []IngredientAmountDTO `json:"ingredients"`
}

// RecipeIngredientResponse: ingredient catalog row flattened with its amount
type RecipeIngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               int64                      `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeShortResponse: compact form used by favorite, shopping cart and
// subscription payloads
type RecipeShortResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeListResponse: paginated recipe listing
type RecipeListResponse struct {
	Count   int64            `json:"count"`
	Results []RecipeResponse `json:"results"`
}

func (d CreateRecipeDTO) ToInput() service.RecipeInput {
	return service.RecipeInput{
		Name:        d.Name,
		Text:        d.Text,
		Image:       d.Image,
		CookingTime: d.CookingTime,
		TagIDs:      d.Tags,
		Ingredients: toIngredientAmounts(d.Ingredients),
	}
}

func (d UpdateRecipeDTO) ToInput() service.RecipeInput {
	return service.RecipeInput{
		Name:        d.Name,
		Text:        d.Text,
		Image:       d.Image,
		CookingTime: d.CookingTime,
		TagIDs:      d.Tags,
		Ingredients: toIngredientAmounts(d.Ingredients),
	}
}

func toIngredientAmounts(items []IngredientAmountDTO) []service.IngredientAmount {
	out := make([]service.IngredientAmount, 0, len(items))
	for _, it := range items {
		out = append(out, service.IngredientAmount{ID: it.ID, Amount: it.Amount})
	}
	return out
}

func RecipeFromView(v *service.RecipeView) RecipeResponse {
	r := v.Recipe
	resp := RecipeResponse{
		ID:               r.ID,
		Tags:             make([]TagResponse, 0, len(r.Tags)),
		Ingredients:      make([]RecipeIngredientResponse, 0, len(r.Ingredients)),
		IsFavorited:      v.IsFavorited,
		IsInShoppingCart: v.IsInShoppingCart,
		Name:             r.Name,
		Image:            imageURL(r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if r.Author != nil {
		resp.Author = FromUser(r.Author, v.AuthorIsSubscribed)
	}
	for _, t := range r.Tags {
		resp.Tags = append(resp.Tags, TagFromModel(t))
	}
	for _, ri := range r.Ingredients {
		row := RecipeIngredientResponse{
			ID:     ri.IngredientID,
			Amount: ri.Amount,
		}
		if ri.Ingredient != nil {
			row.Name = ri.Ingredient.Name
			row.MeasurementUnit = ri.Ingredient.MeasurementUnit
		}
		resp.Ingredients = append(resp.Ingredients, row)
	}
	return resp
}

func RecipeListFromViews(views []service.RecipeView, total int64) RecipeListResponse {
	out := RecipeListResponse{Count: total, Results: make([]RecipeResponse, 0, len(views))}
	for i := range views {
		out.Results = append(out.Results, RecipeFromView(&views[i]))
	}
	return out
}

func RecipeShortFromModel(r *models.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       imageURL(r.Image),
		CookingTime: r.CookingTime,
	}
}
