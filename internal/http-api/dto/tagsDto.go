package dto

import "foodgram/internal/http-api/models"

// CreateTagDTO for POST /api/tags; slug is derived from name when omitted
type CreateTagDTO struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
	Slug  string `json:"slug" binding:"omitempty,max=200"`
}

// UpdateTagDTO for PATCH /api/tags/:id (partial updates allowed)
type UpdateTagDTO struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty" binding:"omitempty,hexcolor"`
	Slug  *string `json:"slug,omitempty"`
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func (d CreateTagDTO) ToModel() models.Tag {
	return models.Tag{
		Name:  d.Name,
		Color: d.Color,
		Slug:  d.Slug,
	}
}

func (d UpdateTagDTO) ApplyTo(t *models.Tag) {
	if d.Name != nil {
		t.Name = *d.Name
	}
	if d.Color != nil {
		t.Color = *d.Color
	}
	if d.Slug != nil {
		t.Slug = *d.Slug
	}
}

func TagFromModel(t models.Tag) TagResponse {
	return TagResponse{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}
