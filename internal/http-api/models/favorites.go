package models

import "time"

type FavoriteRecipe struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:uniq_user_favorite" json:"user_id"`
	RecipeID int64     `gorm:"not null;uniqueIndex:uniq_user_favorite" json:"recipe_id"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	// Associations
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}
