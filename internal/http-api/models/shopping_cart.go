package models

import "time"

// same shape as FavoriteRecipe, kept as its own table so the unique
// constraints stay independent
type ShoppingCartItem struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:uniq_user_cart" json:"user_id"`
	RecipeID int64     `gorm:"not null;uniqueIndex:uniq_user_cart" json:"recipe_id"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (ShoppingCartItem) TableName() string {
	return "shopping_carts"
}
