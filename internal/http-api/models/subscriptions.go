package models

import "time"

// UserID follows AuthorID; self-subscription is rejected in the service layer
type Subscription struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:uniq_subscription" json:"user_id"`
	AuthorID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_subscription" json:"author_id"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
