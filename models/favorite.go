package models

import "time"

// Favorite marks a disc as a favorite of a user.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `json:"user_id" gorm:"index:idx_favorites_user_disc,unique;not null"`
	DiscID uint `json:"disc_id" gorm:"index:idx_favorites_user_disc,unique;not null"`

	User *User `json:"user,omitempty"`
	Disc *Disc `json:"disc,omitempty"`
}

// TableName sets the explicit table name.
func (Favorite) TableName() string {
	return "favorites"
}
