package models

import "time"

// Rating is one user's score for one disc.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  uint    `json:"user_id" gorm:"index:idx_ratings_user_disc,unique;not null"`
	DiscID  uint    `json:"disc_id" gorm:"index:idx_ratings_user_disc,unique;not null"`
	Score   float64 `json:"score" gorm:"not null"`
	Comment string  `json:"comment,omitempty" gorm:"type:text"`

	User *User `json:"user,omitempty"`
	Disc *Disc `json:"disc,omitempty"`
}

// TableName sets the explicit table name.
func (Rating) TableName() string {
	return "ratings"
}
