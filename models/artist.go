package models

import "time"

// Artist is a band or solo act covered by the magazine.
type Artist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Country     string `json:"country,omitempty" gorm:"index"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	Discs []Disc `json:"discs,omitempty"`
}

// TableName sets the explicit table name.
func (Artist) TableName() string {
	return "artists"
}
