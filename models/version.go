package models

import "time"

// Version is one entry of the release-note tracker.
type Version struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Version string    `json:"version" gorm:"uniqueIndex;not null"` // e.g. "2.4.0"
	Date    time.Time `json:"date"`
	Changes string    `json:"changes,omitempty" gorm:"type:text"`
}

// TableName sets the explicit table name.
func (Version) TableName() string {
	return "versions"
}
