package models

import "time"

// Reunion is a team meeting with its agenda.
type Reunion struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string     `json:"title" gorm:"not null"`
	Date        *time.Time `json:"date,omitempty" gorm:"index"`
	Description string     `json:"description,omitempty" gorm:"type:text"`

	Points []Point `json:"points,omitempty"`
}

// Point is one agenda item of a reunion.
type Point struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReunionID uint   `json:"reunion_id" gorm:"index;not null"`
	Title     string `json:"title" gorm:"not null"`
	Order     int    `json:"order" gorm:"column:position;default:0"`
	Done      bool   `json:"done" gorm:"default:false"`
}

// TableName sets the explicit table name.
func (Reunion) TableName() string {
	return "reunions"
}

// TableName sets the explicit table name.
func (Point) TableName() string {
	return "points"
}
