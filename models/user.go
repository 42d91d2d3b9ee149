package models

import "time"

// User is a member of the editorial team.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `json:"name" gorm:"not null"`
	Email string `json:"email" gorm:"uniqueIndex;not null"`
	Role  string `json:"role,omitempty" gorm:"index"` // redactor, editor, admin
}

// TableName sets the explicit table name.
func (User) TableName() string {
	return "users"
}
