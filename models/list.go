package models

import "time"

// List types.
const (
	ListTypeMonth   = "month"
	ListTypeWeek    = "week"
	ListTypeSpecial = "special"
	ListTypeVideo   = "video"
)

// List statuses. The production schema went back and forth on these names;
// this set is the one the services rely on.
const (
	ListStatusAbierta   = "abierta"
	ListStatusCerrada   = "cerrada"
	ListStatusPublicada = "publicada"
)

// List is a curated weekly/monthly/video list of discs.
type List struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name   string `json:"name" gorm:"not null"`
	Type   string `json:"type" gorm:"index;not null"`
	Status string `json:"status" gorm:"index;default:'abierta'"`

	ListDate    *time.Time `json:"list_date,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty" gorm:"index"`
	CloseDate   *time.Time `json:"close_date,omitempty"`

	Asignations []Asignation `json:"asignations,omitempty"`
	Links       []ListLink   `json:"links,omitempty"`
}

// Asignation is a disc-review task assigned to a user within a list.
type Asignation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ListID uint `json:"list_id" gorm:"index;not null"`
	DiscID uint `json:"disc_id" gorm:"index;not null"`
	UserID uint `json:"user_id" gorm:"index;not null"`
	Done   bool `json:"done" gorm:"default:false"`

	Disc *Disc `json:"disc,omitempty"`
	User *User `json:"user,omitempty"`
}

// ListLink is an external link attached to a list.
type ListLink struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ListID uint   `json:"list_id" gorm:"index;not null"`
	Name   string `json:"name"`
	URL    string `json:"url" gorm:"not null"`
}

// TableName sets the explicit table name.
func (List) TableName() string {
	return "lists"
}

// TableName sets the explicit table name.
func (Asignation) TableName() string {
	return "asignations"
}

// TableName sets the explicit table name.
func (ListLink) TableName() string {
	return "list_links"
}
