package models

import "time"

// Article statuses. Enum order is advisory; only the ready and published
// transitions are validated by the service.
const (
	ArticleStatusNotStarted = "not_started"
	ArticleStatusWriting    = "writing"
	ArticleStatusEditing    = "editing"
	ArticleStatusReady      = "ready"
	ArticleStatusPublished  = "published"
)

// Article is an editorial article tracked through the writing workflow.
type Article struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name   string `json:"name" gorm:"not null"`
	Status string `json:"status" gorm:"index;default:'not_started'"`
	Type   string `json:"type,omitempty" gorm:"index"` // cronica, entrevista, reportaje
	Link   string `json:"link,omitempty"`

	UpdateDate *time.Time `json:"update_date,omitempty"`

	UserID   *uint `json:"user_id,omitempty" gorm:"index"` // assigned writer
	User     *User `json:"user,omitempty"`
	EditorID *uint `json:"editor_id,omitempty" gorm:"index"`
	Editor   *User `json:"editor,omitempty"`
}

// TableName sets the explicit table name.
func (Article) TableName() string {
	return "articles"
}
