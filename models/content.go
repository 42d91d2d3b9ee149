package models

import "time"

// Content types. A Content links to exactly one concrete artifact depending
// on its type: article→Article, spotify→Spotify, radar/best/video→List,
// reunion→Reunion. photos has no linked entity.
const (
	ContentTypeArticle = "article"
	ContentTypePhotos  = "photos"
	ContentTypeSpotify = "spotify"
	ContentTypeRadar   = "radar"
	ContentTypeBest    = "best"
	ContentTypeVideo   = "video"
	ContentTypeReunion = "reunion"
)

// Content is the unifying editorial-calendar record. A nil PublicationDate
// means the item sits in the backlog; that single field drives the
// published/backlog state of every linked entity.
type Content struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Type  string `json:"type" gorm:"index;not null"`
	Name  string `json:"name" gorm:"not null"`
	Notes string `json:"notes,omitempty" gorm:"type:text"`

	PublicationDate *time.Time `json:"publication_date,omitempty" gorm:"index"`
	CloseDate       *time.Time `json:"close_date,omitempty"`
	ListDate        *time.Time `json:"list_date,omitempty"`

	AuthorID uint  `json:"author_id" gorm:"index;not null"`
	Author   *User `json:"author,omitempty"`

	ListID    *uint    `json:"list_id,omitempty" gorm:"uniqueIndex"`
	List      *List    `json:"list,omitempty"`
	SpotifyID *uint    `json:"spotify_id,omitempty" gorm:"uniqueIndex"`
	Spotify   *Spotify `json:"spotify,omitempty"`
	ArticleID *uint    `json:"article_id,omitempty" gorm:"uniqueIndex"`
	Article   *Article `json:"article,omitempty"`
	ReunionID *uint    `json:"reunion_id,omitempty" gorm:"index"`
	Reunion   *Reunion `json:"reunion,omitempty"`
}

// TableName sets the explicit table name.
func (Content) TableName() string {
	return "contents"
}
