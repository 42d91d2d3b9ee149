package models

import "time"

// Spotify playlist statuses. The names are kept in Spanish as the team uses
// them; para_publicar mirrors Article's ready, publicada mirrors published.
const (
	SpotifyStatusEnDesarrollo  = "en_desarrollo"
	SpotifyStatusPorActualizar = "por_actualizar"
	SpotifyStatusParaPublicar  = "para_publicar"
	SpotifyStatusPublicada     = "publicada"
	SpotifyStatusActualizada   = "actualizada"
)

// Spotify playlist types.
const (
	SpotifyTypeGenero   = "genero"
	SpotifyTypeEspecial = "especial"
	SpotifyTypeOtras    = "otras"
)

// Spotify is a curated playlist entry maintained by the team.
type Spotify struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name   string `json:"name" gorm:"not null"`
	Status string `json:"status" gorm:"index;default:'en_desarrollo'"`
	Type   string `json:"type,omitempty" gorm:"index"`
	Link   string `json:"link,omitempty"`

	UpdateDate *time.Time `json:"update_date,omitempty"`

	UserID *uint `json:"user_id,omitempty" gorm:"index"` // assigned curator
	User   *User `json:"user,omitempty"`
}

// TableName sets the explicit table name.
func (Spotify) TableName() string {
	return "spotify"
}
