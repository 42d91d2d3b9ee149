package models

import (
	"time"

	"gorm.io/datatypes"
)

// DiscLinkNotFound is the sentinel stored in Disc.Link when every search
// source has been exhausted without a result. The daily job picks those
// discs up again on the next run.
const DiscLinkNotFound = "not_found"

// Disc is a release (album, EP, single) by an artist.
type Disc struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string     `json:"name" gorm:"not null"`
	ArtistID    uint       `json:"artist_id" gorm:"index;not null"`
	Artist      *Artist    `json:"artist,omitempty"`
	Genre       string     `json:"genre,omitempty" gorm:"index"`
	ReleaseDate *time.Time `json:"release_date,omitempty" gorm:"index"`

	// Filled in by the daily link job.
	Link     string `json:"link,omitempty"`
	Image    string `json:"image,omitempty"`
	Verified bool   `json:"verified" gorm:"default:false"`

	// Raw payload of the provider hit that produced the link.
	SearchEvidence datatypes.JSON `json:"search_evidence,omitempty" gorm:"type:jsonb"`

	// Cover art mirrored to S3, when configured.
	CoverS3Link string `json:"cover_s3_link,omitempty"`
}

// NeedsLink reports whether the daily job should still try to find a link.
func (d *Disc) NeedsLink() bool {
	return d.Link == "" || d.Link == DiscLinkNotFound
}

// TableName sets the explicit table name.
func (Disc) TableName() string {
	return "discs"
}
