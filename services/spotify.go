package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

// SpotifyService handles playlist CRUD and the status workflow, mirroring
// ArticlesService: para_publicar plays the role of ready, publicada of
// published.
type SpotifyService struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Contents *ContentsService
}

// NewSpotifyService builds a SpotifyService.
func NewSpotifyService(db *gorm.DB, logger *zap.Logger, contents *ContentsService) *SpotifyService {
	return &SpotifyService{DB: db, Logger: logger, Contents: contents}
}

// SpotifyFilter describes the listing filters. Types may carry several
// values, e.g. {genero, especial, otras} for the genres view.
type SpotifyFilter struct {
	Query       string
	Status      string
	Types       []string
	UpdatedFrom *time.Time
	UpdatedTo   *time.Time
	Limit       int
	Offset      int
}

// SpotifyInput carries the updatable fields; nil pointers are left untouched.
type SpotifyInput struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
	Type   *string `json:"type"`
	Link   *string `json:"link"`
	UserID *uint   `json:"user_id"`
}

// List returns playlists matching the filter.
func (s *SpotifyService) List(filter SpotifyFilter) ([]models.Spotify, error) {
	query := s.DB.Model(&models.Spotify{}).Preload("User")

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR link LIKE ?", like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if filter.UpdatedFrom != nil {
		query = query.Where("update_date >= ?", *filter.UpdatedFrom)
	}
	if filter.UpdatedTo != nil {
		query = query.Where("update_date <= ?", *filter.UpdatedTo)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var playlists []models.Spotify
	if err := query.Order("updated_at desc").Find(&playlists).Error; err != nil {
		return nil, fmt.Errorf("list spotify playlists: %w", err)
	}
	return playlists, nil
}

// Get returns one playlist.
func (s *SpotifyService) Get(id uint) (*models.Spotify, error) {
	var spotify models.Spotify
	if err := s.DB.Preload("User").First(&spotify, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotifyNotFound
		}
		return nil, fmt.Errorf("get spotify playlist: %w", err)
	}
	return &spotify, nil
}

// Create inserts a new playlist entry.
func (s *SpotifyService) Create(input SpotifyInput) (*models.Spotify, error) {
	spotify := models.Spotify{Status: models.SpotifyStatusEnDesarrollo}
	applySpotifyInput(&spotify, input)
	if err := s.DB.Create(&spotify).Error; err != nil {
		return nil, fmt.Errorf("create spotify playlist: %w", err)
	}
	return &spotify, nil
}

// Update applies plain field changes and runs the transition logic when the
// status moves to para_publicar or publicada.
func (s *SpotifyService) Update(id uint, input SpotifyInput) (*models.Spotify, error) {
	var spotify models.Spotify
	if err := s.DB.First(&spotify, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpotifyNotFound
		}
		return nil, fmt.Errorf("get spotify playlist: %w", err)
	}

	statusChanged := input.Status != nil && *input.Status != spotify.Status
	applySpotifyInput(&spotify, input)

	if statusChanged && spotify.Status == models.SpotifyStatusParaPublicar && spotify.UserID == nil {
		return nil, ErrNoAssignedUser
	}

	var publishedAt time.Time
	if statusChanged && spotify.Status == models.SpotifyStatusPublicada {
		publishedAt = time.Now()
		spotify.UpdateDate = &publishedAt
	}

	if err := s.DB.Save(&spotify).Error; err != nil {
		return nil, fmt.Errorf("save spotify playlist: %w", err)
	}

	if statusChanged {
		switch spotify.Status {
		case models.SpotifyStatusParaPublicar:
			if err := s.onParaPublicar(&spotify); err != nil {
				return nil, fmt.Errorf("playlist saved but content sync failed: %w", err)
			}
		case models.SpotifyStatusPublicada:
			if err := s.onPublicada(&spotify, publishedAt); err != nil {
				return nil, fmt.Errorf("playlist saved but content sync failed: %w", err)
			}
		}
	}

	return &spotify, nil
}

func (s *SpotifyService) onParaPublicar(spotify *models.Spotify) error {
	content, err := s.Contents.FindOneBySpotifyID(spotify.ID)
	if errors.Is(err, ErrContentNotFound) {
		_, err = s.Contents.CreateForSpotify(spotify)
		return err
	}
	if err != nil {
		return err
	}
	return s.Contents.MarkBacklog(content)
}

func (s *SpotifyService) onPublicada(spotify *models.Spotify, at time.Time) error {
	content, err := s.Contents.FindOneBySpotifyID(spotify.ID)
	if errors.Is(err, ErrContentNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.Contents.SetPublicationDate(content, at)
}

// Remove deletes the playlist through its linked Content when one exists.
func (s *SpotifyService) Remove(id uint) error {
	var spotify models.Spotify
	if err := s.DB.First(&spotify, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpotifyNotFound
		}
		return fmt.Errorf("get spotify playlist: %w", err)
	}

	content, err := s.Contents.FindOneBySpotifyID(spotify.ID)
	if err == nil {
		return s.Contents.Remove(content.ID)
	}
	if !errors.Is(err, ErrContentNotFound) {
		return err
	}

	if err := s.DB.Delete(&models.Spotify{}, spotify.ID).Error; err != nil {
		return fmt.Errorf("delete spotify playlist: %w", err)
	}
	return nil
}

func applySpotifyInput(spotify *models.Spotify, input SpotifyInput) {
	if input.Name != nil {
		spotify.Name = *input.Name
	}
	if input.Status != nil {
		spotify.Status = *input.Status
	}
	if input.Type != nil {
		spotify.Type = *input.Type
	}
	if input.Link != nil {
		spotify.Link = *input.Link
	}
	if input.UserID != nil {
		spotify.UserID = input.UserID
	}
}
