package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

// ReunionsService handles meetings and their agenda points. Removal is the
// interesting part: a reunion that belongs to a Content is removed through
// ContentsService so the calendar entry disappears with it.
type ReunionsService struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Contents *ContentsService
}

// NewReunionsService builds a ReunionsService.
func NewReunionsService(db *gorm.DB, logger *zap.Logger, contents *ContentsService) *ReunionsService {
	return &ReunionsService{DB: db, Logger: logger, Contents: contents}
}

// ReunionInput carries the updatable fields.
type ReunionInput struct {
	Title       *string      `json:"title"`
	Date        NullableTime `json:"date"`
	Description *string      `json:"description"`
}

// PointInput carries one agenda item.
type PointInput struct {
	Title string `json:"title" binding:"required"`
	Order int    `json:"order"`
	Done  *bool  `json:"done"`
}

// List returns all reunions, newest first.
func (s *ReunionsService) List() ([]models.Reunion, error) {
	var reunions []models.Reunion
	if err := s.DB.Preload("Points").Order("date desc").Find(&reunions).Error; err != nil {
		return nil, fmt.Errorf("list reunions: %w", err)
	}
	return reunions, nil
}

// Get returns one reunion with its points.
func (s *ReunionsService) Get(id uint) (*models.Reunion, error) {
	var reunion models.Reunion
	if err := s.DB.Preload("Points").First(&reunion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReunionNotFound
		}
		return nil, fmt.Errorf("get reunion: %w", err)
	}
	return &reunion, nil
}

// Create inserts a new reunion.
func (s *ReunionsService) Create(input ReunionInput) (*models.Reunion, error) {
	reunion := models.Reunion{Date: input.Date.Value}
	if input.Title != nil {
		reunion.Title = *input.Title
	}
	if input.Description != nil {
		reunion.Description = *input.Description
	}
	if err := s.DB.Create(&reunion).Error; err != nil {
		return nil, fmt.Errorf("create reunion: %w", err)
	}
	return &reunion, nil
}

// Update applies plain field changes.
func (s *ReunionsService) Update(id uint, input ReunionInput) (*models.Reunion, error) {
	var reunion models.Reunion
	if err := s.DB.First(&reunion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReunionNotFound
		}
		return nil, fmt.Errorf("get reunion: %w", err)
	}

	if input.Title != nil {
		reunion.Title = *input.Title
	}
	if input.Description != nil {
		reunion.Description = *input.Description
	}
	if input.Date.Set {
		reunion.Date = input.Date.Value
	}
	if err := s.DB.Save(&reunion).Error; err != nil {
		return nil, fmt.Errorf("save reunion: %w", err)
	}
	return &reunion, nil
}

// Remove deletes a reunion. When a Content references it, removal is
// delegated to ContentsService so the reunion goes away via the cascade and
// the calendar entry is not orphaned.
func (s *ReunionsService) Remove(id uint) error {
	var reunion models.Reunion
	if err := s.DB.First(&reunion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReunionNotFound
		}
		return fmt.Errorf("get reunion: %w", err)
	}

	var content models.Content
	err := s.DB.Where("reunion_id = ?", id).First(&content).Error
	if err == nil {
		return s.Contents.Remove(content.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find content for reunion: %w", err)
	}

	if err := s.DB.Where("reunion_id = ?", id).Delete(&models.Point{}).Error; err != nil {
		return fmt.Errorf("delete points: %w", err)
	}
	if err := s.DB.Delete(&models.Reunion{}, id).Error; err != nil {
		return fmt.Errorf("delete reunion: %w", err)
	}
	return nil
}

// AddPoint appends an agenda item to the reunion.
func (s *ReunionsService) AddPoint(reunionID uint, input PointInput) (*models.Point, error) {
	if _, err := s.Get(reunionID); err != nil {
		return nil, err
	}
	point := models.Point{ReunionID: reunionID, Title: input.Title, Order: input.Order}
	if input.Done != nil {
		point.Done = *input.Done
	}
	if err := s.DB.Create(&point).Error; err != nil {
		return nil, fmt.Errorf("create point: %w", err)
	}
	return &point, nil
}

// UpdatePoint edits an agenda item.
func (s *ReunionsService) UpdatePoint(id uint, input PointInput) (*models.Point, error) {
	var point models.Point
	if err := s.DB.First(&point, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReunionNotFound
		}
		return nil, fmt.Errorf("get point: %w", err)
	}
	if input.Title != "" {
		point.Title = input.Title
	}
	if input.Order != 0 {
		point.Order = input.Order
	}
	if input.Done != nil {
		point.Done = *input.Done
	}
	if err := s.DB.Save(&point).Error; err != nil {
		return nil, fmt.Errorf("save point: %w", err)
	}
	return &point, nil
}
