package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

// ListsService handles curated disc lists, their asignations and links.
type ListsService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewListsService builds a ListsService.
func NewListsService(db *gorm.DB, logger *zap.Logger) *ListsService {
	return &ListsService{DB: db, Logger: logger}
}

// ListFilter describes the listing filters.
type ListFilter struct {
	Query  string
	Type   string
	Status string
	Limit  int
	Offset int
}

// ListInput carries the updatable fields; nil pointers are left untouched.
type ListInput struct {
	Name        *string      `json:"name"`
	Type        *string      `json:"type"`
	Status      *string      `json:"status"`
	ListDate    NullableTime `json:"list_date"`
	ReleaseDate NullableTime `json:"release_date"`
	CloseDate   NullableTime `json:"close_date"`
}

// AsignationInput assigns a disc review to a user within a list.
type AsignationInput struct {
	DiscID uint  `json:"disc_id" binding:"required"`
	UserID uint  `json:"user_id" binding:"required"`
	Done   *bool `json:"done"`
}

// ListLinkInput attaches an external link to a list.
type ListLinkInput struct {
	Name string `json:"name"`
	URL  string `json:"url" binding:"required"`
}

// List returns lists matching the filter.
func (s *ListsService) List(filter ListFilter) ([]models.List, error) {
	query := s.DB.Model(&models.List{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var lists []models.List
	if err := query.Order("release_date desc").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return lists, nil
}

// Get returns one list with asignations and links loaded.
func (s *ListsService) Get(id uint) (*models.List, error) {
	var list models.List
	err := s.DB.
		Preload("Asignations").
		Preload("Asignations.Disc").
		Preload("Asignations.User").
		Preload("Links").
		First(&list, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("get list: %w", err)
	}
	return &list, nil
}

// Create inserts a new list.
func (s *ListsService) Create(input ListInput) (*models.List, error) {
	list := models.List{Type: models.ListTypeWeek, Status: models.ListStatusAbierta}
	applyListInput(&list, input)
	if err := s.DB.Create(&list).Error; err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	return &list, nil
}

// Update applies plain field changes.
func (s *ListsService) Update(id uint, input ListInput) (*models.List, error) {
	var list models.List
	if err := s.DB.First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("get list: %w", err)
	}

	applyListInput(&list, input)
	if err := s.DB.Save(&list).Error; err != nil {
		return nil, fmt.Errorf("save list: %w", err)
	}
	return &list, nil
}

// Remove deletes the list together with its asignations and links.
func (s *ListsService) Remove(id uint) error {
	var list models.List
	if err := s.DB.First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		return fmt.Errorf("get list: %w", err)
	}

	if err := s.DB.Where("list_id = ?", id).Delete(&models.Asignation{}).Error; err != nil {
		return fmt.Errorf("delete asignations: %w", err)
	}
	if err := s.DB.Where("list_id = ?", id).Delete(&models.ListLink{}).Error; err != nil {
		return fmt.Errorf("delete list links: %w", err)
	}
	if err := s.DB.Delete(&models.List{}, id).Error; err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// AddAsignation assigns a disc review to a user within the list.
func (s *ListsService) AddAsignation(listID uint, input AsignationInput) (*models.Asignation, error) {
	if _, err := s.Get(listID); err != nil {
		return nil, err
	}
	asignation := models.Asignation{
		ListID: listID,
		DiscID: input.DiscID,
		UserID: input.UserID,
	}
	if input.Done != nil {
		asignation.Done = *input.Done
	}
	if err := s.DB.Create(&asignation).Error; err != nil {
		return nil, fmt.Errorf("create asignation: %w", err)
	}
	return &asignation, nil
}

// UpdateAsignation toggles or reassigns an asignation.
func (s *ListsService) UpdateAsignation(id uint, input AsignationInput) (*models.Asignation, error) {
	var asignation models.Asignation
	if err := s.DB.First(&asignation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAsignationNotFound
		}
		return nil, fmt.Errorf("get asignation: %w", err)
	}

	if input.DiscID != 0 {
		asignation.DiscID = input.DiscID
	}
	if input.UserID != 0 {
		asignation.UserID = input.UserID
	}
	if input.Done != nil {
		asignation.Done = *input.Done
	}
	if err := s.DB.Save(&asignation).Error; err != nil {
		return nil, fmt.Errorf("save asignation: %w", err)
	}
	return &asignation, nil
}

// RemoveAsignation deletes one asignation.
func (s *ListsService) RemoveAsignation(id uint) error {
	result := s.DB.Delete(&models.Asignation{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete asignation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAsignationNotFound
	}
	return nil
}

// AddLink attaches an external link to the list.
func (s *ListsService) AddLink(listID uint, input ListLinkInput) (*models.ListLink, error) {
	if _, err := s.Get(listID); err != nil {
		return nil, err
	}
	link := models.ListLink{ListID: listID, Name: input.Name, URL: input.URL}
	if err := s.DB.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("create list link: %w", err)
	}
	return &link, nil
}

// RemoveLink deletes one list link.
func (s *ListsService) RemoveLink(id uint) error {
	if err := s.DB.Delete(&models.ListLink{}, id).Error; err != nil {
		return fmt.Errorf("delete list link: %w", err)
	}
	return nil
}

func applyListInput(list *models.List, input ListInput) {
	if input.Name != nil {
		list.Name = *input.Name
	}
	if input.Type != nil {
		list.Type = *input.Type
	}
	if input.Status != nil {
		list.Status = *input.Status
	}
	if input.ListDate.Set {
		list.ListDate = input.ListDate.Value
	}
	if input.ReleaseDate.Set {
		list.ReleaseDate = input.ReleaseDate.Value
	}
	if input.CloseDate.Set {
		list.CloseDate = input.CloseDate.Value
	}
}
