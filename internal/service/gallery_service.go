package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPhotoNotFound      = errors.New("gallery photo not found")
	ErrPhotoImageMissing  = errors.New("gallery photo image is required")
	ErrPhotoStatusInvalid = errors.New("gallery photo status is invalid")
)

const (
	GalleryStatusPublished = "published"
	GalleryStatusDraft     = "draft"
)

// GalleryService handles photography gallery CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryFilter describes filters for listing gallery photos.
type GalleryFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// GalleryListResult aggregates paginated gallery results.
type GalleryListResult struct {
	Items      []db.GalleryPhoto
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// GalleryInput represents fields accepted when creating or updating a photo.
type GalleryInput struct {
	Title       string
	Description string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	Camera      string
	Lens        string
	ShotAt      string
	Status      string
	SortOrder   int
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// List returns gallery photos matching the filter, highest priority first.
func (s *GalleryService) List(filter GalleryFilter) (GalleryListResult, error) {
	result := GalleryListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 12),
	}

	query := s.db.Model(&db.GalleryPhoto{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count gallery photos: %w", err)
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("sort_order desc").Order("created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Items).Error; err != nil {
		return result, fmt.Errorf("list gallery photos: %w", err)
	}

	return result, nil
}

// ListPublished returns published photos with pagination.
func (s *GalleryService) ListPublished(page, perPage int) (GalleryListResult, error) {
	return s.List(GalleryFilter{
		Status:  GalleryStatusPublished,
		Page:    page,
		PerPage: perPage,
	})
}

// Get fetches a gallery photo by id.
func (s *GalleryService) Get(id uint) (*db.GalleryPhoto, error) {
	var item db.GalleryPhoto
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("get gallery photo: %w", err)
	}
	return &item, nil
}

// Create persists a new gallery photo. An omitted sort order appends the
// photo after the current highest one.
func (s *GalleryService) Create(input GalleryInput) (*db.GalleryPhoto, error) {
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, ErrPhotoImageMissing
	}

	status, err := normalizeGalleryStatus(input.Status)
	if err != nil {
		return nil, err
	}

	sortOrder := input.SortOrder
	if sortOrder == 0 {
		next, err := s.nextSortOrder()
		if err != nil {
			return nil, err
		}
		sortOrder = next
	}

	item := db.GalleryPhoto{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		ImageWidth:  input.ImageWidth,
		ImageHeight: input.ImageHeight,
		Camera:      strings.TrimSpace(input.Camera),
		Lens:        strings.TrimSpace(input.Lens),
		ShotAt:      strings.TrimSpace(input.ShotAt),
		Status:      status,
		SortOrder:   sortOrder,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create gallery photo: %w", err)
	}
	return &item, nil
}

// Update applies changes to an existing photo.
func (s *GalleryService) Update(id uint, input GalleryInput) (*db.GalleryPhoto, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, ErrPhotoImageMissing
	}
	status, err := normalizeGalleryStatus(input.Status)
	if err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Description = strings.TrimSpace(input.Description)
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.ImageWidth = input.ImageWidth
	item.ImageHeight = input.ImageHeight
	item.Camera = strings.TrimSpace(input.Camera)
	item.Lens = strings.TrimSpace(input.Lens)
	item.ShotAt = strings.TrimSpace(input.ShotAt)
	item.Status = status
	item.SortOrder = input.SortOrder

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update gallery photo: %w", err)
	}
	return item, nil
}

// Delete removes a photo by id; unknown ids are not an error.
func (s *GalleryService) Delete(id uint) error {
	if err := s.db.Delete(&db.GalleryPhoto{}, id).Error; err != nil {
		return fmt.Errorf("delete gallery photo: %w", err)
	}
	return nil
}

func (s *GalleryService) nextSortOrder() (int, error) {
	var max *int
	if err := s.db.Model(&db.GalleryPhoto{}).Select("MAX(sort_order)").Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("resolve sort order: %w", err)
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func normalizeGalleryStatus(status string) (string, error) {
	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		return GalleryStatusPublished, nil
	}
	if trimmed != GalleryStatusPublished && trimmed != GalleryStatusDraft {
		return "", ErrPhotoStatusInvalid
	}
	return trimmed, nil
}
