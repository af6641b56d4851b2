package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProfileContactNotFound     = errors.New("profile contact not found")
	ErrProfileContactInvalidInput = errors.New("invalid profile contact input")
)

// ProfileService maintains the contact and social rows shown on the site.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a ProfileService instance.
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// ProfileContactInput describes the settable fields of a contact row.
// Sort and Visible are pointers so callers can distinguish "unset".
type ProfileContactInput struct {
	Platform string
	Label    string
	Value    string
	Link     string
	Icon     string
	Sort     *int
	Visible  *bool
}

// ListContacts returns contact rows in display order. When includeHidden is
// false, rows with Visible=false are filtered out.
func (s *ProfileService) ListContacts(includeHidden bool) ([]db.ProfileContact, error) {
	query := s.db.Model(&db.ProfileContact{})
	if !includeHidden {
		query = query.Where("visible = ?", true)
	}

	var items []db.ProfileContact
	if err := query.Order("sort ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list profile contacts: %w", err)
	}
	return items, nil
}

// GetContact fetches one contact row by id.
func (s *ProfileService) GetContact(id uint) (*db.ProfileContact, error) {
	var item db.ProfileContact
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileContactNotFound
		}
		return nil, fmt.Errorf("get profile contact: %w", err)
	}
	return &item, nil
}

// CreateContact adds a contact row, appending it to the end of the list when
// no sort value is given.
func (s *ProfileService) CreateContact(input ProfileContactInput) (*db.ProfileContact, error) {
	if err := validateProfileContactInput(input); err != nil {
		return nil, err
	}

	sortValue, err := s.resolveSort(input.Sort)
	if err != nil {
		return nil, err
	}

	visible := true
	if input.Visible != nil {
		visible = *input.Visible
	}

	contact := db.ProfileContact{
		Platform: strings.TrimSpace(input.Platform),
		Label:    strings.TrimSpace(input.Label),
		Value:    strings.TrimSpace(input.Value),
		Link:     strings.TrimSpace(input.Link),
		Icon:     strings.TrimSpace(input.Icon),
		Sort:     sortValue,
		Visible:  visible,
	}

	if err := s.db.Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("create profile contact: %w", err)
	}
	return &contact, nil
}

// UpdateContact applies changes to an existing contact row.
func (s *ProfileService) UpdateContact(id uint, input ProfileContactInput) (*db.ProfileContact, error) {
	contact, err := s.GetContact(id)
	if err != nil {
		return nil, err
	}

	if err := validateProfileContactInput(input); err != nil {
		return nil, err
	}

	contact.Platform = strings.TrimSpace(input.Platform)
	contact.Label = strings.TrimSpace(input.Label)
	contact.Value = strings.TrimSpace(input.Value)
	contact.Link = strings.TrimSpace(input.Link)
	contact.Icon = strings.TrimSpace(input.Icon)
	if input.Sort != nil {
		contact.Sort = *input.Sort
	}
	if input.Visible != nil {
		contact.Visible = *input.Visible
	}

	if err := s.db.Save(contact).Error; err != nil {
		return nil, fmt.Errorf("update profile contact: %w", err)
	}
	return contact, nil
}

// DeleteContact removes a contact row; unknown ids are not an error.
func (s *ProfileService) DeleteContact(id uint) error {
	if err := s.db.Delete(&db.ProfileContact{}, id).Error; err != nil {
		return fmt.Errorf("delete profile contact: %w", err)
	}
	return nil
}

func (s *ProfileService) resolveSort(sort *int) (int, error) {
	if sort != nil {
		return *sort, nil
	}

	var max *int
	if err := s.db.Model(&db.ProfileContact{}).Select("MAX(sort)").Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("resolve contact sort: %w", err)
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func validateProfileContactInput(input ProfileContactInput) error {
	if strings.TrimSpace(input.Platform) == "" ||
		strings.TrimSpace(input.Label) == "" ||
		strings.TrimSpace(input.Value) == "" {
		return ErrProfileContactInvalidInput
	}
	return nil
}
