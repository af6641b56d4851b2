package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameMissing   = errors.New("project name is required")
	ErrProjectSlugInvalid   = errors.New("project slug must be url-safe")
	ErrProjectDuplicateSlug = errors.New("project slug already exists")
)

// ProjectService maintains the portfolio project cards.
type ProjectService struct {
	db *gorm.DB
}

// ProjectInput represents fields accepted when creating or updating a project.
type ProjectInput struct {
	Slug        string
	Name        string
	Summary     string
	Description string
	TechStack   []string
	RepoURL     string
	DemoURL     string
	CoverURL    string
	Status      string
	SortOrder   int
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// ListPublished returns published projects in display order.
func (s *ProjectService) ListPublished() ([]db.Project, error) {
	var items []db.Project
	if err := s.db.Where("status = ?", GalleryStatusPublished).
		Order("sort_order desc").Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// ListAll returns every project for the admin surface.
func (s *ProjectService) ListAll() ([]db.Project, error) {
	var items []db.Project
	if err := s.db.Order("sort_order desc").Order("created_at desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// GetBySlug fetches one project.
func (s *ProjectService) GetBySlug(slug string) (*db.Project, error) {
	var item db.Project
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &item, nil
}

// Create persists a new project.
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	slug, name, err := validateProjectInput(input)
	if err != nil {
		return nil, err
	}

	var existing db.Project
	err = s.db.Where("slug = ?", slug).First(&existing).Error
	switch {
	case err == nil:
		return nil, ErrProjectDuplicateSlug
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("check project slug: %w", err)
	}

	item := db.Project{
		Slug:        slug,
		Name:        name,
		Summary:     strings.TrimSpace(input.Summary),
		Description: input.Description,
		TechStack:   normalizeTechStack(input.TechStack),
		RepoURL:     strings.TrimSpace(input.RepoURL),
		DemoURL:     strings.TrimSpace(input.DemoURL),
		CoverURL:    strings.TrimSpace(input.CoverURL),
		Status:      defaultStatus(input.Status),
		SortOrder:   input.SortOrder,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &item, nil
}

// Update applies changes to an existing project. The slug stays fixed.
func (s *ProjectService) Update(slug string, input ProjectInput) (*db.Project, error) {
	item, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameMissing
	}

	item.Name = name
	item.Summary = strings.TrimSpace(input.Summary)
	item.Description = input.Description
	item.TechStack = normalizeTechStack(input.TechStack)
	item.RepoURL = strings.TrimSpace(input.RepoURL)
	item.DemoURL = strings.TrimSpace(input.DemoURL)
	item.CoverURL = strings.TrimSpace(input.CoverURL)
	item.Status = defaultStatus(input.Status)
	item.SortOrder = input.SortOrder

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return item, nil
}

// Delete removes a project by slug; unknown slugs are not an error.
func (s *ProjectService) Delete(slug string) error {
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).Delete(&db.Project{}).Error; err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func validateProjectInput(input ProjectInput) (slug, name string, err error) {
	name = strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", ErrProjectNameMissing
	}
	slug = strings.TrimSpace(input.Slug)
	if slug == "" || !slugPattern.MatchString(slug) {
		return "", "", ErrProjectSlugInvalid
	}
	return slug, name, nil
}

func normalizeTechStack(stack []string) db.StringList {
	out := make(db.StringList, 0, len(stack))
	for _, item := range stack {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultStatus(status string) string {
	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		return GalleryStatusPublished
	}
	return trimmed
}
