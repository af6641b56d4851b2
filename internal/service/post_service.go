package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/locale"
	"github.com/devfolio/internal/render"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrDuplicateSlug  = errors.New("post slug already exists")
	ErrSlugRequired   = errors.New("post slug is required")
	ErrSlugInvalid    = errors.New("post slug must be url-safe")
	ErrNoTranslations = errors.New("post needs at least one translation")
)

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const excerptRuneLimit = 150

// PostService is the repository boundary for blog posts. Every operation is
// a single-row round trip; concurrent saves are last write wins.
type PostService struct {
	db *gorm.DB
}

// PostInput carries the whole aggregate the editor saves at once.
type PostInput struct {
	Slug         string
	Translations db.TranslationMap
}

// PostSummary is the list-view projection of a post, derived from its
// preferred translation.
type PostSummary struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Date      string    `json:"date"`
	Author    string    `json:"author"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags"`
	Excerpt   string    `json:"excerpt"`
	Languages []string  `json:"languages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// List returns summaries of all displayable posts, newest first. Rows with
// no translations are invalid and are skipped rather than surfaced. An empty
// store yields an empty slice, not an error.
func (s *PostService) List() ([]PostSummary, error) {
	var posts []db.BlogPost
	if err := s.db.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	summaries := make([]PostSummary, 0, len(posts))
	for i := range posts {
		if len(posts[i].Translations) == 0 {
			continue
		}
		summaries = append(summaries, Summarize(posts[i]))
	}
	return summaries, nil
}

// GetBySlug fetches one post. A missing row and a row with zero translations
// both report ErrPostNotFound; store failures surface as wrapped errors.
func (s *PostService) GetBySlug(slug string) (*db.BlogPost, error) {
	var post db.BlogPost
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if len(post.Translations) == 0 {
		return nil, ErrPostNotFound
	}
	return &post, nil
}

// Create validates and persists a new post aggregate. The repository stamps
// created_at and updated_at; the caller never supplies them.
func (s *PostService) Create(input PostInput) (*db.BlogPost, error) {
	slug, err := normalizeSlug(input.Slug)
	if err != nil {
		return nil, err
	}
	if len(input.Translations) == 0 {
		return nil, ErrNoTranslations
	}

	var existing db.BlogPost
	err = s.db.Where("slug = ?", slug).First(&existing).Error
	switch {
	case err == nil:
		return nil, ErrDuplicateSlug
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("check slug: %w", err)
	}

	post := db.BlogPost{
		Slug:         slug,
		Translations: input.Translations,
	}
	if err := s.db.Create(&post).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// Update replaces the whole translations aggregate of an existing post.
// The slug itself is immutable once created.
func (s *PostService) Update(slug string, input PostInput) (*db.BlogPost, error) {
	if len(input.Translations) == 0 {
		return nil, ErrNoTranslations
	}

	var post db.BlogPost
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}

	post.Translations = input.Translations
	if err := s.db.Save(&post).Error; err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &post, nil
}

// Delete removes a post by slug. Deleting a slug that does not exist is not
// an error, so the operation is idempotent.
func (s *PostService) Delete(slug string) error {
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).Delete(&db.BlogPost{}).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Summarize derives the list projection from a post's preferred translation:
// thumbnail from the first image section, excerpt from the introduction,
// languages upper-cased for display.
func Summarize(post db.BlogPost) PostSummary {
	translation, _ := post.PreferredTranslation()

	title := strings.TrimSpace(translation.Title)
	if title == "" {
		title = "Untitled"
	}

	languages := make([]string, 0, len(post.Translations))
	for _, code := range post.Languages() {
		languages = append(languages, locale.DisplayCode(code))
	}

	tags := translation.Metadata.Tags
	if tags == nil {
		tags = []string{}
	}

	return PostSummary{
		Slug:      post.Slug,
		Title:     title,
		Thumbnail: firstImageSrc(translation.Sections),
		Date:      translation.Metadata.Date,
		Author:    translation.Metadata.Author,
		Category:  translation.Metadata.Category,
		Tags:      tags,
		Excerpt:   deriveExcerpt(translation.Sections),
		Languages: languages,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func firstImageSrc(sections []db.Section) string {
	for _, sec := range sections {
		if sec.Type != db.SectionTypeImage {
			continue
		}
		for _, img := range sec.Images {
			if src := strings.TrimSpace(img.Src); src != "" {
				return src
			}
		}
	}
	return ""
}

func deriveExcerpt(sections []db.Section) string {
	for _, sec := range sections {
		if sec.Type != db.SectionTypeIntroduction {
			continue
		}
		plain := strings.Join(strings.Fields(render.StripTags(sec.Content)), " ")
		if plain == "" {
			return ""
		}
		runes := []rune(plain)
		if len(runes) <= excerptRuneLimit {
			return plain
		}
		return string(runes[:excerptRuneLimit]) + "..."
	}
	return ""
}

func normalizeSlug(raw string) (string, error) {
	slug := strings.TrimSpace(raw)
	if slug == "" {
		return "", ErrSlugRequired
	}
	if !slugPattern.MatchString(slug) {
		return "", ErrSlugInvalid
	}
	return slug, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
