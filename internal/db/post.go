package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// SectionType discriminates the content block variants inside a translation.
type SectionType string

const (
	SectionTypeText         SectionType = "section"
	SectionTypeImage        SectionType = "image"
	SectionTypeIntroduction SectionType = "introduction"
	SectionTypeDisclaimer   SectionType = "disclaimer"
	SectionTypeFootnote     SectionType = "footnote"
	SectionTypeLyric        SectionType = "lyric"
	SectionTypeDivider      SectionType = "divider"
)

// SectionImage is a single entry of an image section.
type SectionImage struct {
	Src     string `json:"src"`
	AltText string `json:"altText,omitempty"`
}

// Section is one content block. Type decides which fields are meaningful:
// text-like variants carry Content, image carries Images, divider carries
// at most a Title.
type Section struct {
	Type    SectionType    `json:"type"`
	Title   string         `json:"title,omitempty"`
	Content string         `json:"content,omitempty"`
	Images  []SectionImage `json:"images,omitempty"`
}

// Reference is an external link appended after a translation's sections.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PostMetadata holds the per-translation byline fields.
type PostMetadata struct {
	Date     string   `json:"date"`
	Author   string   `json:"author"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags"`
}

// Translation is one language's rendition of a post. Section order is
// document order and is caller controlled.
type Translation struct {
	Title      string       `json:"title"`
	Metadata   PostMetadata `json:"metadata"`
	Sections   []Section    `json:"sections"`
	References []Reference  `json:"references,omitempty"`
}

// TranslationMap maps a language code (en, id, jp) to a Translation.
// It is stored as a single JSON text column on the post row.
type TranslationMap map[string]Translation

// Value serializes the map for persistence.
func (m TranslationMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal translations: %w", err)
	}
	return string(data), nil
}

// Scan restores the map from the stored JSON text.
func (m *TranslationMap) Scan(value interface{}) error {
	if value == nil {
		*m = TranslationMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("translations column holds unexpected type")
	}

	if len(data) == 0 {
		*m = TranslationMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// BlogPost is the slug-keyed aggregate of all translations of one post.
// There is no soft delete: removing a post drops the row.
type BlogPost struct {
	ID           uint           `gorm:"primarykey" json:"-"`
	Slug         string         `gorm:"uniqueIndex;size:160;not null" json:"slug"`
	Translations TranslationMap `gorm:"type:text" json:"translations"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName keeps the table name aligned with the hosted-store schema.
func (BlogPost) TableName() string {
	return "blog_posts"
}

// Languages returns the post's language codes with the preferred language
// first and the rest sorted.
func (p *BlogPost) Languages() []string {
	if len(p.Translations) == 0 {
		return nil
	}

	codes := make([]string, 0, len(p.Translations))
	for code := range p.Translations {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	preferred := p.PreferredLanguage()
	ordered := make([]string, 0, len(codes))
	ordered = append(ordered, preferred)
	for _, code := range codes {
		if code != preferred {
			ordered = append(ordered, code)
		}
	}
	return ordered
}

// PreferredLanguage picks the translation used for list summaries:
// "en" when present, otherwise the lexicographically first code.
func (p *BlogPost) PreferredLanguage() string {
	if _, ok := p.Translations["en"]; ok {
		return "en"
	}

	first := ""
	for code := range p.Translations {
		if first == "" || code < first {
			first = code
		}
	}
	return first
}

// PreferredTranslation returns the translation for PreferredLanguage.
// The boolean is false when the post has no translations at all.
func (p *BlogPost) PreferredTranslation() (Translation, bool) {
	code := p.PreferredLanguage()
	if code == "" {
		return Translation{}, false
	}
	t, ok := p.Translations[code]
	return t, ok
}
