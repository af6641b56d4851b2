package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// StringList is a JSON-encoded list column for small free-form string sets.
type StringList []string

// Value serializes the list for persistence.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan restores the list from the stored JSON text.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("string list column holds unexpected type")
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Project is a portfolio project card. Description is markdown and is
// rendered server side before it reaches the client.
type Project struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;size:160;not null"`
	Name        string `gorm:"not null"`
	Summary     string
	Description string     `gorm:"type:text"`
	TechStack   StringList `gorm:"type:text"`
	RepoURL     string     `gorm:"size:255"`
	DemoURL     string     `gorm:"size:255"`
	CoverURL    string     `gorm:"size:255"`
	Status      string     `gorm:"default:published"` // published, draft
	SortOrder   int        `gorm:"default:0"`
}
