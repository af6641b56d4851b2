package db

import "gorm.io/gorm"

// ProfileContact is a contact or social row shown in the about/footer areas.
// Icon matches an icon name built into the frontend. Lower Sort values come
// first; Visible hides a row without deleting it.
type ProfileContact struct {
	gorm.Model
	Platform string `gorm:"size:50;not null"`
	Label    string `gorm:"size:80;not null"`
	Value    string `gorm:"size:255;not null"`
	Link     string `gorm:"size:255"`
	Icon     string `gorm:"size:50"`
	Sort     int    `gorm:"default:0"`
	Visible  bool
}

// TableName returns the explicit table name.
func (ProfileContact) TableName() string {
	return "profile_contacts"
}
