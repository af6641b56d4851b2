package db

import "gorm.io/gorm"

// GalleryPhoto is one entry of the photography gallery.
// Camera and Lens are free-form display strings from the EXIF-less upload
// flow; ShotAt is whatever the author typed, not a parsed timestamp.
type GalleryPhoto struct {
	gorm.Model
	Title       string
	Description string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	Camera      string `gorm:"size:120"`
	Lens        string `gorm:"size:120"`
	ShotAt      string `gorm:"size:60"`
	Status      string `gorm:"default:published"` // published, draft
	SortOrder   int    `gorm:"default:0"`
}

// TableName keeps the gallery table name explicit.
func (GalleryPhoto) TableName() string {
	return "gallery_photos"
}
