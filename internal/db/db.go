package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the shared database handle for the application.
var DB *gorm.DB

// Init opens the sqlite database and migrates the core models.
// An empty databasePath falls back to devfolio.db in the working directory.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "devfolio.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	return Migrate(DB)
}

// Migrate creates or updates the tables for every model the server owns.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&User{},
		&BlogPost{},
		&GalleryPhoto{},
		&Project{},
		&ProfileContact{},
		&SystemSetting{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
