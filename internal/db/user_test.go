package db

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	if err := gdb.Exec("DELETE FROM users").Error; err != nil {
		t.Fatalf("failed to reset test db: %v", err)
	}

	previous := DB
	DB = gdb
	return func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
		DB = previous
	}
}

func passwordMatches(t *testing.T, username, password string) bool {
	t.Helper()
	var user User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

func TestEnsureUserDoesNotOverwrite(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := EnsureUser("admin", "first"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := EnsureUser("admin", "second"); err != nil {
		t.Fatalf("ensure on existing user should not error: %v", err)
	}
	if !passwordMatches(t, "admin", "first") {
		t.Fatalf("expected the original password to survive")
	}
}

func TestSetUserPasswordOverwrites(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := SetUserPassword("admin", "first"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := SetUserPassword("admin", "second"); err != nil {
		t.Fatalf("failed to reset password: %v", err)
	}
	if !passwordMatches(t, "admin", "second") {
		t.Fatalf("expected the new password to take effect")
	}

	if err := SetUserPassword("", ""); err == nil {
		t.Fatalf("expected blank credentials to be rejected")
	}
}
