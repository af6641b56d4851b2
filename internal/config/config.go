package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig collects everything needed to run the service.
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	UploadDir     string
	UploadURLPath string
	AdminUserName string
	AdminPassword string
}

// Load reads the app configuration from the environment, with safe defaults
// for anything unset. A .env file in the working directory is applied first
// when present.
func Load() AppConfig {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "devfolio.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "devfolio-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  databasePath,
		SessionSecret: sessionSecret,
		GinMode:       ginMode,
		UploadDir:     uploadDir,
		UploadURLPath: uploadURLPath,
		AdminUserName: strings.TrimSpace(os.Getenv("ADMIN_USER_NAME")),
		AdminPassword: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
	}
}
