package handler

import (
	"github.com/devfolio/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	posts     *service.PostService
	gallery   *service.GalleryService
	projects  *service.ProjectService
	profiles  *service.ProfileService
	system    *service.SystemSettingService
	assistant *service.AssistantService
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string) *API {
	systemService := service.NewSystemSettingService(gdb)

	return &API{
		db:        gdb,
		posts:     service.NewPostService(gdb),
		gallery:   service.NewGalleryService(gdb),
		projects:  service.NewProjectService(gdb),
		profiles:  service.NewProfileService(gdb),
		system:    systemService,
		assistant: service.NewAssistantService(systemService),
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Assistant exposes the assistant service so tests can swap its HTTP client.
func (a *API) Assistant() *service.AssistantService {
	return a.assistant
}
