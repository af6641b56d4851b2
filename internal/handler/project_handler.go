package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

type projectRequest struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	RepoURL     string   `json:"repoUrl"`
	DemoURL     string   `json:"demoUrl"`
	CoverURL    string   `json:"coverUrl"`
	Status      string   `json:"status"`
	SortOrder   int      `json:"sortOrder"`
}

func (r projectRequest) toInput() service.ProjectInput {
	return service.ProjectInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Summary:     r.Summary,
		Description: r.Description,
		TechStack:   r.TechStack,
		RepoURL:     r.RepoURL,
		DemoURL:     r.DemoURL,
		CoverURL:    r.CoverURL,
		Status:      r.Status,
		SortOrder:   r.SortOrder,
	}
}

// AdminListProjects returns every project, drafts included.
func (a *API) AdminListProjects(c *gin.Context) {
	items, err := a.projects.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

// CreateProject stores a new portfolio project.
func (a *API) CreateProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req, "invalid project payload") {
		return
	}

	item, err := a.projects.Create(req.toInput())
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateProject applies changes to one project.
func (a *API) UpdateProject(c *gin.Context) {
	var req projectRequest
	if !bindJSON(c, &req, "invalid project payload") {
		return
	}

	item, err := a.projects.Update(strings.TrimSpace(c.Param("slug")), req.toInput())
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteProject removes one project.
func (a *API) DeleteProject(c *gin.Context) {
	if err := a.projects.Delete(c.Param("slug")); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondError(c, http.StatusNotFound, "project not found")
	case errors.Is(err, service.ErrProjectDuplicateSlug):
		respondError(c, http.StatusConflict, "a project with this slug already exists")
	case errors.Is(err, service.ErrProjectNameMissing),
		errors.Is(err, service.ErrProjectSlugInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "failed to save project")
	}
}
