package handler

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/devfolio/internal/locale"
	"github.com/devfolio/internal/render"
	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

// ListPosts returns post summaries for the public blog index, filtered by the
// query string. Filter options always describe the full corpus so the client
// can build its tag and category pickers.
func (a *API) ListPosts(c *gin.Context) {
	summaries, err := a.posts.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load posts")
		return
	}

	language := c.Query("language")
	if normalized := locale.NormalizeLanguage(language); normalized != "" {
		language = normalized
	}

	criteria := service.PostFilterCriteria{
		SearchQuery:      c.Query("search"),
		SelectedTags:     c.QueryArray("tags"),
		SelectedCategory: c.Query("category"),
		SelectedLanguage: language,
	}

	filtered := service.FilterSummaries(summaries, criteria)
	options := service.SummaryFilterOptions(summaries)

	c.JSON(http.StatusOK, gin.H{
		"posts":   filtered,
		"total":   len(filtered),
		"options": options,
	})
}

// GetPost returns one post with every translation rendered to safe HTML.
func (a *API) GetPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	post, err := a.posts.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}

	rendered := make(map[string]template.HTML, len(post.Translations))
	for lang, translation := range post.Translations {
		rendered[lang] = render.Translation(translation)
	}

	// Prefer the browser language when the post carries that translation.
	defaultLanguage := post.PreferredLanguage()
	if fromHeader := locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language")); fromHeader != "" {
		if _, ok := post.Translations[fromHeader]; ok {
			defaultLanguage = fromHeader
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":            post.Slug,
		"languages":       post.Languages(),
		"defaultLanguage": defaultLanguage,
		"translations":    post.Translations,
		"rendered":        rendered,
		"createdAt":       post.CreatedAt,
		"updatedAt":       post.UpdatedAt,
	})
}

// ListGallery returns published gallery photos for the public site.
func (a *API) ListGallery(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	perPage := parseIntQuery(c, "per_page", 12)

	result, err := a.gallery.ListPublished(page, perPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load gallery")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photos":     result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"perPage":    result.PerPage,
	})
}

// ListProjects returns published portfolio projects.
func (a *API) ListProjects(c *gin.Context) {
	items, err := a.projects.ListPublished()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

// GetProject returns one project with its description rendered to HTML.
func (a *API) GetProject(c *gin.Context) {
	item, err := a.projects.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load project")
		return
	}

	descriptionHTML, err := render.Markdown(item.Description)
	if err != nil {
		descriptionHTML = template.HTML(template.HTMLEscapeString(item.Description))
	}

	c.JSON(http.StatusOK, gin.H{
		"project":         item,
		"descriptionHtml": descriptionHTML,
	})
}

// GetProfile returns site identity and the visible contact rows.
func (a *API) GetProfile(c *gin.Context) {
	settings, err := a.system.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	contacts, err := a.profiles.ListContacts(false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load contacts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"siteName":    settings.SiteName,
		"siteTagline": settings.SiteTagline,
		"contacts":    contacts,
	})
}
