package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Slug         string            `json:"slug"`
	Translations db.TranslationMap `json:"translations"`
}

// AdminListPosts returns summaries of every post for the editor index.
func (a *API) AdminListPosts(c *gin.Context) {
	summaries, err := a.posts.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": summaries})
}

// AdminGetPost returns the raw editable record, translations included.
func (a *API) AdminGetPost(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost stores a new post from the editor.
func (a *API) CreatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "invalid post payload") {
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Slug:         req.Slug,
		Translations: req.Translations,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost replaces the translations of an existing post. The slug in the
// URL wins; a different slug in the body is ignored.
func (a *API) UpdatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "invalid post payload") {
		return
	}

	slug := strings.TrimSpace(c.Param("slug"))
	post, err := a.posts.Update(slug, service.PostInput{
		Slug:         slug,
		Translations: req.Translations,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post. Deleting an absent slug still succeeds.
func (a *API) DeletePost(c *gin.Context) {
	if err := a.posts.Delete(c.Param("slug")); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, service.ErrDuplicateSlug):
		respondError(c, http.StatusConflict, "a post with this slug already exists")
	case errors.Is(err, service.ErrSlugRequired),
		errors.Is(err, service.ErrSlugInvalid),
		errors.Is(err, service.ErrNoTranslations):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "failed to save post")
	}
}
