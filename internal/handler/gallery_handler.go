package handler

import (
	"errors"
	"net/http"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

type galleryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ImageWidth  int    `json:"imageWidth"`
	ImageHeight int    `json:"imageHeight"`
	Camera      string `json:"camera"`
	Lens        string `json:"lens"`
	ShotAt      string `json:"shotAt"`
	Status      string `json:"status"`
	SortOrder   int    `json:"sortOrder"`
}

func (r galleryRequest) toInput() service.GalleryInput {
	return service.GalleryInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		ImageWidth:  r.ImageWidth,
		ImageHeight: r.ImageHeight,
		Camera:      r.Camera,
		Lens:        r.Lens,
		ShotAt:      r.ShotAt,
		Status:      r.Status,
		SortOrder:   r.SortOrder,
	}
}

// AdminListGallery returns photos of any status for the admin grid.
func (a *API) AdminListGallery(c *gin.Context) {
	result, err := a.gallery.List(service.GalleryFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		Page:    parseIntQuery(c, "page", 1),
		PerPage: parseIntQuery(c, "per_page", 12),
	})
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

// CreateGalleryPhoto stores a new photo record.
func (a *API) CreateGalleryPhoto(c *gin.Context) {
	var req galleryRequest
	if !bindJSON(c, &req, "invalid photo payload") {
		return
	}

	photo, err := a.gallery.Create(req.toInput())
	if err != nil {
		respondGalleryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// UpdateGalleryPhoto applies changes to one photo.
func (a *API) UpdateGalleryPhoto(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req galleryRequest
	if !bindJSON(c, &req, "invalid photo payload") {
		return
	}

	photo, err := a.gallery.Update(id, req.toInput())
	if err != nil {
		respondGalleryError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

// DeleteGalleryPhoto removes one photo.
func (a *API) DeleteGalleryPhoto(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.gallery.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete photo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func respondGalleryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPhotoNotFound):
		respondError(c, http.StatusNotFound, "photo not found")
	case errors.Is(err, service.ErrPhotoImageMissing),
		errors.Is(err, service.ErrPhotoStatusInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "failed to save photo")
	}
}
