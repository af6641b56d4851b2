package handler

import (
	"errors"
	"net/http"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

type profileContactRequest struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Link     string `json:"link"`
	Icon     string `json:"icon"`
	Sort     *int   `json:"sort"`
	Visible  *bool  `json:"visible"`
}

func (r profileContactRequest) toInput() service.ProfileContactInput {
	return service.ProfileContactInput{
		Platform: r.Platform,
		Label:    r.Label,
		Value:    r.Value,
		Link:     r.Link,
		Icon:     r.Icon,
		Sort:     r.Sort,
		Visible:  r.Visible,
	}
}

// AdminListContacts returns every contact row, hidden ones included.
func (a *API) AdminListContacts(c *gin.Context) {
	items, err := a.profiles.ListContacts(true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load contacts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": items})
}

// CreateContact adds a contact row.
func (a *API) CreateContact(c *gin.Context) {
	var req profileContactRequest
	if !bindJSON(c, &req, "invalid contact payload") {
		return
	}

	item, err := a.profiles.CreateContact(req.toInput())
	if err != nil {
		respondContactError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateContact applies changes to one contact row.
func (a *API) UpdateContact(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req profileContactRequest
	if !bindJSON(c, &req, "invalid contact payload") {
		return
	}

	item, err := a.profiles.UpdateContact(id, req.toInput())
	if err != nil {
		respondContactError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteContact removes one contact row.
func (a *API) DeleteContact(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.profiles.DeleteContact(id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete contact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func respondContactError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileContactNotFound):
		respondError(c, http.StatusNotFound, "contact not found")
	case errors.Is(err, service.ErrProfileContactInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "failed to save contact")
	}
}
