package handler

import (
	"errors"
	"net/http"

	"github.com/devfolio/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the admin user and opens a session.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "username and password are required") {
		return
	}

	var user db.User
	if err := a.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to look up user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid username or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// Logout clears the admin session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me reports the logged-in admin, mainly for the editor to restore state.
func (a *API) Me(c *gin.Context) {
	session := sessions.Default(c)
	username := session.Get("username")
	if username == nil {
		respondError(c, http.StatusUnauthorized, "not logged in")
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// AuthRequired rejects requests without an admin session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}
