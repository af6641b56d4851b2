package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

type systemSettingsRequest struct {
	SiteName         string `json:"siteName"`
	SiteTagline      string `json:"siteTagline"`
	AIProvider       string `json:"aiProvider"`
	GeminiAPIKey     string `json:"geminiApiKey"`
	OpenAIAPIKey     string `json:"openaiApiKey"`
	AssistantContext string `json:"assistantContext"`
}

type systemSettingsResponse struct {
	SiteName         string `json:"siteName"`
	SiteTagline      string `json:"siteTagline"`
	AIProvider       string `json:"aiProvider"`
	GeminiKeySet     bool   `json:"geminiKeySet"`
	OpenAIKeySet     bool   `json:"openaiKeySet"`
	AssistantContext string `json:"assistantContext"`
}

// GetSystemSettings returns the current settings. API keys are never echoed
// back, only whether one is stored.
func (a *API) GetSystemSettings(c *gin.Context) {
	settings, err := a.system.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settingsView(settings))
}

// UpdateSystemSettings saves new settings. A blank key in the payload keeps
// the stored key so admins can update other fields without re-entering it.
func (a *API) UpdateSystemSettings(c *gin.Context) {
	var req systemSettingsRequest
	if !bindJSON(c, &req, "invalid settings payload") {
		return
	}

	current, err := a.system.GetSettings()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}

	input := service.SystemSettingsInput{
		SiteName:         req.SiteName,
		SiteTagline:      req.SiteTagline,
		AIProvider:       req.AIProvider,
		GeminiAPIKey:     req.GeminiAPIKey,
		OpenAIAPIKey:     req.OpenAIAPIKey,
		AssistantContext: req.AssistantContext,
	}
	if strings.TrimSpace(input.GeminiAPIKey) == "" {
		input.GeminiAPIKey = current.GeminiAPIKey
	}
	if strings.TrimSpace(input.OpenAIAPIKey) == "" {
		input.OpenAIAPIKey = current.OpenAIAPIKey
	}

	saved, err := a.system.UpdateSettings(input)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save settings")
		return
	}
	c.JSON(http.StatusOK, settingsView(saved))
}

type testAIConnectionRequest struct {
	Provider string `json:"aiProvider"`
	APIKey   string `json:"apiKey"`
}

// TestAIConnection verifies an API key against the provider before the admin
// saves it. A blank key in the payload checks the stored one instead.
func (a *API) TestAIConnection(c *gin.Context) {
	var req testAIConnectionRequest
	if !bindJSON(c, &req, "invalid connection test payload") {
		return
	}

	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		settings, err := a.system.GetSettings()
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to load settings")
			return
		}
		if strings.TrimSpace(req.Provider) == service.AIProviderOpenAI {
			key = settings.OpenAIAPIKey
		} else {
			key = settings.GeminiAPIKey
		}
	}

	if err := a.system.TestAIConnection(c.Request.Context(), req.Provider, key); err != nil {
		if errors.Is(err, service.ErrAIAPIKeyMissing) {
			respondError(c, http.StatusBadRequest, "an api key is required")
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func settingsView(settings service.SystemSettings) systemSettingsResponse {
	return systemSettingsResponse{
		SiteName:         settings.SiteName,
		SiteTagline:      settings.SiteTagline,
		AIProvider:       settings.AIProvider,
		GeminiKeySet:     settings.GeminiAPIKey != "",
		OpenAIKeySet:     settings.OpenAIAPIKey != "",
		AssistantContext: settings.AssistantContext,
	}
}
