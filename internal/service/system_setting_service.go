package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// AIProviderGemini selects the Google Gemini backend for the assistant.
	AIProviderGemini = "gemini"
	// AIProviderOpenAI selects an OpenAI-compatible backend.
	AIProviderOpenAI = "openai"
)

var supportedAIProviders = []string{AIProviderGemini, AIProviderOpenAI}

// ErrAIAPIKeyMissing is returned when the selected provider has no key.
var ErrAIAPIKeyMissing = errors.New("api key is required")

// SystemSettings describes the admin-configurable site settings.
type SystemSettings struct {
	SiteName         string
	SiteTagline      string
	AIProvider       string
	GeminiAPIKey     string
	OpenAIAPIKey     string
	AssistantContext string
}

// SystemSettingsInput is the update payload for system settings.
type SystemSettingsInput struct {
	SiteName         string
	SiteTagline      string
	AIProvider       string
	GeminiAPIKey     string
	OpenAIAPIKey     string
	AssistantContext string
}

// SystemSettingService reads and updates the settings key/value table.
type SystemSettingService struct {
	db            *gorm.DB
	httpClient    httpDoer
	geminiBaseURL string
	openAIBaseURL string
}

// NewSystemSettingService creates a SystemSettingService instance.
func NewSystemSettingService(gdb *gorm.DB) *SystemSettingService {
	return &SystemSettingService{
		db:            gdb,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		geminiBaseURL: "https://generativelanguage.googleapis.com/v1beta",
		openAIBaseURL: "https://api.openai.com/v1",
	}
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeySiteTagline,
	db.SettingKeyAIProvider,
	db.SettingKeyGeminiAPIKey,
	db.SettingKeyOpenAIAPIKey,
	db.SettingKeyAssistantContext,
}

// GetSettings reads the settings, substituting defaults for unset keys.
func (s *SystemSettingService) GetSettings() (SystemSettings, error) {
	result := SystemSettings{SiteName: "Devfolio", AIProvider: AIProviderGemini}

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			if strings.TrimSpace(record.Value) != "" {
				result.SiteName = record.Value
			}
		case db.SettingKeySiteTagline:
			result.SiteTagline = record.Value
		case db.SettingKeyAIProvider:
			if provider := normalizeAIProvider(record.Value); provider != "" {
				result.AIProvider = provider
			}
		case db.SettingKeyGeminiAPIKey:
			result.GeminiAPIKey = record.Value
		case db.SettingKeyOpenAIAPIKey:
			result.OpenAIAPIKey = record.Value
		case db.SettingKeyAssistantContext:
			result.AssistantContext = record.Value
		}
	}

	return result, nil
}

// UpdateSettings saves the settings, falling back to defaults for blank
// required values.
func (s *SystemSettingService) UpdateSettings(input SystemSettingsInput) (SystemSettings, error) {
	provider := normalizeAIProvider(input.AIProvider)
	if provider == "" {
		provider = AIProviderGemini
	}

	sanitized := SystemSettings{
		SiteName:         strings.TrimSpace(input.SiteName),
		SiteTagline:      strings.TrimSpace(input.SiteTagline),
		AIProvider:       provider,
		GeminiAPIKey:     strings.TrimSpace(input.GeminiAPIKey),
		OpenAIAPIKey:     strings.TrimSpace(input.OpenAIAPIKey),
		AssistantContext: strings.TrimSpace(input.AssistantContext),
	}
	if sanitized.SiteName == "" {
		sanitized.SiteName = "Devfolio"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pairs := map[string]string{
			db.SettingKeySiteName:         sanitized.SiteName,
			db.SettingKeySiteTagline:      sanitized.SiteTagline,
			db.SettingKeyAIProvider:       sanitized.AIProvider,
			db.SettingKeyGeminiAPIKey:     sanitized.GeminiAPIKey,
			db.SettingKeyOpenAIAPIKey:     sanitized.OpenAIAPIKey,
			db.SettingKeyAssistantContext: sanitized.AssistantContext,
		}
		for key, value := range pairs {
			if err := upsertSetting(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SystemSettings{}, fmt.Errorf("save system settings: %w", err)
	}

	return sanitized, nil
}

// SetHTTPClient overrides the HTTP client, mainly for tests.
func (s *SystemSettingService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.httpClient = &http.Client{Timeout: 10 * time.Second}
		return
	}
	s.httpClient = client
}

// SetGeminiBaseURL overrides the Gemini API base, for tests or proxies.
func (s *SystemSettingService) SetGeminiBaseURL(base string) {
	s.geminiBaseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// SetOpenAIBaseURL overrides the OpenAI API base, for tests or proxies.
func (s *SystemSettingService) SetOpenAIBaseURL(base string) {
	s.openAIBaseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// TestAIConnection checks an API key against the provider's model listing
// endpoint so admins can verify a key before saving it. An empty provider
// falls back to gemini.
func (s *SystemSettingService) TestAIConnection(ctx context.Context, provider, apiKey string) error {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return ErrAIAPIKeyMissing
	}

	prov := normalizeAIProvider(provider)
	if prov == "" {
		prov = AIProviderGemini
	}

	base := s.geminiBaseURL
	label := "gemini"
	if prov == AIProviderOpenAI {
		base = s.openAIBaseURL
		label = "openai"
	}

	endpoint := strings.TrimRight(base, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", label, err)
	}
	if prov == AIProviderOpenAI {
		req.Header.Set("Authorization", "Bearer "+key)
	} else {
		req.Header.Set("x-goog-api-key", key)
	}

	client := s.httpClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		msg := strings.TrimSpace(string(body))
		if msg != "" {
			return fmt.Errorf("%s rejected the key: %s (%s)", label, resp.Status, msg)
		}
		return fmt.Errorf("%s rejected the key: %s", label, resp.Status)
	}

	return nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	record := db.SystemSetting{Key: key, Value: value}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
}

func normalizeAIProvider(provider string) string {
	trimmed := strings.ToLower(strings.TrimSpace(provider))
	for _, supported := range supportedAIProviders {
		if trimmed == supported {
			return trimmed
		}
	}
	return ""
}
