package db

import "gorm.io/gorm"

// SystemSetting stores one admin-configurable key/value pair.
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName returns the explicit table name.
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeySiteName is the display name of the site.
	SettingKeySiteName = "site_name"
	// SettingKeySiteTagline is the short line under the site name.
	SettingKeySiteTagline = "site_tagline"
	// SettingKeyAIProvider selects the assistant backend (gemini or openai).
	SettingKeyAIProvider = "ai_provider"
	// SettingKeyGeminiAPIKey is the Google Gemini API key.
	SettingKeyGeminiAPIKey = "gemini_api_key"
	// SettingKeyOpenAIAPIKey is the OpenAI API key.
	SettingKeyOpenAIAPIKey = "openai_api_key"
	// SettingKeyAssistantContext overrides the assistant's owner context prompt.
	SettingKeyAssistantContext = "assistant_context"
)
