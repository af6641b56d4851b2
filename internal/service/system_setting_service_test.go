package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/devfolio/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSettingsTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.SystemSetting{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	if err := gdb.Exec("DELETE FROM system_settings").Error; err != nil {
		t.Fatalf("failed to reset test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestSettingsDefaults(t *testing.T) {
	gdb, cleanup := setupSettingsTestDB(t)
	defer cleanup()

	svc := NewSystemSettingService(gdb)
	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if settings.SiteName != "Devfolio" {
		t.Fatalf("expected default site name, got %q", settings.SiteName)
	}
	if settings.AIProvider != AIProviderGemini {
		t.Fatalf("expected default provider gemini, got %q", settings.AIProvider)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	gdb, cleanup := setupSettingsTestDB(t)
	defer cleanup()

	svc := NewSystemSettingService(gdb)
	saved, err := svc.UpdateSettings(SystemSettingsInput{
		SiteName:         "  Handra's Corner  ",
		SiteTagline:      "code and photos",
		AIProvider:       "OpenAI",
		OpenAIAPIKey:     "sk-test",
		AssistantContext: "You answer questions about Handra.",
	})
	if err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	if saved.SiteName != "Handra's Corner" {
		t.Fatalf("expected trimmed site name, got %q", saved.SiteName)
	}
	if saved.AIProvider != AIProviderOpenAI {
		t.Fatalf("expected normalized provider openai, got %q", saved.AIProvider)
	}

	loaded, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if loaded != saved {
		t.Fatalf("settings did not round-trip:\n got %+v\nwant %+v", loaded, saved)
	}
}

func TestSettingsUpdateIsUpsert(t *testing.T) {
	gdb, cleanup := setupSettingsTestDB(t)
	defer cleanup()

	svc := NewSystemSettingService(gdb)
	if _, err := svc.UpdateSettings(SystemSettingsInput{SiteName: "First"}); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	if _, err := svc.UpdateSettings(SystemSettingsInput{SiteName: "Second"}); err != nil {
		t.Fatalf("failed to resave settings: %v", err)
	}

	var count int64
	if err := gdb.Model(&db.SystemSetting{}).Where("key = ?", db.SettingKeySiteName).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row per key, got %d", count)
	}

	loaded, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if loaded.SiteName != "Second" {
		t.Fatalf("expected latest value, got %q", loaded.SiteName)
	}
}

func TestAIConnectionCheckGemini(t *testing.T) {
	gdb, cleanup := setupSettingsTestDB(t)
	defer cleanup()

	svc := NewSystemSettingService(gdb)

	var captured *http.Request
	svc.SetHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, `{"models": []}`), nil
	}))

	if err := svc.TestAIConnection(context.Background(), AIProviderGemini, "test-key"); err != nil {
		t.Fatalf("expected a valid key to pass, got %v", err)
	}
	if captured == nil {
		t.Fatal("expected an outbound request")
	}
	if !strings.HasSuffix(captured.URL.Path, "/models") {
		t.Fatalf("expected a model listing call, got %s", captured.URL.Path)
	}
	if captured.Header.Get("x-goog-api-key") != "test-key" {
		t.Fatalf("expected the key on the request header")
	}
}

func TestAIConnectionCheckOpenAI(t *testing.T) {
	gdb, cleanup := setupSettingsTestDB(t)
	defer cleanup()

	svc := NewSystemSettingService(gdb)
	svc.SetHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("expected bearer auth, got %q", got)
		}
		return jsonResponse(http.StatusOK, `{"data": []}`), nil
	}))

	if err := svc.TestAIConnection(context.Background(), AIProviderOpenAI, "sk-test"); err != nil {
		t.Fatalf("expected a valid key to pass, got %v", err)
	}
}

func TestAIConnectionCheckFailures(t *testing.T) {
	gdb, cleanup := setupSettingsTestDB(t)
	defer cleanup()

	svc := NewSystemSettingService(gdb)

	if err := svc.TestAIConnection(context.Background(), AIProviderGemini, "   "); !errors.Is(err, ErrAIAPIKeyMissing) {
		t.Fatalf("expected ErrAIAPIKeyMissing, got %v", err)
	}

	svc.SetHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"error": {"message": "bad key"}}`), nil
	}))
	err := svc.TestAIConnection(context.Background(), AIProviderGemini, "bogus")
	if err == nil || !strings.Contains(err.Error(), "rejected the key") {
		t.Fatalf("expected a rejection error, got %v", err)
	}
}

func TestSettingsUnknownProviderFallsBack(t *testing.T) {
	gdb, cleanup := setupSettingsTestDB(t)
	defer cleanup()

	svc := NewSystemSettingService(gdb)
	saved, err := svc.UpdateSettings(SystemSettingsInput{AIProvider: "llama-at-home"})
	if err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	if saved.AIProvider != AIProviderGemini {
		t.Fatalf("expected fallback to gemini, got %q", saved.AIProvider)
	}
}
