package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/router"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

type e2eSuite struct {
	public *localClient
	admin  *localClient
}

const (
	e2eBaseURL  = "http://devfolio.test"
	e2eUsername = "admin"
	e2ePassword = "e2e-secret"
)

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	for _, table := range []string{"users", "blog_posts", "gallery_photos", "projects", "profile_contacts", "system_settings"} {
		if err := gdb.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset table %s: %v", table, err)
		}
	}

	db.DB = gdb
	if err := db.EnsureUser(e2eUsername, e2ePassword); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	handler := router.SetupRouter("e2e-session-secret", t.TempDir(), "/static/uploads")

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return &e2eSuite{
		public: newLocalClient(handler, false),
		admin:  newLocalClient(handler, true),
	}
}

func (s *e2eSuite) request(t *testing.T, client *localClient, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e2eBaseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp, raw
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()
	resp, raw := s.request(t, s.admin, http.MethodPost, "/admin/api/login", map[string]string{
		"username": e2eUsername,
		"password": e2ePassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d: %s", resp.StatusCode, raw)
	}
}

func TestE2E_AllInterfaces(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	t.Run("post lifecycle", suite.testPostLifecycle)
	t.Run("gallery lifecycle", suite.testGalleryLifecycle)
	t.Run("project lifecycle", suite.testProjectLifecycle)
	t.Run("contacts and profile", suite.testContactsAndProfile)
	t.Run("settings", suite.testSettings)
	t.Run("auth boundary", suite.testAuthBoundary)
}

func (s *e2eSuite) testPostLifecycle(t *testing.T) {
	payload := map[string]any{
		"slug": "e2e-post",
		"translations": map[string]any{
			"en": map[string]any{
				"title": "E2E Post",
				"metadata": map[string]any{
					"date":     "2025-06-01",
					"author":   "Handra",
					"category": "projects",
					"tags":     []string{"go"},
				},
				"sections": []map[string]any{
					{"type": "introduction", "content": "<p>End to end.</p>"},
				},
			},
		},
	}

	resp, raw := s.request(t, s.admin, http.MethodPost, "/admin/api/posts", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create post failed with %d: %s", resp.StatusCode, raw)
	}

	resp, raw = s.request(t, s.public, http.MethodGet, "/api/posts?search=e2e", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list posts failed with %d", resp.StatusCode)
	}
	var list struct {
		Total int `json:"total"`
		Posts []struct {
			Slug  string `json:"slug"`
			Title string `json:"title"`
		} `json:"posts"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if list.Total != 1 || list.Posts[0].Slug != "e2e-post" {
		t.Fatalf("unexpected post list: %s", raw)
	}

	resp, raw = s.request(t, s.public, http.MethodGet, "/api/posts/e2e-post", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get post failed with %d", resp.StatusCode)
	}
	var detail struct {
		Rendered map[string]string `json:"rendered"`
	}
	if err := json.Unmarshal(raw, &detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if !bytes.Contains([]byte(detail.Rendered["en"]), []byte("End to end.")) {
		t.Fatalf("expected rendered html, got %s", detail.Rendered["en"])
	}

	resp, _ = s.request(t, s.admin, http.MethodDelete, "/admin/api/posts/e2e-post", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete post failed with %d", resp.StatusCode)
	}
	resp, _ = s.request(t, s.public, http.MethodGet, "/api/posts/e2e-post", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testGalleryLifecycle(t *testing.T) {
	resp, raw := s.request(t, s.admin, http.MethodPost, "/admin/api/gallery", map[string]any{
		"title":    "E2E Photo",
		"imageUrl": "/static/uploads/e2e.jpg",
		"camera":   "X100V",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create photo failed with %d: %s", resp.StatusCode, raw)
	}
	var photo struct {
		ID uint `json:"ID"`
	}
	if err := json.Unmarshal(raw, &photo); err != nil {
		t.Fatalf("failed to decode photo: %v", err)
	}

	resp, raw = s.request(t, s.public, http.MethodGet, "/api/gallery", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list gallery failed with %d", resp.StatusCode)
	}
	var gallery struct {
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(raw, &gallery); err != nil {
		t.Fatalf("failed to decode gallery: %v", err)
	}
	if gallery.Total != 1 {
		t.Fatalf("expected one published photo, got %d", gallery.Total)
	}

	resp, _ = s.request(t, s.admin, http.MethodDelete, fmt.Sprintf("/admin/api/gallery/%d", photo.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete photo failed with %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testProjectLifecycle(t *testing.T) {
	resp, raw := s.request(t, s.admin, http.MethodPost, "/admin/api/projects", map[string]any{
		"slug":        "e2e-project",
		"name":        "E2E Project",
		"summary":     "built during a test run",
		"description": "## Features\n\n- fast",
		"techStack":   []string{"Go"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create project failed with %d: %s", resp.StatusCode, raw)
	}

	resp, raw = s.request(t, s.public, http.MethodGet, "/api/projects/e2e-project", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get project failed with %d", resp.StatusCode)
	}
	var detail struct {
		DescriptionHTML string `json:"descriptionHtml"`
	}
	if err := json.Unmarshal(raw, &detail); err != nil {
		t.Fatalf("failed to decode project: %v", err)
	}
	if !bytes.Contains([]byte(detail.DescriptionHTML), []byte("<h2")) {
		t.Fatalf("expected rendered markdown, got %s", detail.DescriptionHTML)
	}

	resp, _ = s.request(t, s.admin, http.MethodDelete, "/admin/api/projects/e2e-project", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete project failed with %d", resp.StatusCode)
	}
}

func (s *e2eSuite) testContactsAndProfile(t *testing.T) {
	resp, raw := s.request(t, s.admin, http.MethodPost, "/admin/api/contacts", map[string]any{
		"platform": "github",
		"label":    "GitHub",
		"value":    "handra",
		"link":     "https://github.com/handra",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create contact failed with %d: %s", resp.StatusCode, raw)
	}

	resp, raw = s.request(t, s.public, http.MethodGet, "/api/profile", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get profile failed with %d", resp.StatusCode)
	}
	var profile struct {
		SiteName string `json:"siteName"`
		Contacts []struct {
			Platform string `json:"platform"`
		} `json:"contacts"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.SiteName == "" || len(profile.Contacts) != 1 {
		t.Fatalf("unexpected profile payload: %s", raw)
	}
}

func (s *e2eSuite) testSettings(t *testing.T) {
	resp, raw := s.request(t, s.admin, http.MethodPut, "/admin/api/settings", map[string]any{
		"siteName":     "Handra's Corner",
		"aiProvider":   "gemini",
		"geminiApiKey": "e2e-key",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update settings failed with %d: %s", resp.StatusCode, raw)
	}

	resp, raw = s.request(t, s.admin, http.MethodGet, "/admin/api/settings", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get settings failed with %d", resp.StatusCode)
	}
	var settings struct {
		SiteName     string `json:"siteName"`
		GeminiKeySet bool   `json:"geminiKeySet"`
		GeminiAPIKey string `json:"geminiApiKey"`
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	if settings.SiteName != "Handra's Corner" || !settings.GeminiKeySet {
		t.Fatalf("unexpected settings payload: %s", raw)
	}
	if settings.GeminiAPIKey != "" {
		t.Fatalf("api keys must never be echoed back")
	}
}

func (s *e2eSuite) testAuthBoundary(t *testing.T) {
	resp, _ := s.request(t, s.public, http.MethodGet, "/admin/api/posts", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous admin access, got %d", resp.StatusCode)
	}

	resp, _ = s.request(t, s.admin, http.MethodPost, "/admin/api/logout", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout failed with %d", resp.StatusCode)
	}
	resp, _ = s.request(t, s.admin, http.MethodGet, "/admin/api/posts", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}
