package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/devfolio/internal/db"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	for _, table := range []string{"users", "blog_posts", "gallery_photos", "projects", "profile_contacts", "system_settings"} {
		if err := gdb.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset table %s: %v", table, err)
		}
	}

	db.DB = gdb
	if err := db.EnsureUser("admin", "secret"); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	r := SetupRouter("test-secret", t.TempDir(), "/static/uploads")

	return r, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestPing(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/posts", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without session, got %d", w.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	// Wrong password first.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for wrong password, got %d", w.Code)
	}

	// Then a real login, carrying the session cookie to a protected route.
	body, _ = json.Marshal(map[string]string{"username": "admin", "password": "secret"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for login, got %d: %s", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie after login")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/api/posts", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 with session, got %d", w.Code)
	}
}

func TestPublicRoutes(t *testing.T) {
	r, cleanup := setupTestRouter(t)
	defer cleanup()

	for _, path := range []string{"/api/posts", "/api/gallery", "/api/projects", "/api/profile"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %s, got %d", path, w.Code)
		}
	}
}
