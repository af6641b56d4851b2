package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/devfolio/internal/service"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func geminiReply(text string) *http.Response {
	body := `{"candidates": [{"content": {"parts": [{"text": ` + jsonString(text) + `}]}}]}`
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func jsonString(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}

func TestAskAssistantHandler(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	if _, err := api.system.UpdateSettings(service.SystemSettingsInput{GeminiAPIKey: "test-key"}); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	api.Assistant().SetHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return geminiReply("I mostly shoot with a Fujifilm X100V."), nil
	}))

	c, w := jsonContext(t, http.MethodPost, "/api/assistant/ask", map[string]string{"question": "What camera do you use?"})
	api.AskAssistant(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		OK        bool   `json:"ok"`
		Reply     string `json:"reply"`
		Remaining int    `json:"remaining"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.OK || !strings.Contains(resp.Reply, "X100V") {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Remaining != 9 {
		t.Fatalf("expected 9 questions remaining, got %d", resp.Remaining)
	}

	// The response should set a visitor cookie for rate limiting.
	foundCookie := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == visitorCookieName && cookie.Value != "" {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Fatalf("expected a visitor cookie to be set")
	}
}

func TestAskAssistantHandlerBlockedQuestion(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	api.Assistant().SetHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatal("blocked question must not reach the provider")
		return nil, nil
	}))

	c, w := jsonContext(t, http.MethodPost, "/api/assistant/ask", map[string]string{"question": "<script>alert(1)</script>"})
	api.AskAssistant(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		OK    bool   `json:"ok"`
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.OK || resp.Reply != assistantInvalidReply {
		t.Fatalf("expected the canned invalid-input reply, got %+v", resp)
	}
}

func TestAskAssistantHandlerUpstreamFailure(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	if _, err := api.system.UpdateSettings(service.SystemSettingsInput{GeminiAPIKey: "test-key"}); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	api.Assistant().SetHTTPClient(doerFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader(`{"error": {"message": "boom"}}`)),
		}, nil
	}))

	c, w := jsonContext(t, http.MethodPost, "/api/assistant/ask", map[string]string{"question": "hello?"})
	api.AskAssistant(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		OK    bool   `json:"ok"`
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.OK || resp.Reply != assistantDownReply {
		t.Fatalf("expected the canned apology, got %+v", resp)
	}
}
