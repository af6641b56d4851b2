package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type aiChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

type aiChatResponse struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// aiChatClient calls the configured generative backend. The provider and its
// API key come from system settings on every call, so a key saved in the
// admin panel takes effect without a restart.
type aiChatClient struct {
	settings      *SystemSettingService
	http          httpDoer
	geminiBaseURL string
	geminiModel   string
	openAIBaseURL string
	openAIModel   string
}

const (
	defaultGeminiModel = "gemini-1.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

func newAIChatClient(settings *SystemSettingService) *aiChatClient {
	return &aiChatClient{
		settings:      settings,
		http:          &http.Client{Timeout: 60 * time.Second},
		geminiBaseURL: "https://generativelanguage.googleapis.com/v1beta",
		geminiModel:   defaultGeminiModel,
		openAIBaseURL: "https://api.openai.com/v1",
		openAIModel:   defaultOpenAIModel,
	}
}

func (c *aiChatClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
		return
	}
	c.http = client
}

func (c *aiChatClient) SetGeminiBaseURL(base string) {
	c.geminiBaseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

func (c *aiChatClient) SetOpenAIBaseURL(base string) {
	c.openAIBaseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// Call resolves the provider from settings and dispatches the request.
func (c *aiChatClient) Call(ctx context.Context, req aiChatRequest) (aiChatResponse, error) {
	settings, err := c.settings.GetSettings()
	if err != nil {
		return aiChatResponse{}, err
	}

	switch settings.AIProvider {
	case AIProviderOpenAI:
		return c.callOpenAI(ctx, settings.OpenAIAPIKey, req)
	default:
		return c.callGemini(ctx, settings.GeminiAPIKey, req)
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateRequest struct {
	SystemInstruction *geminiContent `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
		Temperature     float64 `json:"temperature,omitempty"`
	} `json:"generationConfig"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *aiChatClient) callGemini(ctx context.Context, apiKey string, req aiChatRequest) (aiChatResponse, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return aiChatResponse{}, ErrAIAPIKeyMissing
	}

	payload := geminiGenerateRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.UserPrompt}}},
		},
	}
	if prompt := strings.TrimSpace(req.SystemPrompt); prompt != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: prompt}}}
	}
	payload.GenerationConfig.MaxOutputTokens = req.MaxTokens
	payload.GenerationConfig.Temperature = req.Temperature

	body, err := json.Marshal(payload)
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("encode gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.geminiBaseURL, "/"), c.geminiModel)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("build gemini request: %w", err)
	}
	httpReq.Header.Set("x-goog-api-key", apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	respBody, status, err := c.do(httpReq)
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("call gemini: %w", err)
	}

	var parsed geminiGenerateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return aiChatResponse{}, fmt.Errorf("decode gemini response: %w", err)
	}
	if status >= http.StatusBadRequest {
		msg := strings.TrimSpace(parsed.Error.Message)
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return aiChatResponse{}, fmt.Errorf("gemini returned an error: %s", msg)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return aiChatResponse{}, fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return aiChatResponse{
		Content:          strings.TrimSpace(text.String()),
		PromptTokens:     parsed.UsageMetadata.PromptTokenCount,
		CompletionTokens: parsed.UsageMetadata.CandidatesTokenCount,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *aiChatClient) callOpenAI(ctx context.Context, apiKey string, req aiChatRequest) (aiChatResponse, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return aiChatResponse{}, ErrAIAPIKeyMissing
	}

	payload := chatCompletionRequest{
		Model: c.openAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: strings.TrimSpace(req.SystemPrompt)},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("encode openai request: %w", err)
	}

	endpoint := strings.TrimRight(c.openAIBaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("build openai request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	respBody, status, err := c.do(httpReq)
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("call openai: %w", err)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return aiChatResponse{}, fmt.Errorf("decode openai response: %w", err)
	}
	if status >= http.StatusBadRequest {
		msg := strings.TrimSpace(parsed.Error.Message)
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return aiChatResponse{}, fmt.Errorf("openai returned an error: %s", msg)
	}
	if len(parsed.Choices) == 0 {
		return aiChatResponse{}, fmt.Errorf("openai returned no choices")
	}

	return aiChatResponse{
		Content:          strings.TrimSpace(parsed.Choices[0].Message.Content),
		PromptTokens:     parsed.Usage.PromptTokens,
		CompletionTokens: parsed.Usage.CompletionTokens,
	}, nil
}

func (c *aiChatClient) do(req *http.Request) ([]byte, int, error) {
	client := c.http
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
