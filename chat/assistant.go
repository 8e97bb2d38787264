package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Assistant is an external conversational model that turns a prompt into
// free-form reply text.
type Assistant interface {
	// Generate produces a reply for the prompt
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the assistant's name
	Name() string
}

// GeminiAssistant talks to a Gemini-style generateContent endpoint.
type GeminiAssistant struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiAssistant creates an assistant backed by the Google generative
// language API.
func NewGeminiAssistant(apiKey string) *GeminiAssistant {
	return &GeminiAssistant{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		model:   "gemini-2.0-flash",
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Name returns the assistant name
func (a *GeminiAssistant) Name() string {
	return "Gemini"
}

// Generate sends the prompt and returns the first candidate's text. An empty
// candidate list counts as a failure so the caller can fall back.
func (a *GeminiAssistant) Generate(ctx context.Context, prompt string) (string, error) {
	// Build request body
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Execute request
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	// Parse response
	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}

var _ Assistant = (*GeminiAssistant)(nil)
