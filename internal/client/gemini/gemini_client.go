package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nexus/workspace/internal/client"
	"github.com/nexus/workspace/internal/models"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	systemInstruction = "You are a helpful project management assistant named Nexus AI. You help users organize tasks, suggest workflows, and keep spirits high."
)

type GeminiClient struct {
	baseUrl    string
	model      string
	apiKey     string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, model, baseUrl string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	if baseUrl == "" {
		baseUrl = DefaultBaseURL
	}
	return &GeminiClient{
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var suggestionSchema = &Schema{
	Type: "ARRAY",
	Items: &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"title":       {Type: "STRING"},
			"description": {Type: "STRING"},
			"priority": {
				Type: "STRING",
				Enum: []string{string(models.PriorityLow), string(models.PriorityMedium), string(models.PriorityHigh)},
			},
		},
		Required: []string{"title", "description", "priority"},
	},
}

func (c *GeminiClient) SuggestTasks(ctx context.Context, description string) ([]client.Suggestion, error) {
	if c.apiKey == "" {
		return nil, client.ErrNotConfigured
	}

	prompt := fmt.Sprintf("Generate a list of 5 logical tasks for a project with this description: %q.\nReturn the response in JSON format.", description)
	reqBody := GenerateContentRequest{
		Contents: []Content{{Role: client.RoleUser, Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   suggestionSchema,
		},
	}

	resp, err := c.generate(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return []client.Suggestion{}, nil
	}

	var suggestions []client.Suggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("parse suggestions (gemini): %w", err)
	}
	return suggestions, nil
}

func (c *GeminiClient) Chat(ctx context.Context, history []client.Turn, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", client.ErrNotConfigured
	}

	contents := make([]Content, 0, len(history)+1)
	for _, turn := range history {
		role := turn.Role
		if role != client.RoleModel {
			role = client.RoleUser
		}
		contents = append(contents, Content{Role: role, Parts: []Part{{Text: turn.Content}}})
	}
	contents = append(contents, Content{Role: client.RoleUser, Parts: []Part{{Text: prompt}}})

	resp, err := c.generate(ctx, GenerateContentRequest{
		Contents:          contents,
		SystemInstruction: &Content{Parts: []Part{{Text: systemInstruction}}},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *GeminiClient) generate(ctx context.Context, reqBody GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request (gemini): %w", err)
	}

	url := c.baseUrl + "/models/" + c.model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("build request (gemini): %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate content (gemini): %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body (gemini): %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var geminiErr GeminiError
		if err := json.Unmarshal(responseBody, &geminiErr); err != nil || geminiErr.Error.Message == "" {
			return nil, fmt.Errorf("error status (gemini): %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("Gemini error: %s", geminiErr.Error.Message)
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(responseBody, &out); err != nil {
		return nil, fmt.Errorf("parse response (gemini): %w", err)
	}
	return &out, nil
}
