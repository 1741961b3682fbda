package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"homeadvisor/internal/config"
	"homeadvisor/internal/model"
	"homeadvisor/internal/utils"
)

// LLM is the interface the domain modules depend on. It is satisfied by the
// OpenAI-compatible client below and by test fakes.
type LLM interface {
	// Complete sends a system prompt plus user message (with optional prior
	// turns) and returns the model's text response.
	Complete(ctx context.Context, systemPrompt, userMessage string, history []model.ChatMessage) (string, error)

	// CompleteJSON is Complete in JSON mode; the response is parsed into
	// target with tolerant extraction (markdown fences, surrounding text).
	CompleteJSON(ctx context.Context, systemPrompt, userMessage string, target interface{}) error

	// IsEnabled reports whether the client is configured and ready.
	IsEnabled() bool
}

// OpenAIClient handles OpenAI-compatible chat completion API interactions.
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

var _ LLM = (*OpenAIClient)(nil)

// NewOpenAIClient creates a new OpenAI-compatible client.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready.
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []APIMessage    `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// APIMessage represents a single message in the conversation
type APIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int        `json:"index"`
		Message      APIMessage `json:"message"`
		FinishReason string     `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}

	// Apply defaults from config
	if req.Model == "" {
		req.Model = c.config.ChatModel
	}
	if req.Temperature == 0 && c.config.Temperature > 0 {
		req.Temperature = c.config.Temperature
	}
	if req.TopP == 0 && c.config.TopP > 0 {
		req.TopP = c.config.TopP
	}
	if req.MaxTokens == 0 && c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// Complete sends a prompt (plus optional history) and returns the text reply.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userMessage string, history []model.ChatMessage) (string, error) {
	messages := make([]APIMessage, 0, len(history)+2)
	if systemPrompt != "" {
		messages = append(messages, APIMessage{Role: "system", Content: systemPrompt})
	}
	for _, msg := range history {
		role := msg.Role
		if role != "assistant" && role != "system" {
			role = "user"
		}
		messages = append(messages, APIMessage{Role: role, Content: msg.Text})
	}
	messages = append(messages, APIMessage{Role: "user", Content: userMessage})

	resp, err := c.ChatCompletion(ctx, ChatCompletionRequest{Messages: messages})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteJSON runs a JSON-mode completion and parses the reply into target.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemPrompt, userMessage string, target interface{}) error {
	messages := []APIMessage{}
	if systemPrompt != "" {
		messages = append(messages, APIMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, APIMessage{Role: "user", Content: userMessage})

	resp, err := c.ChatCompletion(ctx, ChatCompletionRequest{
		Messages:       messages,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response from LLM")
	}

	content := resp.Choices[0].Message.Content
	if err := utils.ParseAIJSON(content, target); err != nil {
		return fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return nil
}
