package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"prompt-app/internal/config"
	"prompt-app/internal/logger"

	"github.com/sirupsen/logrus"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// Ensure OpenRouterProvider implements LLMProvider
var _ LLMProvider = (*OpenRouterProvider)(nil)

// OpenRouterProvider implements LLMProvider using direct OpenRouter API
// calls. Each request picks a random key from the configured pool and uses
// the model paired with that key. The random choice assumes low,
// human-interactive call volume.
type OpenRouterProvider struct {
	config *config.LLMConfig
	client *http.Client
}

// NewOpenRouterProvider creates a new OpenRouter provider with config
func NewOpenRouterProvider(llmConfig *config.LLMConfig) *OpenRouterProvider {
	return &OpenRouterProvider{
		config: llmConfig,
		client: &http.Client{Timeout: llmConfig.RequestTimeout},
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream"`
}

type ResponseUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage *ResponseUsage `json:"usage,omitempty"`
}

// pickKey selects a random API key from the pool
func (p *OpenRouterProvider) pickKey() (string, error) {
	if len(p.config.APIKeys) == 0 {
		return "", fmt.Errorf("no OpenRouter API keys configured")
	}
	return p.config.APIKeys[rand.Intn(len(p.config.APIKeys))], nil
}

// buildMessages prepends the system prompt to the user prompt
func (p *OpenRouterProvider) buildMessages(prompt, customSystemPrompt string) []Message {
	systemPrompt := p.config.DefaultSystemPrompt
	if customSystemPrompt != "" {
		systemPrompt = systemPrompt + "\n\n" + customSystemPrompt
	}

	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}
}

// Generate sends a non-streaming chat-completion request and returns the
// response content plus the usage block when OpenRouter reports one.
func (p *OpenRouterProvider) Generate(prompt, systemPrompt string) (*GenerateResult, error) {
	apiKey, err := p.pickKey()
	if err != nil {
		return nil, err
	}

	model := p.config.ModelForKey(apiKey)

	logger.Log.WithFields(logrus.Fields{
		"model":         model,
		"prompt_length": len(prompt),
	}).Info("Calling OpenRouter API")

	reqBody := ChatRequest{
		Model:       model,
		Messages:    p.buildMessages(prompt, systemPrompt),
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
		Stream:      false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", openRouterURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("HTTP-Referer", "http://localhost:3000")
	req.Header.Set("X-Title", "Prompt App")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	content := chatResp.Choices[0].Message.Content
	logger.Log.WithField("content_length", len(content)).Debug("Extracted content from response")

	return &GenerateResult{
		Content: content,
		Model:   model,
		Usage:   chatResp.Usage,
	}, nil
}
