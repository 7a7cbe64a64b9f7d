package chat

import (
	"fmt"
	"time"

	"prompt-app/internal/config"
	"prompt-app/internal/logger"
	"prompt-app/internal/service/analytics"
	"prompt-app/internal/service/llm"

	"github.com/sirupsen/logrus"
)

// SendPromptRequest contains all the parameters needed to generate a response
type SendPromptRequest struct {
	Prompt       string
	SystemPrompt string
	Username     string // Extracted from auth context
}

// SendPromptResponse contains the generated response and its metadata
type SendPromptResponse struct {
	Response       string
	Model          string
	ModelName      string
	ResponseTime   float64
	PromptTokens   int
	ResponseTokens int
	RecordHandle   string
	Recorded       bool
}

// ChatService orchestrates one prompt-generation turn: the LLM call, token
// accounting, and handing the finished exchange to the analytics tracker.
type ChatService struct {
	analytics   *analytics.AnalyticsService
	llmProvider llm.LLMProvider
}

// NewChatService creates a new ChatService
func NewChatService(analyticsService *analytics.AnalyticsService, provider llm.LLMProvider) *ChatService {
	return &ChatService{
		analytics:   analyticsService,
		llmProvider: provider,
	}
}

// SendPrompt generates a response for the user's prompt and records the
// exchange. Analytics failures degrade the response metadata but never fail
// the generation itself.
func (s *ChatService) SendPrompt(req SendPromptRequest) (*SendPromptResponse, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}

	start := time.Now()
	result, err := s.llmProvider.Generate(req.Prompt, req.SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("LLM error: %w", err)
	}
	responseTime := time.Since(start).Seconds()

	promptTokens, responseTokens := resolveTokenCounts(req.Prompt, result)

	resp := &SendPromptResponse{
		Response:       result.Content,
		Model:          result.Model,
		ModelName:      config.ModelDisplayName(result.Model),
		ResponseTime:   responseTime,
		PromptTokens:   promptTokens,
		ResponseTokens: responseTokens,
	}

	handle, err := s.analytics.SaveConversation(
		req.Username, req.Prompt, result.Content, result.Model,
		responseTime, promptTokens, responseTokens,
	)
	if err != nil {
		// The user still gets their response; the turn just went unlogged
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"username": req.Username,
			"model":    result.Model,
		}).Warn("Failed to record conversation")
		return resp, nil
	}

	resp.RecordHandle = handle
	resp.Recorded = true
	return resp, nil
}

// resolveTokenCounts prefers the provider-reported usage and falls back to
// the length-based estimate when the backend returns none.
func resolveTokenCounts(prompt string, result *llm.GenerateResult) (int, int) {
	if result.Usage != nil {
		return result.Usage.PromptTokens, result.Usage.CompletionTokens
	}
	return analytics.EstimateTokens(prompt), analytics.EstimateTokens(result.Content)
}
