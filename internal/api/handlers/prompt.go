package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"prompt-app/internal/auth"
	"prompt-app/internal/logger"
	"prompt-app/internal/repository/store"
	"prompt-app/internal/service/analytics"
	"prompt-app/internal/service/chat"
	"prompt-app/pkg/validation"
)

// Request/Response types

type GenerateRequest struct {
	Prompt       string `json:"prompt"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

type GenerateResponse struct {
	Response       string  `json:"response"`
	Model          string  `json:"model"`
	ModelName      string  `json:"model_name"`
	ResponseTime   float64 `json:"response_time"`
	PromptTokens   int     `json:"prompt_tokens"`
	ResponseTokens int     `json:"response_tokens"`
	Recorded       bool    `json:"recorded"`
	RecordID       string  `json:"record_id,omitempty"`
}

type HistoryResponse struct {
	Count         int                        `json:"count"`
	Conversations []store.ConversationRecord `json:"conversations"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PromptHandlers exposes prompt generation, history, export, and the
// analytics dashboard over HTTP.
type PromptHandlers struct {
	validator        *validation.PromptValidator
	chatService      *chat.ChatService
	analyticsService *analytics.AnalyticsService
	activityStore    store.Store
}

// NewPromptHandlers creates a new PromptHandlers with the service layer
func NewPromptHandlers(chatService *chat.ChatService, analyticsService *analytics.AnalyticsService, s store.Store) *PromptHandlers {
	return &PromptHandlers{
		validator:        validation.NewPromptValidator(),
		chatService:      chatService,
		analyticsService: analyticsService,
		activityStore:    s,
	}
}

// sendError sends a standardized JSON error response
func (h *PromptHandlers) sendError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := ErrorResponse{
		Code:    status,
		Message: message,
	}
	if err != nil {
		errResp.Error = err.Error()
	}
	json.NewEncoder(w).Encode(errResp)
}

// username extracts the authenticated username placed by the auth middleware
func (h *PromptHandlers) username(r *http.Request) (string, error) {
	username, ok := r.Context().Value(auth.UserContextKey).(string)
	if !ok || username == "" {
		return "", errors.New("no authenticated user in request context")
	}
	return username, nil
}

// GenerateHandler handles POST /api/generate
func (h *PromptHandlers) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	username, err := h.username(r)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.validator.ValidatePrompt(req.Prompt); err != nil {
		h.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	logger.Log.WithField("username", username).Info("Generate request received")

	result, err := h.chatService.SendPrompt(chat.SendPromptRequest{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Username:     username,
	})
	if err != nil {
		logger.Log.WithError(err).Error("Error from chat service")
		h.sendError(w, http.StatusBadGateway, "Generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GenerateResponse{
		Response:       result.Response,
		Model:          result.Model,
		ModelName:      result.ModelName,
		ResponseTime:   result.ResponseTime,
		PromptTokens:   result.PromptTokens,
		ResponseTokens: result.ResponseTokens,
		Recorded:       result.Recorded,
		RecordID:       result.RecordHandle,
	})
}

// HistoryHandler handles GET /api/history: the caller's full conversation
// history, newest first.
func (h *PromptHandlers) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	username, err := h.username(r)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	records, err := h.analyticsService.GetUserConversations(username)
	if err != nil {
		logger.Log.WithError(err).Error("Error retrieving history")
		h.sendError(w, http.StatusInternalServerError, "Error retrieving history", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HistoryResponse{
		Count:         len(records),
		Conversations: records,
	})
}

// ExportHandler handles GET /api/history/export: the caller's history as a
// single downloadable JSON document. Users with no history get a 404 with
// an explicit nothing-to-export message.
func (h *PromptHandlers) ExportHandler(w http.ResponseWriter, r *http.Request) {
	username, err := h.username(r)
	if err != nil {
		h.sendError(w, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	data, err := h.analyticsService.ExportUserHistory(username)
	if err != nil {
		if errors.Is(err, analytics.ErrNothingToExport) {
			h.sendError(w, http.StatusNotFound, "No conversations to export", err)
			return
		}
		logger.Log.WithError(err).Error("Error exporting history")
		h.sendError(w, http.StatusInternalServerError, "Error exporting history", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", username+"_conversation_history.json"))
	w.Write(data)
}

// AnalyticsHandler handles GET /api/analytics: the dashboard summary
func (h *PromptHandlers) AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.username(r); err != nil {
		h.sendError(w, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.analyticsService.Summary())
}

// ActivityHandler handles GET /api/activity: login-log statistics
func (h *PromptHandlers) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.username(r); err != nil {
		h.sendError(w, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	stats, err := h.activityStore.LoginStats()
	if err != nil {
		logger.Log.WithError(err).Error("Error reading activity log")
		h.sendError(w, http.StatusInternalServerError, "Error reading activity log", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
