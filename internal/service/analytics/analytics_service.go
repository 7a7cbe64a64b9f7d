package analytics

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"prompt-app/internal/logger"
	"prompt-app/internal/repository/store"

	"github.com/sirupsen/logrus"
)

// topListSize caps the model/user rankings in the dashboard summary
const topListSize = 5

// AnalyticsService owns the conversation record store and the global
// running-statistics summary. Records are written first; the summary is
// updated incrementally only after the record is durable, so a failed
// record write never leaks into the aggregate.
type AnalyticsService struct {
	store store.Store

	// mu serializes the load-modify-save cycle on the summary document.
	// Without it, concurrent sessions would race on the read-modify-write
	// and lose updates.
	mu sync.Mutex
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(s store.Store) *AnalyticsService {
	return &AnalyticsService{store: s}
}

// UsageCount is one row of a top-N ranking
type UsageCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SummaryView is the dashboard projection of the analytics summary.
// AvgResponseTime is rounded for display; the stored value keeps full
// precision.
type SummaryView struct {
	TotalConversations int          `json:"total_conversations"`
	TotalTokens        int          `json:"total_tokens"`
	AvgResponseTime    float64      `json:"avg_response_time"`
	TopModels          []UsageCount `json:"top_models"`
	TopUsers           []UsageCount `json:"top_users"`
}

// SaveConversation persists one conversation turn and folds it into the
// global summary. It returns an opaque handle identifying the stored record.
// A summary-write failure is logged but not returned: analytics must never
// block the prompt-generation flow.
func (s *AnalyticsService) SaveConversation(username, prompt, response, model string, responseTime float64, promptTokens, responseTokens int) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	if responseTime < 0 {
		return "", fmt.Errorf("response_time must be non-negative, got %f", responseTime)
	}
	if promptTokens < 0 || responseTokens < 0 {
		return "", fmt.Errorf("token counts must be non-negative")
	}

	record := &store.ConversationRecord{
		Username:       username,
		Timestamp:      time.Now().Format(store.TimestampLayout),
		Prompt:         prompt,
		Response:       response,
		Model:          model,
		ResponseTime:   responseTime,
		PromptTokens:   promptTokens,
		ResponseTokens: responseTokens,
		TotalTokens:    promptTokens + responseTokens,
	}

	handle, err := s.store.SaveRecord(record)
	if err != nil {
		// The aggregate is not touched for records that were never persisted
		return "", fmt.Errorf("failed to save conversation record: %w", err)
	}

	s.applyRecord(record)

	logger.Log.WithFields(logrus.Fields{
		"username": username,
		"model":    model,
		"record":   handle,
	}).Info("Recorded conversation")

	return handle, nil
}

// applyRecord folds one record into the summary using the incremental
// formulas and persists the whole summary document back.
func (s *AnalyticsService) applyRecord(record *store.ConversationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary, err := s.store.LoadSummary()
	if err != nil {
		logger.Log.WithError(err).Warn("Could not load analytics summary, starting from zero")
		summary = store.NewAnalyticsSummary()
	}

	summary.ModelUsage[record.Model]++
	summary.UserActivity[record.Username]++
	summary.TotalConversations++
	summary.TotalTokens += record.TotalTokens

	// Running mean: weight the previous average by the previous count.
	// Using any other count here drifts silently over many updates.
	newCount := summary.TotalConversations
	summary.AvgResponseTime = (summary.AvgResponseTime*float64(newCount-1) + record.ResponseTime) / float64(newCount)

	if err := s.store.SaveSummary(summary); err != nil {
		logger.Log.WithError(err).Warn("Failed to persist analytics summary")
	}
}

// GetUserConversations returns the full history for a user, newest first
func (s *AnalyticsService) GetUserConversations(username string) ([]store.ConversationRecord, error) {
	records, err := s.store.ListRecordsForUser(username)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve conversations: %w", err)
	}
	return records, nil
}

// Summary builds the dashboard view: totals, display-rounded average
// response time, and top-5 model/user rankings by conversation count.
// Summary reads degrade to zeros rather than failing the dashboard.
func (s *AnalyticsService) Summary() *SummaryView {
	summary, err := s.store.LoadSummary()
	if err != nil {
		logger.Log.WithError(err).Warn("Could not load analytics summary for dashboard")
		summary = store.NewAnalyticsSummary()
	}

	return &SummaryView{
		TotalConversations: summary.TotalConversations,
		TotalTokens:        summary.TotalTokens,
		AvgResponseTime:    math.Round(summary.AvgResponseTime*100) / 100,
		TopModels:          topCounts(summary.ModelUsage),
		TopUsers:           topCounts(summary.UserActivity),
	}
}

// topCounts projects a usage map into a count-descending ranking capped at
// topListSize. Ties keep the order the entries came out of the map in.
func topCounts(usage map[string]int) []UsageCount {
	counts := make([]UsageCount, 0, len(usage))
	for name, count := range usage {
		counts = append(counts, UsageCount{Name: name, Count: count})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if len(counts) > topListSize {
		counts = counts[:topListSize]
	}
	return counts
}
