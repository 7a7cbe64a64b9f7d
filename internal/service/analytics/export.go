package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"prompt-app/internal/repository/store"
)

// ErrNothingToExport signals that a user has no conversations to export.
// It is distinguishable from a real export and from storage failures.
var ErrNothingToExport = errors.New("no conversations to export")

// ExportBundle is the single document produced by a history export
type ExportBundle struct {
	Username          string                     `json:"username"`
	ExportDate        string                     `json:"export_date"`
	ConversationCount int                        `json:"conversation_count"`
	Conversations     []store.ConversationRecord `json:"conversations"`
}

// ExportUserHistory serializes a user's full history into one JSON
// document, newest record first. It is a pure read: neither records nor the
// summary are touched. A user with zero records gets ErrNothingToExport.
func (s *AnalyticsService) ExportUserHistory(username string) ([]byte, error) {
	records, err := s.GetUserConversations(username)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	bundle := ExportBundle{
		Username:          username,
		ExportDate:        time.Now().Format(store.TimestampLayout),
		ConversationCount: len(records),
		Conversations:     records,
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	return data, nil
}
