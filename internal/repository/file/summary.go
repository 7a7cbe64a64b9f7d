package file

import (
	"encoding/json"
	"fmt"
	"os"

	"prompt-app/internal/logger"
	"prompt-app/internal/repository/store"
)

// LoadSummary reads the persisted analytics summary. A missing file,
// unreadable content, or bad JSON all degrade to a fresh zero-valued
// summary: analytics are best-effort and must never block the caller.
func (f *FileStore) LoadSummary() (*store.AnalyticsSummary, error) {
	data, err := os.ReadFile(f.analyticsFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Log.WithError(err).Warn("Error reading analytics summary, starting from zero")
		}
		return store.NewAnalyticsSummary(), nil
	}

	var summary store.AnalyticsSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		logger.Log.WithError(err).Warn("Corrupt analytics summary, starting from zero")
		return store.NewAnalyticsSummary(), nil
	}

	if summary.ModelUsage == nil {
		summary.ModelUsage = make(map[string]int)
	}
	if summary.UserActivity == nil {
		summary.UserActivity = make(map[string]int)
	}

	return &summary, nil
}

// SaveSummary overwrites the whole summary document. The file format has no
// notion of partial updates.
func (f *FileStore) SaveSummary(summary *store.AnalyticsSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding analytics summary: %w", err)
	}

	if err := os.WriteFile(f.analyticsFile, data, 0o644); err != nil {
		return fmt.Errorf("error writing analytics summary: %w", err)
	}

	return nil
}
