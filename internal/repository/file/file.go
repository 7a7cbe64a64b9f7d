// Package file implements the store.Store interface on top of flat files:
// one JSON document per conversation turn, a single JSON document for the
// global analytics summary, and CSV files for users and login activity.
// There is no database engine behind this store.
package file

import (
	"fmt"
	"os"

	"prompt-app/internal/config"
	"prompt-app/internal/logger"
	"prompt-app/internal/repository/store"
)

// Ensure FileStore implements store.Store interface
var _ store.Store = (*FileStore)(nil)

// FileStore persists all application state under a data directory
type FileStore struct {
	historyDir      string
	analyticsFile   string
	usersFile       string
	activityLogFile string
}

// NewFileStore creates a FileStore for the configured storage layout and
// makes sure the data directory exists.
func NewFileStore(cfg config.StorageConfig) (*FileStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %w", err)
	}

	logger.Log.WithField("data_dir", cfg.DataDir).Info("Using flat-file storage")

	return &FileStore{
		historyDir:      cfg.HistoryDir,
		analyticsFile:   cfg.AnalyticsFile,
		usersFile:       cfg.UsersFile,
		activityLogFile: cfg.ActivityLogFile,
	}, nil
}

// ensureHistoryDir creates the conversation history directory if needed
func (f *FileStore) ensureHistoryDir() error {
	if err := os.MkdirAll(f.historyDir, 0o755); err != nil {
		return fmt.Errorf("error creating history directory: %w", err)
	}
	return nil
}
