package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"prompt-app/internal/logger"
	"prompt-app/internal/repository/store"

	"github.com/sirupsen/logrus"
)

// fileStampLayout is the timestamp embedded in record file names. Together
// with the username prefix it groups a user's records and sorts them
// chronologically. Second granularity is enough for human-paced usage.
const fileStampLayout = "20060102_150405"

// SaveRecord writes one conversation record as its own JSON document under
// the history directory and returns the file name as the record handle.
// Existing records are never modified.
func (f *FileStore) SaveRecord(record *store.ConversationRecord) (string, error) {
	if err := f.ensureHistoryDir(); err != nil {
		return "", err
	}

	stamp := time.Now()
	if ts, err := time.Parse(store.TimestampLayout, record.Timestamp); err == nil {
		stamp = ts
	}

	name := fmt.Sprintf("%s_%s.json", record.Username, stamp.Format(fileStampLayout))

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding record: %w", err)
	}

	if err := os.WriteFile(filepath.Join(f.historyDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("error writing record: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"username": record.Username,
		"record":   name,
	}).Debug("Saved conversation record")

	return name, nil
}

// ListRecordsForUser returns all records for a user, newest first.
// A missing history directory yields an empty list, and individual records
// that cannot be decoded are skipped with a warning so one bad unit never
// aborts the whole listing.
func (f *FileStore) ListRecordsForUser(username string) ([]store.ConversationRecord, error) {
	entries, err := os.ReadDir(f.historyDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []store.ConversationRecord{}, nil
		}
		return nil, fmt.Errorf("error reading history directory: %w", err)
	}

	prefix := username + "_"
	records := make([]store.ConversationRecord, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(f.historyDir, name))
		if err != nil {
			logger.Log.WithError(err).WithField("record", name).Warn("Skipping unreadable record")
			continue
		}

		var record store.ConversationRecord
		if err := json.Unmarshal(data, &record); err != nil {
			logger.Log.WithError(err).WithField("record", name).Warn("Skipping corrupt record")
			continue
		}

		records = append(records, record)
	}

	// Newest first; the timestamp layout sorts lexicographically
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})

	return records, nil
}
