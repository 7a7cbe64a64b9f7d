package file

import (
	"os"
	"path/filepath"
	"testing"

	"prompt-app/internal/config"
	"prompt-app/internal/repository/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	dataDir := t.TempDir()
	fs, err := NewFileStore(config.StorageConfig{
		DataDir:         dataDir,
		HistoryDir:      filepath.Join(dataDir, "conversation_history"),
		AnalyticsFile:   filepath.Join(dataDir, "analytics_data.json"),
		UsersFile:       filepath.Join(dataDir, "users.csv"),
		ActivityLogFile: filepath.Join(dataDir, "user_log.csv"),
	})
	require.NoError(t, err)
	return fs
}

func record(username, timestamp, model string) *store.ConversationRecord {
	return &store.ConversationRecord{
		Username:       username,
		Timestamp:      timestamp,
		Prompt:         "prompt for " + timestamp,
		Response:       "response for " + timestamp,
		Model:          model,
		ResponseTime:   1.0,
		PromptTokens:   10,
		ResponseTokens: 20,
		TotalTokens:    30,
	}
}

func TestSaveRecord_ReturnsHandleEmbeddingUserAndTime(t *testing.T) {
	fs := newTestStore(t)

	handle, err := fs.SaveRecord(record("alice", "2026-08-23 10:15:42", "m1"))
	require.NoError(t, err)

	assert.Equal(t, "alice_20260823_101542.json", handle)
	_, err = os.Stat(filepath.Join(fs.historyDir, handle))
	assert.NoError(t, err, "handle should name the persisted unit")
}

func TestListRecordsForUser_NewestFirst(t *testing.T) {
	fs := newTestStore(t)

	timestamps := []string{
		"2026-08-23 09:00:00",
		"2026-08-23 11:30:00",
		"2026-08-23 10:15:00",
	}
	for _, ts := range timestamps {
		_, err := fs.SaveRecord(record("alice", ts, "m1"))
		require.NoError(t, err)
	}

	records, err := fs.ListRecordsForUser("alice")
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i := 1; i < len(records); i++ {
		assert.GreaterOrEqual(t, records[i-1].Timestamp, records[i].Timestamp,
			"records must be sorted newest first")
	}
	assert.Equal(t, "2026-08-23 11:30:00", records[0].Timestamp)
}

func TestListRecordsForUser_MissingDirectory(t *testing.T) {
	fs := newTestStore(t)

	records, err := fs.ListRecordsForUser("alice")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListRecordsForUser_SkipsCorruptUnit(t *testing.T) {
	fs := newTestStore(t)

	timestamps := []string{
		"2026-08-23 09:00:01",
		"2026-08-23 09:00:02",
		"2026-08-23 09:00:03",
		"2026-08-23 09:00:04",
	}
	for _, ts := range timestamps {
		_, err := fs.SaveRecord(record("alice", ts, "m1"))
		require.NoError(t, err)
	}

	// One corrupted unit among five
	corrupt := filepath.Join(fs.historyDir, "alice_20260823_090005.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))

	records, err := fs.ListRecordsForUser("alice")

	require.NoError(t, err, "one bad unit must not abort the listing")
	assert.Len(t, records, 4)
}

func TestListRecordsForUser_FiltersByUsername(t *testing.T) {
	fs := newTestStore(t)

	_, err := fs.SaveRecord(record("alice", "2026-08-23 09:00:00", "m1"))
	require.NoError(t, err)
	_, err = fs.SaveRecord(record("bob", "2026-08-23 09:00:01", "m2"))
	require.NoError(t, err)

	records, err := fs.ListRecordsForUser("alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Username)
}

func TestSaveRecord_RoundTripsAllFields(t *testing.T) {
	fs := newTestStore(t)

	want := &store.ConversationRecord{
		Username:       "alice",
		Timestamp:      "2026-08-23 10:15:42",
		Prompt:         "what is a monad",
		Response:       "a monoid in the category of endofunctors",
		Model:          "deepseek/deepseek-chat",
		ResponseTime:   1.234567891,
		PromptTokens:   5,
		ResponseTokens: 9,
		TotalTokens:    14,
	}

	_, err := fs.SaveRecord(want)
	require.NoError(t, err)

	records, err := fs.ListRecordsForUser("alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *want, records[0])
}
