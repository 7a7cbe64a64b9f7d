package file

import (
	"fmt"
	"time"

	"prompt-app/internal/repository/store"
)

var activityHeader = []string{"username", "login_timestamp", "session_id"}

// recentLoginCount is how many trailing log rows LoginStats reports
const recentLoginCount = 5

// LogLogin appends one row to the login activity log
func (f *FileStore) LogLogin(username, sessionID string) error {
	row := []string{username, time.Now().Format(store.TimestampLayout), sessionID}
	if err := appendCSV(f.activityLogFile, activityHeader, row); err != nil {
		return fmt.Errorf("error writing activity log: %w", err)
	}
	return nil
}

// LoginStats summarizes the activity log: total logins, unique users, and
// the last few login events. A missing log yields zeroed stats.
func (f *FileStore) LoginStats() (*store.ActivityStats, error) {
	rows, err := readCSVRows(f.activityLogFile, len(activityHeader))
	if err != nil {
		return nil, fmt.Errorf("error reading activity log: %w", err)
	}

	unique := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		unique[row[0]] = struct{}{}
	}

	start := len(rows) - recentLoginCount
	if start < 0 {
		start = 0
	}

	recent := make([]store.LoginEvent, 0, recentLoginCount)
	for _, row := range rows[start:] {
		recent = append(recent, store.LoginEvent{
			Username:  row[0],
			Timestamp: row[1],
			SessionID: row[2],
		})
	}

	return &store.ActivityStats{
		TotalLogins:  len(rows),
		UniqueUsers:  len(unique),
		RecentLogins: recent,
	}, nil
}
