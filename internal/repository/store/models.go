package store

import "golang.org/x/crypto/bcrypt"

// TimestampLayout is the layout used for record and export timestamps.
// Lexicographic order matches chronological order, which the per-user
// listing sort relies on.
const TimestampLayout = "2006-01-02 15:04:05"

// ConversationRecord is one persisted conversation turn. Records are
// immutable once written; retention is an external policy.
type ConversationRecord struct {
	Username       string  `json:"username"`
	Timestamp      string  `json:"timestamp"`
	Prompt         string  `json:"prompt"`
	Response       string  `json:"response"`
	Model          string  `json:"model"`
	ResponseTime   float64 `json:"response_time"`
	PromptTokens   int     `json:"prompt_tokens"`
	ResponseTokens int     `json:"response_tokens"`
	TotalTokens    int     `json:"total_tokens"`
}

// AnalyticsSummary is the single global running-statistics object derived
// incrementally from all records. AvgResponseTime is stored at full
// precision; rounding happens only at display time.
type AnalyticsSummary struct {
	TotalConversations int            `json:"total_conversations"`
	TotalTokens        int            `json:"total_tokens"`
	AvgResponseTime    float64        `json:"avg_response_time"`
	ModelUsage         map[string]int `json:"model_usage"`
	UserActivity       map[string]int `json:"user_activity"`
}

// NewAnalyticsSummary returns a zero-valued summary with initialized maps
func NewAnalyticsSummary() *AnalyticsSummary {
	return &AnalyticsSummary{
		ModelUsage:   make(map[string]int),
		UserActivity: make(map[string]int),
	}
}

// User represents a registered user
type User struct {
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    string
}

// VerifyPassword checks if the provided password matches the user's hashed password
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// LoginEvent is one row of the login activity log
type LoginEvent struct {
	Username  string `json:"username"`
	Timestamp string `json:"login_timestamp"`
	SessionID string `json:"session_id"`
}

// ActivityStats summarizes the login activity log
type ActivityStats struct {
	TotalLogins  int          `json:"total_logins"`
	UniqueUsers  int          `json:"unique_users"`
	RecentLogins []LoginEvent `json:"recent_logins"`
}
