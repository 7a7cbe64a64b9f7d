package store

// Store defines the interface for all persistence operations.
// This allows for easier testing through mocking and decouples the services
// from the flat-file implementation.
type Store interface {
	// Users
	GetUserByUsername(username string) (*User, error)
	CreateUser(username, email, password string) (*User, error)

	// Conversation records (append-only, one unit per turn)
	SaveRecord(record *ConversationRecord) (string, error)
	ListRecordsForUser(username string) ([]ConversationRecord, error)

	// Global analytics summary (single document, full-object overwrite)
	LoadSummary() (*AnalyticsSummary, error)
	SaveSummary(summary *AnalyticsSummary) error

	// Login activity log
	LogLogin(username, sessionID string) error
	LoginStats() (*ActivityStats, error)
}
