package testutil

import (
	"errors"

	"prompt-app/internal/repository/store"
	"prompt-app/internal/service/llm"
)

// MockStore is a mock implementation of store.Store for testing
type MockStore struct {
	// User mocks
	GetUserByUsernameFunc func(username string) (*store.User, error)
	CreateUserFunc        func(username, email, password string) (*store.User, error)

	// Record mocks
	SaveRecordFunc         func(record *store.ConversationRecord) (string, error)
	ListRecordsForUserFunc func(username string) ([]store.ConversationRecord, error)

	// Summary mocks
	LoadSummaryFunc func() (*store.AnalyticsSummary, error)
	SaveSummaryFunc func(summary *store.AnalyticsSummary) error

	// Activity mocks
	LogLoginFunc   func(username, sessionID string) error
	LoginStatsFunc func() (*store.ActivityStats, error)
}

// User methods
func (m *MockStore) GetUserByUsername(username string) (*store.User, error) {
	if m.GetUserByUsernameFunc != nil {
		return m.GetUserByUsernameFunc(username)
	}
	return nil, errors.New("not implemented")
}

func (m *MockStore) CreateUser(username, email, password string) (*store.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(username, email, password)
	}
	return nil, errors.New("not implemented")
}

// Record methods
func (m *MockStore) SaveRecord(record *store.ConversationRecord) (string, error) {
	if m.SaveRecordFunc != nil {
		return m.SaveRecordFunc(record)
	}
	return "", errors.New("not implemented")
}

func (m *MockStore) ListRecordsForUser(username string) ([]store.ConversationRecord, error) {
	if m.ListRecordsForUserFunc != nil {
		return m.ListRecordsForUserFunc(username)
	}
	return nil, errors.New("not implemented")
}

// Summary methods
func (m *MockStore) LoadSummary() (*store.AnalyticsSummary, error) {
	if m.LoadSummaryFunc != nil {
		return m.LoadSummaryFunc()
	}
	return store.NewAnalyticsSummary(), nil
}

func (m *MockStore) SaveSummary(summary *store.AnalyticsSummary) error {
	if m.SaveSummaryFunc != nil {
		return m.SaveSummaryFunc(summary)
	}
	return nil
}

// Activity methods
func (m *MockStore) LogLogin(username, sessionID string) error {
	if m.LogLoginFunc != nil {
		return m.LogLoginFunc(username, sessionID)
	}
	return nil
}

func (m *MockStore) LoginStats() (*store.ActivityStats, error) {
	if m.LoginStatsFunc != nil {
		return m.LoginStatsFunc()
	}
	return &store.ActivityStats{}, nil
}

// MemoryStore is an in-memory store.Store that keeps summary state between
// calls, for tests that exercise the incremental aggregate update cycle.
type MemoryStore struct {
	MockStore

	Records []store.ConversationRecord
	Summary *store.AnalyticsSummary
}

// NewMemoryStore creates a MemoryStore with a zeroed summary
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Summary: store.NewAnalyticsSummary()}
}

func (m *MemoryStore) SaveRecord(record *store.ConversationRecord) (string, error) {
	if m.SaveRecordFunc != nil {
		return m.SaveRecordFunc(record)
	}
	m.Records = append(m.Records, *record)
	return record.Username + ".json", nil
}

func (m *MemoryStore) ListRecordsForUser(username string) ([]store.ConversationRecord, error) {
	if m.ListRecordsForUserFunc != nil {
		return m.ListRecordsForUserFunc(username)
	}
	var out []store.ConversationRecord
	for _, r := range m.Records {
		if r.Username == username {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) LoadSummary() (*store.AnalyticsSummary, error) {
	if m.LoadSummaryFunc != nil {
		return m.LoadSummaryFunc()
	}
	snapshot := *m.Summary
	return &snapshot, nil
}

func (m *MemoryStore) SaveSummary(summary *store.AnalyticsSummary) error {
	if m.SaveSummaryFunc != nil {
		return m.SaveSummaryFunc(summary)
	}
	m.Summary = summary
	return nil
}

// MockLLMProvider is a mock implementation of llm.LLMProvider
type MockLLMProvider struct {
	GenerateFunc func(prompt, systemPrompt string) (*llm.GenerateResult, error)
}

func (m *MockLLMProvider) Generate(prompt, systemPrompt string) (*llm.GenerateResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(prompt, systemPrompt)
	}
	return nil, errors.New("not implemented")
}
