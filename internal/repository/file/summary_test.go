package file

import (
	"os"
	"testing"

	"prompt-app/internal/repository/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSummary_MissingFile(t *testing.T) {
	fs := newTestStore(t)

	summary, err := fs.LoadSummary()

	require.NoError(t, err, "missing summary must not be an error")
	assert.Equal(t, 0, summary.TotalConversations)
	assert.Equal(t, 0, summary.TotalTokens)
	assert.Zero(t, summary.AvgResponseTime)
	assert.NotNil(t, summary.ModelUsage)
	assert.NotNil(t, summary.UserActivity)
	assert.Empty(t, summary.ModelUsage)
	assert.Empty(t, summary.UserActivity)
}

func TestLoadSummary_CorruptFile(t *testing.T) {
	fs := newTestStore(t)
	require.NoError(t, os.WriteFile(fs.analyticsFile, []byte("%%%"), 0o644))

	summary, err := fs.LoadSummary()

	require.NoError(t, err, "corrupt summary must degrade to zeros, not fail")
	assert.Equal(t, 0, summary.TotalConversations)
	assert.Empty(t, summary.ModelUsage)
}

func TestSaveSummary_RoundTripKeepsFullPrecision(t *testing.T) {
	fs := newTestStore(t)

	want := &store.AnalyticsSummary{
		TotalConversations: 7,
		TotalTokens:        1234,
		AvgResponseTime:    1.9999999991234,
		ModelUsage:         map[string]int{"m1": 4, "m2": 3},
		UserActivity:       map[string]int{"alice": 5, "bob": 2},
	}

	require.NoError(t, fs.SaveSummary(want))

	got, err := fs.LoadSummary()
	require.NoError(t, err)
	assert.Equal(t, want, got, "stored summary keeps full precision, rounding is display-only")
}

func TestLoadSummary_NullMapsBecomeEmpty(t *testing.T) {
	fs := newTestStore(t)
	doc := []byte(`{"total_conversations":1,"total_tokens":2,"avg_response_time":0.5,"model_usage":null,"user_activity":null}`)
	require.NoError(t, os.WriteFile(fs.analyticsFile, doc, 0o644))

	summary, err := fs.LoadSummary()

	require.NoError(t, err)
	assert.NotNil(t, summary.ModelUsage)
	assert.NotNil(t, summary.UserActivity)
}
