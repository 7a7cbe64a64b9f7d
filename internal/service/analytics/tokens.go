package analytics

import "unicode/utf8"

// EstimateTokens approximates the token count of a text as one token per
// four characters, rounded down. It is a fallback for when the provider
// returns no usage data; callers must not treat it as exact.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}
