package config

import "testing"

func TestModelForKey(t *testing.T) {
	cfg := &LLMConfig{
		APIKeys: []string{
			"sk-or-v1-first",
			"sk-or-v1-second",
			"sk-or-v1-third",
		},
	}

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"first key", "sk-or-v1-first", "deepseek/deepseek-chat"},
		{"second key", "sk-or-v1-second", "google/gemini-2.0-flash-exp:free"},
		{"third key", "sk-or-v1-third", "01-ai/yi-large"},
		{"unknown key falls back", "sk-or-v1-unknown", "deepseek/deepseek-chat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ModelForKey(tt.key); got != tt.want {
				t.Errorf("ModelForKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestModelForKey_EmptyPool(t *testing.T) {
	cfg := &LLMConfig{}
	if got := cfg.ModelForKey("sk-or-v1-anything"); got != cfg.DefaultModel() {
		t.Errorf("Expected default model, got %q", got)
	}
}

func TestValidAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"sk-or-v1-abcdef", true},
		{"sk-or-v2-abcdef", false},
		{"sk-or-v1-", false},
		{"", false},
		{"abcdef", false},
	}

	for _, tt := range tests {
		if got := ValidAPIKey(tt.key); got != tt.want {
			t.Errorf("ValidAPIKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestModelDisplayName(t *testing.T) {
	if got := ModelDisplayName("deepseek/deepseek-chat"); got != "DeepSeek Chat" {
		t.Errorf("Expected friendly name, got %q", got)
	}
	if got := ModelDisplayName("unknown/model"); got != "unknown/model" {
		t.Errorf("Unknown models keep their identifier, got %q", got)
	}
}
