package config

// keyModels pairs each API key slot with the model served through it.
// The pool mixes free-tier keys, so the model follows the key rather than
// being a separate request parameter.
var keyModels = []string{
	"deepseek/deepseek-chat",
	"google/gemini-2.0-flash-exp:free",
	"01-ai/yi-large",
	"qwen/qwen-2.5-72b-instruct",
}

// modelDisplayNames maps technical model identifiers to user-facing names
var modelDisplayNames = map[string]string{
	"deepseek/deepseek-chat":           "DeepSeek Chat",
	"google/gemini-2.0-flash-exp:free": "Gemini 2.0 Flash",
	"01-ai/yi-large":                   "Yi Large",
	"qwen/qwen-2.5-72b-instruct":       "Qwen 2.5 72B",
}

// DefaultModel returns the fallback model identifier
func (c *LLMConfig) DefaultModel() string {
	return keyModels[0]
}

// ModelForKey returns the model paired with the given API key.
// Unknown keys fall back to the default model.
func (c *LLMConfig) ModelForKey(key string) string {
	for i, k := range c.APIKeys {
		if k == key && i < len(keyModels) {
			return keyModels[i]
		}
	}
	return c.DefaultModel()
}

// ModelDisplayName returns a user-friendly name for a model identifier
func ModelDisplayName(model string) string {
	if name, ok := modelDisplayNames[model]; ok {
		return name
	}
	return model
}
