package llm

// GenerateResult is the outcome of one generation call
type GenerateResult struct {
	Content string
	Model   string
	Usage   *ResponseUsage
}

// LLMProvider defines the interface for generation backends
type LLMProvider interface {
	// Generate sends a prompt and returns the generated response along with
	// the model used and token usage when the backend reports it
	Generate(prompt, systemPrompt string) (*GenerateResult, error)
}
