package validation

import (
	"errors"
	"fmt"
	"strings"
)

// maxPromptLength bounds a single prompt submission
const maxPromptLength = 8000

// PromptValidator validates prompt-generation requests
type PromptValidator struct{}

// NewPromptValidator creates a new PromptValidator
func NewPromptValidator() *PromptValidator {
	return &PromptValidator{}
}

// ValidatePrompt validates the prompt text
func (v *PromptValidator) ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return errors.New("prompt cannot be empty")
	}
	if len(prompt) > maxPromptLength {
		return fmt.Errorf("prompt must be at most %d characters, got %d", maxPromptLength, len(prompt))
	}
	return nil
}
