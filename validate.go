package aetheris

import "fmt"

// Validate checks universal constraints on ChatRequest. The context length
// is not limited here; RecentContext trims it for callers that want the
// ContextWindow.
func (r ChatRequest) Validate() error {
	if r.Message == "" {
		return fmt.Errorf("message must not be empty: %w", ErrValidation)
	}
	return nil
}
