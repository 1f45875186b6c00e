package note

import "fmt"

// ValidationError blocks a generation before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// GenerationError wraps any failure of the completion call. Cause is kept for
// logs only and is never shown to the user.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate note: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
