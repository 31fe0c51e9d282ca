package service

import "strings"

// ValidationError rejects a write before it happens and names the required
// fields that were blank after trimming.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "required field missing: " + strings.Join(e.Missing, ", ")
}
