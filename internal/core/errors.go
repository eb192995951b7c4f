package core

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Callers classify failures with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInsufficientData  = errors.New("insufficient data")
)

// BatchFailure is one entry of a batch that could not be applied.
type BatchFailure struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// BatchResult reports a batch whose entries were attempted independently.
type BatchResult struct {
	Attempted int            `json:"attempted"`
	Applied   int            `json:"applied"`
	Failures  []BatchFailure `json:"failures,omitempty"`
}

// OK reports whether every attempted entry was applied.
func (b BatchResult) OK() bool {
	return len(b.Failures) == 0
}

// Summary is a one-line human description of the batch outcome.
func (b BatchResult) Summary() string {
	if b.OK() {
		return fmt.Sprintf("%d of %d applied", b.Applied, b.Attempted)
	}
	keys := make([]string, 0, len(b.Failures))
	for _, f := range b.Failures {
		keys = append(keys, f.Key)
	}
	return fmt.Sprintf("%d of %d applied, failed: %s", b.Applied, b.Attempted, strings.Join(keys, ", "))
}
