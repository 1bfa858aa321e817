package types

import (
	"strings"

	"github.com/arthur-debert/quicken/pkg/errors"
)

// CommandError is a single failure reported by a command
type CommandError struct {
	Kind    errors.ErrorCode `json:"kind"`
	Message string           `json:"message"`
}

// CommandResult collects the failures of a command invocation. An empty result
// means success.
type CommandResult struct {
	Errors []CommandError `json:"errors,omitempty"`
}

// Add records a failure
func (r *CommandResult) Add(kind errors.ErrorCode, message string) {
	r.Errors = append(r.Errors, CommandError{Kind: kind, Message: message})
}

// AddError records err using its error code, or unknown_error for errors that
// carry none.
func (r *CommandResult) AddError(err error) {
	if err == nil {
		return
	}
	r.Add(errors.GetErrorCode(err), errors.Message(err))
}

// Success reports whether no failure was recorded
func (r *CommandResult) Success() bool {
	return len(r.Errors) == 0
}

// Kinds lists the recorded error kinds in order
func (r *CommandResult) Kinds() []errors.ErrorCode {
	kinds := make([]errors.ErrorCode, 0, len(r.Errors))
	for _, e := range r.Errors {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// Summary joins all messages, one per line
func (r *CommandResult) Summary() string {
	lines := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		lines = append(lines, string(e.Kind)+": "+e.Message)
	}
	return strings.Join(lines, "\n")
}
