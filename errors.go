package wlcreator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCatalog is returned when a selection is requested over zero
// variants. Listing never produces an empty catalog, so hitting this
// means the caller skipped the listing step.
var ErrEmptyCatalog = errors.New("icon catalog is empty")

// ErrInvalidCriterion is returned for a non-positive target size.
var ErrInvalidCriterion = errors.New("target size must be positive")

// ToolError reports an external tool that exited non-zero or produced
// output the caller could not use. The combined stdout/stderr is kept
// for diagnostics; tool failures are never retried.
type ToolError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
