package schema

import "fmt"

// LoadError reports why a document could not become a usable graph:
// malformed YAML, an empty deck, a duplicate id, or a structurally invalid
// block. It is fatal to loading and meant to be surfaced verbatim.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load deck: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("load deck: %s", e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(err error, format string, args ...any) *LoadError {
	return &LoadError{Reason: fmt.Sprintf(format, args...), Err: err}
}
