package model

import "fmt"

// ConfigurationError marks a model that cannot be computed at all (as opposed
// to one that is merely incomplete, which normalization fails open on):
// a non-positive duration, seasonal growth with no factors, and similar.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// PreconditionError signals that a caller invoked an operation without the
// inputs it requires, e.g. applying scenario deltas to a missing baseline.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}
