package session

import "fmt"

// ConfigurationError reports a missing credential. It is raised before any
// network activity happens.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return "missing " + e.Missing
}

// SessionError reports a network or navigation fault: an exhausted
// empty-response retry loop, an HTTP-level error, or an expected form or
// link missing from a fetched page. Every SessionError is terminal for the
// current CheckBalance call.
type SessionError struct {
	Step string
	Err  error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
