package faq

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means that an inbound request is missing
	// the expected verification token, or carries a different one.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrMethodNotAllowed means that an inbound request has the wrong HTTP
	// method, or that an interaction payload isn't a dialog submission.
	ErrMethodNotAllowed = errors.New("only POST requests with slash commands or dialog submissions are accepted")

	// ErrVersionTaken means that another entry with the same tag and
	// version was saved first, i.e. a concurrent submission won the race.
	ErrVersionTaken = errors.New("version already exists")
)

// PersistenceError reports a failure to read from or write to the entry store.
type PersistenceError struct {
	Op  string
	Tag string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q failed: %v", e.Op, e.Tag, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// TransportError reports a failure to call one of Slack's Web API methods.
// SlackError is set when Slack received the call but rejected it.
type TransportError struct {
	Method     string
	SlackError string
	Err        error
}

func (e *TransportError) Error() string {
	if e.SlackError != "" {
		return fmt.Sprintf("Slack API method %s returned an error: %s", e.Method, e.SlackError)
	}
	return fmt.Sprintf("failed to call Slack API method %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
