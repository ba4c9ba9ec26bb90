package fusion

import (
	"errors"
	"fmt"
)

// FailureKind tags a failed realtime-data call so callers can branch on the
// failure class instead of matching error strings.
type FailureKind string

const (
	KindConnection FailureKind = "connection"
	KindHTTP       FailureKind = "http"
	KindParse      FailureKind = "parse"
	KindUnexpected FailureKind = "unexpected"
)

type FetchError struct {
	Kind       FailureKind
	StatusCode int
	DeviceDn   string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("fusion: %s failure fetching %s: status %d", e.Kind, e.DeviceDn, e.StatusCode)
	}
	return fmt.Sprintf("fusion: %s failure fetching %s: %v", e.Kind, e.DeviceDn, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ConfigError is fatal: the client cannot operate without a valid cookie set.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "fusion: configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrNoSignals is returned when a payload contains none of the labels an
// extractor was asked for.
var ErrNoSignals = errors.New("fusion: no recognized signals in payload")
