package types

import (
	"errors"
	"fmt"
)

// Stage identifies which half of a provider round trip failed.
type Stage string

const (
	StageTransport Stage = "transport"
	StageParse     Stage = "parse"
)

// Kind narrows a transport failure.
const (
	KindConnection = "connection"
	KindStatus     = "status"
	KindTimeout    = "timeout"
)

// ErrInvalidInput marks a request rejected before reaching the provider.
// The reply generator itself accepts any text, so only the HTTP layer produces it.
var ErrInvalidInput = errors.New("invalid input")

// Causes attached to parse-stage failures.
var (
	ErrMalformedResponse = errors.New("malformed json response")
	ErrMissingField      = errors.New("missing field in response")
	ErrUnexpectedType    = errors.New("unexpected field type in response")
)

// ProviderError is returned by every completion client when the LLM provider
// could not be reached or its answer could not be understood.
type ProviderError struct {
	Stage      Stage
	Kind       string // transport only: connection, status, timeout
	StatusCode int    // set for Kind == status
	Body       string // raw (truncated) provider response, if any
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider %s error", e.Stage)
	if e.Kind != "" {
		msg += " (" + e.Kind + ")"
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a failure talking to the provider.
func NewTransportError(kind string, err error) *ProviderError {
	return &ProviderError{Stage: StageTransport, Kind: kind, Err: err}
}

// NewParseError wraps a failure decoding the provider response.
func NewParseError(body string, err error) *ProviderError {
	return &ProviderError{Stage: StageParse, Body: body, Err: err}
}

// IsStage reports whether err carries a ProviderError of the given stage.
func IsStage(err error, stage Stage) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Stage == stage
}
