package entity

import (
	"errors"
	"fmt"
)

// NetworkError wraps a failed upstream call: unreachable endpoint, non-2xx
// status, or a body that did not parse. The pipeline treats it as "balance
// unknown", never "balance zero".
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewNetworkError wraps err as a NetworkError for the given endpoint.
func NewNetworkError(endpoint string, err error) error {
	return &NetworkError{Endpoint: endpoint, Err: err}
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// FormatError reports a malformed address: wrong checksum, wrong byte length,
// or an alphabet violation. It is fatal to the owning wallet's contribution
// and must not be coerced into a zero balance.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed address %q: %s", e.Input, e.Reason)
}

// NewFormatError builds a FormatError for the given input.
func NewFormatError(input, reason string) error {
	return &FormatError{Input: input, Reason: reason}
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ResolutionError reports token or pool metadata that could not be found.
// Not fatal: the affected entry is carried as absent rather than raised.
type ResolutionError struct {
	Subject string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve %s", e.Subject)
}

// IsResolutionError reports whether err is (or wraps) a ResolutionError.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}
