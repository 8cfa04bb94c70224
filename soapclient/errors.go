package soapclient

import (
	"errors"
	"fmt"
)

// TransportError reports a failure below the SOAP layer: the request could
// not be delivered, or the response was not a SOAP envelope.
type TransportError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("soap %s: transport error (http %d): %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("soap %s: transport error: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a transport error.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
