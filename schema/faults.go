package schema

import (
	"errors"
	"fmt"
)

// FaultKind classifies a remote fault.
type FaultKind string

const (
	// FaultAuthentication reports an invalid or expired session token or bad credentials.
	FaultAuthentication FaultKind = "authentication"
	// FaultPermission reports an authenticated caller lacking a permission.
	FaultPermission FaultKind = "permission"
	// FaultValidation reports malformed or inconsistent input.
	FaultValidation FaultKind = "validation"
	// FaultRemote reports any other failure on the remote side.
	FaultRemote FaultKind = "remote"
)

var (
	// ErrAuthentication matches any authentication fault.
	ErrAuthentication = &Fault{Kind: FaultAuthentication}
	// ErrPermission matches any permission fault.
	ErrPermission = &Fault{Kind: FaultPermission}
	// ErrValidation matches any validation fault.
	ErrValidation = &Fault{Kind: FaultValidation}
	// ErrRemote matches any generic remote fault.
	ErrRemote = &Fault{Kind: FaultRemote}
)

// Fault is the error returned by every operation of the service.
type Fault struct {
	Kind    FaultKind
	Message string
}

func (f *Fault) Error() string {
	if f.Message == "" {
		return string(f.Kind) + " fault"
	}
	return string(f.Kind) + " fault: " + f.Message
}

// Is matches faults by kind so the package sentinels work with errors.Is.
func (f *Fault) Is(target error) bool {
	var other *Fault
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == f.Kind && (other.Message == "" || other.Message == f.Message)
}

// AuthenticationFault builds an authentication fault.
func AuthenticationFault(format string, args ...any) *Fault {
	return &Fault{Kind: FaultAuthentication, Message: fmt.Sprintf(format, args...)}
}

// PermissionFault builds a permission fault.
func PermissionFault(format string, args ...any) *Fault {
	return &Fault{Kind: FaultPermission, Message: fmt.Sprintf(format, args...)}
}

// ValidationFault builds a validation fault.
func ValidationFault(format string, args ...any) *Fault {
	return &Fault{Kind: FaultValidation, Message: fmt.Sprintf(format, args...)}
}

// RemoteFault builds a generic remote fault.
func RemoteFault(format string, args ...any) *Fault {
	return &Fault{Kind: FaultRemote, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the fault kind carried by err, or "" when err is not a fault.
func KindOf(err error) FaultKind {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Kind
	}
	return ""
}
