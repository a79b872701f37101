// Package errors defines the error umbrella returned by the public handler
// entry points along with the sentinels shared by every submodule.
package errors

import (
	"errors"
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// RootCodespace is the codespace for all errors defined in this package
const RootCodespace = "ibc"

var (
	// ErrInvalidSequence is used the sequence provided is invalid.
	ErrInvalidSequence = errorsmod.Register(RootCodespace, 2, "invalid sequence")
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = errorsmod.Register(RootCodespace, 3, "unauthorized")
	// ErrInvalidHeight defines an error for an invalid height
	ErrInvalidHeight = errorsmod.Register(RootCodespace, 4, "invalid height")
	// ErrNotFound defines an error when requested entity doesn't exist in the state.
	ErrNotFound = errorsmod.Register(RootCodespace, 5, "not found")
	// ErrInvalidType defines an error an invalid type.
	ErrInvalidType = errorsmod.Register(RootCodespace, 6, "invalid type")
	// ErrPackAny defines an error when packing a protobuf message to Any fails.
	ErrPackAny = errorsmod.Register(RootCodespace, 7, "failed packing protobuf message to Any")
	// ErrUnpackAny defines an error when unpacking a protobuf message from Any fails.
	ErrUnpackAny = errorsmod.Register(RootCodespace, 8, "failed unpacking protobuf message from Any")
	// ErrStore is returned when the host storage backend fails.
	ErrStore = errorsmod.Register(RootCodespace, 9, "host store failure")
	// ErrUnknownMessage is returned for a message no handler accepts.
	ErrUnknownMessage = errorsmod.Register(RootCodespace, 10, "unknown message type")
)

// ContextError is the single error type returned across the engine's public
// entry points. Codespace names the submodule that produced Err, which stays
// reachable through errors.Is and errors.As.
type ContextError struct {
	Codespace string
	Err       error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Codespace, e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

// Cause lets errorsmod.ABCIInfo resolve the registered code of Err.
func (e *ContextError) Cause() error { return e.Err }

// FromError wraps err in a ContextError. A nil error stays nil and an error
// that already is a ContextError is returned unchanged.
func FromError(err error) error {
	if err == nil {
		return nil
	}

	var ctxErr *ContextError
	if errors.As(err, &ctxErr) {
		return err
	}

	return &ContextError{Codespace: Codespace(err), Err: err}
}

// Codespace returns the codespace of the first registered error in err's
// chain, or "undefined" when there is none.
func Codespace(err error) string {
	var regErr *errorsmod.Error
	if errors.As(err, &regErr) {
		return regErr.Codespace()
	}
	return errorsmod.UndefinedCodespace
}
