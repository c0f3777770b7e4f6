package gateway

import (
	"bytes"
	"fmt"
)

// RevertError is an invocation failure that carries the exact bytes the
// call reverts with. Two RevertErrors match under errors.Is when their data
// is equal, regardless of cause.
type RevertError struct {
	Data  []byte
	cause error
}

func NewRevertError(reason string) *RevertError {
	return &RevertError{Data: []byte(reason)}
}

func (e *RevertError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Data, e.cause)
	}
	return string(e.Data)
}

func (e *RevertError) Unwrap() error {
	return e.cause
}

func (e *RevertError) Is(target error) bool {
	t, ok := target.(*RevertError)
	return ok && bytes.Equal(t.Data, e.Data)
}

// WithCause returns a copy of e wrapping cause
func (e *RevertError) WithCause(cause error) *RevertError {
	return &RevertError{Data: e.Data, cause: cause}
}

var (
	// ErrUnauthorized is returned when an inbound call does not come from the
	// alias of the registered counterpart.
	ErrUnauthorized = NewRevertError("Greeting only updateable by L1")

	// ErrOutboundDispatchFailed is returned when the transport rejects an
	// outbound message.
	ErrOutboundDispatchFailed = NewRevertError("External call failed")

	// ErrCounterpartAdminOnly is returned under the admin counterpart policy
	// when a non-admin tries to update the L1 target.
	ErrCounterpartAdminOnly = NewRevertError("L1 target only updateable by admin")
)
