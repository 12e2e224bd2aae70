package actor

import (
	"errors"
	"fmt"
)

var (
	// ErrActorStopped is returned when a call cannot be delivered or answered
	// because the actor loop has exited.
	ErrActorStopped = errors.New("actor stopped")

	// ErrMailboxClosed is returned by [Mailbox.Send] and [Mailbox.Recv] once
	// the mailbox is closed.
	ErrMailboxClosed = errors.New("mailbox closed")

	// ErrUnknownKind is returned when an event names a request kind that the
	// actor's definition does not declare.
	ErrUnknownKind = errors.New("unknown request kind")

	// ErrAlreadyRunning is returned by [Loop.Run] when called more than once.
	ErrAlreadyRunning = errors.New("actor loop already running")

	// ErrKindMismatch is reported when a call's argument or reply type does
	// not match the kind registered under its name.
	ErrKindMismatch = errors.New("request kind type mismatch")

	ErrDuplicateKind        = errors.New("duplicate request kind")
	ErrMultipleSelectors    = errors.New("multiple selectors are not allowed")
	ErrMultipleInterceptors = errors.New("multiple error interceptors are not allowed")
)

// PanicError is returned to a caller whose request panicked inside the
// actor. The loop itself keeps running.
type PanicError struct {
	Kind      string
	Recovered any
	Stack     []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("actor handler %q panicked: %v", e.Kind, e.Recovered)
}

// Unwrap returns the recovered value if it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Recovered.(error)
	return err
}
