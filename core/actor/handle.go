package actor

import "context"

// Handle is the caller-facing endpoint of an actor. It is a small value:
// copies share the same mailbox and may be used from any goroutine. The zero
// Handle is never running.
type Handle[S any] struct {
	id   string
	mb   *Mailbox[Event[S]]
	done <-chan struct{}
}

// ID returns the actor ID.
func (h Handle[S]) ID() string { return h.id }

// Send enqueues ev. It returns ErrActorStopped if the loop has exited.
func (h Handle[S]) Send(ev Event[S]) error {
	if h.mb == nil || ev == nil {
		return ErrActorStopped
	}
	if err := h.mb.Send(ev); err != nil {
		return ErrActorStopped
	}
	return nil
}

// IsRunning reports whether the mailbox still accepts events. The answer may
// be stale as soon as it is returned.
func (h Handle[S]) IsRunning() bool {
	return h.mb != nil && !h.mb.IsClosed()
}

// Closed is closed once the actor loop has exited. For the zero Handle it is
// already closed.
func (h Handle[S]) Closed() <-chan struct{} {
	if h.done == nil {
		return closedChan
	}
	return h.done
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Wait blocks until the loop has exited or ctx is done.
func (h Handle[S]) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.Closed():
		return nil
	}
}

// Stop asks the loop to exit once it reaches the stop signal. Events queued
// before it are still dispatched. Stop does not wait; use Closed or Wait.
// Calling it more than once is harmless.
func (h Handle[S]) Stop() {
	_ = h.Send(stopEvent[S]{})
}
