package actor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

type (
	// Result carries the domain outcome of a fallible request.
	Result[T any] struct {
		Value T
		Err   error
	}

	// replier is the type-erased view of a reply slot held by the loop.
	replier interface {
		// fulfill delivers a handler outcome. It reports false when the caller
		// has already stopped waiting.
		fulfill(v any, err error) bool
		// fail delivers a delivery-level error (panic, unknown kind).
		fail(err error) bool
		// abandon closes the slot without a value.
		abandon()
	}

	outcome[T any] struct {
		res Result[T]
		err error
	}

	// replySlot is a single-use channel from the loop back to one caller.
	replySlot[T any] struct {
		ch        chan outcome[T]
		once      sync.Once
		abandoned atomic.Bool
	}
)

// Unwrap returns the value and domain error.
func (r Result[T]) Unwrap() (T, error) { return r.Value, r.Err }

// OK reports whether the request succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

func newReplySlot[T any]() *replySlot[T] {
	return &replySlot[T]{ch: make(chan outcome[T], 1)}
}

func (s *replySlot[T]) fulfill(v any, err error) bool {
	res := Result[T]{Err: err}
	if v != nil {
		t, ok := v.(T)
		if !ok {
			return s.fail(fmt.Errorf("%w: reply of type %T", ErrKindMismatch, v))
		}
		res.Value = t
	}
	return s.deliver(outcome[T]{res: res})
}

func (s *replySlot[T]) fail(err error) bool {
	return s.deliver(outcome[T]{err: err})
}

func (s *replySlot[T]) deliver(o outcome[T]) bool {
	delivered := false
	s.once.Do(func() {
		s.ch <- o
		close(s.ch)
		delivered = true
	})
	return delivered && !s.abandoned.Load()
}

func (s *replySlot[T]) abandon() {
	s.once.Do(func() { close(s.ch) })
}

// await blocks until the slot is fulfilled, abandoned, or ctx is done. A slot
// closed without a value yields ErrActorStopped.
func (s *replySlot[T]) await(ctx context.Context) (Result[T], error) {
	select {
	case <-ctx.Done():
		s.abandoned.Store(true)
		return Result[T]{}, ctx.Err()
	case o, ok := <-s.ch:
		if !ok {
			return Result[T]{}, ErrActorStopped
		}
		return o.res, o.err
	}
}
