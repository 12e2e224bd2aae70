package actor

import (
	"context"
	"fmt"
)

type (
	// Kind is a request kind declared for actors with state S. The concrete
	// kinds are [*Msg], [*Request] and [*Fallible].
	Kind[S any] interface {
		// Name is the key the kind is dispatched by.
		Name() string

		fallible() bool
		invoke(c Ctx[S], s *S, args any) (any, error)
	}

	// Msg is a request kind without a return value.
	Msg[S, A any] struct {
		name string
		fn   func(c Ctx[S], s *S, a A)
	}

	// Request is a request kind that returns a value and cannot fail.
	Request[S, A, R any] struct {
		name string
		fn   func(c Ctx[S], s *S, a A) R
	}

	// Fallible is a request kind that returns a value or a domain error.
	// Its errors are passed through the definition's error interceptor.
	Fallible[S, A, R any] struct {
		name string
		fn   func(c Ctx[S], s *S, a A) (R, error)
	}

	// Void is the result type of a [Msg] call.
	Void struct{}
)

// HandleMsg declares a request kind whose handler returns nothing.
// Use [Msg.Send] for fire-and-forget delivery and [Msg.Call] to wait until
// the handler has run.
func HandleMsg[S, A any](name string, fn func(c Ctx[S], s *S, a A)) *Msg[S, A] {
	return &Msg[S, A]{name: name, fn: fn}
}

// HandleRequest declares a request kind that always replies with a value.
func HandleRequest[S, A, R any](name string, fn func(c Ctx[S], s *S, a A) R) *Request[S, A, R] {
	return &Request[S, A, R]{name: name, fn: fn}
}

// HandleFallible declares a request kind that replies with a value or an error.
func HandleFallible[S, A, R any](name string, fn func(c Ctx[S], s *S, a A) (R, error)) *Fallible[S, A, R] {
	return &Fallible[S, A, R]{name: name, fn: fn}
}

// ---- Msg ----

func (k *Msg[S, A]) Name() string { return k.name }

// Event returns a fire-and-forget event for this kind, e.g. for a selector.
func (k *Msg[S, A]) Event(a A) Event[S] { return &callEvent[S]{kind: k.name, args: a} }

// Send enqueues a without waiting. The error reports delivery only.
func (k *Msg[S, A]) Send(h Handle[S], a A) error { return h.Send(k.Event(a)) }

// Call enqueues a and waits until the handler has run.
func (k *Msg[S, A]) Call(ctx context.Context, h Handle[S], a A) error {
	_, err := call[S, A, Void](ctx, h, k.name, a)
	return err
}

func (k *Msg[S, A]) fallible() bool { return false }

func (k *Msg[S, A]) invoke(c Ctx[S], s *S, args any) (any, error) {
	k.fn(c, s, argsAs[A](k.name, args))
	return nil, nil
}

// ---- Request ----

func (k *Request[S, A, R]) Name() string { return k.name }

// Event returns an event for this kind without a reply slot; the result is
// discarded.
func (k *Request[S, A, R]) Event(a A) Event[S] { return &callEvent[S]{kind: k.name, args: a} }

// Call enqueues a and waits for the reply. A non-nil error is a delivery
// failure: [ErrActorStopped], a context error, [ErrUnknownKind] or a
// [*PanicError].
func (k *Request[S, A, R]) Call(ctx context.Context, h Handle[S], a A) (R, error) {
	res, err := call[S, A, R](ctx, h, k.name, a)
	return res.Value, err
}

func (k *Request[S, A, R]) fallible() bool { return false }

func (k *Request[S, A, R]) invoke(c Ctx[S], s *S, args any) (any, error) {
	return k.fn(c, s, argsAs[A](k.name, args)), nil
}

// ---- Fallible ----

func (k *Fallible[S, A, R]) Name() string { return k.name }

// Event returns an event for this kind without a reply slot. Errors are
// still passed to the error interceptor.
func (k *Fallible[S, A, R]) Event(a A) Event[S] { return &callEvent[S]{kind: k.name, args: a} }

// Call enqueues a and waits for the reply. The returned error is a delivery
// failure as for [Request.Call]; the domain outcome is in the Result.
func (k *Fallible[S, A, R]) Call(ctx context.Context, h Handle[S], a A) (Result[R], error) {
	return call[S, A, R](ctx, h, k.name, a)
}

func (k *Fallible[S, A, R]) fallible() bool { return true }

func (k *Fallible[S, A, R]) invoke(c Ctx[S], s *S, args any) (any, error) {
	return k.fn(c, s, argsAs[A](k.name, args))
}

// argsAs converts call arguments back to A. A mismatch means two kinds share
// a name; it panics and is reported to the caller as a [*PanicError].
func argsAs[A any](kind string, args any) A {
	if args == nil {
		var zero A
		return zero
	}
	a, ok := args.(A)
	if !ok {
		panic(fmt.Errorf("%w: %s got arguments of type %T", ErrKindMismatch, kind, args))
	}
	return a
}

// call allocates a reply slot, enqueues the call and awaits the reply.
func call[S, A, R any](ctx context.Context, h Handle[S], kind string, a A) (Result[R], error) {
	slot := newReplySlot[R]()
	if err := h.Send(&callEvent[S]{kind: kind, args: a, reply: slot}); err != nil {
		return Result[R]{}, err
	}
	return slot.await(ctx)
}

var (
	_ Kind[struct{}] = (*Msg[struct{}, int])(nil)
	_ Kind[struct{}] = (*Request[struct{}, int, int])(nil)
	_ Kind[struct{}] = (*Fallible[struct{}, int, int])(nil)
)
