package actor

import "reflect"

// Selection is one extra event source the loop waits on alongside the
// mailbox. Build it with [Recv] or [Signal].
//
// When a selection becomes ready its event is appended to the mailbox, so
// events queued before it are dispatched first. A closed channel produces no
// event and the loop stops waiting on it, even if the selector keeps
// returning it.
type Selection[S any] struct {
	ch    reflect.Value
	event func(v reflect.Value, ok bool) Event[S]
}

// Recv selects on ch and turns each received value into an event. fn may
// return nil to ignore a value.
func Recv[S, T any](ch <-chan T, fn func(T) Event[S]) Selection[S] {
	return Selection[S]{
		ch: reflect.ValueOf(ch),
		event: func(v reflect.Value, ok bool) Event[S] {
			if !ok {
				return nil
			}
			t, _ := v.Interface().(T)
			return fn(t)
		},
	}
}

// Signal selects on ch and emits ev for every value received, e.g. ticks of
// a [time.Ticker].
func Signal[S, T any](ch <-chan T, ev Event[S]) Selection[S] {
	return Recv[S](ch, func(T) Event[S] { return ev })
}
