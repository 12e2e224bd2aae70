package actor

import (
	"fmt"
	"sort"

	"github.com/codewandler/sactor-go/internal/typename"
)

type (
	// SelectFunc returns the extra event sources the loop waits on during the
	// next iteration. It is called once per iteration.
	SelectFunc[S any] func(c Ctx[S], s *S) []Selection[S]

	// ErrorFunc observes the error of a failed [Fallible] request before it is
	// replied. It may replace the error; setting it to nil keeps the original.
	ErrorFunc[S any] func(c Ctx[S], s *S, err *error)

	// DefineOption configures a [Definition].
	DefineOption[S any] func(d *Definition[S]) error

	// Definition is the dispatch table of an actor kind: its request kinds,
	// optional selector, optional error interceptor and lifecycle hooks. It is
	// immutable after Define and may be shared by many instances.
	Definition[S any] struct {
		name     string
		kinds    map[string]Kind[S]
		selector SelectFunc[S]
		onError  ErrorFunc[S]
		onStart  func(c Ctx[S], s *S) error
		onStop   func(c Ctx[S], s *S)
	}
)

// Define builds a Definition. An empty name defaults to the Go type name of S.
func Define[S any](name string, opts ...DefineOption[S]) (*Definition[S], error) {
	if name == "" {
		name = typename.For[S]()
	}
	d := &Definition[S]{
		name:  name,
		kinds: make(map[string]Kind[S]),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("define actor %s: %w", name, err)
		}
	}
	return d, nil
}

// MustDefine is like Define but panics on error.
func MustDefine[S any](name string, opts ...DefineOption[S]) *Definition[S] {
	d, err := Define[S](name, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// With registers request kinds.
func With[S any](kinds ...Kind[S]) DefineOption[S] {
	return func(d *Definition[S]) error {
		for _, k := range kinds {
			if _, exists := d.kinds[k.Name()]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicateKind, k.Name())
			}
			d.kinds[k.Name()] = k
		}
		return nil
	}
}

// Select registers the selector. At most one is allowed.
func Select[S any](fn SelectFunc[S]) DefineOption[S] {
	return func(d *Definition[S]) error {
		if d.selector != nil {
			return ErrMultipleSelectors
		}
		d.selector = fn
		return nil
	}
}

// OnError registers the error interceptor. At most one is allowed.
func OnError[S any](fn ErrorFunc[S]) DefineOption[S] {
	return func(d *Definition[S]) error {
		if d.onError != nil {
			return ErrMultipleInterceptors
		}
		d.onError = fn
		return nil
	}
}

// OnStart registers a hook run on the loop before the first event. A
// non-nil error stops the actor.
func OnStart[S any](fn func(c Ctx[S], s *S) error) DefineOption[S] {
	return func(d *Definition[S]) error {
		d.onStart = fn
		return nil
	}
}

// OnStop registers a hook run on the loop after the last event, e.g. to
// release selector sources.
func OnStop[S any](fn func(c Ctx[S], s *S)) DefineOption[S] {
	return func(d *Definition[S]) error {
		d.onStop = fn
		return nil
	}
}

func (d *Definition[S]) Name() string { return d.name }

// Kinds returns the declared request kind names, sorted.
func (d *Definition[S]) Kinds() []string {
	names := make([]string, 0, len(d.kinds))
	for n := range d.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
