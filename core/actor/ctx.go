package actor

import (
	"context"
	"log/slog"
)

type (
	// Ctx is passed to every handler, selector and hook of an actor. It is
	// cancelled when the loop exits.
	Ctx[S any] interface {
		context.Context
		Log() *slog.Logger
		// Self returns a Handle to the running actor. Handlers must not wait on
		// a reply from Self, the loop is busy running them.
		Self() Handle[S]
		// Kind is the name of the request kind being dispatched, empty outside
		// of a handler.
		Kind() string
		// Schedule runs f outside the loop. Results must be reported back
		// through Self.
		Schedule(f func(ctx context.Context))
	}
)

type handlerCtx[S any] struct {
	context.Context
	log   *slog.Logger
	self  Handle[S]
	kind  string
	sched *scheduler
}

func (hc *handlerCtx[S]) Log() *slog.Logger {
	if hc.kind != "" {
		return hc.log.With(slog.String("kind", hc.kind))
	}
	return hc.log
}

func (hc *handlerCtx[S]) Self() Handle[S]                  { return hc.self }
func (hc *handlerCtx[S]) Kind() string                     { return hc.kind }
func (hc *handlerCtx[S]) Schedule(f func(context.Context)) { hc.sched.Schedule(f) }

var _ Ctx[struct{}] = (*handlerCtx[struct{}])(nil)
