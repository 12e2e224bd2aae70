package actor

import (
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// OnPanic is called on the loop goroutine when a handler panics.
type OnPanic func(recovered any, stack []byte, kind string)

// Options configure one running actor instance.
type Options struct {
	// ID identifies the instance in logs and metrics. Defaults to a random ID.
	ID      string
	Logger  *slog.Logger
	Metrics ActorMetrics
	OnPanic OnPanic
	// MaxConcurrentTasks caps the number of tasks run via Ctx.Schedule.
	// If 0, it defaults to 32; if negative, scheduling is unlimited.
	MaxConcurrentTasks int
}

func (o Options) withDefaults(name string) Options {
	if o.ID == "" {
		o.ID = gonanoid.Must(8)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	o.Logger = o.Logger.With(slog.String("actor", name), slog.String("actor_id", o.ID))
	if o.Metrics == nil {
		o.Metrics = NopActorMetrics()
	}
	if o.MaxConcurrentTasks == 0 {
		o.MaxConcurrentTasks = 32
	}
	if o.OnPanic == nil {
		log := o.Logger
		o.OnPanic = func(recovered any, stack []byte, kind string) {
			log.Error("actor panicked", slog.String("kind", kind), slog.Any("recovered", recovered), slog.String("stack", string(stack)))
		}
	}
	return o
}
