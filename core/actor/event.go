package actor

type (
	// Event is a unit of work delivered through an actor's mailbox. The set of
	// variants is closed: the stop signal and calls created by request kinds.
	// Events of one actor type cannot be sent to another.
	Event[S any] interface {
		event(*S)
	}

	stopEvent[S any] struct{}

	callEvent[S any] struct {
		kind  string
		args  any
		reply replier // nil for fire-and-forget
	}
)

func (stopEvent[S]) event(*S)  {}
func (*callEvent[S]) event(*S) {}

// abandonEvent releases an event that will never be dispatched.
func abandonEvent[S any](ev Event[S]) {
	if c, ok := ev.(*callEvent[S]); ok && c.reply != nil {
		c.reply.abandon()
	}
}
