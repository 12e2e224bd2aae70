package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"sync/atomic"
)

// Loop is the single consumer of an actor's mailbox and the only owner of
// its state. Create it with [Definition.Run] and start it with [Loop.Run].
type Loop[S any] struct {
	def     *Definition[S]
	id      string
	log     *slog.Logger
	metrics ActorMetrics
	onPanic OnPanic
	maxTask int

	mb    *Mailbox[Event[S]]
	self  Handle[S]
	done  chan struct{}
	state S

	// closed selection channels, kept referenced so their addresses are not
	// reused while remembered; loop goroutine only
	drained map[uintptr]reflect.Value

	started atomic.Bool
}

type dispatchResult struct {
	value any
	err   error
	panic *PanicError
}

// Run creates an actor instance in two phases: the mailbox and Handle are
// created first, then init builds the initial state and may keep the Handle.
// Events sent from init are queued until the returned Loop runs.
func (d *Definition[S]) Run(opts Options, init func(h Handle[S]) S) (*Loop[S], Handle[S]) {
	opts = opts.withDefaults(d.name)

	done := make(chan struct{})
	mb := NewMailbox[Event[S]]()
	h := Handle[S]{id: opts.ID, mb: mb, done: done}

	l := &Loop[S]{
		def:     d,
		id:      opts.ID,
		log:     opts.Logger,
		metrics: opts.Metrics,
		onPanic: opts.OnPanic,
		maxTask: opts.MaxConcurrentTasks,
		mb:      mb,
		self:    h,
		done:    done,
	}
	if init != nil {
		l.state = init(h)
	}
	return l, h
}

// Spawn is Run followed by starting the loop in its own goroutine.
func (d *Definition[S]) Spawn(ctx context.Context, opts Options, init func(h Handle[S]) S) Handle[S] {
	l, h := d.Run(opts, init)
	go func() {
		if err := l.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.log.Error("actor loop exited", slog.Any("error", err))
		}
	}()
	return h
}

// ID returns the actor ID.
func (l *Loop[S]) ID() string { return l.id }

// Run processes events until the actor is stopped, its mailbox is closed
// and drained, or ctx is done. It returns nil on a regular stop and the
// context error on cancellation. Run may only be called once.
func (l *Loop[S]) Run(ctx context.Context) (err error) {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	sched := newScheduler(ctx, l.maxTask, l.id, l.log, l.metrics)
	hc := &handlerCtx[S]{
		Context: ctx,
		log:     l.log,
		self:    l.self,
		sched:   sched,
	}

	defer func() {
		l.mb.Close()
		abandoned := l.mb.Drain()
		for _, ev := range abandoned {
			abandonEvent[S](ev)
		}
		if l.def.onStop != nil {
			l.safeHook("stop", func() { l.def.onStop(hc, &l.state) })
		}
		cancel()
		sched.Wait()
		l.metrics.MailboxDepth(l.id, 0)
		l.log.Debug("actor stopped", slog.Int("abandoned", len(abandoned)), slog.Any("error", err))
		close(l.done)
	}()

	l.log.Debug("actor started")

	if l.def.onStart != nil {
		var startErr error
		if perr := l.safeHook("start", func() { startErr = l.def.onStart(hc, &l.state) }); perr != nil {
			startErr = perr
		}
		if startErr != nil {
			return fmt.Errorf("start actor %s: %w", l.def.name, startErr)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sels := l.selections(hc)

		// mailbox first: queued events win over selections
		if ev, ok := l.mb.TryRecv(); ok {
			if !l.handle(hc, ev) {
				return nil
			}
			continue
		}
		if l.mb.IsClosed() {
			return nil
		}

		ev, err := l.wait(ctx, sels)
		if err != nil {
			return err
		}
		if ev == nil {
			continue
		}
		l.metrics.SelectionFired(l.id)
		if err := l.mb.Send(ev); err != nil {
			abandonEvent[S](ev)
		}
	}
}

// handle dispatches one event and reports whether the loop keeps running.
func (l *Loop[S]) handle(hc *handlerCtx[S], ev Event[S]) bool {
	switch e := ev.(type) {
	case stopEvent[S]:
		return false
	case *callEvent[S]:
		l.dispatch(hc, e)
	default:
		l.log.Warn("dropping unsupported event", slog.String("type", fmt.Sprintf("%T", ev)))
		abandonEvent[S](ev)
	}
	return true
}

func (l *Loop[S]) dispatch(hc *handlerCtx[S], ev *callEvent[S]) {
	k, ok := l.def.kinds[ev.kind]
	if !ok {
		l.log.Warn("no handler for request kind", slog.String("kind", ev.kind))
		if ev.reply != nil {
			ev.reply.fail(fmt.Errorf("%w: %s", ErrUnknownKind, ev.kind))
		}
		return
	}

	l.metrics.MailboxDepth(l.id, l.mb.Len())

	c := *hc
	c.kind = ev.kind

	timer := l.metrics.MessageDuration(ev.kind)
	res := l.invoke(&c, k, ev.args)
	timer.ObserveDuration()

	if res.panic != nil {
		l.metrics.MessagePanic(ev.kind)
		l.metrics.MessageProcessed(ev.kind, false)
		if ev.reply != nil {
			ev.reply.fail(res.panic)
		}
		return
	}

	if res.err != nil && k.fallible() {
		l.intercept(&c, &res.err)
	}
	l.metrics.MessageProcessed(ev.kind, res.err == nil)

	if ev.reply != nil && !ev.reply.fulfill(res.value, res.err) {
		l.log.Debug("reply abandoned by caller", slog.String("kind", ev.kind))
	}
}

func (l *Loop[S]) invoke(c *handlerCtx[S], k Kind[S], args any) (res dispatchResult) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			res.panic = &PanicError{Kind: k.Name(), Recovered: r, Stack: stack}
			l.onPanic(r, stack, k.Name())
		}
	}()
	res.value, res.err = k.invoke(c, &l.state, args)
	return res
}

// intercept passes a failed result through the error interceptor.
func (l *Loop[S]) intercept(c *handlerCtx[S], err *error) {
	if l.def.onError == nil {
		return
	}
	orig := *err
	l.metrics.ErrorIntercepted(c.kind)
	l.safeHook("error", func() { l.def.onError(c, &l.state, err) })
	if *err == nil {
		*err = orig
	}
}

func (l *Loop[S]) selections(hc *handlerCtx[S]) (sels []Selection[S]) {
	if l.def.selector == nil {
		return nil
	}
	l.safeHook("select", func() { sels = l.def.selector(hc, &l.state) })
	return sels
}

// wait blocks until the mailbox is signalled, ctx is done, or a selection
// becomes ready. It returns the selection's event, if any. A selection whose
// channel has been closed is remembered and no longer waited on.
func (l *Loop[S]) wait(ctx context.Context, sels []Selection[S]) (Event[S], error) {
	live := sels[:0:0]
	var still int
	for _, s := range sels {
		if !s.ch.IsValid() {
			continue
		}
		if _, closed := l.drained[s.ch.Pointer()]; closed {
			still++
			continue
		}
		live = append(live, s)
	}
	if still < len(l.drained) {
		l.forgetDrained(sels)
	}

	if len(live) == 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-l.mb.Ready():
		case <-l.mb.Closed():
		}
		return nil, nil
	}

	const fixed = 3
	cases := make([]reflect.SelectCase, fixed, fixed+len(live))
	cases[0] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())}
	cases[1] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(l.mb.Ready())}
	cases[2] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(l.mb.Closed())}
	for _, s := range live {
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: s.ch})
	}

	chosen, v, ok := reflect.Select(cases)
	switch chosen {
	case 0:
		return nil, ctx.Err()
	case 1, 2:
		return nil, nil
	}

	sel := live[chosen-fixed]
	if !ok {
		if l.drained == nil {
			l.drained = make(map[uintptr]reflect.Value)
		}
		l.drained[sel.ch.Pointer()] = sel.ch
		l.log.Debug("selection channel closed", slog.String("chan", sel.ch.Type().String()))
		return nil, nil
	}

	var ev Event[S]
	l.safeHook("select", func() { ev = sel.event(v, ok) })
	return ev, nil
}

// forgetDrained drops closed channels the selector no longer returns.
func (l *Loop[S]) forgetDrained(sels []Selection[S]) {
	current := make(map[uintptr]struct{}, len(sels))
	for _, s := range sels {
		if s.ch.IsValid() {
			current[s.ch.Pointer()] = struct{}{}
		}
	}
	for p := range l.drained {
		if _, ok := current[p]; !ok {
			delete(l.drained, p)
		}
	}
}

// safeHook runs user code on the loop and contains panics.
func (l *Loop[S]) safeHook(name string, f func()) (perr *PanicError) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			perr = &PanicError{Kind: name, Recovered: r, Stack: stack}
			l.onPanic(r, stack, name)
		}
	}()
	f()
	return nil
}
