// Package actor runs private state behind a single-consumer event loop.
//
// An actor is a value of some type S owned by exactly one goroutine, the
// loop. Callers never touch S; they hold a [Handle] and enqueue requests into
// an unbounded mailbox. The loop dequeues them one at a time, runs the
// matching handler against *S and, when the caller waits for it, replies.
// Because only the loop ever holds *S, handlers need no locking.
//
// # Declaring an actor
//
// Request kinds are declared once, as package-level values, and collected in
// a [Definition]:
//
//	type Counter struct{ n int }
//
//	var (
//	    Increment = actor.HandleRequest("increment", func(c actor.Ctx[Counter], s *Counter, _ struct{}) int {
//	        s.n++
//	        return s.n
//	    })
//	    Reset = actor.HandleMsg("reset", func(c actor.Ctx[Counter], s *Counter, v int) { s.n = v })
//	    Divide = actor.HandleFallible("divide", func(c actor.Ctx[Counter], s *Counter, d int) (int, error) {
//	        if d == 0 {
//	            return 0, errors.New("division by zero")
//	        }
//	        return s.n / d, nil
//	    })
//
//	    CounterActor = actor.MustDefine[Counter]("counter",
//	        actor.With[Counter](Increment, Reset, Divide),
//	    )
//	)
//
// There are three kinds of requests:
//
//   - [HandleMsg] declares a request without a return value. [Msg.Send] is
//     fire-and-forget and only reports delivery; [Msg.Call] waits until the
//     handler has run.
//   - [HandleRequest] declares a request that always replies with a value.
//   - [HandleFallible] declares a request that replies with a value or a
//     domain error, wrapped in a [Result]. Its errors pass through the
//     interceptor registered with [OnError].
//
// # Running
//
// [Definition.Run] creates the mailbox and the Handle before the state, so
// the initializer can keep a Handle to its own actor:
//
//	loop, h := CounterActor.Run(actor.Options{}, func(h actor.Handle[Counter]) Counter {
//	    return Counter{}
//	})
//	go loop.Run(ctx)
//
//	n, err := Increment.Call(ctx, h, struct{}{})
//
// [Definition.Spawn] does both steps at once.
//
// Every call returns a delivery error first: [ErrActorStopped] when the
// mailbox is closed or the loop exited before replying, a context error when
// the caller gave up, [*PanicError] when the handler panicked. A handler that
// panics fails only its own call; the loop keeps running.
//
// # Selecting
//
// A definition may register one selector with [Select]. It is called once per
// loop iteration and returns channels to wait on next to the mailbox:
//
//	actor.Select(func(c actor.Ctx[Clock], s *Clock) []actor.Selection[Clock] {
//	    return []actor.Selection[Clock]{actor.Signal[Clock](s.ticker.C, Tick.Event(struct{}{}))}
//	})
//
// When a selection becomes ready its event is appended to the mailbox, so
// the loop has a single dispatch point and events already queued are always
// dispatched first.
//
// # Stopping
//
// [Handle.Stop] enqueues a stop signal and returns immediately. Events queued
// before it are dispatched, events still queued when the loop exits are
// dropped and their callers receive [ErrActorStopped]. [Handle.Closed] is
// closed once the loop has exited. Cancelling the context passed to
// [Loop.Run] stops the loop as well.
package actor
