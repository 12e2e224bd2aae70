package actor

import "github.com/codewandler/sactor-go/core/metrics"

// ActorMetrics receives runtime measurements from actor loops.
// All methods must be safe for concurrent use.
type ActorMetrics interface {
	// Dispatch
	MessageDuration(kind string) metrics.Timer
	MessageProcessed(kind string, success bool)
	MessagePanic(kind string)
	ErrorIntercepted(kind string)

	// Mailbox
	MailboxDepth(actorID string, depth int)
	SelectionFired(actorID string)

	// Scheduler
	SchedulerInflight(actorID string, count int)
	SchedulerTaskDuration() metrics.Timer
	SchedulerTaskCompleted(success bool)
}

type nopActorMetrics struct{}

func (nopActorMetrics) MessageDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopActorMetrics) MessageProcessed(string, bool)        {}
func (nopActorMetrics) MessagePanic(string)                  {}
func (nopActorMetrics) ErrorIntercepted(string)              {}

func (nopActorMetrics) MailboxDepth(string, int) {}
func (nopActorMetrics) SelectionFired(string)    {}

func (nopActorMetrics) SchedulerInflight(string, int)        {}
func (nopActorMetrics) SchedulerTaskDuration() metrics.Timer { return metrics.NopTimer() }
func (nopActorMetrics) SchedulerTaskCompleted(bool)          {}

// NopActorMetrics returns an ActorMetrics that discards everything.
func NopActorMetrics() ActorMetrics { return nopActorMetrics{} }
