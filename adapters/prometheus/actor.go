package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/sactor-go/core/actor"
	"github.com/codewandler/sactor-go/core/metrics"
)

// Options configure the collectors created by NewActorMetrics.
type Options struct {
	// Namespace prefixes every metric name. Defaults to "sactor".
	Namespace string
	// ConstLabels are attached to every metric, e.g. the service name.
	ConstLabels prometheus.Labels
}

// actorMetrics implements actor.ActorMetrics using Prometheus.
type actorMetrics struct {
	messageDuration       *prometheus.HistogramVec
	messagesTotal         *prometheus.CounterVec
	panicsTotal           *prometheus.CounterVec
	interceptedTotal      *prometheus.CounterVec
	mailboxDepth          *prometheus.GaugeVec
	selectionsTotal       *prometheus.CounterVec
	schedulerInflight     *prometheus.GaugeVec
	schedulerTaskDuration prometheus.Histogram
	schedulerTasksTotal   *prometheus.CounterVec
}

// NewActorMetrics registers the actor collectors with reg. One instance is
// meant to be shared by all actors of a process via actor.Options.Metrics.
func NewActorMetrics(reg prometheus.Registerer, opts Options) actor.ActorMetrics {
	ns := opts.Namespace
	if ns == "" {
		ns = "sactor"
	}
	cl := opts.ConstLabels

	m := &actorMetrics{
		messageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns, Name: "message_duration_seconds", ConstLabels: cl,
			Help:    "Handler run time per request kind in seconds",
			Buckets: defaultBuckets,
		}, []string{"kind"}),

		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "messages_total", ConstLabels: cl,
			Help: "Total number of dispatched requests",
		}, []string{"kind", "success"}),

		panicsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "panics_total", ConstLabels: cl,
			Help: "Total number of handler panics",
		}, []string{"kind"}),

		interceptedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "errors_intercepted_total", ConstLabels: cl,
			Help: "Total number of failed requests passed to the error interceptor",
		}, []string{"kind"}),

		mailboxDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns, Name: "mailbox_depth", ConstLabels: cl,
			Help: "Events waiting in the mailbox",
		}, []string{"actor_id"}),

		selectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "selections_total", ConstLabels: cl,
			Help: "Total number of events produced by selectors",
		}, []string{"actor_id"}),

		schedulerInflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns, Name: "scheduler_inflight", ConstLabels: cl,
			Help: "Number of concurrent scheduled tasks",
		}, []string{"actor_id"}),

		schedulerTaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Name: "scheduler_task_duration_seconds", ConstLabels: cl,
			Help:    "Scheduled task duration in seconds",
			Buckets: defaultBuckets,
		}),

		schedulerTasksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "scheduler_tasks_total", ConstLabels: cl,
			Help: "Total number of scheduled tasks completed",
		}, []string{"success"}),
	}

	reg.MustRegister(
		m.messageDuration,
		m.messagesTotal,
		m.panicsTotal,
		m.interceptedTotal,
		m.mailboxDepth,
		m.selectionsTotal,
		m.schedulerInflight,
		m.schedulerTaskDuration,
		m.schedulerTasksTotal,
	)

	return m
}

func (m *actorMetrics) MessageDuration(kind string) metrics.Timer {
	return newTimer(m.messageDuration.WithLabelValues(kind))
}

func (m *actorMetrics) MessageProcessed(kind string, success bool) {
	m.messagesTotal.WithLabelValues(kind, boolToStr(success)).Inc()
}

func (m *actorMetrics) MessagePanic(kind string) {
	m.panicsTotal.WithLabelValues(kind).Inc()
}

func (m *actorMetrics) ErrorIntercepted(kind string) {
	m.interceptedTotal.WithLabelValues(kind).Inc()
}

func (m *actorMetrics) MailboxDepth(actorID string, depth int) {
	m.mailboxDepth.WithLabelValues(actorID).Set(float64(depth))
}

func (m *actorMetrics) SelectionFired(actorID string) {
	m.selectionsTotal.WithLabelValues(actorID).Inc()
}

func (m *actorMetrics) SchedulerInflight(actorID string, count int) {
	m.schedulerInflight.WithLabelValues(actorID).Set(float64(count))
}

func (m *actorMetrics) SchedulerTaskDuration() metrics.Timer {
	return newTimer(m.schedulerTaskDuration)
}

func (m *actorMetrics) SchedulerTaskCompleted(success bool) {
	m.schedulerTasksTotal.WithLabelValues(boolToStr(success)).Inc()
}

var _ actor.ActorMetrics = (*actorMetrics)(nil)
