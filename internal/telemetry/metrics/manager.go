package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterLogins              *prometheus.CounterVec
	CounterFriendRequests      *prometheus.CounterVec
	CounterWorkoutInvites      prometheus.Counter
	CounterSkipAndShift        prometheus.Counter
	CounterShiftedInstances    prometheus.Counter
	CounterRolledInstances     prometheus.Counter
	CounterExerciseLogs        prometheus.Counter
	CounterCacheLookups        *prometheus.CounterVec
	CounterPublishedEvents     *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistogramJobDuration     *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitnessxs", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitnessxs", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		}
	}

	return &Manager{
		CounterRequests: factory.NewCounterVec(
			counterOpts("request", "The total number of incoming requests"),
			[]string{"method", "status"},
		),
		CounterHandleRequestPanic: factory.NewCounter(
			counterOpts("handle_request_panic", "The total number of serve request panics"),
		),
		CounterRateLimitedRequests: factory.NewCounter(
			counterOpts("rate_limited_requests", "The total number of rate limited requests"),
		),
		CounterLogins: factory.NewCounterVec(
			counterOpts("logins", "Login attempts by result"),
			[]string{"result"},
		),
		CounterFriendRequests: factory.NewCounterVec(
			counterOpts("friend_requests", "Friend request transitions"),
			[]string{"action"},
		),
		CounterWorkoutInvites: factory.NewCounter(
			counterOpts("workout_invites", "The total number of sent workout invites"),
		),
		CounterSkipAndShift: factory.NewCounter(
			counterOpts("skip_and_shift", "The total number of skip and shift operations"),
		),
		CounterShiftedInstances: factory.NewCounter(
			counterOpts("shifted_schedule_instances", "Schedule instances moved forward by skip and shift"),
		),
		CounterRolledInstances: factory.NewCounter(
			counterOpts("rolled_schedule_instances", "Schedule instances created by the roll forward job"),
		),
		CounterExerciseLogs: factory.NewCounter(
			counterOpts("exercise_logs", "The total number of saved exercise logs"),
		),
		CounterCacheLookups: factory.NewCounterVec(
			counterOpts("cache_lookups", "Query cache lookups by namespace and result"),
			[]string{"namespace", "result"},
		),
		CounterPublishedEvents: factory.NewCounterVec(
			counterOpts("published_events", "Domain events handed to the publisher"),
			[]string{"type", "result"},
		),

		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of open connections",
		}),
		GaugeLifeSignal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "life_signal",
			Help:      "Shows whether the service is alive",
		}),

		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status_code"}),
		HistogramJobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "job_duration_seconds",
			Help:      "Duration of background jobs in seconds",
			Buckets:   []float64{.01, .1, .5, 1, 5, 15, 60, 300},
		}, []string{"job"}),
	}
}
