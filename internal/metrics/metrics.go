package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "habit_tracker",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "habit_tracker",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	Checkins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "habit_tracker",
		Name:      "checkins_total",
		Help:      "Check-in attempts by outcome.",
	}, []string{"result"})

	Milestones = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "habit_tracker",
		Name:      "streak_milestones_total",
		Help:      "Streak milestones reached.",
	}, []string{"badge"})

	RewardClaims = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "habit_tracker",
		Name:      "reward_claims_total",
		Help:      "Rewards redeemed.",
	})

	RemindersSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "habit_tracker",
		Name:      "reminders_sent_total",
		Help:      "Habit reminders delivered.",
	})

	JobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "habit_tracker",
		Name:      "job_runs_total",
		Help:      "Scheduled job runs by job and outcome.",
	}, []string{"job", "result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		Checkins,
		Milestones,
		RewardClaims,
		RemindersSent,
		JobRuns,
	)
}
