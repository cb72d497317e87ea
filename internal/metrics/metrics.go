package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview_session",
		Name:      "transitions_total",
		Help:      "Lifecycle transitions applied, by edge",
	}, []string{"from", "to"})

	captures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview_session",
		Name:      "captures_total",
		Help:      "Evidence submissions, by kind and outcome",
	}, []string{"kind", "result"})

	scores = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview_session",
		Name:      "scores_total",
		Help:      "Terminal score records created",
	})

	sweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview_session",
		Name:      "sweep_runs_total",
		Help:      "Expiry sweep runs, by outcome",
	}, []string{"result"})

	sweepExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview_session",
		Name:      "sweep_expired_total",
		Help:      "Interviews expired by the sweep",
	})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "interview_session",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func ObserveTransition(from, to string) {
	transitions.WithLabelValues(from, to).Inc()
}

func ObserveCapture(kind, result string) {
	captures.WithLabelValues(kind, result).Inc()
}

func ObserveScore() {
	scores.Inc()
}

func ObserveSweep(expired int, err error) {
	if err != nil {
		sweepRuns.WithLabelValues("error").Inc()
	} else {
		sweepRuns.WithLabelValues("ok").Inc()
	}
	sweepExpired.Add(float64(expired))
}

func ObserveHTTP(method, path, status string, seconds float64) {
	httpLatency.WithLabelValues(method, path, status).Observe(seconds)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
