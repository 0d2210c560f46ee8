package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry holds every harvester collector; it is served on /metrics.
	Registry *prometheus.Registry

	BatchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_harvester_batch_requests_total",
		Help: "Batch requests sent to the trivia API, by outcome",
	}, []string{"outcome"})

	DuplicateQuestionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trivia_harvester_duplicate_questions_total",
		Help: "Fetched questions discarded because their text was already collected",
	})

	CollectedQuestions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trivia_harvester_collected_questions",
		Help: "Unique questions collected by the current or last accumulation",
	})

	ExpectedQuestions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trivia_harvester_expected_questions",
		Help: "Question count discovered on the trivia homepage",
	})

	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_harvester_runs_total",
		Help: "Pipeline runs, by result code",
	}, []string{"result"})

	RunDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trivia_harvester_run_duration_seconds",
		Help:    "Wall-clock duration of pipeline runs",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})

	PublishTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_harvester_publish_total",
		Help: "Publisher invocations, by publisher and outcome",
	}, []string{"publisher", "outcome"})
)

// Batch request outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeAPIError       = "api_error"
	OutcomeError          = "error"
)

func init() {
	Registry = prometheus.NewRegistry()
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	Registry.MustRegister(BatchRequestsTotal)
	Registry.MustRegister(DuplicateQuestionsTotal)
	Registry.MustRegister(CollectedQuestions)
	Registry.MustRegister(ExpectedQuestions)
	Registry.MustRegister(RunsTotal)
	Registry.MustRegister(RunDurationSeconds)
	Registry.MustRegister(PublishTotal)
}
