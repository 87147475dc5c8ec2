package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registry holds only this service's collectors so tests and /metrics see a
// stable set.
var registry = prometheus.NewRegistry()

var (
	factory = promauto.With(registry)

	resumesParsedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "resumes_parsed_total",
		Help: "Resumes parsed into extraction records.",
	})
	parseFailedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "resume_parse_failed_total",
		Help: "Resume uploads that failed to decode or persist.",
	})
	emptyDocumentsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "resume_empty_documents_total",
		Help: "Resume uploads with no extractable text.",
	})
	unsupportedFormatsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "resume_unsupported_formats_total",
		Help: "Resume uploads with an unsupported format.",
	})
	recommendationsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "field_recommendations_total",
		Help: "Job field recommendation runs.",
	})

	reparseJobs = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "reparse_jobs_total",
		Help: "Reparse jobs by outcome.",
	}, []string{"outcome"})

	parseDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "resume_parse_duration_seconds",
		Help:    "Time from upload received to extraction record built.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})
)

// Reparse job outcomes.
const (
	outcomeEnqueued      = "enqueued"
	outcomeReceived      = "received"
	outcomeCompleted     = "completed"
	outcomeFailed        = "failed"
	outcomeUnrecoverable = "deleted_unrecoverable"
)

// IncResumesParsed counts uploads that produced an extraction record.
func IncResumesParsed() { resumesParsedTotal.Inc() }

// IncParseFailed counts uploads that failed to decode or persist.
func IncParseFailed() { parseFailedTotal.Inc() }

// IncEmptyDocument counts uploads rejected for having no text.
func IncEmptyDocument() { emptyDocumentsTotal.Inc() }

// IncUnsupportedFormat counts uploads with an unknown extension or type.
func IncUnsupportedFormat() { unsupportedFormatsTotal.Inc() }

// IncRecommendations counts field-matching runs.
func IncRecommendations() { recommendationsTotal.Inc() }

func IncReparseJobsEnqueued() { reparseJobs.WithLabelValues(outcomeEnqueued).Inc() }

func IncReparseJobsReceived() { reparseJobs.WithLabelValues(outcomeReceived).Inc() }

func IncReparseJobsCompleted() { reparseJobs.WithLabelValues(outcomeCompleted).Inc() }

// IncReparseJobsFailed counts reparse jobs left on the queue for retry.
func IncReparseJobsFailed() { reparseJobs.WithLabelValues(outcomeFailed).Inc() }

// IncReparseJobsDeletedUnrecoverable counts jobs dropped as malformed or stale.
func IncReparseJobsDeletedUnrecoverable() { reparseJobs.WithLabelValues(outcomeUnrecoverable).Inc() }

// ObserveParseDuration records the time from upload received to record built.
func ObserveParseDuration(d time.Duration) {
	parseDuration.Observe(max(d, 0).Seconds())
}

// Handler exposes the registry in the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
