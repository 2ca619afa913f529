package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exports ingestion outcomes to Prometheus.
type Recorder struct {
	ingestions *prometheus.CounterVec
	questions  prometheus.Histogram
	duration   *prometheus.HistogramVec
}

// NewRecorder registers the ingestion metrics on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		ingestions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rfp_ingestions_total",
				Help: "Total number of finished ingestion runs.",
			},
			[]string{"format", "status"},
		),
		questions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rfp_ingestion_questions",
			Help:    "Questions extracted per successful ingestion.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rfp_ingestion_duration_seconds",
				Help:    "Wall time of an ingestion run.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
	}

	for _, c := range []prometheus.Collector{r.ingestions, r.questions, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) ObserveIngestion(format, status string, questions int, elapsed time.Duration) {
	r.ingestions.WithLabelValues(format, status).Inc()
	r.duration.WithLabelValues(format).Observe(elapsed.Seconds())
	if status == "ready" {
		r.questions.Observe(float64(questions))
	}
}
