// Package metrics records analysis counters on a private prometheus registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resume_matcher"

// Skill statuses used for the skills_total label.
const (
	StatusFound   = "found"
	StatusMissing = "missing"
	StatusWarning = "warning"
)

// Recorder is safe for concurrent use. A nil Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	analyses prometheus.Counter
	score    prometheus.Histogram
	redFlags prometheus.Counter
	skills   *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Number of completed résumé analyses.",
		}),
		score: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_score",
			Help:      "Whole document match score, 0-100.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		redFlags: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "red_flags_total",
			Help:      "Outdated technology mentions found in candidates.",
		}),
		skills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skills_total",
			Help:      "Skill matches by status.",
		}, []string{"status"}),
	}

	r.registry.MustRegister(r.analyses, r.score, r.redFlags, r.skills)

	return r
}

// Observe records one finished analysis.
func (r *Recorder) Observe(score float64, found, missing, warnings, redFlags int) {
	if r == nil {
		return
	}

	r.analyses.Inc()
	r.score.Observe(score)
	r.redFlags.Add(float64(redFlags))
	r.skills.WithLabelValues(StatusFound).Add(float64(found))
	r.skills.WithLabelValues(StatusMissing).Add(float64(missing))
	r.skills.WithLabelValues(StatusWarning).Add(float64(warnings))
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes every metric in the text exposition format, suitable for the
// node exporter textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
