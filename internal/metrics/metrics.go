// Package metrics instruments sample cycles with Prometheus collectors,
// exposed by the peek serve endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the per-sensor collectors for sample cycles.
type Recorder struct {
	samples  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rangeMax *prometheus.GaugeVec
}

// NewRecorder creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer outside of tests.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "peek_samples_total",
			Help: "Sample cycles per sensor.",
		}, []string{"sensor"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "peek_sample_failures_total",
			Help: "Sample cycles whose last fetch had failed, per sensor.",
		}, []string{"sensor"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "peek_sample_duration_seconds",
			Help:    "Wall time of one sample cycle, including any fetch.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"sensor"}),
		rangeMax: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "peek_sensor_range_max",
			Help: "The max of the sensor's numeric range (column/line/unit count).",
		}, []string{"sensor"}),
	}

	reg.MustRegister(r.samples, r.failures, r.duration, r.rangeMax)
	return r
}

// ObserveSample records one completed sample cycle.
func (r *Recorder) ObserveSample(sensorName string, elapsed time.Duration, max float64, ok bool) {
	r.samples.WithLabelValues(sensorName).Inc()
	if !ok {
		r.failures.WithLabelValues(sensorName).Inc()
	}
	r.duration.WithLabelValues(sensorName).Observe(elapsed.Seconds())
	r.rangeMax.WithLabelValues(sensorName).Set(max)
}
