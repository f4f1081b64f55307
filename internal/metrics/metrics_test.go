package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSample(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveSample("disk", 5*time.Millisecond, 3, true)
	r.ObserveSample("disk", 5*time.Millisecond, 3, true)
	r.ObserveSample("disk", 5*time.Millisecond, 3, false)

	assert.Equal(t, float64(3),
		testutil.ToFloat64(r.samples.WithLabelValues("disk")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(r.failures.WithLabelValues("disk")))
	assert.Equal(t, float64(3),
		testutil.ToFloat64(r.rangeMax.WithLabelValues("disk")))
}

func TestObserveSamplePerSensorLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveSample("disk", time.Millisecond, 3, true)
	r.ObserveSample("services", time.Millisecond, 5, false)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(r.samples.WithLabelValues("disk")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(r.samples.WithLabelValues("services")))
	assert.Equal(t, float64(0),
		testutil.ToFloat64(r.failures.WithLabelValues("disk")))
	assert.Equal(t, float64(5),
		testutil.ToFloat64(r.rangeMax.WithLabelValues("services")))
}

func TestRangeMaxTracksLatestValue(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveSample("disk", time.Millisecond, 3, true)
	r.ObserveSample("disk", time.Millisecond, 7, true)

	assert.Equal(t, float64(7),
		testutil.ToFloat64(r.rangeMax.WithLabelValues("disk")))
}

func TestCollectorsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	r.ObserveSample("disk", time.Millisecond, 1, true)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "peek_samples_total")
	assert.Contains(t, names, "peek_sample_duration_seconds")
	assert.Contains(t, names, "peek_sensor_range_max")
}
