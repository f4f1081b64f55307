package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/nathanbaker/peek/internal/errors"
	"github.com/nathanbaker/peek/internal/logger"
	"github.com/nathanbaker/peek/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// serveCommand samples all configured sensors on their own rates and
// exposes the current values and Prometheus metrics over HTTP.
func serveCommand(listenFlag string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	instances, err := buildAll(cfg)
	if err != nil {
		return err
	}

	listen := listenFlag
	if listen == "" {
		listen = cfg.Serve.Listen
	}

	log := logger.NewEnvLogger("[serve]")
	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	store := newValueStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, inst := range instances {
		wg.Add(1)
		go func(inst *instance) {
			defer wg.Done()
			sampleLoop(ctx, inst, store, recorder)
		}(inst)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/sensors", store.handler)

	server := &http.Server{Addr: listen, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx) //nolint:errcheck // Best-effort shutdown on signal
	}()

	log.Info("serving sensors on http://%s (endpoints: /sensors, /metrics)", listen)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.WrapWithCode(err, errors.ErrExec,
			"HTTP server failed on "+listen,
			"Check the address is free and bindable, or pass --listen")
	}

	wg.Wait()
	return nil
}

// sampleLoop re-samples one sensor on its configured rate until ctx ends.
func sampleLoop(ctx context.Context, inst *instance, store *valueStore, recorder *metrics.Recorder) {
	rate := inst.Config.EffectiveRate()
	format := inst.Config.EffectiveFormat()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		start := time.Now()
		res := inst.Sensor.Sample(ctx, rate, format)
		elapsed := time.Since(start)

		// The {success} render right after stays inside the rate window,
		// so it reads the cache instead of re-fetching.
		ok := inst.Sensor.Sample(ctx, rate, "{success}").Value == "true"

		store.set(inst.Name, res.Value, res.Min, res.Max, ok)
		recorder.ObserveSample(inst.Name, elapsed, res.Max, ok)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// sensorState is the exported view of one sensor's latest sample.
type sensorState struct {
	Value   string    `json:"value"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	OK      bool      `json:"ok"`
	Updated time.Time `json:"updated"`
}

// valueStore holds the latest sample per sensor for the /sensors endpoint.
type valueStore struct {
	mu     sync.RWMutex
	latest map[string]sensorState
}

func newValueStore() *valueStore {
	return &valueStore{latest: make(map[string]sensorState)}
}

func (vs *valueStore) set(name, value string, min, max float64, ok bool) {
	vs.mu.Lock()
	vs.latest[name] = sensorState{
		Value:   value,
		Min:     min,
		Max:     max,
		OK:      ok,
		Updated: time.Now(),
	}
	vs.mu.Unlock()
}

// handler writes the latest values as a JSON object keyed by sensor name.
func (vs *valueStore) handler(w http.ResponseWriter, r *http.Request) {
	vs.mu.RLock()
	names := make([]string, 0, len(vs.latest))
	for name := range vs.latest {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]sensorState, len(names))
	for _, name := range names {
		out[name] = vs.latest[name]
	}
	vs.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out) //nolint:errcheck // Best-effort response write
}
