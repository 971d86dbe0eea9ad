// Package metrics exports round statistics to Prometheus.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Faultbox/tower-crash/internal/logger"
)

// Removal causes.
const (
	CauseMatch      = "match"
	CauseSink       = "sink"
	CauseFoundation = "foundation"
	CauseReset      = "reset"
)

// Metrics holds the game's collectors. A nil *Metrics records nothing.
type Metrics struct {
	removed   *prometheus.CounterVec
	activated prometheus.Counter
	throws    *prometheus.CounterVec
	live      prometheus.Gauge
	rounds    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "towercrash",
			Name:      "blocks_removed_total",
			Help:      "Blocks removed from the tower, by cause.",
		}, []string{"cause"}),
		activated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "towercrash",
			Name:      "rows_activated_total",
			Help:      "Inactive rows turned playable.",
		}),
		throws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "towercrash",
			Name:      "throws_total",
			Help:      "Balls thrown, by ball kind and outcome.",
		}, []string{"ball", "outcome"}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "towercrash",
			Name:      "live_blocks",
			Help:      "Blocks still attached to the world.",
		}),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "towercrash",
			Name:      "rounds_total",
			Help:      "Finished rounds, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.removed, m.activated, m.throws, m.live, m.rounds)
	return m
}

// BlocksRemoved adds n removals for cause.
func (m *Metrics) BlocksRemoved(cause string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.removed.WithLabelValues(cause).Add(float64(n))
}

// RowsActivated adds n activated rows.
func (m *Metrics) RowsActivated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.activated.Add(float64(n))
}

// Throw counts one thrown ball.
func (m *Metrics) Throw(ball, outcome string) {
	if m == nil {
		return
	}
	m.throws.WithLabelValues(ball, outcome).Inc()
}

// SetLive records the number of live blocks.
func (m *Metrics) SetLive(n int) {
	if m == nil {
		return
	}
	m.live.Set(float64(n))
}

// RoundFinished counts a finished round.
func (m *Metrics) RoundFinished(result string) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(result).Inc()
}

// Serve exposes g on addr under /metrics in a background goroutine. Close
// the returned server to stop it.
func Serve(addr string, g prometheus.Gatherer, log *zap.Logger) *http.Server {
	log = logger.OrNamed(log, "metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}
