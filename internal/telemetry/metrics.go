package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "connectome"

// Metrics holds the counters and histograms of one CLI invocation on a
// private registry.
type Metrics struct {
	CommandsTotal    *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	LouvainRunsTotal prometheus.Counter
	ConsensusRounds  prometheus.Histogram
	ModulesFound     prometheus.Gauge
	Modularity       prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers every metric on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Completed CLI commands by name and outcome.",
		}, []string{"command", "status"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Wall time of CLI commands.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"command"}),
		LouvainRunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "louvain_runs_total",
			Help:      "Independent Louvain runs performed during detection.",
		}),
		ConsensusRounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "consensus_rounds",
			Help:      "Consensus rounds needed to reach agreement.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
		}),
		ModulesFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "modules_found",
			Help:      "Number of modules in the last consensus partition.",
		}),
		Modularity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "modularity",
			Help:      "Best modularity Q among the detection runs.",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.CommandsTotal,
		m.CommandDuration,
		m.LouvainRunsTotal,
		m.ConsensusRounds,
		m.ModulesFound,
		m.Modularity,
	)

	return m
}

// ObserveCommand records the outcome and duration of a command.
func (m *Metrics) ObserveCommand(command string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.CommandsTotal.WithLabelValues(command, status).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(time.Since(started).Seconds())
}

// ObserveDetection records a finished detection.
func (m *Metrics) ObserveDetection(runs, rounds, modules int, bestQ float64) {
	m.LouvainRunsTotal.Add(float64(runs))
	m.ConsensusRounds.Observe(float64(rounds))
	m.ModulesFound.Set(float64(modules))
	m.Modularity.Set(bestQ)
}

// Registry exposes the private registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every metric to path in the text exposition format
// read by the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
