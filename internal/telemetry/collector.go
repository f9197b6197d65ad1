// Package telemetry provides Prometheus metrics for the simulation
// service.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/me/schedsim/pkg/sched"
)

// Collector records simulation outcomes as Prometheus metrics.
type Collector struct {
	simulationsTotal *prometheus.CounterVec
	errorsTotal      prometheus.Counter
	starvedTotal     *prometheus.CounterVec
	agingEventsTotal *prometheus.CounterVec

	lastRunTicks         *prometheus.GaugeVec
	lastRunAvgWaiting    *prometheus.GaugeVec
	lastRunAvgTurnaround *prometheus.GaugeVec
	lastRunOccupancy     *prometheus.GaugeVec

	simulationTicks prometheus.Histogram
}

// NewCollector creates a collector registered on the default registerer.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector with a custom registry.
// Useful for testing.
func NewCollectorWithRegistry(registry prometheus.Registerer) *Collector {
	c := &Collector{
		simulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedsim_simulations_total",
				Help: "Completed simulations by policy",
			},
			[]string{"policy"},
		),
		errorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "schedsim_simulation_errors_total",
				Help: "Simulation requests rejected with an error",
			},
		),
		starvedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedsim_starved_processes_total",
				Help: "Processes flagged as starved, by policy",
			},
			[]string{"policy"},
		),
		agingEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedsim_aging_events_total",
				Help: "Priority aging adjustments applied, by policy",
			},
			[]string{"policy"},
		),
		lastRunTicks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "schedsim_last_run_ticks",
				Help: "Total ticks of the most recent simulation, by policy",
			},
			[]string{"policy"},
		),
		lastRunAvgWaiting: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "schedsim_last_run_avg_waiting_ticks",
				Help: "Average waiting time of the most recent simulation, by policy",
			},
			[]string{"policy"},
		),
		lastRunAvgTurnaround: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "schedsim_last_run_avg_turnaround_ticks",
				Help: "Average turnaround time of the most recent simulation, by policy",
			},
			[]string{"policy"},
		),
		lastRunOccupancy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "schedsim_last_run_cpu_occupancy_ratio",
				Help: "Fraction of ticks the CPU was busy in the most recent simulation, by policy",
			},
			[]string{"policy"},
		),
		simulationTicks: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "schedsim_simulation_ticks",
				Help:    "Distribution of simulation lengths in ticks",
				Buckets: prometheus.ExponentialBuckets(10, 2, 10),
			},
		),
	}

	registry.MustRegister(
		c.simulationsTotal,
		c.errorsTotal,
		c.starvedTotal,
		c.agingEventsTotal,
		c.lastRunTicks,
		c.lastRunAvgWaiting,
		c.lastRunAvgTurnaround,
		c.lastRunOccupancy,
		c.simulationTicks,
	)
	return c
}

// RecordSimulation records the outcome of one completed simulation.
func (c *Collector) RecordSimulation(res *sched.Result) {
	policy := string(res.Policy)

	c.simulationsTotal.WithLabelValues(policy).Inc()
	c.starvedTotal.WithLabelValues(policy).Add(float64(len(res.Starved)))
	c.agingEventsTotal.WithLabelValues(policy).Add(float64(len(res.AgingEvents)))

	c.lastRunTicks.WithLabelValues(policy).Set(float64(res.TotalTicks))
	c.lastRunAvgWaiting.WithLabelValues(policy).Set(res.Averages.AvgWaiting)
	c.lastRunAvgTurnaround.WithLabelValues(policy).Set(res.Averages.AvgTurnaround)

	if res.TotalTicks > 0 {
		busy := 0
		for _, id := range res.Occupancy {
			if id != sched.IdleID {
				busy++
			}
		}
		c.lastRunOccupancy.WithLabelValues(policy).Set(float64(busy) / float64(res.TotalTicks))
	}

	c.simulationTicks.Observe(float64(res.TotalTicks))
}

// RecordError counts a rejected simulation request.
func (c *Collector) RecordError() {
	c.errorsTotal.Inc()
}
