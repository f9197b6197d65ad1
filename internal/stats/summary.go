// Package stats computes distribution summaries over simulation
// results. Percentiles come from t-digests, which stay accurate at the
// tails even for large process sets.
package stats

import (
	"github.com/influxdata/tdigest"

	"github.com/me/schedsim/pkg/sched"
)

// Percentiles holds the quantiles reported for one metric.
type Percentiles struct {
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary describes the waiting, turnaround and response time
// distributions of a completed run.
type Summary struct {
	Count      int         `json:"count"`
	Starved    int         `json:"starved"`
	Waiting    Percentiles `json:"waiting"`
	Turnaround Percentiles `json:"turnaround"`
	Response   Percentiles `json:"response"`
}

type digest struct {
	td  *tdigest.TDigest
	min float64
	max float64
	n   int
}

func newDigest() *digest {
	return &digest{td: tdigest.NewWithCompression(100)}
}

func (d *digest) add(v float64) {
	d.td.Add(v, 1)
	if d.n == 0 || v < d.min {
		d.min = v
	}
	if d.n == 0 || v > d.max {
		d.max = v
	}
	d.n++
}

func (d *digest) percentiles() Percentiles {
	if d.n == 0 {
		return Percentiles{}
	}
	return Percentiles{
		P25: d.td.Quantile(0.25),
		P50: d.td.Quantile(0.50),
		P75: d.td.Quantile(0.75),
		P95: d.td.Quantile(0.95),
		P99: d.td.Quantile(0.99),
		Min: d.min,
		Max: d.max,
	}
}

// Summarize builds a Summary from the per-process metrics of a result.
func Summarize(res *sched.Result) Summary {
	waiting := newDigest()
	turnaround := newDigest()
	response := newDigest()

	starved := 0
	for _, pm := range res.Processes {
		waiting.add(float64(pm.Waiting))
		turnaround.add(float64(pm.Turnaround))
		response.add(float64(pm.Response))
		if pm.Starved {
			starved++
		}
	}

	return Summary{
		Count:      len(res.Processes),
		Starved:    starved,
		Waiting:    waiting.percentiles(),
		Turnaround: turnaround.percentiles(),
		Response:   response.percentiles(),
	}
}
