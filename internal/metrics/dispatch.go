package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/agbru/mpnum/internal/dispatch"
)

const namespace = "mpnum"

// DispatchMetrics counts dispatches per operation and branch, and observes
// the target precision of each. It implements dispatch.Recorder and is safe
// for concurrent use.
type DispatchMetrics struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	prec     *prometheus.HistogramVec
}

// BranchCount is one row of a Snapshot.
type BranchCount struct {
	Op     string
	Branch string
	Count  uint64
}

// NewDispatchMetrics creates the collectors on a private registry.
func NewDispatchMetrics() *DispatchMetrics {
	m := &DispatchMetrics{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "total",
			Help:      "Number of dispatched operations by operation and output branch.",
		}, []string{"op", "branch"}),
		prec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "precision_bits",
			Help:      "Target precision of dispatched operations.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}, []string{"op"}),
	}
	m.registry.MustRegister(m.total, m.prec)
	return m
}

// Record implements dispatch.Recorder.
func (m *DispatchMetrics) Record(op string, branch dispatch.Branch, prec uint) {
	m.total.WithLabelValues(op, branch.String()).Inc()
	m.prec.WithLabelValues(op).Observe(float64(prec))
}

// Registry exposes the private registry, for callers that serve it.
func (m *DispatchMetrics) Registry() *prometheus.Registry { return m.registry }

// Snapshot returns the non-zero counters sorted by operation then branch.
func (m *DispatchMetrics) Snapshot() ([]BranchCount, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	var rows []BranchCount
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, metric := range mf.GetMetric() {
			row := BranchCount{Count: uint64(metric.GetCounter().GetValue())}
			for _, lp := range metric.GetLabel() {
				switch lp.GetName() {
				case "op":
					row.Op = lp.GetValue()
				case "branch":
					row.Branch = lp.GetValue()
				}
			}
			if row.Count > 0 {
				rows = append(rows, row)
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Op != rows[j].Op {
			return rows[i].Op < rows[j].Op
		}
		return rows[i].Branch < rows[j].Branch
	})
	return rows, nil
}

// BranchTotals sums the counters per branch across operations.
func (m *DispatchMetrics) BranchTotals() (map[string]uint64, error) {
	rows, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]uint64, len(dispatch.Branches))
	for _, r := range rows {
		totals[r.Branch] += r.Count
	}
	return totals, nil
}

var _ dispatch.Recorder = (*DispatchMetrics)(nil)
