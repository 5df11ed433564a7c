// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "splitmate"

// Record kinds used as the "kind" label.
const (
	KindFriend     = "friend"
	KindExpense    = "expense"
	KindSettlement = "settlement"
)

// Metrics groups the collectors the services report to. Use Nop when nothing
// scrapes them.
type Metrics struct {
	RPCDuration *prometheus.HistogramVec
	Created     *prometheus.CounterVec
	Deleted     *prometheus.CounterVec

	OutstandingDebts prometheus.Gauge
	TotalSpent       prometheus.Gauge
	YouOwe           prometheus.Gauge
	YouAreOwed       prometheus.Gauge
	LastRefresh      prometheus.Gauge
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Duration of Connect RPCs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		Created: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_created_total",
			Help:      "Ledger records created, by kind.",
		}, []string{"kind"}),
		Deleted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_deleted_total",
			Help:      "Ledger records deleted, by kind. Cascaded settlements are included.",
		}, []string{"kind"}),
		OutstandingDebts: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outstanding_debts",
			Help:      "Number of directed debt buckets with a positive balance.",
		}),
		TotalSpent: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_spent",
			Help:      "Sum of all expense amounts.",
		}),
		YouOwe: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "you_owe",
			Help:      "Gross amount the distinguished friend owes others.",
		}),
		YouAreOwed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "you_are_owed",
			Help:      "Gross amount others owe the distinguished friend.",
		}),
		LastRefresh: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balances_last_refresh_timestamp_seconds",
			Help:      "Unix time of the last balance gauge refresh.",
		}),
	}
}

// Nop returns collectors registered with a private registry, for callers
// that do not export metrics.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	m.RPCDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}

func (m *Metrics) RecordCreated(kind string) {
	m.Created.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordDeleted(kind string, n int) {
	if n <= 0 {
		return
	}
	m.Deleted.WithLabelValues(kind).Add(float64(n))
}

// BalanceTotals is the subset of a dashboard the gauges track.
type BalanceTotals struct {
	OutstandingCount int
	TotalSpent       decimal.Decimal
	YouOwe           decimal.Decimal
	YouAreOwed       decimal.Decimal
}

// ObserveBalances sets the balance gauges.
func (m *Metrics) ObserveBalances(t BalanceTotals, at time.Time) {
	m.OutstandingDebts.Set(float64(t.OutstandingCount))
	m.TotalSpent.Set(t.TotalSpent.InexactFloat64())
	m.YouOwe.Set(t.YouOwe.InexactFloat64())
	m.YouAreOwed.Set(t.YouAreOwed.InexactFloat64())
	m.LastRefresh.Set(float64(at.Unix()))
}
