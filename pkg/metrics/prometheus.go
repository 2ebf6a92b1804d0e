package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	validations  *prometheus.CounterVec
	baskets      *prometheus.CounterVec
	basketOrders prometheus.Histogram
	invested     *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder registered on reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		validations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swingbasket_trade_validations_total",
				Help: "Trade validations by ticker and verdict",
			},
			[]string{"ticker", "valid"},
		),
		baskets: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swingbasket_baskets_generated_total",
				Help: "Generated basket files by ticker",
			},
			[]string{"ticker"},
		),
		basketOrders: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "swingbasket_basket_orders",
				Help:    "Orders per generated basket",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		invested: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swingbasket_invested_amount_total",
				Help: "Sum of invested amounts across generated baskets",
			},
			[]string{"ticker"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swingbasket_snapshot_cache_lookups_total",
				Help: "Market snapshot cache lookups by result",
			},
			[]string{"result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swingbasket_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swingbasket_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordValidation records a trade verdict.
func (r *Recorder) RecordValidation(ticker string, valid bool) {
	r.validations.WithLabelValues(ticker, strconv.FormatBool(valid)).Inc()
}

// RecordBasket records a generated basket.
func (r *Recorder) RecordBasket(ticker string, orders int, invested float64) {
	r.baskets.WithLabelValues(ticker).Inc()
	r.basketOrders.Observe(float64(orders))
	r.invested.WithLabelValues(ticker).Add(invested)
}

// RecordCacheLookup records a snapshot cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordValidation(string, bool)     {}
func (Nop) RecordBasket(string, int, float64) {}
func (Nop) RecordCacheLookup(bool)            {}
func (Nop) RecordError(string)                {}
func (Nop) RecordLatency(string, float64)     {}
