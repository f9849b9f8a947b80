// README: Prometheus collectors for HTTP traffic and delivery quotes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "motofrete"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

type QuoteMetrics struct {
	Quotes    *prometheus.CounterVec
	Fallbacks prometheus.Counter
	Fees      prometheus.Histogram
}

func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_total",
		Help:      "Delivery quotes calculated, by location source.",
	}, []string{"source"})
	fallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "routing_fallbacks_total",
		Help:      "Routes estimated with the straight-line fallback.",
	})
	fees := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "quote_fee",
		Help:      "Quoted delivery fee.",
		Buckets:   []float64{5, 6, 7, 8, 10, 12, 15, 20, 30},
	})

	reg.MustRegister(quotes, fallbacks, fees)
	return &QuoteMetrics{Quotes: quotes, Fallbacks: fallbacks, Fees: fees}
}

// ObserveQuote records one calculated quote.
func (m *QuoteMetrics) ObserveQuote(source string, fee float64) {
	m.Quotes.WithLabelValues(source).Inc()
	m.Fees.Observe(fee)
}

// ObserveFallback counts one routing fallback. Its signature matches the
// resilient router's fallback hook.
func (m *QuoteMetrics) ObserveFallback(error) {
	m.Fallbacks.Inc()
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
