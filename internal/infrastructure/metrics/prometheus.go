// Package metrics expone contadores de negocio en /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/purchasing"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
)

// Nombres de métricas.
const (
	MetricSalesTotal         = "ventas_sales_total"
	MetricSalesAmount        = "ventas_sales_amount_total"
	MetricSalesVoided        = "ventas_sales_voided_total"
	MetricPurchasesReceived  = "ventas_purchases_received_total"
	MetricStockAlerts        = "ventas_stock_alerts_total"
	MetricHTTPRequests       = "ventas_http_requests_total"
	MetricHTTPRequestSeconds = "ventas_http_request_duration_seconds"
)

var (
	_ sales.Metrics      = (*Business)(nil)
	_ purchasing.Metrics = (*Business)(nil)
)

// Business agrupa los contadores de ventas, compras y alertas de stock.
// Los casos de uso lo invocan solo tras el commit.
type Business struct {
	registry *prometheus.Registry

	salesTotal        prometheus.Counter
	salesAmount       prometheus.Counter
	salesVoided       prometheus.Counter
	purchasesReceived prometheus.Counter
	stockAlerts       *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registra los contadores en un registry propio (más los collectors de Go y proceso).
func New() *Business {
	registry := prometheus.NewRegistry()
	b := &Business{
		registry: registry,
		salesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSalesTotal, Help: "Ventas registradas.",
		}),
		salesAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSalesAmount, Help: "Importe total vendido.",
		}),
		salesVoided: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSalesVoided, Help: "Ventas anuladas.",
		}),
		purchasesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricPurchasesReceived, Help: "Compras recibidas.",
		}),
		stockAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricStockAlerts, Help: "Alertas de stock emitidas por tipo.",
		}, []string{"tipo"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequests, Help: "Requests HTTP por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: MetricHTTPRequestSeconds, Help: "Latencia de requests HTTP.", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		b.salesTotal, b.salesAmount, b.salesVoided, b.purchasesReceived, b.stockAlerts,
		b.httpRequests, b.httpDuration,
	)
	return b
}

// Registry para montar promhttp.HandlerFor.
func (b *Business) Registry() *prometheus.Registry { return b.registry }

func (b *Business) SaleCreated(total decimal.Decimal) {
	b.salesTotal.Inc()
	b.salesAmount.Add(total.InexactFloat64())
}

func (b *Business) SaleVoided() { b.salesVoided.Inc() }

func (b *Business) StockAlert(kind string) { b.stockAlerts.WithLabelValues(kind).Inc() }

func (b *Business) PurchaseReceived() { b.purchasesReceived.Inc() }

// ObserveHTTP registra un request terminado. route es la ruta registrada, no el path con ids.
func (b *Business) ObserveHTTP(method, route string, status int, seconds float64) {
	b.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	b.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
