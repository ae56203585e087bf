package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ordersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total orders successfully placed",
		},
	)

	ordersSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_settled_total",
			Help: "Total order settlements by outcome",
		},
		[]string{"outcome"},
	)

	inventoryRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_rejections_total",
			Help: "Total purchases rejected for insufficient inventory",
		},
	)
)

// RequestMetrics records per-route counters and latency histograms. Uses
// the route template, not the raw path, to keep cardinality bounded.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func TrackOrderPlaced() {
	ordersPlaced.Inc()
}

func TrackSettlement(outcome string) {
	ordersSettled.WithLabelValues(outcome).Inc()
}

func TrackInventoryRejection() {
	inventoryRejections.Inc()
}
