package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics exposes request-level prometheus instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP instruments on the default registerer.
func NewHTTPMetrics() *HTTPMetrics {
	return newHTTPMetrics(prometheus.DefaultRegisterer)
}

func newHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "domora_http_requests_total",
		Help: "Count of HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status_code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "domora_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	registerer.MustRegister(requests, duration)

	return &HTTPMetrics{requests: requests, duration: duration}
}

// GinMiddleware records request counts and latencies.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// ListingMetrics counts listing engine events.
type ListingMetrics struct {
	created        prometheus.Counter
	archived       prometheus.Counter
	slugCollisions prometheus.Counter
}

// NewListingMetrics registers the listing instruments on the default registerer.
func NewListingMetrics() *ListingMetrics {
	return newListingMetrics(prometheus.DefaultRegisterer)
}

func newListingMetrics(registerer prometheus.Registerer) *ListingMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "domora_listings_created_total",
		Help: "Count of listings successfully created.",
	})
	archived := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "domora_listings_archived_total",
		Help: "Count of listings archived.",
	})
	slugCollisions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "domora_slug_collisions_total",
		Help: "Count of slug uniqueness conflicts resolved by re-probing.",
	})

	registerer.MustRegister(created, archived, slugCollisions)

	return &ListingMetrics{
		created:        created,
		archived:       archived,
		slugCollisions: slugCollisions,
	}
}

func (m *ListingMetrics) RecordCreated() {
	if m == nil {
		return
	}
	m.created.Inc()
}

func (m *ListingMetrics) RecordArchived() {
	if m == nil {
		return
	}
	m.archived.Inc()
}

func (m *ListingMetrics) RecordSlugCollision() {
	if m == nil {
		return
	}
	m.slugCollisions.Inc()
}
