package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// CertificateRenderTotal counts certificate renders by outcome
	CertificateRenderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certificate_render_total",
			Help: "Total number of certificate renders",
		},
		[]string{"status"},
	)

	// CertificateRenderDuration measures certificate render duration per template
	CertificateRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "certificate_render_duration_seconds",
			Help:    "Duration of certificate rendering in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"template"},
	)

	// CertificateFileSizeBytes measures rendered PDF sizes per template
	CertificateFileSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "certificate_file_size_bytes",
			Help:    "Size of rendered certificate PDFs in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024},
		},
		[]string{"template"},
	)

	// QREncodeTotal counts verification QR encodings by outcome
	QREncodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_encode_total",
			Help: "Total number of verification QR encodings",
		},
		[]string{"status"},
	)

	// VerifyLookupsTotal counts verification lookups by result
	VerifyLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verify_lookups_total",
			Help: "Total number of certificate verification lookups",
		},
		[]string{"result"},
	)

	// CacheHits counts verification cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "verify_cache_hits_total",
			Help: "Total number of verification cache hits",
		},
	)

	// CacheMisses counts verification cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "verify_cache_misses_total",
			Help: "Total number of verification cache misses",
		},
	)
)
