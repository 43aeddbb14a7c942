package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidtube_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Media Metrics
	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_media_uploads_total",
			Help: "Total number of media uploads",
		},
		[]string{"kind", "status"},
	)

	MediaUploadSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vidtube_media_upload_size_bytes",
			Help:    "Size of uploaded media in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 2, 15), // 64KB to 1GB
		},
		[]string{"kind"},
	)

	// Auth Metrics
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vidtube_auth_events_total",
			Help: "Authentication and session lifecycle events",
		},
		[]string{"event"},
	)
)

// Auth event labels.
const (
	AuthEventLogin         = "login"
	AuthEventLoginFailed   = "login_failed"
	AuthEventRefresh       = "refresh"
	AuthEventRefreshReused = "refresh_reused"
	AuthEventLogout        = "logout"
)

// RecordHTTPRequest records an HTTP request metric
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordMediaUpload records a media upload of the given kind (avatar, cover, video, thumbnail).
func RecordMediaUpload(kind string, size int64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	MediaUploadsTotal.WithLabelValues(kind, status).Inc()
	if err == nil {
		MediaUploadSizeBytes.WithLabelValues(kind).Observe(float64(size))
	}
}

// RecordAuthEvent increments the counter for an auth event.
func RecordAuthEvent(event string) {
	AuthEventsTotal.WithLabelValues(event).Inc()
}
