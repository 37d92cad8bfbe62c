package spinpick

import (
	"log/slog"

	"github.com/arloliu/spinpick/internal/logging"
	"github.com/arloliu/spinpick/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// NewPrometheusMetrics returns a MetricsCollector that exports to Prometheus.
//
// Parameters:
//   - reg: Registerer for the collectors (prometheus.DefaultRegisterer if nil)
//   - namespace: Metric name prefix ("spinpick" if empty)
//
// Example:
//
//	collector := spinpick.NewPrometheusMetrics(nil, cfg.Metrics.Namespace)
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithMetrics(collector))
//	http.Handle("/metrics", promhttp.Handler())
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewSlogLogger adapts a *slog.Logger to the Logger interface.
//
// A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) Logger {
	return logging.NewSlog(logger)
}
