// Package exporters exposes the process metrics over HTTP.
package exporters

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	scrapeTimeout      = 10 * time.Second
	maxScrapesInFlight = 4
)

// HTTPHandler serves every metric registered through promauto.
func HTTPHandler(logger *slog.Logger) http.Handler {
	return HandlerFor(prometheus.DefaultRegisterer, prometheus.DefaultGatherer, logger)
}

// HandlerFor serves the metrics gathered from g. A collector that fails is
// logged and skipped; the remaining metrics are still served. Scrape counts
// and gather errors are registered with reg.
func HandlerFor(reg prometheus.Registerer, g prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return promhttp.InstrumentMetricHandler(reg, promhttp.HandlerFor(g, promhttp.HandlerOpts{
		ErrorLog:            errorLog{logger: logger},
		ErrorHandling:       promhttp.ContinueOnError,
		Registry:            reg,
		MaxRequestsInFlight: maxScrapesInFlight,
		Timeout:             scrapeTimeout,
	}))
}

// errorLog adapts slog to promhttp.Logger.
type errorLog struct {
	logger *slog.Logger
}

func (l errorLog) Println(v ...any) {
	l.logger.Warn("Metrics scrape error", "error", fmt.Sprint(v...))
}
