// Package prometheus wires the clooyzi metrics registry and its scrape endpoint.
package prometheus

import (
	"fmt"
	"net/http"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 10 * time.Second
	defaultPort       = 9090
)

// NewServer builds the side server that exposes Registry on /metrics, away
// from the public Fiber port. Registry carries the Go and process collectors
// plus the HTTP and ad-serving counters declared in metrics.go
// (clooyzi_ads_served_total, clooyzi_clicks_recorded_total,
// clooyzi_click_record_failures_total).
func NewServer(cfg config.PrometheusConfig) *http.Server {
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
}
