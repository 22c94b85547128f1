package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer exposes the Prometheus registry, including the amm module
// metrics, over HTTP.
type MetricsServer struct {
	srv    *http.Server
	logger log.Logger
}

// MetricsHandler serves /metrics from the default Prometheus registry.
func MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// StartMetricsServer listens on addr and serves metrics in the background.
// The listener is bound before returning, so a busy port fails here.
func StartMetricsServer(addr string, logger log.Logger) (*MetricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &MetricsServer{
		srv: &http.Server{
			Addr:              ln.Addr().String(),
			Handler:           MetricsHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("metrics server started", "address", s.srv.Addr)
	return s, nil
}

// Addr is the address the server listens on.
func (s *MetricsServer) Addr() string {
	return s.srv.Addr
}

// Stop shuts the server down gracefully.
func (s *MetricsServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
