package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
)

var (
	EventsSeen = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardian_events_seen_total",
		Help: "Gateway events handed to the rules engine, by kind.",
	}, []string{"kind"})

	Detections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardian_detections_total",
		Help: "Rule triggers that produced a punishment decision, by rule.",
	}, []string{"rule"})

	Punishments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guardian_punishments_total",
		Help: "Executed punishment sub-actions, by action and outcome.",
	}, []string{"action", "outcome"})

	AttributionUnknown = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guardian_attribution_unknown_total",
		Help: "Destructive events whose actor could not be attributed.",
	})

	AuditQueryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guardian_audit_query_errors_total",
		Help: "Failed audit-trail queries.",
	})
)

// Exporter serves the prometheus scrape endpoint.
type Exporter struct {
	srv *http.Server
}

func NewExporter(addr string) *Exporter {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Exporter{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until Stop is called. Runs in its own goroutine.
func (e *Exporter) Start() {
	go func() {
		logging.Info("Metrics exporter listening on %s", e.srv.Addr)
		if err := e.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Metrics exporter failed: %v", err)
		}
	}()
}

func (e *Exporter) Stop(ctx context.Context) error {
	return e.srv.Shutdown(ctx)
}
