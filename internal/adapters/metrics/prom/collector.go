// Package prom exports run outcomes as Prometheus metrics written to a node_exporter textfile.
package prom

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/social-actions-cli/internal/adapters/fsutil"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const Namespace = "social_actions"

// Collector owns a private registry rather than the default one.
type Collector struct {
	registry *prometheus.Registry

	actionsTotal    *prometheus.CounterVec
	accountsTotal   *prometheus.CounterVec
	accountDuration *prometheus.HistogramVec
	lastRun         prometheus.Gauge

	logger *zap.Logger
}

var _ ports.ActionObserver = (*Collector)(nil)

func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		actionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "actions_total",
				Help:      "Action attempts by final state and skip reason",
			},
			[]string{"account", "action", "state", "reason"},
		),
		accountsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "account_runs_total",
				Help:      "Account runs by final status",
			},
			[]string{"account", "status"},
		),
		accountDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "account_run_duration_seconds",
				Help:      "Wall time spent on one account",
				Buckets:   []float64{10, 30, 60, 120, 300, 600, 1200, 2400},
			},
			[]string{"account"},
		),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last account run finished",
		}),
		logger: logger.With(zap.String("component", "metrics")),
	}
}

func (c *Collector) ObserveAction(account domain.AccountID, action domain.ActionKind, state domain.ActionState, reason domain.SkipReason) {
	c.actionsTotal.WithLabelValues(string(account), string(action), string(state), string(reason)).Inc()
}

func (c *Collector) ObserveAccount(account domain.AccountID, status domain.AccountStatus, elapsed time.Duration) {
	c.accountsTotal.WithLabelValues(string(account), string(status)).Inc()
	c.accountDuration.WithLabelValues(string(account)).Observe(elapsed.Seconds())
	c.lastRun.SetToCurrentTime()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile dumps the registry in text exposition format. An empty path is a no-op.
func (c *Collector) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), fsutil.DirMode); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	c.logger.Debug("metrics written", zap.String("path", path))
	return nil
}
