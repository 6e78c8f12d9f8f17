package metrics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry          *prometheus.Registry
	operationsTotal   *prometheus.CounterVec
	operationFailures *prometheus.CounterVec
	accountBalance    *prometheus.GaugeVec
	customers         prometheus.Gauge
	accounts          prometheus.Gauge
	logger            *slog.Logger
}

func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		operationsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total number of ledger operations attempted",
		}, []string{"operation"}),
		operationFailures: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operation_failures_total",
			Help: "Total number of ledger operations that failed",
		}, []string{"operation"}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Current account balance",
		}, []string{"account", "kind"}),
		customers: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "ledger_customers",
			Help: "Number of customers in the ledger",
		}),
		accounts: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "ledger_accounts",
			Help: "Number of accounts in the ledger",
		}),
		logger: logger,
	}
}

func (c *Collector) RecordOperation(operation string, err error) {
	c.operationsTotal.WithLabelValues(operation).Inc()
	if err != nil {
		c.operationFailures.WithLabelValues(operation).Inc()
	}
}

func (c *Collector) SetAccountBalance(account, kind string, balance float64) {
	c.accountBalance.WithLabelValues(account, kind).Set(balance)
}

func (c *Collector) SetEntityCounts(customers, accounts int) {
	c.customers.Set(float64(customers))
	c.accounts.Set(float64(accounts))
}

// ResetAccountBalances drops all per-account balance series, used when the
// ledger is wiped.
func (c *Collector) ResetAccountBalances() {
	c.accountBalance.Reset()
}

func (c *Collector) GetHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.GetHandler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		c.logger.Info("Starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}

func (c *Collector) Shutdown(ctx context.Context) error {
	c.logger.Info("Metrics collector shutdown complete")
	return nil
}
