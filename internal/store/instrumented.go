package store

import (
	"context"
	"time"

	"github.com/devfolio/portfolio-backend/types"
	"github.com/prometheus/client_golang/prometheus"
)

type storeMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// Instrumented decorates a ContactStore with Prometheus metrics.
type Instrumented struct {
	next    ContactStore
	driver  string
	metrics *storeMetrics
}

var _ ContactStore = (*Instrumented)(nil)

// NewInstrumented wraps next and registers its collectors with reg.
func NewInstrumented(next ContactStore, driver string, reg prometheus.Registerer) *Instrumented {
	metrics := &storeMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "portfolio_store_operations_total",
			Help:        "Total number of contact store operations",
			ConstLabels: prometheus.Labels{"driver": driver},
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "portfolio_store_operation_duration_seconds",
			Help:        "Time taken by contact store operations",
			ConstLabels: prometheus.Labels{"driver": driver},
			Buckets:     []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		}, []string{"op"}),
	}

	reg.MustRegister(metrics.operations)
	reg.MustRegister(metrics.duration)

	return &Instrumented{next: next, driver: driver, metrics: metrics}
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	s.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "success"
	if err != nil {
		result = "error"
	}
	s.metrics.operations.WithLabelValues(op, result).Inc()
}

func (s *Instrumented) Create(ctx context.Context, in types.ContactInput) (*types.ContactSubmission, error) {
	start := time.Now()
	sub, err := s.next.Create(ctx, in)
	s.observe("create", start, err)
	return sub, err
}

func (s *Instrumented) ListAll(ctx context.Context) ([]*types.ContactSubmission, error) {
	start := time.Now()
	subs, err := s.next.ListAll(ctx)
	s.observe("list", start, err)
	return subs, err
}

func (s *Instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.next.Ping(ctx)
	s.observe("ping", start, err)
	return err
}

func (s *Instrumented) Close() error {
	return s.next.Close()
}

// Driver returns the configured backend name.
func (s *Instrumented) Driver() string {
	return s.driver
}
