// Package instrumented wraps an LLM service with Prometheus metrics.
package instrumented

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

// Result label values.
const (
	resultOK       = "ok"
	resultError    = "error"
	resultCanceled = "canceled"
)

// Metrics holds the collectors shared by every wrapped service.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// NewMetrics registers the LLM collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "archie_llm_requests_total",
			Help: "LLM generation requests by model and result.",
		}, []string{"model", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "archie_llm_request_duration_seconds",
			Help:    "LLM generation latency.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		}, []string{"model"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "archie_llm_requests_inflight",
			Help: "LLM generation requests in progress.",
		}),
	}
}

// LLMService records metrics around another LLMService.
type LLMService struct {
	next    driven.LLMService
	metrics *Metrics
}

// Wrap decorates next. A nil next stays nil so callers keep the
// "no LLM configured" check.
func Wrap(next driven.LLMService, m *Metrics) driven.LLMService {
	if next == nil || m == nil {
		return next
	}
	return &LLMService{next: next, metrics: m}
}

// Generate forwards to the wrapped service and records the outcome.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	model := s.next.ModelName()
	s.metrics.inflight.Inc()
	defer s.metrics.inflight.Dec()

	start := time.Now()
	out, err := s.next.Generate(ctx, prompt, opts)
	s.metrics.duration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	s.metrics.requests.WithLabelValues(model, result(err)).Inc()
	return out, err
}

// ModelName returns the wrapped model name.
func (s *LLMService) ModelName() string {
	return s.next.ModelName()
}

// Ping is not counted.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *LLMService) Close() error {
	return s.next.Close()
}

func result(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, context.Canceled):
		return resultCanceled
	default:
		return resultError
	}
}
