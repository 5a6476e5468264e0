package versecrypt

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used as the "operation" label.
const (
	OperationProtect          = "protect"
	OperationReveal           = "reveal"
	OperationAnnounce         = "announce"
	OperationReadAnnouncement = "read_announcement"
)

// Outcome names used as the "outcome" label.
const (
	OutcomeSuccess       = "success"
	OutcomeRejected      = "rejected"
	OutcomeSteganography = "steganography_error"
	OutcomeCrypto        = "crypto_error"
	OutcomeError         = "error"
)

// Metrics exports pipeline counters to Prometheus.
type Metrics struct {
	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	corpusWords prometheus.Gauge
}

// NewMetrics creates the pipeline collectors and registers them with reg.
// A nil reg leaves them unregistered. Collectors already registered by an
// earlier pipeline on the same registry are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "versecrypt",
			Name:      "operations_total",
			Help:      "Pipeline operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "versecrypt",
			Name:      "operation_duration_seconds",
			Help:      "Pipeline operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"operation"}),
		corpusWords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "versecrypt",
			Name:      "corpus_words",
			Help:      "Number of words in the loaded corpus.",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.operations, err = register(reg, m.operations); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.corpusWords, err = register(reg, m.corpusWords); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observe(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcomeOf(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) setCorpusWords(n int) {
	if m == nil {
		return
	}
	m.corpusWords.Set(float64(n))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case IsLimitError(err):
		return OutcomeRejected
	case IsSteganographyError(err):
		return OutcomeSteganography
	case IsCryptoError(err):
		return OutcomeCrypto
	default:
		return OutcomeError
	}
}
