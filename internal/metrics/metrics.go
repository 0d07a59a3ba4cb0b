package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for voter weight updates.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Metrics provides observability for registrar and voter weight operations.
type Metrics struct {
	RegistrarsCreated     prometheus.Counter
	RegistrarsUpdated     prometheus.Counter
	RecordsCreated        *prometheus.CounterVec
	WeightUpdates         *prometheus.CounterVec
	ProofFailures         prometheus.Counter
	UpdateWeightDuration  prometheus.Histogram
	GovernanceCallLatency *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RegistrarsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "snapvoter_registrars_created_total",
			Help: "Total number of registrars created",
		}),
		RegistrarsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "snapvoter_registrars_updated_total",
			Help: "Total number of registrar root/uri/proposal updates",
		}),
		RecordsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snapvoter_records_created_total",
			Help: "Total number of weight records created, by kind",
		}, []string{"kind"}),
		WeightUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snapvoter_voter_weight_updates_total",
			Help: "Voter weight update attempts, by outcome and error name",
		}, []string{"outcome", "error"}),
		ProofFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "snapvoter_proof_verification_failures_total",
			Help: "Total number of rejected inclusion proofs",
		}),
		UpdateWeightDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "snapvoter_update_voter_weight_duration_seconds",
			Help:    "Duration of UpdateVoterWeightRecord operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		GovernanceCallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snapvoter_governance_call_duration_seconds",
			Help:    "Duration of governance daemon calls, by endpoint",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"endpoint"}),
	}
}

// IncrementRegistrarCreated records a successful registrar creation.
func (m *Metrics) IncrementRegistrarCreated() {
	m.RegistrarsCreated.Inc()
}

// IncrementRegistrarUpdated records a successful registrar update.
func (m *Metrics) IncrementRegistrarUpdated() {
	m.RegistrarsUpdated.Inc()
}

// IncrementRecordCreated records a weight record creation of the given kind.
func (m *Metrics) IncrementRecordCreated(kind string) {
	m.RecordsCreated.WithLabelValues(kind).Inc()
}

// RecordWeightUpdate records the outcome of a voter weight update.
// errName is empty for accepted updates.
func (m *Metrics) RecordWeightUpdate(outcome, errName string) {
	m.WeightUpdates.WithLabelValues(outcome, errName).Inc()
}

// IncrementProofFailure records a rejected inclusion proof.
func (m *Metrics) IncrementProofFailure() {
	m.ProofFailures.Inc()
}

// ObserveUpdateWeight records the duration of a voter weight update.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveUpdateWeight(start time.Time) {
	m.UpdateWeightDuration.Observe(time.Since(start).Seconds())
}

// ObserveGovernanceCall records the duration of a governance daemon call.
func (m *Metrics) ObserveGovernanceCall(endpoint string, start time.Time) {
	m.GovernanceCallLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
