// Package metric provides Prometheus instrumentation for registry
// operations.
//
// Metrics are optional: a nil *Set disables collection entirely, so the
// library never forces a metrics dependency on its callers.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set holds the operation counters for one registry instance (or a group
// of instances sharing a registerer).
type Set struct {
	// Gets counts read attempts, hits and misses alike.
	Gets prometheus.Counter

	// Sets counts successful writes.
	Sets prometheus.Counter

	// Removes counts explicit removals.
	Removes prometheus.Counter

	// Expirations counts entries evicted lazily on read.
	Expirations prometheus.Counter

	// DecodeFailures counts stored entries that could not be decoded and
	// were surfaced as misses.
	DecodeFailures prometheus.Counter

	// Clears counts namespace-wide bulk removals.
	Clears prometheus.Counter
}

// NewSet creates the counter set and registers it with reg.
func NewSet(reg prometheus.Registerer) *Set {
	factory := promauto.With(reg)

	return &Set{
		Gets: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_gets_total",
			Help: "Total value reads, including misses.",
		}),
		Sets: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_sets_total",
			Help: "Total value writes.",
		}),
		Removes: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_removes_total",
			Help: "Total explicit removals.",
		}),
		Expirations: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_expirations_total",
			Help: "Total entries evicted lazily on read.",
		}),
		DecodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_decode_failures_total",
			Help: "Total stored entries that failed to decode.",
		}),
		Clears: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_namespace_clears_total",
			Help: "Total namespace-wide bulk removals.",
		}),
	}
}

// The increment helpers below are nil-safe so call sites need no guards.

func (s *Set) IncGets() {
	if s != nil {
		s.Gets.Inc()
	}
}

func (s *Set) IncSets() {
	if s != nil {
		s.Sets.Inc()
	}
}

func (s *Set) IncRemoves() {
	if s != nil {
		s.Removes.Inc()
	}
}

func (s *Set) IncExpirations() {
	if s != nil {
		s.Expirations.Inc()
	}
}

func (s *Set) IncDecodeFailures() {
	if s != nil {
		s.DecodeFailures.Inc()
	}
}

func (s *Set) IncClears() {
	if s != nil {
		s.Clears.Inc()
	}
}
