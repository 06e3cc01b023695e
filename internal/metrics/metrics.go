// Package metrics keeps the teacher's custom-registry-plus-init()
// registration pattern, rebuilt around this domain's series: per-method
// request counts/latency, cache hit/miss, upstream call counts split by
// collaborator, and sendRawTransaction outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is a custom registry without default Go metrics.
var Registry = prometheus.NewRegistry()

var (
	// RequestsTotal counts every Dispatch call by method and outcome
	// ("ok", "error", "throw", "unsupported" for unknown methods); the
	// transport adds "transport_throw" when Dispatch returns an error.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_requests_total",
		Help: "JSON-RPC requests by method and outcome",
	}, []string{"method", "outcome"})

	// RequestDuration tracks per-method handler latency.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "relay_request_duration_seconds",
		Help:    "JSON-RPC handler latency by method",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	// CacheHits and CacheMisses count Cache.Get outcomes.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_cache_hits_total",
		Help: "Cache.Get calls that found a live entry",
	})

	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_cache_misses_total",
		Help: "Cache.Get calls that found no live entry",
	})

	// MirrorRequestsTotal and ConsensusRequestsTotal count upstream
	// collaborator calls by method name and outcome.
	MirrorRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_mirror_requests_total",
		Help: "MirrorPort calls by operation and outcome",
	}, []string{"operation", "outcome"})

	ConsensusRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_consensus_requests_total",
		Help: "ConsensusPort calls by operation and outcome",
	}, []string{"operation", "outcome"})

	// SendRawTransactionTotal counts sendRawTransaction by terminal
	// outcome (spec.md §4.6): "hash", "fallback_hash", "precheck_reject",
	// "internal_error".
	SendRawTransactionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_send_raw_transaction_total",
		Help: "sendRawTransaction outcomes",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(
		RequestsTotal,
		RequestDuration,
		CacheHits,
		CacheMisses,
		MirrorRequestsTotal,
		ConsensusRequestsTotal,
		SendRawTransactionTotal,
	)
}
