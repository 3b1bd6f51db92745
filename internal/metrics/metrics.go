// Package metrics holds the Prometheus instruments for the classifier and decision pipeline.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"

	EvictCapacity = "capacity"
	EvictExpired  = "expired"

	OutcomeSuccess = "success"
	OutcomeError   = "error"

	FlipFound = "found"
	FlipNone  = "none"
)

var (
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worthit_classification_cache_lookups_total",
			Help: "Classification cache lookups by result",
		},
		[]string{"result"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worthit_classification_cache_evictions_total",
			Help: "Classification cache entries removed by reason",
		},
		[]string{"reason"},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worthit_classification_cache_entries",
			Help: "Live entries in the classification cache",
		},
	)

	CategorizerCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worthit_categorizer_calls_total",
			Help: "External categorization calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	CategorizerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worthit_categorizer_call_duration_seconds",
			Help:    "Duration of external categorization calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	ClassificationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worthit_classification_fallbacks_total",
			Help: "Classifications that fell back to the default category, by reason",
		},
		[]string{"reason"},
	)

	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worthit_decisions_total",
			Help: "Purchase decisions by verdict",
		},
		[]string{"decision"},
	)

	FlipSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worthit_flip_searches_total",
			Help: "Flip searches on Don't Buy verdicts by outcome",
		},
		[]string{"outcome"},
	)
)

// Sample is one counter or gauge value read back from the registry.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers every worthit counter and gauge from g, sorted by name and labels.
func Snapshot(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "worthit_") {
			continue
		}
		for _, m := range family.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			default:
				continue
			}

			pairs := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				pairs = append(pairs, l.GetName()+"="+l.GetValue())
			}
			samples = append(samples, Sample{
				Name:   family.GetName(),
				Labels: strings.Join(pairs, ","),
				Value:  value,
			})
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})
	return samples, nil
}
