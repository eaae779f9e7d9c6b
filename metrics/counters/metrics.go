package counters

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "server",
	Name:      "requests_total",
	Help:      "Total number of API requests by endpoint and status.",
}, []string{"endpoint", "status"})

var upstreamCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upstream",
	Name:      "calls_total",
	Help:      "Total number of upstream provider calls.",
}, []string{"provider"})

var upstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upstream",
	Name:      "failures_total",
	Help:      "Total number of failed upstream provider calls.",
}, []string{"provider"})

var cacheCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cache",
	Name:      "lookups_total",
	Help:      "Total number of response cache lookups by outcome.",
}, []string{"name", "outcome"})

var stationsGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "search",
	Name:      "stations_merged",
	Help:      "Stations in the merged set of the last route search.",
}, []string{"endpoint"})

var assistantFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "assistant",
	Name:      "fallbacks_total",
	Help:      "Total number of canned assistant replies.",
})

func CountRequest(endpoint, status string) {
	if len(endpoint) == 0 {
		return
	}
	requestCounter.With(prometheus.Labels{"endpoint": endpoint, "status": status}).Inc()
}

func CountUpstreamCall(provider string, failed bool) {
	if len(provider) == 0 {
		return
	}
	upstreamCounter.With(prometheus.Labels{"provider": provider}).Inc()
	if failed {
		upstreamFailures.With(prometheus.Labels{"provider": provider}).Inc()
	}
}

func CountCacheLookup(name string, hit bool) {
	if len(name) == 0 {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheCounter.With(prometheus.Labels{"name": name, "outcome": outcome}).Inc()
}

func ObserveMergedStations(endpoint string, count int) {
	if len(endpoint) == 0 {
		return
	}
	stationsGauge.With(prometheus.Labels{"endpoint": endpoint}).Set(float64(count))
}

func CountAssistantFallback() {
	assistantFallbacks.Inc()
}
