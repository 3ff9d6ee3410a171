package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shadergen_generations_total",
			Help: "Shader generation requests by outcome (method on success, error kind on failure)",
		},
		[]string{"agent", "outcome"},
	)
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shadergen_llm_requests_total",
			Help: "Total number of LLM calls",
		},
		[]string{"provider", "status"},
	)
	LLMLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shadergen_llm_latency_seconds",
			Help:    "Latency of LLM calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider"},
	)
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shadergen_llm_tokens_total",
			Help: "Total number of tokens sent/received from the LLM",
		},
		[]string{"provider", "type"}, // type: prompt, completion, total
	)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shadergen_http_requests_total",
			Help: "HTTP requests served",
		},
		[]string{"route", "code"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
