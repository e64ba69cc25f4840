package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysisFallbacks counts plan creations that fell back to the default
	// analysis because the AI collaborator failed or returned unparseable
	// output. The fallback itself is silent at the request level, so this
	// counter is the observable signal for it.
	AnalysisFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aurex_analysis_fallback_total",
		Help: "Total number of plan creations that used the default analysis",
	}, []string{"reason"})

	// AnalysisLatency records latency of AI analysis calls, including failures.
	AnalysisLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aurex_analysis_latency_seconds",
		Help:    "Latency of AI analysis calls in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// NotificationSends counts outbound notification attempts by type and outcome.
	NotificationSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aurex_notification_sends_total",
		Help: "Total notification send attempts by type and status",
	}, []string{"type", "status"})

	// DocumentUploadBytes records the decoded size of uploaded documents.
	DocumentUploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aurex_document_upload_bytes",
		Help:    "Decoded size of uploaded documents in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})
)
