// Package metrics defines and registers all custom Prometheus metrics for the
// credit analysis API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init through promauto and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "credito"

// ── Proposal metrics ──────────────────────────────────────────────────────────

// ProposalsCreatedTotal counts newly created proposals.
// Labels:
//   - client_type: "revenda" or "construtora"
//   - replay: "true" when an Idempotency-Key returned an earlier proposal
var ProposalsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposals_created_total",
		Help:      "Total number of proposals created, by client type.",
	},
	[]string{"client_type", "replay"},
)

// ProposalTransitionsTotal counts successful status changes.
// Labels:
//   - to: the new status
//   - via: "submit" (agent) or "review" (admin)
var ProposalTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proposal_transitions_total",
		Help:      "Total number of proposal status changes.",
	},
	[]string{"to", "via"},
)

// SubmissionsBlockedTotal counts gated submissions refused for an incomplete checklist.
var SubmissionsBlockedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_blocked_total",
		Help:      "Total number of gated submissions refused because the checklist was incomplete.",
	},
)

// ── Document metrics ──────────────────────────────────────────────────────────

// DocumentsUploadedTotal counts stored documents.
// Label:
//   - tipo: document type tag (e.g. "notas_fiscais", "outro")
var DocumentsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_uploaded_total",
		Help:      "Total number of documents uploaded, by type.",
	},
	[]string{"tipo"},
)

// DocumentUploadBytes observes uploaded file sizes.
var DocumentUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "document_upload_bytes",
		Help:      "Size of uploaded documents in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 4, 7), // 16KiB … 64MiB
	},
)

// ExportFilesTotal counts files handled by ZIP exports.
// Label:
//   - result: "included" or "failed"
var ExportFilesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "export_files_total",
		Help:      "Total number of files processed by document exports.",
	},
	[]string{"result"},
)

// ExportDuration measures how long building an export archive takes.
var ExportDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of ZIP export generation.",
		Buckets:   prometheus.DefBuckets,
	},
)
