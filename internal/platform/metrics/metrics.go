// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

// Package metrics defines and registers all custom Prometheus metrics for the
// Mixlist API. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics use promauto and register themselves with the default registry
// at package initialization; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mixlist"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (failure covers unknown user and bad password alike)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionResolutionsTotal counts opaque token resolutions performed by the
// authentication middleware.
// Label:
//   - result: "hit" (live session), "miss" (unknown/expired token)
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session token resolutions, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AccessDeniedTotal counts requests rejected by the authorization gate.
// Label:
//   - reason: "unauthenticated" (401) or "forbidden" (403)
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by authentication or authorization checks.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditRecordsTotal counts audit log entries written.
// Label:
//   - action: the audit action code (e.g. "USER_CREATED")
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit log entries recorded, by action.",
	},
	[]string{"action"},
)

// AuditRecordFailuresTotal counts audit writes that failed. Failures never
// propagate to the caller, so this counter is the only operational signal.
var AuditRecordFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_record_failures_total",
		Help:      "Total number of audit log writes that failed and were dropped.",
	},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// PlaylistsCreatedTotal counts newly created playlists.
// Label:
//   - visibility: "public" or "private"
var PlaylistsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "playlists_created_total",
		Help:      "Total number of playlists created, by visibility.",
	},
	[]string{"visibility"},
)

// UploadsTotal counts multipart image uploads.
// Label:
//   - result: "stored" or "rejected" (size or file-type violations)
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image upload attempts, by result.",
	},
	[]string{"result"},
)

// MetadataFetchDuration measures upstream metadata provider latency.
// Labels:
//   - provider: "youtube" or "spotify"
//   - result: "ok" or "error"
var MetadataFetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "metadata_fetch_duration_seconds",
		Help:      "Duration of external song metadata lookups.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"provider", "result"},
)
