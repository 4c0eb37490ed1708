// Package metrics provides Prometheus metrics for MoodMuse: counters and
// histograms for sessions, mood change, badges, journaling, persistence,
// and the reflection remote.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Tracking ───────────────────────────────────────────────────────────────

// SessionsStarted counts activity sessions created, per activity.
var SessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodmuse",
	Name:      "sessions_started_total",
	Help:      "Activity sessions started.",
}, []string{"activity"})

// SessionsCompleted counts activity sessions finalized, per activity.
var SessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "moodmuse",
	Name:      "sessions_completed_total",
	Help:      "Activity sessions completed.",
}, []string{"activity"})

// MoodDelta tracks the signed mood change of completed sessions.
var MoodDelta = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "moodmuse",
	Name:      "mood_delta",
	Help:      "Signed mood change (after - before) per completed session.",
	Buckets:   prometheus.LinearBuckets(-9, 2, 10),
})

// BadgeUnlocks counts badges unlocked.
var BadgeUnlocks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodmuse",
	Name:      "badge_unlocks_total",
	Help:      "Badges unlocked.",
})

// ─── Persistence ────────────────────────────────────────────────────────────

// PersistenceFailures counts failed whole-record store writes.
var PersistenceFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodmuse",
	Name:      "persistence_failures_total",
	Help:      "Failed user-record writes (state kept in memory, retried on flush).",
})

// ─── Journal ────────────────────────────────────────────────────────────────

// JournalEntries counts journal entries written.
var JournalEntries = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodmuse",
	Name:      "journal_entries_total",
	Help:      "Journal entries created.",
})

// ReflectionLatency tracks AI reflection round-trip duration in seconds.
var ReflectionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "moodmuse",
	Name:      "reflection_latency_seconds",
	Help:      "AI reflection request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
})

// ReflectionErrors counts failed AI reflection calls.
var ReflectionErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "moodmuse",
	Name:      "reflection_errors_total",
	Help:      "Failed AI reflection requests.",
})
