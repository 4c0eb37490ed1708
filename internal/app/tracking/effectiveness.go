// Package tracking implements the MoodMuse activity tracking engine:
// session lifecycle, mood effectiveness scoring, streaks, per-activity
// progress aggregates, and badge unlocking.
package tracking

import "github.com/moodmuse-app/moodmuse/internal/domain"

// Mood ratings live on a 1–10 scale. Out-of-range input is clamped, never
// rejected — the UI slider can't produce bad values, but persisted or
// imported data might.
const (
	MoodMin = 1
	MoodMax = 10
)

// ClampMood forces a rating into the 1–10 scale.
func ClampMood(v int) int {
	if v < MoodMin {
		return MoodMin
	}
	if v > MoodMax {
		return MoodMax
	}
	return v
}

// MoodDelta returns the signed mood change for a before/after pair.
// Inputs are clamped first, so the result is always within [-9, 9].
func MoodDelta(before, after int) int {
	return ClampMood(after) - ClampMood(before)
}

// Effectiveness computes a 0–100 score for a completed session.
// The midpoint 50 means "no change"; each point of improvement is worth
// 10, and harder activities earn a small bonus on top of a positive delta.
// Strictly monotonic in the delta, clipped at the range bounds.
func Effectiveness(before, after int, difficulty domain.ActivityDifficulty) int {
	delta := MoodDelta(before, after)
	score := 50 + delta*10

	if delta > 0 {
		switch difficulty {
		case domain.DifficultyMedium:
			score += 3
		case domain.DifficultyHard:
			score += 6
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
