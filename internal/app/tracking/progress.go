package tracking

import (
	"github.com/moodmuse-app/moodmuse/internal/domain"
)

// recordCompletion rolls a finalized session into the per-activity
// aggregate, creating the record lazily on the first completion.
// durationMin is the effective session length: the customized duration
// when one was chosen, else the catalog default.
func recordCompletion(progress map[string]*domain.ActivityProgress, s domain.ActivitySession, durationMin int) {
	p, ok := progress[s.ActivityID]
	if !ok {
		p = &domain.ActivityProgress{ActivityID: s.ActivityID}
		progress[s.ActivityID] = p
	}

	p.TotalCompletions++
	p.TotalTimeMin += durationMin

	// Incremental mean — numerically stable for long-running use, no raw
	// sum kept.
	p.AverageEffectiveness += (float64(s.Effectiveness) - p.AverageEffectiveness) / float64(p.TotalCompletions)

	// Per-activity day streak: consecutive calendar days with a completion
	// of this particular activity.
	prevDay := ""
	if !p.LastCompleted.IsZero() {
		prevDay = DayKey(p.LastCompleted)
	}
	day := DayKey(s.EndTime)
	switch {
	case prevDay == day:
		// Second completion today — no change.
	case prevDay != "" && day == nextDay(prevDay):
		p.StreakDays++
	default:
		p.StreakDays = 1
	}

	p.LastCompleted = s.EndTime

	if durationMin > p.PersonalBest.LongestSessionMin {
		p.PersonalBest.LongestSessionMin = durationMin
	}
	if delta := s.Mood.Delta(); delta > p.PersonalBest.BestMoodImprovement {
		p.PersonalBest.BestMoodImprovement = delta
	}
}
