package tracking

import (
	"time"

	"github.com/moodmuse-app/moodmuse/internal/domain"
)

// ─── Badge Catalog ──────────────────────────────────────────────────────────
// Requirements are data, not code: a metric type, a numeric target, and an
// optional category filter. Unlock is monotonic — once earned, a badge is
// never revoked even if the underlying metric later regresses.

// BadgeCatalog returns the full badge catalog in locked state.
func BadgeCatalog() []domain.ActivityBadge {
	return []domain.ActivityBadge{
		// ── Explorer ───────────────────────────────────────────────────
		{
			ID: "first_steps", Title: "First Steps", Category: domain.BadgeExplorer,
			Icon: "🌱", Description: "Complete your first wellness activity.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqActivitiesCompleted, Target: 1},
		},
		{
			ID: "pathfinder", Title: "Pathfinder", Category: domain.BadgeExplorer,
			Icon: "🧭", Description: "Complete 5 activities.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqActivitiesCompleted, Target: 5},
		},
		{
			ID: "all_rounder", Title: "All-Rounder", Category: domain.BadgeExplorer,
			Icon: "🎨", Description: "Try an activity from every category.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqCategoryVariety, Target: 4},
		},

		// ── Consistency ────────────────────────────────────────────────
		{
			ID: "week_warrior", Title: "Week Warrior", Category: domain.BadgeConsistency,
			Icon: "🔥", Description: "Keep a 7-day activity streak.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqStreakDays, Target: 7},
		},
		{
			ID: "fortnight_force", Title: "Fortnight Force", Category: domain.BadgeConsistency,
			Icon: "📅", Description: "Keep a 14-day activity streak.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqStreakDays, Target: 14},
		},
		{
			ID: "monthly_mind", Title: "Monthly Mind", Category: domain.BadgeConsistency,
			Icon: "🌙", Description: "Keep a 30-day activity streak.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqStreakDays, Target: 30},
		},

		// ── Mastery ────────────────────────────────────────────────────
		{
			ID: "dedicated", Title: "Dedicated", Category: domain.BadgeMastery,
			Icon: "💪", Description: "Complete 20 activities.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqActivitiesCompleted, Target: 20},
		},
		{
			ID: "zen_master", Title: "Zen Master", Category: domain.BadgeMastery,
			Icon: "🧘", Description: "Complete 10 mindfulness activities.",
			Requirement: domain.BadgeRequirement{
				Type: domain.ReqActivitiesCompleted, Target: 10,
				CategoryFilter: domain.CatMindfulness,
			},
		},

		// ── Improvement ────────────────────────────────────────────────
		{
			ID: "mood_lifter", Title: "Mood Lifter", Category: domain.BadgeImprovement,
			Icon: "🎈", Description: "Improve your mood by 3 points in one session.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqMoodImprovement, Target: 3},
		},
		{
			ID: "transformation", Title: "Transformation", Category: domain.BadgeImprovement,
			Icon: "🦋", Description: "Improve your mood by 6 points in one session.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqMoodImprovement, Target: 6},
		},

		// ── Time ───────────────────────────────────────────────────────
		{
			ID: "hour_of_calm", Title: "Hour of Calm", Category: domain.BadgeTime,
			Icon: "⏳", Description: "Spend 60 minutes on wellness activities.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqTotalTime, Target: 60},
		},
		{
			ID: "ten_hours_in", Title: "Ten Hours In", Category: domain.BadgeTime,
			Icon: "🏆", Description: "Spend 10 hours on wellness activities.",
			Requirement: domain.BadgeRequirement{Type: domain.ReqTotalTime, Target: 600},
		},
	}
}

// ensureBadges appends catalog badges missing from the user's list, so a
// catalog extension reaches existing users without touching earned state.
func ensureBadges(data *domain.UserActivityData) {
	have := make(map[string]bool, len(data.Badges))
	for _, b := range data.Badges {
		have[b.ID] = true
	}
	for _, b := range BadgeCatalog() {
		if !have[b.ID] {
			data.Badges = append(data.Badges, b)
		}
	}
}

// evaluateBadges recomputes progress for every badge and unlocks those
// whose metric crossed the target. Returns the newly unlocked badges.
// Idempotent: a second pass with no new completions unlocks nothing.
func evaluateBadges(data *domain.UserActivityData, lookup LookupFunc, now time.Time) []domain.ActivityBadge {
	var newly []domain.ActivityBadge

	for i := range data.Badges {
		b := &data.Badges[i]
		if b.Unlocked() {
			b.Progress = 100
			continue
		}

		metric := badgeMetric(data, b.Requirement, lookup)
		if b.Requirement.Target > 0 {
			pct := 100 * float64(metric) / float64(b.Requirement.Target)
			if pct > 100 {
				pct = 100
			}
			b.Progress = pct
		} else {
			b.Progress = 100
		}

		if metric >= b.Requirement.Target {
			b.UnlockedAt = now
			b.Progress = 100
			newly = append(newly, *b)
		}
	}

	return newly
}

// badgeMetric computes the current value of the metric a requirement keys
// off. streak_days uses the longest streak ever achieved, so streak badges
// never flap between locked and unlocked when a streak breaks.
func badgeMetric(data *domain.UserActivityData, req domain.BadgeRequirement, lookup LookupFunc) int {
	switch req.Type {
	case domain.ReqActivitiesCompleted:
		count := 0
		for _, s := range data.Sessions {
			if !s.Completed {
				continue
			}
			if req.CategoryFilter != "" {
				at := lookup(s.ActivityID)
				if at == nil || at.Category != req.CategoryFilter {
					continue
				}
			}
			count++
		}
		return count

	case domain.ReqStreakDays:
		return data.Streaks.LongestStreak

	case domain.ReqCategoryVariety:
		seen := make(map[domain.ActivityCategory]bool)
		for _, s := range data.Sessions {
			if !s.Completed {
				continue
			}
			if at := lookup(s.ActivityID); at != nil {
				seen[at.Category] = true
			}
		}
		return len(seen)

	case domain.ReqMoodImprovement:
		best := 0
		for _, s := range data.Sessions {
			if s.Completed {
				if d := s.Mood.Delta(); d > best {
					best = d
				}
			}
		}
		return best

	case domain.ReqTotalTime:
		total := 0
		for _, p := range data.Progress {
			total += p.TotalTimeMin
		}
		return total
	}

	return 0
}
