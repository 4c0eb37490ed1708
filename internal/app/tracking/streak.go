package tracking

import (
	"time"

	"github.com/moodmuse-app/moodmuse/internal/domain"
)

// dayFormat is the calendar-day key used throughout the streak state.
// ISO dates compare correctly as strings.
const dayFormat = "2006-01-02"

// DayKey normalizes a timestamp to its UTC calendar-day string.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayFormat)
}

// recordActivity folds one completion into the streak state.
//
// Same day: only the per-day count grows. Next calendar day: the streak
// extends. Any larger gap (or the first-ever completion) resets the
// streak to 1. Streaks break silently — there is no grace mechanism.
//
// A completion dated before lastActivityDate is a historical backfill:
// it updates activitiesPerDay and totalActiveDays for that day but never
// moves currentStreak or lastActivityDate, so out-of-order timestamps
// cannot corrupt the counter.
func recordActivity(s *domain.ActivityStreak, at time.Time) {
	day := DayKey(at)
	if s.ActivitiesPerDay == nil {
		s.ActivitiesPerDay = make(map[string]int)
	}

	// Repeat activity on an already-counted day.
	if s.ActivitiesPerDay[day] > 0 {
		s.ActivitiesPerDay[day]++
		return
	}

	// First activity of this day.
	s.ActivitiesPerDay[day] = 1
	s.TotalActiveDays++

	// Historical backfill — leave the streak counters alone.
	if s.LastActivityDate != "" && day < s.LastActivityDate {
		return
	}

	switch {
	case s.LastActivityDate == "":
		s.CurrentStreak = 1
	case day == nextDay(s.LastActivityDate):
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastActivityDate = day
}

// nextDay returns the calendar day after the given day key.
func nextDay(day string) string {
	t, err := time.Parse(dayFormat, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(dayFormat)
}
