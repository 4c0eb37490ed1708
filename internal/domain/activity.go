// Package domain holds MoodMuse's plain data types.
// The activity types model the tracking engine: sessions, per-activity
// progress, the global streak, and unlockable badges. Domain types carry
// no infrastructure dependency.
package domain

import "time"

// ─── Catalog Types ──────────────────────────────────────────────────────────

// ActivityCategory groups activities by theme.
type ActivityCategory string

const (
	CatMindfulness ActivityCategory = "mindfulness"
	CatPhysical    ActivityCategory = "physical"
	CatSocial      ActivityCategory = "social"
	CatCreative    ActivityCategory = "creative"
)

// Categories lists every activity category, in display order.
func Categories() []ActivityCategory {
	return []ActivityCategory{CatMindfulness, CatPhysical, CatSocial, CatCreative}
}

// ActivityDifficulty rates how demanding an activity is.
type ActivityDifficulty string

const (
	DifficultyEasy   ActivityDifficulty = "easy"
	DifficultyMedium ActivityDifficulty = "medium"
	DifficultyHard   ActivityDifficulty = "hard"
)

// ActivityType is a catalog entry — immutable reference data.
type ActivityType struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Icon         string             `json:"icon"`
	Category     ActivityCategory   `json:"category"`
	DurationMin  int                `json:"duration_min"`
	Difficulty   ActivityDifficulty `json:"difficulty"`
	Instructions []string           `json:"instructions,omitempty"`
	Benefits     []string           `json:"benefits,omitempty"`
	Tips         []string           `json:"tips,omitempty"`
}

// ─── Session Types ──────────────────────────────────────────────────────────

// MoodRating is a before/after mood pair on a 1–10 scale.
// After is 0 while the session is still pending.
type MoodRating struct {
	Before    int       `json:"before"`
	After     int       `json:"after,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Delta returns the signed mood change. Zero while the session is pending.
func (m MoodRating) Delta() int {
	if m.After == 0 {
		return 0
	}
	return m.After - m.Before
}

// ActivityCustomization holds per-session overrides chosen at start.
type ActivityCustomization struct {
	DurationMin int  `json:"duration_min,omitempty"`
	FocusMode   bool `json:"focus_mode,omitempty"`
}

// ActivitySession is one attempt at an activity. Created at start with
// Completed=false; finalized exactly once at completion and never mutated
// after that — the session list is append-only history.
type ActivitySession struct {
	ID             string                 `json:"id"`
	ActivityID     string                 `json:"activity_id"`
	StartTime      time.Time              `json:"start_time"`
	EndTime        time.Time              `json:"end_time,omitempty"`
	Completed      bool                   `json:"completed"`
	Mood           MoodRating             `json:"mood"`
	Customizations *ActivityCustomization `json:"customizations,omitempty"`
	Effectiveness  int                    `json:"effectiveness,omitempty"` // 0–100, meaningful only when Completed
	Notes          string                 `json:"notes,omitempty"`
}

// ─── Progress Types ─────────────────────────────────────────────────────────

// PersonalBest tracks per-activity records.
type PersonalBest struct {
	LongestSessionMin   int `json:"longest_session_min"`
	BestMoodImprovement int `json:"best_mood_improvement"`
}

// ActivityProgress is the per-activity-type aggregate, updated on every
// completion. One record per activity id, created lazily.
type ActivityProgress struct {
	ActivityID           string       `json:"activity_id"`
	TotalCompletions     int          `json:"total_completions"`
	TotalTimeMin         int          `json:"total_time_min"`
	AverageEffectiveness float64      `json:"average_effectiveness"`
	LastCompleted        time.Time    `json:"last_completed,omitempty"`
	StreakDays           int          `json:"streak_days"`
	PersonalBest         PersonalBest `json:"personal_best"`
}

// ActivityStreak is the global consecutive-day counter.
// Date keys use the "2006-01-02" calendar-day format (UTC).
type ActivityStreak struct {
	CurrentStreak    int            `json:"current_streak"`
	LongestStreak    int            `json:"longest_streak"`
	LastActivityDate string         `json:"last_activity_date,omitempty"`
	TotalActiveDays  int            `json:"total_active_days"`
	ActivitiesPerDay map[string]int `json:"activities_per_day"`
}

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeCategory groups badges by theme.
type BadgeCategory string

const (
	BadgeExplorer    BadgeCategory = "explorer"
	BadgeConsistency BadgeCategory = "consistency"
	BadgeMastery     BadgeCategory = "mastery"
	BadgeImprovement BadgeCategory = "improvement"
	BadgeTime        BadgeCategory = "time"
)

// RequirementType selects which aggregate metric a badge keys off.
type RequirementType string

const (
	ReqActivitiesCompleted RequirementType = "activities_completed"
	ReqStreakDays          RequirementType = "streak_days"
	ReqCategoryVariety     RequirementType = "category_variety"
	ReqMoodImprovement     RequirementType = "mood_improvement"
	ReqTotalTime           RequirementType = "total_time"
)

// BadgeRequirement is the unlock condition descriptor.
type BadgeRequirement struct {
	Type           RequirementType  `json:"type"`
	Target         int              `json:"target"`
	CategoryFilter ActivityCategory `json:"category_filter,omitempty"`
}

// ActivityBadge is an achievement. UnlockedAt, once set, is never cleared;
// Progress (0–100) is recomputed on every evaluation pass.
type ActivityBadge struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Category    BadgeCategory    `json:"category"`
	UnlockedAt  time.Time        `json:"unlocked_at,omitempty"`
	Progress    float64          `json:"progress"`
	Requirement BadgeRequirement `json:"requirement"`
}

// Unlocked reports whether the badge has been earned.
func (b ActivityBadge) Unlocked() bool { return !b.UnlockedAt.IsZero() }

// ─── Series Types ───────────────────────────────────────────────────────────

// SeriesDay schedules one activity within a multi-day program.
type SeriesDay struct {
	Day                int    `json:"day"`
	ActivityID         string `json:"activity_id"`
	CustomInstructions string `json:"custom_instructions,omitempty"`
}

// ActivitySeries is a guided multi-day program with a day pointer.
// CurrentDay starts at 1 and advances when the scheduled activity completes.
type ActivitySeries struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	DurationDays int         `json:"duration_days"`
	Activities   []SeriesDay `json:"activities"`
	CurrentDay   int         `json:"current_day"`
	StartedAt    time.Time   `json:"started_at,omitempty"`
	CompletedAt  time.Time   `json:"completed_at,omitempty"`
}

// Finished reports whether every scheduled day has been completed.
func (s ActivitySeries) Finished() bool { return !s.CompletedAt.IsZero() }

// ScheduledActivity returns the activity id for the current day, or "" if
// the series is finished or the day is out of range.
func (s ActivitySeries) ScheduledActivity() string {
	for _, d := range s.Activities {
		if d.Day == s.CurrentDay {
			return d.ActivityID
		}
	}
	return ""
}

// ─── User Aggregate ─────────────────────────────────────────────────────────

// Preferences holds the user's activity defaults.
type Preferences struct {
	PreferredCategories []ActivityCategory `json:"preferred_categories,omitempty"`
	PreferredDifficulty ActivityDifficulty `json:"preferred_difficulty,omitempty"`
	DefaultDurationMin  int                `json:"default_duration_min"`
	ReminderTime        string             `json:"reminder_time,omitempty"` // "HH:MM"
	FocusModeDefault    bool               `json:"focus_mode_default"`
}

// UserActivityData is the single persisted root aggregate. The session
// lifecycle tracker owns all writes to it; persistence is whole-record,
// last-write-wins per user key.
type UserActivityData struct {
	Sessions     []ActivitySession            `json:"sessions"`
	Progress     map[string]*ActivityProgress `json:"progress"`
	Streaks      ActivityStreak               `json:"streaks"`
	Badges       []ActivityBadge              `json:"badges"`
	Preferences  Preferences                  `json:"preferences"`
	ActiveSeries *ActivitySeries              `json:"active_series,omitempty"`
}

// NewUserActivityData returns an empty aggregate with maps initialized.
func NewUserActivityData() *UserActivityData {
	return &UserActivityData{
		Progress: make(map[string]*ActivityProgress),
		Streaks:  ActivityStreak{ActivitiesPerDay: make(map[string]int)},
		Preferences: Preferences{
			PreferredDifficulty: DifficultyEasy,
			DefaultDurationMin:  10,
		},
	}
}
