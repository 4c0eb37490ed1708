package tracking

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moodmuse-app/moodmuse/internal/domain"
	"github.com/moodmuse-app/moodmuse/internal/infra/metrics"
)

// Store is the persistence boundary: atomic whole-record read/write of the
// user aggregate by key. Load returns (nil, nil) when no record exists yet.
// Writes are last-write-wins per key.
type Store interface {
	LoadUserData(userKey string) (*domain.UserActivityData, error)
	SaveUserData(userKey string, data *domain.UserActivityData) error
}

// LookupFunc resolves a catalog activity by id, nil if unknown.
type LookupFunc func(id string) *domain.ActivityType

// Tracker is the session lifecycle manager. It owns the in-memory user
// aggregate — all mutations go through it — and mirrors every change to
// the store. HTTP handlers call it concurrently, so a mutex serializes
// mutations; a store failure leaves the in-memory state authoritative and
// flags the record unsynced for a later Flush.
type Tracker struct {
	mu       sync.Mutex
	store    Store
	userKey  string
	lookup   LookupFunc
	now      func() time.Time
	data     *domain.UserActivityData
	unsynced bool
}

// NewTracker loads (or initializes) the user aggregate and seeds the badge
// catalog.
func NewTracker(store Store, userKey string, lookup LookupFunc) (*Tracker, error) {
	data, err := store.LoadUserData(userKey)
	if err != nil {
		return nil, fmt.Errorf("load user data: %w", err)
	}
	if data == nil {
		data = domain.NewUserActivityData()
	}
	if data.Progress == nil {
		data.Progress = make(map[string]*domain.ActivityProgress)
	}
	ensureBadges(data)

	return &Tracker{
		store:   store,
		userKey: userKey,
		lookup:  lookup,
		now:     time.Now,
		data:    data,
	}, nil
}

// SetClock overrides the tracker's time source. Test hook.
func (t *Tracker) SetClock(now func() time.Time) { t.now = now }

// ─── Lifecycle Operations ───────────────────────────────────────────────────

// StartActivity creates a pending session and returns its id. The before
// mood is clamped to 1–10, never rejected. At most one session may be
// pending: starting a new activity silently discards a previous pending
// session. The pending session is persisted so a reload can resume it.
func (t *Tracker) StartActivity(activityID string, beforeMood int, custom *domain.ActivityCustomization) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	at := t.lookup(activityID)
	if at == nil {
		return "", fmt.Errorf("%w: %q", domain.ErrActivityNotFound, activityID)
	}

	t.discardPendingLocked()

	now := t.now()
	session := domain.ActivitySession{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		StartTime:  now,
		Mood: domain.MoodRating{
			Before:    ClampMood(beforeMood),
			Timestamp: now,
		},
		Customizations: custom,
	}
	t.data.Sessions = append(t.data.Sessions, session)

	metrics.SessionsStarted.WithLabelValues(activityID).Inc()

	if err := t.persistLocked(); err != nil {
		return session.ID, err
	}
	return session.ID, nil
}

// CompleteActivity finalizes a pending session: computes effectiveness,
// updates the streak, the per-activity progress, the active series, and
// evaluates badges. Returns the newly unlocked badges.
//
// An unknown or already-completed session id returns ErrUnknownSession
// with no state mutation. A persistence failure returns a wrapped
// ErrPersistence, but the completion itself stands in memory.
func (t *Tracker) CompleteActivity(sessionID string, afterMood int, notes string) ([]domain.ActivityBadge, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i := range t.data.Sessions {
		if t.data.Sessions[i].ID == sessionID && !t.data.Sessions[i].Completed {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSession, sessionID)
	}

	s := &t.data.Sessions[idx]
	now := t.now()

	difficulty := domain.DifficultyEasy
	catalogDuration := 0
	if at := t.lookup(s.ActivityID); at != nil {
		difficulty = at.Difficulty
		catalogDuration = at.DurationMin
	}

	s.EndTime = now
	s.Mood.After = ClampMood(afterMood)
	s.Effectiveness = Effectiveness(s.Mood.Before, s.Mood.After, difficulty)
	s.Completed = true
	s.Notes = notes

	duration := catalogDuration
	if s.Customizations != nil && s.Customizations.DurationMin > 0 {
		duration = s.Customizations.DurationMin
	}

	recordActivity(&t.data.Streaks, now)
	recordCompletion(t.data.Progress, *s, duration)
	t.advanceSeriesLocked(s.ActivityID, now)
	newly := evaluateBadges(t.data, t.lookup, now)

	metrics.SessionsCompleted.WithLabelValues(s.ActivityID).Inc()
	metrics.MoodDelta.Observe(float64(s.Mood.Delta()))
	if len(newly) > 0 {
		metrics.BadgeUnlocks.Add(float64(len(newly)))
	}

	if err := t.persistLocked(); err != nil {
		return newly, err
	}
	return newly, nil
}

// discardPendingLocked drops any uncompleted session from history.
// Single-active-session policy: the previous pending session is abandoned
// silently when a new one starts.
func (t *Tracker) discardPendingLocked() {
	kept := t.data.Sessions[:0]
	for _, s := range t.data.Sessions {
		if s.Completed {
			kept = append(kept, s)
		}
	}
	t.data.Sessions = kept
}

// ─── Series Operations ──────────────────────────────────────────────────────

// StartSeries activates a multi-day guided program. Only one series may be
// active at a time.
func (t *Tracker) StartSeries(series domain.ActivitySeries) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.data.ActiveSeries != nil && !t.data.ActiveSeries.Finished() {
		return domain.ErrSeriesActive
	}

	series.CurrentDay = 1
	series.StartedAt = t.now()
	series.CompletedAt = time.Time{}
	t.data.ActiveSeries = &series

	return t.persistLocked()
}

// AbandonSeries clears the active series.
func (t *Tracker) AbandonSeries() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.data.ActiveSeries == nil {
		return domain.ErrSeriesNotFound
	}
	t.data.ActiveSeries = nil
	return t.persistLocked()
}

// advanceSeriesLocked moves the day pointer when the completed activity is
// the one scheduled for the current series day.
func (t *Tracker) advanceSeriesLocked(activityID string, now time.Time) {
	series := t.data.ActiveSeries
	if series == nil || series.Finished() {
		return
	}
	if series.ScheduledActivity() != activityID {
		return
	}
	series.CurrentDay++
	if series.CurrentDay > series.DurationDays {
		series.CompletedAt = now
	}
}

// ─── Read API ───────────────────────────────────────────────────────────────

// ActiveSession returns the pending session, or nil if none.
func (t *Tracker) ActiveSession() *domain.ActivitySession {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.data.Sessions {
		if !t.data.Sessions[i].Completed {
			s := t.data.Sessions[i]
			return &s
		}
	}
	return nil
}

// Progress returns the aggregate for one activity, nil if never completed.
func (t *Tracker) Progress(activityID string) *domain.ActivityProgress {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.data.Progress[activityID]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// AllProgress returns a copy of every per-activity aggregate.
func (t *Tracker) AllProgress() []domain.ActivityProgress {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.ActivityProgress, 0, len(t.data.Progress))
	for _, p := range t.data.Progress {
		out = append(out, *p)
	}
	return out
}

// Streak returns a copy of the global streak state.
func (t *Tracker) Streak() domain.ActivityStreak {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.data.Streaks
	s.ActivitiesPerDay = make(map[string]int, len(t.data.Streaks.ActivitiesPerDay))
	for k, v := range t.data.Streaks.ActivitiesPerDay {
		s.ActivitiesPerDay[k] = v
	}
	return s
}

// Badges returns a copy of the badge list with current unlock state.
func (t *Tracker) Badges() []domain.ActivityBadge {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.ActivityBadge, len(t.data.Badges))
	copy(out, t.data.Badges)
	return out
}

// Sessions returns a copy of the session history, oldest first.
func (t *Tracker) Sessions() []domain.ActivitySession {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.ActivitySession, len(t.data.Sessions))
	copy(out, t.data.Sessions)
	return out
}

// ActiveSeries returns a copy of the active series, nil if none.
func (t *Tracker) ActiveSeries() *domain.ActivitySeries {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.data.ActiveSeries == nil {
		return nil
	}
	cp := *t.data.ActiveSeries
	return &cp
}

// Summary aggregates headline numbers for the dashboard.
type Summary struct {
	TotalSessions        int     `json:"total_sessions"`
	CompletedSessions    int     `json:"completed_sessions"`
	CurrentStreak        int     `json:"current_streak"`
	LongestStreak        int     `json:"longest_streak"`
	TotalActiveDays      int     `json:"total_active_days"`
	TotalTimeMin         int     `json:"total_time_min"`
	AverageEffectiveness float64 `json:"average_effectiveness"`
	BadgesUnlocked       int     `json:"badges_unlocked"`
	BadgesTotal          int     `json:"badges_total"`
}

// Summarize computes the dashboard summary from the current aggregate.
func (t *Tracker) Summarize() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	sum := Summary{
		TotalSessions:   len(t.data.Sessions),
		CurrentStreak:   t.data.Streaks.CurrentStreak,
		LongestStreak:   t.data.Streaks.LongestStreak,
		TotalActiveDays: t.data.Streaks.TotalActiveDays,
		BadgesTotal:     len(t.data.Badges),
	}

	effTotal := 0
	for _, s := range t.data.Sessions {
		if s.Completed {
			sum.CompletedSessions++
			effTotal += s.Effectiveness
		}
	}
	if sum.CompletedSessions > 0 {
		sum.AverageEffectiveness = float64(effTotal) / float64(sum.CompletedSessions)
	}

	for _, p := range t.data.Progress {
		sum.TotalTimeMin += p.TotalTimeMin
	}
	for _, b := range t.data.Badges {
		if b.Unlocked() {
			sum.BadgesUnlocked++
		}
	}
	return sum
}

// ─── Persistence ────────────────────────────────────────────────────────────

// Unsynced reports whether the last store write failed and the in-memory
// state is ahead of the persisted record.
func (t *Tracker) Unsynced() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unsynced
}

// Flush retries persisting the aggregate. No-op when already in sync.
func (t *Tracker) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.unsynced {
		return nil
	}
	return t.persistLocked()
}

func (t *Tracker) persistLocked() error {
	if err := t.store.SaveUserData(t.userKey, t.data); err != nil {
		t.unsynced = true
		metrics.PersistenceFailures.Inc()
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	t.unsynced = false
	return nil
}
