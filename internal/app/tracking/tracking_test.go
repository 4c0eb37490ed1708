package tracking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/moodmuse-app/moodmuse/internal/app/tracking"
	"github.com/moodmuse-app/moodmuse/internal/domain"
	"github.com/moodmuse-app/moodmuse/internal/infra/catalog"
)

// memStore is an in-memory Store for tests. failSave injects a write
// failure without touching the stored record.
type memStore struct {
	records  map[string]*domain.UserActivityData
	failSave bool
	saves    int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*domain.UserActivityData)}
}

func (m *memStore) LoadUserData(userKey string) (*domain.UserActivityData, error) {
	return m.records[userKey], nil
}

func (m *memStore) SaveUserData(userKey string, data *domain.UserActivityData) error {
	m.saves++
	if m.failSave {
		return errors.New("disk full")
	}
	m.records[userKey] = data
	return nil
}

func newTestTracker(t *testing.T) (*tracking.Tracker, *memStore) {
	t.Helper()
	store := newMemStore()
	tr, err := tracking.NewTracker(store, "default", catalog.Lookup)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	return tr, store
}

// fixedClock pins the tracker's clock to a settable instant.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time { return c.t }

// complete runs a full start/complete cycle at the clock's current time.
func complete(t *testing.T, tr *tracking.Tracker, activityID string, before, after int) []domain.ActivityBadge {
	t.Helper()
	id, err := tr.StartActivity(activityID, before, nil)
	if err != nil {
		t.Fatalf("start %s: %v", activityID, err)
	}
	badges, err := tr.CompleteActivity(id, after, "")
	if err != nil {
		t.Fatalf("complete %s: %v", activityID, err)
	}
	return badges
}

// ═══════════════════════════════════════════════════════════════════════════
// Effectiveness Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEffectiveness_NoChangeIsMidpoint(t *testing.T) {
	if got := tracking.Effectiveness(5, 5, domain.DifficultyEasy); got != 50 {
		t.Errorf("no mood change: got %d, want 50", got)
	}
}

func TestEffectiveness_ImprovementScoresAboveMidpoint(t *testing.T) {
	got := tracking.Effectiveness(4, 8, domain.DifficultyEasy)
	if got != 90 {
		t.Errorf("4→8 easy: got %d, want 90", got)
	}
	if got <= 50 {
		t.Errorf("improvement must score above midpoint, got %d", got)
	}
}

func TestEffectiveness_MonotonicInDelta(t *testing.T) {
	prev := -1
	for after := 1; after <= 10; after++ {
		got := tracking.Effectiveness(5, after, domain.DifficultyEasy)
		if got < prev {
			t.Fatalf("effectiveness regressed at after=%d: %d < %d", after, got, prev)
		}
		prev = got
	}
}

func TestEffectiveness_DifficultyBonusOnlyOnImprovement(t *testing.T) {
	easy := tracking.Effectiveness(4, 6, domain.DifficultyEasy)
	medium := tracking.Effectiveness(4, 6, domain.DifficultyMedium)
	hard := tracking.Effectiveness(4, 6, domain.DifficultyHard)
	if medium != easy+3 || hard != easy+6 {
		t.Errorf("bonus wrong: easy=%d medium=%d hard=%d", easy, medium, hard)
	}

	// No bonus when the mood did not improve.
	if got := tracking.Effectiveness(6, 4, domain.DifficultyHard); got != tracking.Effectiveness(6, 4, domain.DifficultyEasy) {
		t.Errorf("bonus applied on decline: got %d", got)
	}
}

func TestEffectiveness_ClampedToRange(t *testing.T) {
	if got := tracking.Effectiveness(1, 10, domain.DifficultyHard); got != 100 {
		t.Errorf("max improvement: got %d, want 100", got)
	}
	if got := tracking.Effectiveness(10, 1, domain.DifficultyEasy); got != 0 {
		t.Errorf("max decline: got %d, want 0", got)
	}
}

func TestClampMood_OutOfRange(t *testing.T) {
	if got := tracking.ClampMood(0); got != 1 {
		t.Errorf("ClampMood(0) = %d, want 1", got)
	}
	if got := tracking.ClampMood(15); got != 10 {
		t.Errorf("ClampMood(15) = %d, want 10", got)
	}
	if got := tracking.ClampMood(7); got != 7 {
		t.Errorf("ClampMood(7) = %d, want 7", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Session Lifecycle Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStartActivity_UnknownActivity(t *testing.T) {
	tr, _ := newTestTracker(t)

	_, err := tr.StartActivity("juggling", 5, nil)
	if !errors.Is(err, domain.ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestStartActivity_ClampsBeforeMood(t *testing.T) {
	tr, _ := newTestTracker(t)

	if _, err := tr.StartActivity("breathing", 15, nil); err != nil {
		t.Fatalf("start: %v", err)
	}
	s := tr.ActiveSession()
	if s == nil {
		t.Fatal("expected pending session")
	}
	if s.Mood.Before != 10 {
		t.Errorf("before mood = %d, want 10 (clamped)", s.Mood.Before)
	}
	if s.Completed || s.Effectiveness != 0 {
		t.Errorf("pending session must carry no effectiveness: %+v", s)
	}
}

func TestBreathingSessionRecordsEverything(t *testing.T) {
	tr, _ := newTestTracker(t)
	clock := &fixedClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	tr.SetClock(clock.now)

	newBadges := complete(t, tr, "breathing", 4, 8)

	sessions := tr.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if !s.Completed {
		t.Error("session not marked completed")
	}
	if d := s.Mood.Delta(); d != 4 {
		t.Errorf("mood delta = %d, want 4", d)
	}
	if s.Effectiveness != 90 {
		t.Errorf("effectiveness = %d, want 90", s.Effectiveness)
	}

	p := tr.Progress("breathing")
	if p == nil {
		t.Fatal("no progress recorded")
	}
	if p.TotalCompletions != 1 {
		t.Errorf("completions = %d, want 1", p.TotalCompletions)
	}
	if p.TotalTimeMin != 10 {
		t.Errorf("time = %d, want catalog default 10", p.TotalTimeMin)
	}
	if p.PersonalBest.BestMoodImprovement != 4 {
		t.Errorf("best improvement = %d, want 4", p.PersonalBest.BestMoodImprovement)
	}

	streak := tr.Streak()
	if streak.CurrentStreak != 1 || streak.TotalActiveDays != 1 {
		t.Errorf("streak = %+v, want current 1, active days 1", streak)
	}

	// first_steps and mood_lifter both unlock on this single session.
	ids := make(map[string]bool)
	for _, b := range newBadges {
		ids[b.ID] = true
	}
	if !ids["first_steps"] {
		t.Errorf("first_steps not unlocked, got %v", ids)
	}
	if !ids["mood_lifter"] {
		t.Errorf("mood_lifter not unlocked (delta 4 ≥ 3), got %v", ids)
	}
}

func TestCompleteActivity_UnknownSession(t *testing.T) {
	tr, _ := newTestTracker(t)
	complete(t, tr, "breathing", 4, 8)
	before := tr.Streak()

	_, err := tr.CompleteActivity("no-such-session", 9, "")
	if !errors.Is(err, domain.ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}

	// No state mutation on the failed path.
	if got := tr.Streak(); got.CurrentStreak != before.CurrentStreak || got.TotalActiveDays != before.TotalActiveDays {
		t.Errorf("streak mutated by failed completion: %+v", got)
	}
	if len(tr.Sessions()) != 1 {
		t.Errorf("session count changed: %d", len(tr.Sessions()))
	}
}

func TestCompleteActivity_Twice(t *testing.T) {
	tr, _ := newTestTracker(t)

	id, err := tr.StartActivity("walk", 5, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tr.CompleteActivity(id, 7, ""); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := tr.CompleteActivity(id, 9, ""); !errors.Is(err, domain.ErrUnknownSession) {
		t.Fatalf("second complete: expected ErrUnknownSession, got %v", err)
	}

	p := tr.Progress("walk")
	if p.TotalCompletions != 1 {
		t.Errorf("double-counted completion: %d", p.TotalCompletions)
	}
}

func TestStartActivity_DiscardsPendingSession(t *testing.T) {
	tr, _ := newTestTracker(t)

	first, err := tr.StartActivity("breathing", 4, nil)
	if err != nil {
		t.Fatalf("start first: %v", err)
	}
	if _, err := tr.StartActivity("walk", 5, nil); err != nil {
		t.Fatalf("start second: %v", err)
	}

	active := tr.ActiveSession()
	if active == nil || active.ActivityID != "walk" {
		t.Fatalf("active session = %+v, want walk", active)
	}

	// The discarded session is gone entirely.
	if _, err := tr.CompleteActivity(first, 8, ""); !errors.Is(err, domain.ErrUnknownSession) {
		t.Errorf("discarded session still completable: %v", err)
	}
	if len(tr.Sessions()) != 1 {
		t.Errorf("expected 1 session after discard, got %d", len(tr.Sessions()))
	}
}

func TestCompleteActivity_CustomDurationWins(t *testing.T) {
	tr, _ := newTestTracker(t)

	id, err := tr.StartActivity("breathing", 5, &domain.ActivityCustomization{DurationMin: 25})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := tr.CompleteActivity(id, 7, ""); err != nil {
		t.Fatalf("complete: %v", err)
	}

	p := tr.Progress("breathing")
	if p.TotalTimeMin != 25 {
		t.Errorf("time = %d, want customized 25", p.TotalTimeMin)
	}
	if p.PersonalBest.LongestSessionMin != 25 {
		t.Errorf("longest session = %d, want 25", p.PersonalBest.LongestSessionMin)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStreak_ConsecutiveDays(t *testing.T) {
	tr, _ := newTestTracker(t)
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tr.SetClock(clock.now)

	for i := 0; i < 5; i++ {
		complete(t, tr, "breathing", 5, 7)
		clock.t = clock.t.AddDate(0, 0, 1)
	}

	s := tr.Streak()
	if s.CurrentStreak != 5 {
		t.Errorf("current streak = %d, want 5", s.CurrentStreak)
	}
	if s.LongestStreak != 5 {
		t.Errorf("longest streak = %d, want 5", s.LongestStreak)
	}
	if s.TotalActiveDays != 5 {
		t.Errorf("total active days = %d, want 5", s.TotalActiveDays)
	}
}

func TestStreak_SameDayCountsOnce(t *testing.T) {
	tr, _ := newTestTracker(t)
	clock := &fixedClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	tr.SetClock(clock.now)

	complete(t, tr, "breathing", 5, 7)
	clock.t = clock.t.Add(6 * time.Hour)
	complete(t, tr, "walk", 5, 7)

	s := tr.Streak()
	if s.CurrentStreak != 1 {
		t.Errorf("current streak = %d, want 1 (same day)", s.CurrentStreak)
	}
	if got := s.ActivitiesPerDay["2026-03-01"]; got != 2 {
		t.Errorf("activities on day = %d, want 2", got)
	}
}

func TestStreak_GapResetsSilently(t *testing.T) {
	tr, _ := newTestTracker(t)
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tr.SetClock(clock.now)

	for i := 0; i < 3; i++ {
		complete(t, tr, "breathing", 5, 7)
		clock.t = clock.t.AddDate(0, 0, 1)
	}

	// Skip 3 days.
	clock.t = clock.t.AddDate(0, 0, 3)
	complete(t, tr, "breathing", 5, 7)

	s := tr.Streak()
	if s.CurrentStreak != 1 {
		t.Errorf("current streak = %d, want reset to 1", s.CurrentStreak)
	}
	if s.LongestStreak != 3 {
		t.Errorf("longest streak = %d, want preserved 3", s.LongestStreak)
	}
	if s.TotalActiveDays != 4 {
		t.Errorf("total active days = %d, want 4", s.TotalActiveDays)
	}
}

func TestStreak_LateNightCrossesCalendarDay(t *testing.T) {
	tr, _ := newTestTracker(t)

	// Two instants 23 hours apart that land on consecutive UTC calendar
	// days still extend the streak.
	clock := &fixedClock{t: time.Date(2026, 3, 7, 23, 30, 0, 0, time.UTC)}
	tr.SetClock(clock.now)
	complete(t, tr, "breathing", 5, 7)

	clock.t = clock.t.Add(23 * time.Hour) // 2026-03-08 22:30 UTC
	complete(t, tr, "breathing", 5, 7)

	s := tr.Streak()
	if s.CurrentStreak != 2 {
		t.Errorf("current streak = %d, want 2", s.CurrentStreak)
	}
}

func TestStreak_BackfillDoesNotRegress(t *testing.T) {
	tr, _ := newTestTracker(t)
	clock := &fixedClock{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	tr.SetClock(clock.now)
	complete(t, tr, "breathing", 5, 7)

	// An out-of-order completion dated a week earlier.
	clock.t = time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	complete(t, tr, "walk", 5, 7)

	s := tr.Streak()
	if s.CurrentStreak != 1 {
		t.Errorf("current streak = %d, want 1 (backfill leaves it alone)", s.CurrentStreak)
	}
	if s.LastActivityDate != "2026-03-10" {
		t.Errorf("last activity date = %q, want 2026-03-10", s.LastActivityDate)
	}
	if s.TotalActiveDays != 2 {
		t.Errorf("total active days = %d, want 2 (backfilled day counts)", s.TotalActiveDays)
	}
	if got := s.ActivitiesPerDay["2026-03-03"]; got != 1 {
		t.Errorf("backfilled day count = %d, want 1", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress Aggregate Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestProgress_RunningAverage(t *testing.T) {
	tr, _ := newTestTracker(t)

	// Easy activity, so effectiveness is exactly 50 + delta*10.
	complete(t, tr, "breathing", 4, 7) // 80
	complete(t, tr, "breathing", 5, 6) // 60
	complete(t, tr, "breathing", 3, 8) // 100

	p := tr.Progress("breathing")
	if p.TotalCompletions != 3 {
		t.Fatalf("completions = %d, want 3", p.TotalCompletions)
	}
	if p.AverageEffectiveness != 80 {
		t.Errorf("average = %v, want 80", p.AverageEffectiveness)
	}
}

func TestProgress_IsolatedPerActivity(t *testing.T) {
	tr, _ := newTestTracker(t)

	complete(t, tr, "breathing", 4, 8)
	complete(t, tr, "walk", 5, 6)

	if tr.Progress("breathing").TotalCompletions != 1 {
		t.Error("breathing aggregate polluted")
	}
	if tr.Progress("walk").TotalCompletions != 1 {
		t.Error("walk aggregate polluted")
	}
	if tr.Progress("doodle") != nil {
		t.Error("expected nil progress for never-completed activity")
	}
}

func TestSummarize(t *testing.T) {
	tr, _ := newTestTracker(t)

	complete(t, tr, "breathing", 4, 7) // 80, 10 min
	complete(t, tr, "walk", 5, 6)      // 60, 15 min

	sum := tr.Summarize()
	if sum.CompletedSessions != 2 {
		t.Errorf("completed = %d, want 2", sum.CompletedSessions)
	}
	if sum.TotalTimeMin != 25 {
		t.Errorf("total time = %d, want 25", sum.TotalTimeMin)
	}
	if sum.AverageEffectiveness != 70 {
		t.Errorf("average effectiveness = %v, want 70", sum.AverageEffectiveness)
	}
	if sum.BadgesTotal == 0 || sum.BadgesUnlocked == 0 {
		t.Errorf("badge counts missing: %+v", sum)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Badge Tests
// ═══════════════════════════════════════════════════════════════════════════

func badgeByID(t *testing.T, tr *tracking.Tracker, id string) domain.ActivityBadge {
	t.Helper()
	for _, b := range tr.Badges() {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("badge %q not in catalog", id)
	return domain.ActivityBadge{}
}

func TestBadges_ProgressThenUnlock(t *testing.T) {
	tr, _ := newTestTracker(t)

	// Keep the mood delta below 3 so only completion badges move.
	for i := 0; i < 4; i++ {
		complete(t, tr, "breathing", 5, 6)
	}

	pathfinder := badgeByID(t, tr, "pathfinder")
	if pathfinder.Unlocked() {
		t.Fatal("pathfinder unlocked early")
	}
	if pathfinder.Progress != 80 {
		t.Errorf("pathfinder progress = %v, want 80 (4 of 5)", pathfinder.Progress)
	}

	newBadges := complete(t, tr, "breathing", 5, 6)
	found := false
	for _, b := range newBadges {
		if b.ID == "pathfinder" {
			found = true
		}
	}
	if !found {
		t.Errorf("pathfinder missing from newly unlocked: %v", newBadges)
	}
	if got := badgeByID(t, tr, "pathfinder"); !got.Unlocked() || got.Progress != 100 {
		t.Errorf("pathfinder state after unlock: %+v", got)
	}
}

func TestBadges_UnlockOnce(t *testing.T) {
	tr, _ := newTestTracker(t)

	complete(t, tr, "breathing", 4, 8) // unlocks first_steps
	first := badgeByID(t, tr, "first_steps")
	if !first.Unlocked() {
		t.Fatal("first_steps not unlocked")
	}

	newBadges := complete(t, tr, "breathing", 4, 8)
	for _, b := range newBadges {
		if b.ID == "first_steps" {
			t.Error("first_steps unlocked twice")
		}
	}
	if got := badgeByID(t, tr, "first_steps"); got.UnlockedAt != first.UnlockedAt {
		t.Error("unlock timestamp rewritten")
	}
}

func TestBadges_StreakBadgeSurvivesBrokenStreak(t *testing.T) {
	tr, _ := newTestTracker(t)
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tr.SetClock(clock.now)

	for i := 0; i < 7; i++ {
		complete(t, tr, "breathing", 5, 6)
		clock.t = clock.t.AddDate(0, 0, 1)
	}
	if !badgeByID(t, tr, "week_warrior").Unlocked() {
		t.Fatal("week_warrior not unlocked after 7-day streak")
	}

	// Break the streak, then complete once more.
	clock.t = clock.t.AddDate(0, 0, 5)
	complete(t, tr, "breathing", 5, 6)

	if s := tr.Streak(); s.CurrentStreak != 1 {
		t.Fatalf("streak should have reset, got %d", s.CurrentStreak)
	}
	if got := badgeByID(t, tr, "week_warrior"); !got.Unlocked() || got.Progress != 100 {
		t.Errorf("week_warrior regressed after broken streak: %+v", got)
	}
}

func TestBadges_CategoryVariety(t *testing.T) {
	tr, _ := newTestTracker(t)

	complete(t, tr, "breathing", 5, 6) // mindfulness
	complete(t, tr, "walk", 5, 6)      // physical
	complete(t, tr, "reachout", 5, 6)  // social

	allRounder := badgeByID(t, tr, "all_rounder")
	if allRounder.Unlocked() {
		t.Fatal("all_rounder unlocked with 3 of 4 categories")
	}
	if allRounder.Progress != 75 {
		t.Errorf("all_rounder progress = %v, want 75", allRounder.Progress)
	}

	complete(t, tr, "doodle", 5, 6) // creative
	if !badgeByID(t, tr, "all_rounder").Unlocked() {
		t.Error("all_rounder not unlocked with every category tried")
	}
}

func TestBadges_CategoryFilteredCount(t *testing.T) {
	tr, _ := newTestTracker(t)

	// 5 mindfulness + 5 physical: zen_master needs 10 mindfulness.
	for i := 0; i < 5; i++ {
		complete(t, tr, "breathing", 5, 6)
		complete(t, tr, "walk", 5, 6)
	}

	zen := badgeByID(t, tr, "zen_master")
	if zen.Unlocked() {
		t.Fatal("zen_master counted non-mindfulness sessions")
	}
	if zen.Progress != 50 {
		t.Errorf("zen_master progress = %v, want 50 (5 of 10)", zen.Progress)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Series Tests
// ═══════════════════════════════════════════════════════════════════════════

func testSeries() domain.ActivitySeries {
	return domain.ActivitySeries{
		ID:           "calm-week",
		Title:        "A Calmer Week",
		DurationDays: 3,
		Activities: []domain.SeriesDay{
			{Day: 1, ActivityID: "breathing"},
			{Day: 2, ActivityID: "walk"},
			{Day: 3, ActivityID: "gratitude"},
		},
	}
}

func TestSeries_AdvancesOnScheduledActivity(t *testing.T) {
	tr, _ := newTestTracker(t)

	if err := tr.StartSeries(testSeries()); err != nil {
		t.Fatalf("start series: %v", err)
	}
	if got := tr.ActiveSeries(); got == nil || got.CurrentDay != 1 {
		t.Fatalf("series after start = %+v", got)
	}

	// Completing an unscheduled activity does not advance the day.
	complete(t, tr, "doodle", 5, 6)
	if got := tr.ActiveSeries(); got.CurrentDay != 1 {
		t.Errorf("unscheduled activity advanced series to day %d", got.CurrentDay)
	}

	complete(t, tr, "breathing", 5, 6)
	if got := tr.ActiveSeries(); got.CurrentDay != 2 {
		t.Errorf("series day = %d, want 2", got.CurrentDay)
	}

	complete(t, tr, "walk", 5, 6)
	complete(t, tr, "gratitude", 5, 6)
	if got := tr.ActiveSeries(); !got.Finished() {
		t.Errorf("series not finished after final day: %+v", got)
	}
}

func TestSeries_OnlyOneActive(t *testing.T) {
	tr, _ := newTestTracker(t)

	if err := tr.StartSeries(testSeries()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := tr.StartSeries(testSeries()); !errors.Is(err, domain.ErrSeriesActive) {
		t.Fatalf("second start: expected ErrSeriesActive, got %v", err)
	}

	if err := tr.AbandonSeries(); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if tr.ActiveSeries() != nil {
		t.Error("series still active after abandon")
	}
	if err := tr.AbandonSeries(); !errors.Is(err, domain.ErrSeriesNotFound) {
		t.Errorf("abandon with none active: expected ErrSeriesNotFound, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Persistence Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestPersistenceFailure_StateStandsAndFlushRecovers(t *testing.T) {
	tr, store := newTestTracker(t)

	id, err := tr.StartActivity("breathing", 4, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	store.failSave = true
	badges, err := tr.CompleteActivity(id, 8, "")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(badges) == 0 {
		t.Error("unlocked badges dropped on persistence failure")
	}

	// The completion stands in memory.
	if p := tr.Progress("breathing"); p == nil || p.TotalCompletions != 1 {
		t.Errorf("in-memory progress lost: %+v", p)
	}
	if !tr.Unsynced() {
		t.Error("tracker not flagged unsynced")
	}

	store.failSave = false
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if tr.Unsynced() {
		t.Error("still unsynced after successful flush")
	}

	saved := store.records["default"]
	if saved == nil || saved.Progress["breathing"].TotalCompletions != 1 {
		t.Errorf("flushed record incomplete: %+v", saved)
	}
}

func TestFlush_NoOpWhenSynced(t *testing.T) {
	tr, store := newTestTracker(t)
	complete(t, tr, "breathing", 5, 7)

	saves := store.saves
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if store.saves != saves {
		t.Error("flush wrote despite being in sync")
	}
}

func TestNewTracker_ResumesPersistedState(t *testing.T) {
	store := newMemStore()
	tr, err := tracking.NewTracker(store, "default", catalog.Lookup)
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	complete(t, tr, "breathing", 4, 8)

	// A second tracker over the same store sees the same aggregate.
	tr2, err := tracking.NewTracker(store, "default", catalog.Lookup)
	if err != nil {
		t.Fatalf("reload tracker: %v", err)
	}
	if p := tr2.Progress("breathing"); p == nil || p.TotalCompletions != 1 {
		t.Errorf("reloaded progress = %+v", p)
	}
	if s := tr2.Streak(); s.CurrentStreak != 1 {
		t.Errorf("reloaded streak = %+v", s)
	}
}

func TestTrackers_IsolatedByUserKey(t *testing.T) {
	store := newMemStore()
	a, _ := tracking.NewTracker(store, "alice", catalog.Lookup)
	b, _ := tracking.NewTracker(store, "bob", catalog.Lookup)

	complete(t, a, "breathing", 4, 8)

	if p := b.Progress("breathing"); p != nil {
		t.Errorf("user records leaked across keys: %+v", p)
	}
}
