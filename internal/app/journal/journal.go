// Package journal implements the reflection journal: mood-tagged entries,
// the rotating prompt catalog, and AI replies via the reflection remote.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moodmuse-app/moodmuse/internal/domain"
	"github.com/moodmuse-app/moodmuse/internal/infra/metrics"
	"github.com/moodmuse-app/moodmuse/internal/infra/sqlite"
)

// Moods is the mood selector palette, in display order.
var Moods = []string{"😊", "😔", "😡", "😐", "😢"}

// Reflector generates an AI reply for a conversation history.
// Satisfied by the reflection client; nil disables AI replies.
type Reflector interface {
	Generate(ctx context.Context, history []domain.ChatMessage, apiKey string) (string, error)
}

// Service manages journal entries and prompts.
type Service struct {
	db        *sqlite.DB
	reflector Reflector
	now       func() time.Time
}

// NewService creates a journal service. reflector may be nil.
func NewService(db *sqlite.DB, reflector Reflector) *Service {
	return &Service{db: db, reflector: reflector, now: time.Now}
}

// SetClock overrides the time source. Test hook.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// AddEntry stores a new journal entry and returns it.
func (s *Service) AddEntry(mood, prompt, text string) (domain.JournalEntry, error) {
	if strings.TrimSpace(text) == "" {
		return domain.JournalEntry{}, domain.ErrEmptyEntry
	}

	entry := domain.JournalEntry{
		ID:        uuid.NewString(),
		Mood:      mood,
		Prompt:    prompt,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.db.InsertJournalEntry(entry); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("insert entry: %w", err)
	}

	metrics.JournalEntries.Inc()
	return entry, nil
}

// Entries returns the timeline, newest first.
func (s *Service) Entries(limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListJournalEntries(limit)
}

// Reflect asks the AI remote for a reply to an entry and attaches it.
// The API key is supplied per call and never stored.
func (s *Service) Reflect(ctx context.Context, entryID, apiKey string) (string, error) {
	if s.reflector == nil {
		return "", domain.ErrReflectionUnavailable
	}

	entry, err := s.db.GetJournalEntry(entryID)
	if err != nil {
		return "", fmt.Errorf("load entry: %w", err)
	}
	if entry == nil {
		return "", fmt.Errorf("%w: %q", domain.ErrEntryNotFound, entryID)
	}

	reply, err := s.reflector.Generate(ctx, reflectionHistory(*entry), apiKey)
	if err != nil {
		return "", err
	}

	if err := s.db.AttachReply(entryID, reply); err != nil {
		return "", fmt.Errorf("attach reply: %w", err)
	}
	return reply, nil
}

// reflectionHistory builds the conversation sent to the remote.
func reflectionHistory(e domain.JournalEntry) []domain.ChatMessage {
	system := "You are a warm, non-judgmental journaling companion. " +
		"Respond in 2-4 sentences: acknowledge the feeling, then offer one gentle reflection or question. " +
		"Never give medical advice."

	user := e.Text
	if e.Prompt != "" {
		user = fmt.Sprintf("Prompt: %s\n\n%s", e.Prompt, e.Text)
	}
	if e.Mood != "" {
		user = fmt.Sprintf("Current mood: %s\n%s", e.Mood, user)
	}

	return []domain.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
}

// ─── Prompt Catalog ─────────────────────────────────────────────────────────

// prompts is the built-in reflection prompt catalog.
var prompts = []domain.ReflectionPrompt{
	{ID: "p1", Text: "What gave you joy today?", Category: domain.PromptGratitude, Emoji: "✨"},
	{ID: "p2", Text: "Who challenged your patience today?", Category: domain.PromptRelationships, Emoji: "🤝"},
	{ID: "p3", Text: "What are you most grateful for right now?", Category: domain.PromptGratitude, Emoji: "🙏"},
	{ID: "p4", Text: "What worry feels heaviest on your mind?", Category: domain.PromptAnxiety, Emoji: "💭"},
	{ID: "p5", Text: "How did you show kindness to yourself today?", Category: domain.PromptSelfWorth, Emoji: "💝"},
	{ID: "p6", Text: "What conversation do you keep replaying?", Category: domain.PromptRelationships, Emoji: "💬"},
	{ID: "p7", Text: "What accomplishment made you proud recently?", Category: domain.PromptWork, Emoji: "🎯"},
	{ID: "p8", Text: "What fear is holding you back right now?", Category: domain.PromptAnxiety, Emoji: "🌊"},
	{ID: "p9", Text: "How has someone surprised you lately?", Category: domain.PromptRelationships, Emoji: "🎁"},
	{ID: "p10", Text: "What quality do you admire most about yourself?", Category: domain.PromptSelfWorth, Emoji: "⭐"},
	{ID: "p11", Text: "What task are you avoiding and why?", Category: domain.PromptWork, Emoji: "🔄"},
	{ID: "p12", Text: "What small moment brought you peace today?", Category: domain.PromptGratitude, Emoji: "🕊️"},
}

// Prompts returns the full prompt catalog.
func Prompts() []domain.ReflectionPrompt {
	return prompts
}

// PromptOfDay returns the prompt for a calendar day — a deterministic
// rotation so every client shows the same prompt on the same day.
func PromptOfDay(day time.Time) domain.ReflectionPrompt {
	epochDays := int(day.UTC().Unix() / 86400)
	if epochDays < 0 {
		epochDays = -epochDays
	}
	return prompts[epochDays%len(prompts)]
}
