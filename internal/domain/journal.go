package domain

import "time"

// ─── Journal Types ──────────────────────────────────────────────────────────

// JournalEntry is one reflection: a mood, the prompt that sparked it, the
// user's text, and an optional AI reply attached after the fact.
type JournalEntry struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"` // emoji from the mood selector
	Prompt    string    `json:"prompt,omitempty"`
	Text      string    `json:"text"`
	Reply     string    `json:"reply,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptCategory groups reflection prompts by theme.
type PromptCategory string

const (
	PromptGratitude     PromptCategory = "gratitude"
	PromptAnxiety       PromptCategory = "anxiety"
	PromptSelfWorth     PromptCategory = "self_worth"
	PromptRelationships PromptCategory = "relationships"
	PromptWork          PromptCategory = "work"
)

// ReflectionPrompt is a catalog entry shown to the user as a writing seed.
type ReflectionPrompt struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Category PromptCategory `json:"category"`
	Emoji    string         `json:"emoji"`
}

// ChatMessage is one turn of a reflection conversation sent to the AI remote.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
