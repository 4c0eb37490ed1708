// Package catalog holds the built-in wellness activity catalog.
// This is MoodMuse's reference data: it maps activity ids like "breathing"
// to their categories, default durations, and guidance text. The tracking
// engine reads it, never writes it.
package catalog

import "github.com/moodmuse-app/moodmuse/internal/domain"

// Activities is the built-in activity catalog.
var Activities = []domain.ActivityType{
	{
		ID:          "breathing",
		Title:       "Deep Breathing",
		Description: "A guided box-breathing exercise to calm the nervous system.",
		Icon:        "🫁",
		Category:    domain.CatMindfulness,
		DurationMin: 10,
		Difficulty:  domain.DifficultyEasy,
		Instructions: []string{
			"Sit comfortably with your back straight",
			"Inhale slowly through your nose for 4 counts",
			"Hold your breath for 4 counts",
			"Exhale through your mouth for 4 counts",
			"Repeat until the timer ends",
		},
		Benefits: []string{"Reduces stress", "Lowers heart rate", "Improves focus"},
		Tips:     []string{"Close your eyes if it helps", "Place a hand on your belly to feel the breath"},
	},
	{
		ID:          "gratitude",
		Title:       "Gratitude Practice",
		Description: "Write down three things you are grateful for right now.",
		Icon:        "🙏",
		Category:    domain.CatMindfulness,
		DurationMin: 5,
		Difficulty:  domain.DifficultyEasy,
		Instructions: []string{
			"Think of three things from today, big or small",
			"Write a sentence about why each one matters to you",
		},
		Benefits: []string{"Shifts attention to the positive", "Builds resilience over time"},
	},
	{
		ID:          "grounding",
		Title:       "5-4-3-2-1 Grounding",
		Description: "An anxiety-interrupting technique using your five senses.",
		Icon:        "🌳",
		Category:    domain.CatMindfulness,
		DurationMin: 5,
		Difficulty:  domain.DifficultyEasy,
		Instructions: []string{
			"Name 5 things you can see",
			"Name 4 things you can touch",
			"Name 3 things you can hear",
			"Name 2 things you can smell",
			"Name 1 thing you can taste",
		},
		Benefits: []string{"Interrupts spiraling thoughts", "Anchors you in the present"},
		Tips:     []string{"Go slowly — the point is noticing, not finishing"},
	},
	{
		ID:          "walk",
		Title:       "Mindful Walk",
		Description: "A short walk outside, paying attention to your surroundings.",
		Icon:        "🚶",
		Category:    domain.CatPhysical,
		DurationMin: 15,
		Difficulty:  domain.DifficultyEasy,
		Benefits:    []string{"Light exercise", "Daylight exposure", "Change of scenery"},
		Tips:        []string{"Leave your phone in your pocket"},
	},
	{
		ID:          "exercise",
		Title:       "Quick Workout",
		Description: "A bodyweight circuit to get your heart rate up.",
		Icon:        "💪",
		Category:    domain.CatPhysical,
		DurationMin: 20,
		Difficulty:  domain.DifficultyHard,
		Instructions: []string{
			"Warm up for 2 minutes",
			"3 rounds: 10 squats, 10 push-ups, 30s plank",
			"Cool down and stretch",
		},
		Benefits: []string{"Endorphin release", "Better sleep", "Builds strength"},
	},
	{
		ID:          "movement",
		Title:       "Gentle Stretching",
		Description: "Slow, easy stretches to release physical tension.",
		Icon:        "🧘",
		Category:    domain.CatPhysical,
		DurationMin: 10,
		Difficulty:  domain.DifficultyMedium,
		Benefits:    []string{"Releases muscle tension", "Gentle on low-energy days"},
	},
	{
		ID:          "reachout",
		Title:       "Reach Out",
		Description: "Send a message to someone you have been meaning to talk to.",
		Icon:        "💬",
		Category:    domain.CatSocial,
		DurationMin: 10,
		Difficulty:  domain.DifficultyMedium,
		Benefits:    []string{"Strengthens connection", "Counters isolation"},
		Tips:        []string{"A two-line message counts — it does not need to be deep"},
	},
	{
		ID:          "doodle",
		Title:       "Free Doodling",
		Description: "Draw whatever comes to mind, no goal and no judgment.",
		Icon:        "🎨",
		Category:    domain.CatCreative,
		DurationMin: 15,
		Difficulty:  domain.DifficultyEasy,
		Benefits:    []string{"Quiets the inner critic", "Playful expression"},
	},
}

// Lookup finds an activity by id. Returns nil if not found.
func Lookup(id string) *domain.ActivityType {
	for i := range Activities {
		if Activities[i].ID == id {
			return &Activities[i]
		}
	}
	return nil
}

// All returns the full catalog.
func All() []domain.ActivityType {
	return Activities
}

// ByCategory returns all activities in a category, in catalog order.
func ByCategory(cat domain.ActivityCategory) []domain.ActivityType {
	var out []domain.ActivityType
	for _, a := range Activities {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}
