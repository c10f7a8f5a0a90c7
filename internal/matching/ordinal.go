// internal/matching/ordinal.go
// Maps categorical survey answers to the small integer scales the scorer
// works in. Unknown or missing values fall back to the category default,
// never to an error.

package matching

// Category names accepted by CategoryToOrdinal.
const (
	CategorySleepSchedule = "sleep-schedule"
	CategoryCleanliness   = "cleanliness"
	CategoryStudyHabits   = "study-habits"
	CategorySocialLevel   = "social-level"
	CategoryGuestPolicy   = "guest-policy"
)

var ordinalTables = map[string]map[string]int{
	CategorySleepSchedule: {
		"early-bird": 1,
		"neither":    2,
		"night-owl":  3,
	},
	CategoryCleanliness: {
		"very-clean":     1,
		"slightly-clean": 2,
		"neither":        3,
		"slightly-dirty": 4,
		"very-dirty":     5,
	},
	CategoryStudyHabits: {
		"quiet-study":      1,
		"background-noise": 2,
		"flexible":         3,
		"social-study":     4,
	},
	CategorySocialLevel: {
		"private":         1,
		"somewhat-social": 2,
		"mixed":           3,
		"very-social":     4,
	},
	CategoryGuestPolicy: {
		"no-guests":         1,
		"rare-guests":       2,
		"occasional-guests": 3,
		"frequent-guests":   4,
	},
}

var ordinalDefaults = map[string]int{
	CategorySleepSchedule: 2,
	CategoryCleanliness:   3,
	CategoryStudyHabits:   3,
	CategorySocialLevel:   3,
	CategoryGuestPolicy:   3,
}

// CategoryToOrdinal converts a categorical survey answer into its ordinal.
// Unrecognized categories map to the neutral midpoint 3.
func CategoryToOrdinal(category, value string) int {
	table, ok := ordinalTables[category]
	if !ok {
		return 3
	}
	if ordinal, ok := table[value]; ok {
		return ordinal
	}
	return ordinalDefaults[category]
}
