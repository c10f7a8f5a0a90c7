package matching

import "testing"

func TestCategoryToOrdinal(t *testing.T) {
	tests := []struct {
		category string
		value    string
		want     int
	}{
		{CategorySleepSchedule, "early-bird", 1},
		{CategorySleepSchedule, "neither", 2},
		{CategorySleepSchedule, "night-owl", 3},
		{CategorySleepSchedule, "", 2},
		{CategorySleepSchedule, "nocturnal", 2},

		{CategoryCleanliness, "very-clean", 1},
		{CategoryCleanliness, "slightly-clean", 2},
		{CategoryCleanliness, "neither", 3},
		{CategoryCleanliness, "slightly-dirty", 4},
		{CategoryCleanliness, "very-dirty", 5},
		{CategoryCleanliness, "spotless", 3},

		{CategoryStudyHabits, "quiet-study", 1},
		{CategoryStudyHabits, "background-noise", 2},
		{CategoryStudyHabits, "flexible", 3},
		{CategoryStudyHabits, "social-study", 4},
		{CategoryStudyHabits, "", 3},

		{CategorySocialLevel, "private", 1},
		{CategorySocialLevel, "somewhat-social", 2},
		{CategorySocialLevel, "mixed", 3},
		{CategorySocialLevel, "very-social", 4},
		{CategorySocialLevel, "party-animal", 3},

		{CategoryGuestPolicy, "no-guests", 1},
		{CategoryGuestPolicy, "rare-guests", 2},
		{CategoryGuestPolicy, "occasional-guests", 3},
		{CategoryGuestPolicy, "frequent-guests", 4},
		{CategoryGuestPolicy, "", 3},
	}

	for _, tt := range tests {
		if got := CategoryToOrdinal(tt.category, tt.value); got != tt.want {
			t.Errorf("CategoryToOrdinal(%q, %q) = %d, want %d", tt.category, tt.value, got, tt.want)
		}
	}
}

func TestCategoryToOrdinalUnknownCategory(t *testing.T) {
	if got := CategoryToOrdinal("favorite-color", "blue"); got != 3 {
		t.Errorf("unknown category should map to neutral 3, got %d", got)
	}
}
