package matching

import (
	"reflect"
	"testing"
)

func comparisonFixtures() (*Profile, *Profile, *Match) {
	current := &Profile{
		UserID:      1,
		DisplayName: "Ada",
		SleepLevel:  intPtr(1),
		Cleanliness: intPtr(5),
		NoiseLevel:  intPtr(2),
		SocialLevel: intPtr(3),
		StudyHabits: strPtr("quiet-study"),
		Interests:   []string{"climbing", "cooking", "chess", "cinema"},
	}
	other := &Profile{
		UserID:        2,
		DisplayName:   "Grace",
		SleepSchedule: strPtr("night-owl"),
		Cleanliness:   intPtr(3),
		NoiseLevel:    intPtr(4),
		SocialLevel:   intPtr(5),
	}
	match := &Match{
		ID:      10,
		User1ID: 1,
		User2ID: 2,
		Scores: CategoryScores{
			Sleep: 40, Cleanliness: 50, Social: 75, Lifestyle: 88, Interests: 100,
		},
		OverallScore: 68,
		Status:       StatusPending,
	}
	return current, other, match
}

func TestBuildComparisonRows(t *testing.T) {
	current, other, match := comparisonFixtures()

	comparison, err := BuildComparison(current, other, match)
	if err != nil {
		t.Fatalf("BuildComparison failed: %v", err)
	}

	rows := comparison.CategoryBreakdown
	if len(rows) != 6 {
		t.Fatalf("expected 6 breakdown rows, got %d", len(rows))
	}

	checks := []struct {
		category   string
		yourValue  string
		theirValue string
		compat     int
	}{
		{"Sleep Schedule", "Early Bird", "Night Owl", 40},
		{"Cleanliness", "Very Clean", "Average", 50},
		{"Noise Level", "Mostly Quiet", "Spirited", 88},
		{"Social Style", "Balanced", "Very Social", 75},
		{"Study Habits", "Quiet Studier", "Flexible", 100},
		{"Interests", "climbing, cooking, chess", "None listed", 100},
	}

	for i, want := range checks {
		row := rows[i]
		if row.Category != want.category {
			t.Errorf("row %d category = %q, want %q", i, row.Category, want.category)
		}
		if row.YourValue != want.yourValue {
			t.Errorf("%s your value = %q, want %q", want.category, row.YourValue, want.yourValue)
		}
		if row.TheirValue != want.theirValue {
			t.Errorf("%s their value = %q, want %q", want.category, row.TheirValue, want.theirValue)
		}
		if row.Compatibility != want.compat {
			t.Errorf("%s compatibility = %d, want %d", want.category, row.Compatibility, want.compat)
		}
		if row.Description == "" {
			t.Errorf("%s has no description", want.category)
		}
	}
}

// Score blobs were historically persisted both as JSON objects and as
// double-encoded JSON strings. Both forms must decode to the same scores and
// so to the same comparison output.
func TestBuildComparisonTolerantOfStringScores(t *testing.T) {
	current, other, match := comparisonFixtures()

	plain := `{"sleep":40,"cleanliness":50,"social":75,"lifestyle":88,"interests":100}`
	wrapped := `"{\"sleep\":40,\"cleanliness\":50,\"social\":75,\"lifestyle\":88,\"interests\":100}"`

	var fromPlain, fromWrapped Match
	fromPlain = *match
	fromWrapped = *match

	if err := fromPlain.Scores.Scan([]byte(plain)); err != nil {
		t.Fatalf("scan of plain blob failed: %v", err)
	}
	if err := fromWrapped.Scores.Scan([]byte(wrapped)); err != nil {
		t.Fatalf("scan of string-wrapped blob failed: %v", err)
	}

	a, err := BuildComparison(current, other, &fromPlain)
	if err != nil {
		t.Fatalf("comparison from plain blob failed: %v", err)
	}
	b, err := BuildComparison(current, other, &fromWrapped)
	if err != nil {
		t.Fatalf("comparison from wrapped blob failed: %v", err)
	}

	if !reflect.DeepEqual(a.CategoryBreakdown, b.CategoryBreakdown) {
		t.Errorf("breakdown differs between encodings:\n%+v\n%+v", a.CategoryBreakdown, b.CategoryBreakdown)
	}
}

func TestDecodeCategoryScoresMalformed(t *testing.T) {
	if _, err := DecodeCategoryScores([]byte(`"not json at all`)); err == nil {
		t.Error("expected error for truncated string blob")
	}
	if _, err := DecodeCategoryScores([]byte(`"plain words"`)); err == nil {
		t.Error("expected error for non-JSON wrapped string")
	}

	var scores CategoryScores
	if err := scores.Scan([]byte(`{{`)); err == nil {
		t.Error("expected scan error for malformed blob")
	}
}

func TestInterestsSummary(t *testing.T) {
	if got := interestsSummary(nil); got != "None listed" {
		t.Errorf("empty interests = %q, want None listed", got)
	}
	if got := interestsSummary([]string{"a"}); got != "a" {
		t.Errorf("single interest = %q", got)
	}
	if got := interestsSummary([]string{"a", "b", "c", "d"}); got != "a, b, c" {
		t.Errorf("interests cap = %q, want first three", got)
	}
}
