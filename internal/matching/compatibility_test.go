package matching

import "testing"

// profileGrid returns a spread of profiles covering the edges of every
// scorer input.
func profileGrid() []*Profile {
	sleeps := []string{"early-bird", "neither", "night-owl"}
	var grid []*Profile
	id := int64(1)

	for _, sleep := range sleeps {
		for _, clean := range []int{1, 3, 5} {
			for _, noise := range []int{0, 50, 100} {
				for _, social := range []int{1, 5} {
					grid = append(grid, &Profile{
						UserID:         id,
						SleepSchedule:  strPtr(sleep),
						Cleanliness:    intPtr(clean),
						NoiseTolerance: intPtr(noise),
						SocialLevel:    intPtr(social),
						GuestFrequency: intPtr(6 - social),
					})
					id++
				}
			}
		}
	}

	// One profile with everything missing, to exercise defaults
	grid = append(grid, &Profile{UserID: id})
	return grid
}

func TestScorePairRangeAndSymmetry(t *testing.T) {
	engine := NewEngine()
	grid := profileGrid()

	for _, a := range grid {
		for _, b := range grid {
			ab := engine.ScorePair(a, b)
			ba := engine.ScorePair(b, a)

			if ab != ba {
				t.Fatalf("ScorePair not symmetric for users %d/%d: %+v vs %+v", a.UserID, b.UserID, ab, ba)
			}

			for name, score := range map[string]int{
				"sleep":       ab.Sleep,
				"cleanliness": ab.Cleanliness,
				"social":      ab.Social,
				"lifestyle":   ab.Lifestyle,
				"interests":   ab.Interests,
			} {
				if score < 0 || score > 100 {
					t.Fatalf("%s score out of range for users %d/%d: %d", name, a.UserID, b.UserID, score)
				}
			}

			overall := engine.OverallScore(ab)
			if overall < 0 || overall > 100 {
				t.Fatalf("overall score out of range: %d", overall)
			}
		}
	}
}

func TestSleepScore(t *testing.T) {
	engine := NewEngine()

	earlyBird := &Profile{SleepSchedule: strPtr("early-bird")}
	nightOwl := &Profile{SleepSchedule: strPtr("night-owl")}
	unset := &Profile{}

	if got := engine.ScorePair(earlyBird, nightOwl).Sleep; got != 40 {
		t.Errorf("early-bird vs night-owl sleep score = %d, want 40", got)
	}
	if got := engine.ScorePair(earlyBird, earlyBird).Sleep; got != 100 {
		t.Errorf("identical sleep schedules score = %d, want 100", got)
	}
	// Missing schedule defaults to the neutral ordinal 2, one step from each end
	if got := engine.ScorePair(earlyBird, unset).Sleep; got != 70 {
		t.Errorf("early-bird vs unset sleep score = %d, want 70", got)
	}
}

func TestCleanlinessScorePrefersCategorical(t *testing.T) {
	engine := NewEngine()

	// Categorical answer overrides the numeric scale
	a := &Profile{Cleanliness: intPtr(5), CleanlinessPref: strPtr("very-clean")}
	b := &Profile{CleanlinessPref: strPtr("very-dirty")}

	// ordinals 1 vs 5 -> 100 - 4*25 = 0
	if got := engine.ScorePair(a, b).Cleanliness; got != 0 {
		t.Errorf("opposite cleanliness score = %d, want 0", got)
	}

	c := &Profile{Cleanliness: intPtr(2)}
	d := &Profile{Cleanliness: intPtr(4)}
	if got := engine.ScorePair(c, d).Cleanliness; got != 50 {
		t.Errorf("two-step cleanliness score = %d, want 50", got)
	}
}

func TestNoiseScoreTruncation(t *testing.T) {
	engine := NewEngine()

	a := &Profile{NoiseTolerance: intPtr(20)}
	b := &Profile{NoiseTolerance: intPtr(25)}

	// 100 - 5*0.5 = 97.5, truncated
	if got := engine.ScorePair(a, b).Lifestyle; got != 97 {
		t.Errorf("noise score = %d, want 97", got)
	}

	far := &Profile{NoiseTolerance: intPtr(0)}
	loud := &Profile{NoiseTolerance: intPtr(100)}
	if got := engine.ScorePair(far, loud).Lifestyle; got != 50 {
		t.Errorf("extreme noise score = %d, want 50", got)
	}

	unset := &Profile{}
	if got := engine.ScorePair(unset, unset).Lifestyle; got != 100 {
		t.Errorf("default noise tolerances should score 100, got %d", got)
	}
}

func TestStudyScorePlaceholder(t *testing.T) {
	engine := NewEngine()

	a := &Profile{StudyHabits: strPtr("quiet-study")}
	b := &Profile{StudyHabits: strPtr("social-study")}

	if got := engine.ScorePair(a, b).Interests; got != 100 {
		t.Errorf("study placeholder score = %d, want constant 100", got)
	}
}

func TestSocialScore(t *testing.T) {
	engine := NewEngine()

	a := &Profile{SocialLevel: intPtr(1), GuestFrequency: intPtr(1)}
	b := &Profile{SocialLevel: intPtr(5), GuestFrequency: intPtr(5)}

	// avgDiff 4 -> 100 - 100 = 0
	if got := engine.ScorePair(a, b).Social; got != 0 {
		t.Errorf("opposite social score = %d, want 0", got)
	}

	c := &Profile{SocialLevel: intPtr(2), GuestFrequency: intPtr(3)}
	d := &Profile{SocialLevel: intPtr(3), GuestFrequency: intPtr(3)}
	// avgDiff 0.5 -> 87.5, truncated
	if got := engine.ScorePair(c, d).Social; got != 87 {
		t.Errorf("half-step social score = %d, want 87", got)
	}
}

func TestOverallScoreWeights(t *testing.T) {
	engine := NewEngine()

	perfect := CategoryScores{Sleep: 100, Cleanliness: 100, Social: 100, Lifestyle: 100, Interests: 100}
	if got := engine.OverallScore(perfect); got != 100 {
		t.Errorf("perfect scores aggregate = %d, want 100", got)
	}

	zero := CategoryScores{}
	if got := engine.OverallScore(zero); got != 0 {
		t.Errorf("zero scores aggregate = %d, want 0", got)
	}

	// 0.20*100 + 0.25*100 + 0.15*100 + 0.20*97 + 0.20*100 = 99.4 -> 99
	mixed := CategoryScores{Sleep: 100, Cleanliness: 100, Social: 100, Lifestyle: 97, Interests: 100}
	if got := engine.OverallScore(mixed); got != 99 {
		t.Errorf("mixed scores aggregate = %d, want 99", got)
	}

	// 0.20*50 + 0.25*50 + 0.15*50 + 0.20*50 + 0.20*50 = 50
	flat := CategoryScores{Sleep: 50, Cleanliness: 50, Social: 50, Lifestyle: 50, Interests: 50}
	if got := engine.OverallScore(flat); got != 50 {
		t.Errorf("flat scores aggregate = %d, want 50", got)
	}
}

// The literal worked example: two early birds with near-identical habits.
func TestScorePairWorkedExample(t *testing.T) {
	engine := NewEngine()

	a := &Profile{
		SleepSchedule:   strPtr("early-bird"),
		CleanlinessPref: strPtr("very-clean"),
		NoiseTolerance:  intPtr(20),
		SocialLevel:     intPtr(1),
		GuestFrequency:  intPtr(1),
	}
	b := &Profile{
		SleepSchedule:   strPtr("early-bird"),
		CleanlinessPref: strPtr("very-clean"),
		NoiseTolerance:  intPtr(25),
		SocialLevel:     intPtr(1),
		GuestFrequency:  intPtr(1),
	}

	scores := engine.ScorePair(a, b)
	want := CategoryScores{Sleep: 100, Cleanliness: 100, Social: 100, Lifestyle: 97, Interests: 100}
	if scores != want {
		t.Fatalf("ScorePair = %+v, want %+v", scores, want)
	}

	if overall := engine.OverallScore(scores); overall != 99 {
		t.Errorf("overall = %d, want 99", overall)
	}
}
