// internal/matching/compatibility.go

package matching

import "math"

// Weights for the overall score. They sum to 1.00.
const (
	weightSleep       = 0.20
	weightCleanliness = 0.25
	weightSocial      = 0.15
	weightLifestyle   = 0.20 // noise
	weightInterests   = 0.20 // study placeholder
)

// Engine computes pairwise compatibility. All category scorers are pure,
// deterministic and symmetric: swapping the profiles yields the same score.
type Engine interface {
	ScorePair(a, b *Profile) CategoryScores
	OverallScore(scores CategoryScores) int
}

type engine struct{}

func NewEngine() Engine {
	return &engine{}
}

func (e *engine) ScorePair(a, b *Profile) CategoryScores {
	return CategoryScores{
		Sleep:       e.sleepScore(a, b),
		Cleanliness: e.cleanlinessScore(a, b),
		Social:      e.socialScore(a, b),
		Lifestyle:   e.noiseScore(a, b),
		Interests:   e.studyScore(a, b),
	}
}

// OverallScore reduces the category tuple to a single 0-100 number using the
// fixed weights, rounded half away from zero.
func (e *engine) OverallScore(scores CategoryScores) int {
	weighted := weightSleep*float64(scores.Sleep) +
		weightCleanliness*float64(scores.Cleanliness) +
		weightSocial*float64(scores.Social) +
		weightLifestyle*float64(scores.Lifestyle) +
		weightInterests*float64(scores.Interests)

	return clampScore(int(math.Round(weighted)))
}

// sleepScore compares sleep schedules on the 1-3 ordinal: 30 points off per
// step apart.
func (e *engine) sleepScore(a, b *Profile) int {
	diff := absInt(a.sleepOrdinal() - b.sleepOrdinal())
	return clampScore(100 - diff*30)
}

// cleanlinessScore compares on the 1-5 scale: 25 points off per step apart.
func (e *engine) cleanlinessScore(a, b *Profile) int {
	diff := absInt(a.cleanlinessValue() - b.cleanlinessValue())
	return clampScore(100 - diff*25)
}

// noiseScore compares raw 0-100 noise tolerances at half a point per unit of
// difference. Fractional results are truncated.
func (e *engine) noiseScore(a, b *Profile) int {
	diff := math.Abs(float64(a.noiseToleranceValue() - b.noiseToleranceValue()))
	return clampScore(int(math.Max(0, 100-diff*0.5)))
}

// studyScore is a neutral placeholder until the survey schema carries a
// study-habits answer for every profile.
// TODO: score study habits from the study_habits column once the survey
// backfill for pre-2024 profiles completes.
func (e *engine) studyScore(a, b *Profile) int {
	return 100
}

// socialScore averages the social-level and guest-frequency distances on
// their 1-5 scales: 25 points off per averaged step apart.
func (e *engine) socialScore(a, b *Profile) int {
	socialDiff := absInt(a.socialLevelValue() - b.socialLevelValue())
	guestDiff := absInt(a.guestFrequencyValue() - b.guestFrequencyValue())
	avgDiff := float64(socialDiff+guestDiff) / 2

	return clampScore(int(math.Max(0, 100-avgDiff*25)))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
