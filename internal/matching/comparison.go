// internal/matching/comparison.go
// Rebuilds the human-readable side-by-side breakdown for a stored match.

package matching

import (
	"strings"
)

// CategoryBreakdown is one row of the comparison view.
type CategoryBreakdown struct {
	Category      string `json:"category"`
	YourValue     string `json:"your_value"`
	TheirValue    string `json:"their_value"`
	Compatibility int    `json:"compatibility"`
	Description   string `json:"description"`
}

// Comparison pairs two profiles with their stored match and the per-category
// breakdown rows.
type Comparison struct {
	CurrentProfile    *Profile            `json:"current_profile"`
	MatchProfile      *Profile            `json:"match_profile"`
	Match             *Match              `json:"match"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
}

// Label tables for the 5-point display scales.
var sleepLabels = [6]string{"", "Early Bird", "Early Leaning", "Flexible", "Late Leaning", "Night Owl"}
var cleanlinessLabels = [6]string{"", "Relaxed", "Casual", "Average", "Tidy", "Very Clean"}
var noiseLabels = [6]string{"", "Very Quiet", "Mostly Quiet", "Moderate", "Spirited", "Lively"}
var socialLabels = [6]string{"", "Homebody", "Mostly Home", "Balanced", "Outgoing", "Very Social"}

var studyLabels = map[string]string{
	"quiet-study":      "Quiet Studier",
	"background-noise": "Background Noise",
	"flexible":         "Flexible",
	"social-study":     "Social Studier",
}

// BuildComparison produces the six breakdown rows for a stored match. The
// caller passes the viewer's profile first; match rows were persisted with
// the scores blob, which is decoded defensively (a malformed blob fails only
// this comparison).
func BuildComparison(current, other *Profile, match *Match) (*Comparison, error) {
	scores := match.Scores

	rows := []CategoryBreakdown{
		{
			Category:      "Sleep Schedule",
			YourValue:     sleepLabel(current),
			TheirValue:    sleepLabel(other),
			Compatibility: scores.Sleep,
			Description:   "How closely your bedtimes and wake-up routines line up",
		},
		{
			Category:      "Cleanliness",
			YourValue:     scaleLabel(cleanlinessLabels, current.Cleanliness),
			TheirValue:    scaleLabel(cleanlinessLabels, other.Cleanliness),
			Compatibility: scores.Cleanliness,
			Description:   "Shared expectations for tidiness of common spaces",
		},
		{
			Category:      "Noise Level",
			YourValue:     scaleLabel(noiseLabels, current.NoiseLevel),
			TheirValue:    scaleLabel(noiseLabels, other.NoiseLevel),
			Compatibility: scores.Lifestyle,
			Description:   "Tolerance for music, calls and background noise at home",
		},
		{
			Category:      "Social Style",
			YourValue:     scaleLabel(socialLabels, current.SocialLevel),
			TheirValue:    scaleLabel(socialLabels, other.SocialLevel),
			Compatibility: scores.Social,
			Description:   "How social you both are at home, including having guests over",
		},
		{
			Category:      "Study Habits",
			YourValue:     studyLabel(current),
			TheirValue:    studyLabel(other),
			Compatibility: scores.Interests,
			Description:   "Preferred environment for studying or working from home",
		},
		{
			Category:      "Interests",
			YourValue:     interestsSummary(current.Interests),
			TheirValue:    interestsSummary(other.Interests),
			Compatibility: scores.Interests,
			Description:   "A few things you are each into",
		},
	}

	return &Comparison{
		CurrentProfile:    current,
		MatchProfile:      other,
		Match:             match,
		CategoryBreakdown: rows,
	}, nil
}

// sleepLabel prefers the 1-5 scale answer; profiles from the categorical
// survey path are projected onto it (ordinal 1/2/3 -> scale 1/3/5).
func sleepLabel(p *Profile) string {
	if p.SleepLevel != nil {
		return scaleLabel(sleepLabels, p.SleepLevel)
	}
	scale := p.sleepOrdinal()*2 - 1
	return sleepLabels[scale]
}

func studyLabel(p *Profile) string {
	if p.StudyHabits != nil {
		if label, ok := studyLabels[*p.StudyHabits]; ok {
			return label
		}
	}
	return "Flexible"
}

func scaleLabel(labels [6]string, value *int) string {
	v := 3
	if value != nil {
		v = *value
	}
	if v < 1 {
		v = 1
	}
	if v > 5 {
		v = 5
	}
	return labels[v]
}

// interestsSummary joins the first three interests, or "None listed".
func interestsSummary(interests []string) string {
	if len(interests) == 0 {
		return "None listed"
	}
	if len(interests) > 3 {
		interests = interests[:3]
	}
	return strings.Join(interests, ", ")
}
