// internal/matching/models.go

package matching

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Match status values. The scorer never touches status; it is mutated by
// user action through the status endpoint.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusPassed   = "passed"
)

// Profile holds one user's roommate lifestyle survey answers.
// Scale fields are 1-5 integers from the original survey; the *Pref string
// fields come from the newer categorical survey path. Every field the scorer
// reads has a defined default, so scoring never sees an undefined input.
type Profile struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"user_id" db:"user_id"`
	DisplayName string `json:"display_name" db:"display_name"`

	// Sleep: categorical ("early-bird", "neither", "night-owl") and/or 1-5 scale
	SleepSchedule *string `json:"sleep_schedule,omitempty" db:"sleep_schedule"`
	SleepLevel    *int    `json:"sleep_level,omitempty" db:"sleep_level"`

	// Cleanliness: 1-5 scale (5 = very clean) and/or categorical preference
	Cleanliness     *int    `json:"cleanliness,omitempty" db:"cleanliness"`
	CleanlinessPref *string `json:"cleanliness_pref,omitempty" db:"cleanliness_pref"`

	// Noise: 1-5 display scale plus a raw 0-100 tolerance used by the scorer
	NoiseLevel     *int `json:"noise_level,omitempty" db:"noise_level"`
	NoiseTolerance *int `json:"noise_tolerance,omitempty" db:"noise_tolerance"`

	StudyHabits *string `json:"study_habits,omitempty" db:"study_habits"`

	SocialLevel    *int    `json:"social_level,omitempty" db:"social_level"`
	SocialPref     *string `json:"social_pref,omitempty" db:"social_pref"`
	GuestFrequency *int    `json:"guest_frequency,omitempty" db:"guest_frequency"`
	GuestPolicy    *string `json:"guest_policy,omitempty" db:"guest_policy"`

	Temperature *int `json:"temperature,omitempty" db:"temperature"`

	Smoking             bool           `json:"smoking" db:"smoking"`
	Drinking            string         `json:"drinking" db:"drinking"`
	HasPets             bool           `json:"has_pets" db:"has_pets"`
	PetTypes            pq.StringArray `json:"pet_types" db:"pet_types"`
	DietaryRestrictions pq.StringArray `json:"dietary_restrictions" db:"dietary_restrictions"`
	Interests           pq.StringArray `json:"interests" db:"interests"`
	WorkSchedule        string         `json:"work_schedule" db:"work_schedule"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Defaults applied when a scorer input is missing.
const (
	defaultSleepOrdinal   = 2
	defaultCleanliness    = 3
	defaultNoiseTolerance = 50
	defaultSocialLevel    = 3
	defaultGuestFrequency = 3
)

func (p *Profile) sleepOrdinal() int {
	if p.SleepSchedule != nil && *p.SleepSchedule != "" {
		return CategoryToOrdinal(CategorySleepSchedule, *p.SleepSchedule)
	}
	return defaultSleepOrdinal
}

func (p *Profile) cleanlinessValue() int {
	if p.CleanlinessPref != nil && *p.CleanlinessPref != "" {
		return CategoryToOrdinal(CategoryCleanliness, *p.CleanlinessPref)
	}
	if p.Cleanliness != nil {
		return *p.Cleanliness
	}
	return defaultCleanliness
}

func (p *Profile) noiseToleranceValue() int {
	if p.NoiseTolerance != nil {
		return *p.NoiseTolerance
	}
	return defaultNoiseTolerance
}

func (p *Profile) socialLevelValue() int {
	if p.SocialLevel != nil {
		return *p.SocialLevel
	}
	return defaultSocialLevel
}

func (p *Profile) guestFrequencyValue() int {
	if p.GuestFrequency != nil {
		return *p.GuestFrequency
	}
	return defaultGuestFrequency
}

// CategoryScores is the per-category 0-100 sub-score tuple for one scored
// pair. Lifestyle carries the noise score; Interests carries the study score.
// Persisted as a JSONB blob on the match row.
type CategoryScores struct {
	Sleep       int `json:"sleep"`
	Cleanliness int `json:"cleanliness"`
	Social      int `json:"social"`
	Lifestyle   int `json:"lifestyle"`
	Interests   int `json:"interests"`
}

// Scan implements sql.Scanner. Older rows were written double-encoded (a
// JSON string containing JSON), so a string payload gets a second decode.
func (c *CategoryScores) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported category scores type %T", value)
	}

	decoded, err := DecodeCategoryScores(raw)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

// Value implements driver.Valuer.
func (c CategoryScores) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// DecodeCategoryScores parses a stored score blob, tolerating both a plain
// JSON object and a JSON-encoded string wrapping one.
func DecodeCategoryScores(raw []byte) (CategoryScores, error) {
	var scores CategoryScores
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return scores, fmt.Errorf("malformed category scores: %w", err)
		}
		raw = []byte(inner)
	}
	if err := json.Unmarshal(raw, &scores); err != nil {
		return scores, fmt.Errorf("malformed category scores: %w", err)
	}
	return scores, nil
}

// Match is a persisted, scored pairing of two profiles. User1ID < User2ID
// always holds; the pair is unique at the storage layer.
type Match struct {
	ID           int64          `json:"id" db:"id"`
	User1ID      int64          `json:"user1_id" db:"user1_id"`
	User2ID      int64          `json:"user2_id" db:"user2_id"`
	Scores       CategoryScores `json:"category_scores" db:"category_scores"`
	OverallScore int            `json:"overall_score" db:"overall_score"`
	Status       string         `json:"status" db:"status"`
	Report       *string        `json:"report,omitempty" db:"report"`
	Icebreakers  pq.StringArray `json:"icebreakers" db:"icebreakers"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	// Joined field, populated on list queries
	MatchedUser *MatchedUser `json:"matched_user,omitempty"`
}

// MatchedUser is the other side of a match as shown in listings.
type MatchedUser struct {
	UserID      int64  `json:"user_id" db:"user_id"`
	DisplayName string `json:"display_name" db:"display_name"`
}

// HasUser reports whether userID is on either side of the match.
func (m *Match) HasUser(userID int64) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherUserID returns the counterpart of userID in the match.
func (m *Match) OtherUserID(userID int64) (int64, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}

// CanonicalPair returns the pair in stored order (smaller id first).
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// MatchStats buckets a user's matches by overall score.
type MatchStats struct {
	TotalMatches  int `json:"total_matches"`
	HighMatches   int `json:"high_matches"`   // >= 80
	MediumMatches int `json:"medium_matches"` // 60-79
	LowMatches    int `json:"low_matches"`    // < 60
	AverageScore  int `json:"average_score"`
}

// BatchResult summarizes a generate-all run.
type BatchResult struct {
	TotalUsers     int `json:"total_users"`
	MatchesCreated int `json:"matches_created"`
	Errors         int `json:"errors"`
}
