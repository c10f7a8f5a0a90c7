// internal/matching/repository.go

package matching

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrProfileNotFound = errors.New("roommate profile not found")
	ErrMatchNotFound   = errors.New("match not found")
)

type Repository interface {
	// Profiles
	GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error)
	ListProfilesExcept(ctx context.Context, userID int64) ([]*Profile, error)
	ListProfiles(ctx context.Context) ([]*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile) error

	// Matches
	GetMatchByID(ctx context.Context, id int64) (*Match, error)
	GetMatchByPair(ctx context.Context, user1ID, user2ID int64) (*Match, error)
	InsertMatch(ctx context.Context, match *Match) (bool, error)
	UpdateMatchScores(ctx context.Context, matchID int64, scores CategoryScores, overall int) error
	UpdateMatchStatus(ctx context.Context, matchID int64, status string) error
	UpdateMatchEnrichment(ctx context.Context, matchID int64, report string, icebreakers []string) error
	ListMatchesForUser(ctx context.Context, userID int64) ([]*Match, error)
	DeleteMatchesForUser(ctx context.Context, userID int64) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Profile methods

const profileColumns = `
	id, user_id, display_name,
	sleep_schedule, sleep_level, cleanliness, cleanliness_pref,
	noise_level, noise_tolerance, study_habits,
	social_level, social_pref, guest_frequency, guest_policy, temperature,
	smoking, drinking, has_pets, pet_types, dietary_restrictions,
	interests, work_schedule, created_at, updated_at
`

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `SELECT ` + profileColumns + ` FROM roommate_profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *postgresRepository) ListProfilesExcept(ctx context.Context, userID int64) ([]*Profile, error) {
	var profiles []*Profile
	query := `SELECT ` + profileColumns + ` FROM roommate_profiles WHERE user_id != $1 ORDER BY id`

	err := r.db.SelectContext(ctx, &profiles, query, userID)
	return profiles, err
}

func (r *postgresRepository) ListProfiles(ctx context.Context) ([]*Profile, error) {
	var profiles []*Profile
	query := `SELECT ` + profileColumns + ` FROM roommate_profiles ORDER BY id`

	err := r.db.SelectContext(ctx, &profiles, query)
	return profiles, err
}

func (r *postgresRepository) UpsertProfile(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO roommate_profiles (
			user_id, display_name,
			sleep_schedule, sleep_level, cleanliness, cleanliness_pref,
			noise_level, noise_tolerance, study_habits,
			social_level, social_pref, guest_frequency, guest_policy, temperature,
			smoking, drinking, has_pets, pet_types, dietary_restrictions,
			interests, work_schedule
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			sleep_schedule = EXCLUDED.sleep_schedule,
			sleep_level = EXCLUDED.sleep_level,
			cleanliness = EXCLUDED.cleanliness,
			cleanliness_pref = EXCLUDED.cleanliness_pref,
			noise_level = EXCLUDED.noise_level,
			noise_tolerance = EXCLUDED.noise_tolerance,
			study_habits = EXCLUDED.study_habits,
			social_level = EXCLUDED.social_level,
			social_pref = EXCLUDED.social_pref,
			guest_frequency = EXCLUDED.guest_frequency,
			guest_policy = EXCLUDED.guest_policy,
			temperature = EXCLUDED.temperature,
			smoking = EXCLUDED.smoking,
			drinking = EXCLUDED.drinking,
			has_pets = EXCLUDED.has_pets,
			pet_types = EXCLUDED.pet_types,
			dietary_restrictions = EXCLUDED.dietary_restrictions,
			interests = EXCLUDED.interests,
			work_schedule = EXCLUDED.work_schedule,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		profile.UserID, profile.DisplayName,
		profile.SleepSchedule, profile.SleepLevel, profile.Cleanliness, profile.CleanlinessPref,
		profile.NoiseLevel, profile.NoiseTolerance, profile.StudyHabits,
		profile.SocialLevel, profile.SocialPref, profile.GuestFrequency, profile.GuestPolicy,
		profile.Temperature, profile.Smoking, profile.Drinking, profile.HasPets,
		pq.Array(profile.PetTypes), pq.Array(profile.DietaryRestrictions),
		pq.Array(profile.Interests), profile.WorkSchedule,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

// Match methods

const matchColumns = `
	id, user1_id, user2_id, category_scores, overall_score, status,
	report, icebreakers, created_at, updated_at
`

func (r *postgresRepository) GetMatchByID(ctx context.Context, id int64) (*Match, error) {
	var match Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	err := r.db.GetContext(ctx, &match, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresRepository) GetMatchByPair(ctx context.Context, user1ID, user2ID int64) (*Match, error) {
	user1ID, user2ID = CanonicalPair(user1ID, user2ID)

	var match Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE user1_id = $1 AND user2_id = $2`

	err := r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// InsertMatch writes a fully formed match row. The pair is stored in
// canonical order under a unique constraint; a concurrent insert of the same
// pair is absorbed by ON CONFLICT DO NOTHING and reported as created=false.
func (r *postgresRepository) InsertMatch(ctx context.Context, match *Match) (bool, error) {
	match.User1ID, match.User2ID = CanonicalPair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (
			user1_id, user2_id, category_scores, overall_score, status, icebreakers
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		match.User1ID, match.User2ID, match.Scores, match.OverallScore,
		match.Status, pq.Array(match.Icebreakers),
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Conflict: the pair already exists
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *postgresRepository) UpdateMatchScores(ctx context.Context, matchID int64, scores CategoryScores, overall int) error {
	query := `
		UPDATE matches
		SET category_scores = $2, overall_score = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, matchID, scores, overall)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *postgresRepository) UpdateMatchStatus(ctx context.Context, matchID int64, status string) error {
	query := `
		UPDATE matches
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, matchID, status)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *postgresRepository) UpdateMatchEnrichment(ctx context.Context, matchID int64, report string, icebreakers []string) error {
	query := `
		UPDATE matches
		SET report = $2, icebreakers = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, matchID, report, pq.Array(icebreakers))
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *postgresRepository) ListMatchesForUser(ctx context.Context, userID int64) ([]*Match, error) {
	query := `
		SELECT m.id, m.user1_id, m.user2_id, m.category_scores, m.overall_score,
		       m.status, m.report, m.icebreakers, m.created_at, m.updated_at,
		       CASE WHEN m.user1_id = $1 THEN p2.user_id ELSE p1.user_id END AS "matched_user.user_id",
		       CASE WHEN m.user1_id = $1 THEN p2.display_name ELSE p1.display_name END AS "matched_user.display_name"
		FROM matches m
		JOIN roommate_profiles p1 ON m.user1_id = p1.user_id
		JOIN roommate_profiles p2 ON m.user2_id = p2.user_id
		WHERE m.user1_id = $1 OR m.user2_id = $1
		ORDER BY m.overall_score DESC, m.created_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var match Match
		var matchedUser MatchedUser

		err := rows.Scan(
			&match.ID, &match.User1ID, &match.User2ID, &match.Scores,
			&match.OverallScore, &match.Status, &match.Report, &match.Icebreakers,
			&match.CreatedAt, &match.UpdatedAt,
			&matchedUser.UserID, &matchedUser.DisplayName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}

		match.MatchedUser = &matchedUser
		matches = append(matches, &match)
	}

	return matches, rows.Err()
}

func (r *postgresRepository) DeleteMatchesForUser(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM matches WHERE user1_id = $1 OR user2_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	return nil
}
