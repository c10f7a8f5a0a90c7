// internal/matching/generator.go
// Pairwise match generation over the profile population. Batch operations
// are check each loop iteration for context cancellation and continue past
// per-candidate failures.

package matching

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"
)

// MatchObserver gets told about every newly created match. Implementations
// must return quickly; slow work belongs in a goroutine on their side.
type MatchObserver interface {
	OnMatchCreated(ctx context.Context, match *Match, owner, other *Profile)
}

// Generator runs the pairwise scoring loops against the store.
type Generator struct {
	repo      Repository
	engine    Engine
	observers []MatchObserver
}

func NewGenerator(repo Repository, engine Engine, observers ...MatchObserver) *Generator {
	return &Generator{
		repo:      repo,
		engine:    engine,
		observers: observers,
	}
}

// GenerateForUser scores the owner against every other profile and inserts a
// pending match per previously unmatched pair. The owner's profile must
// exist; per-candidate failures are logged and skipped. Returns the ids of
// the matches created.
func (g *Generator) GenerateForUser(ctx context.Context, userID int64) ([]int64, error) {
	owner, err := g.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("generate matches for user %d: %w", userID, err)
	}

	candidates, err := g.repo.ListProfilesExcept(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list candidate profiles: %w", err)
	}

	var created []int64
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		match, err := g.scoreAndInsert(ctx, owner, candidate)
		if err != nil {
			log.Printf("matching: skipping candidate %d for user %d: %v", candidate.UserID, userID, err)
			recordGenerationError("generate_for_user")
			continue
		}
		if match == nil {
			// Pair already matched
			continue
		}

		created = append(created, match.ID)
	}

	return created, nil
}

// scoreAndInsert computes the score set for one pair and inserts the match.
// Returns (nil, nil) when the pair already had a match row.
func (g *Generator) scoreAndInsert(ctx context.Context, owner, candidate *Profile) (*Match, error) {
	_, err := g.repo.GetMatchByPair(ctx, owner.UserID, candidate.UserID)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, ErrMatchNotFound) {
		return nil, fmt.Errorf("check existing match: %w", err)
	}

	scores := g.engine.ScorePair(owner, candidate)
	overall := g.engine.OverallScore(scores)

	match := &Match{
		User1ID:      owner.UserID,
		User2ID:      candidate.UserID,
		Scores:       scores,
		OverallScore: overall,
		Status:       StatusPending,
		Icebreakers:  []string{},
	}

	created, err := g.repo.InsertMatch(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("insert match: %w", err)
	}
	if !created {
		// Lost the race to a concurrent run; the constraint absorbed it
		return nil, nil
	}

	recordMatchCreated(overall)
	for _, observer := range g.observers {
		observer.OnMatchCreated(ctx, match, owner, candidate)
	}

	return match, nil
}

// RegenerateForUser recomputes the scores on the user's existing matches
// using current profile data on both sides, updating rows in place. It never
// inserts. Returns the number of matches updated.
func (g *Generator) RegenerateForUser(ctx context.Context, userID int64) (int, error) {
	owner, err := g.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("regenerate matches for user %d: %w", userID, err)
	}

	matches, err := g.repo.ListMatchesForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list matches: %w", err)
	}

	updated := 0
	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		otherID, ok := match.OtherUserID(userID)
		if !ok {
			continue
		}

		other, err := g.repo.GetProfileByUserID(ctx, otherID)
		if err != nil {
			log.Printf("matching: skipping match %d during regeneration: %v", match.ID, err)
			recordGenerationError("regenerate_for_user")
			continue
		}

		scores := g.engine.ScorePair(owner, other)
		overall := g.engine.OverallScore(scores)

		if err := g.repo.UpdateMatchScores(ctx, match.ID, scores, overall); err != nil {
			log.Printf("matching: failed to update scores on match %d: %v", match.ID, err)
			recordGenerationError("regenerate_for_user")
			continue
		}

		updated++
	}

	return updated, nil
}

// GenerateAllMatches walks every profiled user and generates their missing
// matches. Quadratic in the user population, so it only runs from the
// nightly scheduler or the admin endpoint, never on the request path.
func (g *Generator) GenerateAllMatches(ctx context.Context) (*BatchResult, error) {
	started := time.Now()
	defer func() {
		observeGenerationDuration("generate_all", time.Since(started))
	}()

	profiles, err := g.repo.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	result := &BatchResult{TotalUsers: len(profiles)}
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		created, err := g.GenerateForUser(ctx, profile.UserID)
		if err != nil {
			log.Printf("matching: batch generation failed for user %d: %v", profile.UserID, err)
			result.Errors++
			continue
		}
		result.MatchesCreated += len(created)
	}

	return result, nil
}

// DeleteMatchesForUser removes every match touching the user's profile.
func (g *Generator) DeleteMatchesForUser(ctx context.Context, userID int64) (int64, error) {
	if _, err := g.repo.GetProfileByUserID(ctx, userID); err != nil {
		return 0, fmt.Errorf("delete matches for user %d: %w", userID, err)
	}

	return g.repo.DeleteMatchesForUser(ctx, userID)
}

// MatchStatsForUser buckets the user's matches by overall score.
func (g *Generator) MatchStatsForUser(ctx context.Context, userID int64) (*MatchStats, error) {
	if _, err := g.repo.GetProfileByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("match stats for user %d: %w", userID, err)
	}

	matches, err := g.repo.ListMatchesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	stats := &MatchStats{TotalMatches: len(matches)}
	if len(matches) == 0 {
		return stats, nil
	}

	total := 0
	for _, match := range matches {
		total += match.OverallScore
		switch {
		case match.OverallScore >= 80:
			stats.HighMatches++
		case match.OverallScore >= 60:
			stats.MediumMatches++
		default:
			stats.LowMatches++
		}
	}

	stats.AverageScore = int(math.Round(float64(total) / float64(len(matches))))
	return stats, nil
}
