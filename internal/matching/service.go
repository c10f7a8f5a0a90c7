// internal/matching/service.go

package matching

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotInMatch      = errors.New("user is not part of this match")
	ErrInvalidStatus   = errors.New("invalid match status")
	ErrBatchInProgress = errors.New("a full match generation run is already in progress")
)

type Service interface {
	// Generation
	GenerateForUser(ctx context.Context, userID int64) ([]int64, error)
	RegenerateForUser(ctx context.Context, userID int64) (int, error)
	GenerateAllMatches(ctx context.Context) (*BatchResult, error)
	DeleteMatchesForUser(ctx context.Context, userID int64) (int64, error)

	// Browsing
	GetMatches(ctx context.Context, userID int64) ([]*Match, error)
	GetComparison(ctx context.Context, userID, matchID int64) (*Comparison, error)
	GetMatchStats(ctx context.Context, userID int64) (*MatchStats, error)
	UpdateMatchStatus(ctx context.Context, matchID, userID int64, status string) error
}

type service struct {
	repo        Repository
	generator   *Generator
	cache       *Cache
	batchBudget time.Duration
}

// NewService wires the generator, store and cache together. batchBudget
// bounds a generate-all run; zero means no bound.
func NewService(repo Repository, generator *Generator, cache *Cache, batchBudget time.Duration) Service {
	return &service{
		repo:        repo,
		generator:   generator,
		cache:       cache,
		batchBudget: batchBudget,
	}
}

func (s *service) GenerateForUser(ctx context.Context, userID int64) ([]int64, error) {
	created, err := s.generator.GenerateForUser(ctx, userID)
	if len(created) > 0 {
		s.cache.InvalidateStats(ctx, s.touchedUsers(ctx, userID)...)
	}
	return created, err
}

func (s *service) RegenerateForUser(ctx context.Context, userID int64) (int, error) {
	updated, err := s.generator.RegenerateForUser(ctx, userID)
	if updated > 0 {
		s.cache.InvalidateStats(ctx, s.touchedUsers(ctx, userID)...)
	}
	return updated, err
}

func (s *service) GenerateAllMatches(ctx context.Context) (*BatchResult, error) {
	locked, err := s.cache.AcquireBatchLock(ctx, s.lockTTL())
	if err != nil {
		return nil, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !locked {
		return nil, ErrBatchInProgress
	}
	defer s.cache.ReleaseBatchLock(ctx)

	if s.batchBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.batchBudget)
		defer cancel()
	}

	return s.generator.GenerateAllMatches(ctx)
}

func (s *service) DeleteMatchesForUser(ctx context.Context, userID int64) (int64, error) {
	touched := s.touchedUsers(ctx, userID)
	deleted, err := s.generator.DeleteMatchesForUser(ctx, userID)
	if deleted > 0 {
		s.cache.InvalidateStats(ctx, touched...)
	}
	return deleted, err
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]*Match, error) {
	if _, err := s.repo.GetProfileByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListMatchesForUser(ctx, userID)
}

func (s *service) GetComparison(ctx context.Context, userID, matchID int64) (*Comparison, error) {
	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	otherID, ok := match.OtherUserID(userID)
	if !ok {
		return nil, ErrNotInMatch
	}

	current, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	other, err := s.repo.GetProfileByUserID(ctx, otherID)
	if err != nil {
		return nil, err
	}

	return BuildComparison(current, other, match)
}

func (s *service) GetMatchStats(ctx context.Context, userID int64) (*MatchStats, error) {
	if cached, err := s.cache.GetStats(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	stats, err := s.generator.MatchStatsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.SetStats(ctx, userID, stats)
	return stats, nil
}

func (s *service) UpdateMatchStatus(ctx context.Context, matchID, userID int64, status string) error {
	if status != StatusPending && status != StatusAccepted && status != StatusPassed {
		return ErrInvalidStatus
	}

	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasUser(userID) {
		return ErrNotInMatch
	}

	return s.repo.UpdateMatchStatus(ctx, matchID, status)
}

// touchedUsers lists the user plus everyone they currently have a match
// with, for cache invalidation after a mutating operation.
func (s *service) touchedUsers(ctx context.Context, userID int64) []int64 {
	users := []int64{userID}

	matches, err := s.repo.ListMatchesForUser(ctx, userID)
	if err != nil {
		return users
	}
	for _, match := range matches {
		if otherID, ok := match.OtherUserID(userID); ok {
			users = append(users, otherID)
		}
	}
	return users
}

func (s *service) lockTTL() time.Duration {
	if s.batchBudget > 0 {
		return s.batchBudget + time.Minute
	}
	return time.Hour
}
