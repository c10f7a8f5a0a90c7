// internal/survey/service.go

package survey

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/roomeo-app/roomeo-backend/internal/matching"
)

// How long a background regeneration kicked off by a survey submit may run.
const regenerateBudget = 2 * time.Minute

type Service interface {
	Submit(ctx context.Context, userID int64, req *SubmitRequest) (*SubmitResponse, error)
	GetProfile(ctx context.Context, userID int64) (*matching.Profile, error)
}

type service struct {
	repo    matching.Repository
	matches matching.Service
}

func NewService(repo matching.Repository, matches matching.Service) Service {
	return &service{repo: repo, matches: matches}
}

// Submit upserts the caller's lifestyle profile and kicks off match
// (re)generation in the background. The HTTP response never waits on
// scoring.
func (s *service) Submit(ctx context.Context, userID int64, req *SubmitRequest) (*SubmitResponse, error) {
	_, err := s.repo.GetProfileByUserID(ctx, userID)
	isNew := errors.Is(err, matching.ErrProfileNotFound)
	if err != nil && !isNew {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile := profileFromRequest(userID, req)
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	go s.refreshMatches(userID, isNew)

	message := "Profile updated, matches are being rescored"
	if isNew {
		message = "Profile created, matches are being generated"
	}
	return &SubmitResponse{Message: message, NewProfile: isNew}, nil
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*matching.Profile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

// refreshMatches runs detached from the request: a new profile gets fresh
// matches generated, an updated one gets its existing matches rescored and
// any missing pairs filled in.
func (s *service) refreshMatches(userID int64, isNew bool) {
	ctx, cancel := context.WithTimeout(context.Background(), regenerateBudget)
	defer cancel()

	if !isNew {
		if _, err := s.matches.RegenerateForUser(ctx, userID); err != nil {
			log.Printf("survey: failed to rescore matches for user %d: %v", userID, err)
		}
	}
	if _, err := s.matches.GenerateForUser(ctx, userID); err != nil {
		log.Printf("survey: failed to generate matches for user %d: %v", userID, err)
	}
}

func profileFromRequest(userID int64, req *SubmitRequest) *matching.Profile {
	return &matching.Profile{
		UserID:      userID,
		DisplayName: req.DisplayName,

		SleepSchedule: req.SleepSchedule,
		SleepLevel:    req.SleepLevel,

		Cleanliness:     req.Cleanliness,
		CleanlinessPref: req.CleanlinessPref,

		NoiseLevel:     req.NoiseLevel,
		NoiseTolerance: req.NoiseTolerance,

		StudyHabits: req.StudyHabits,

		SocialLevel:    req.SocialLevel,
		SocialPref:     req.SocialPref,
		GuestFrequency: req.GuestFrequency,
		GuestPolicy:    req.GuestPolicy,

		Temperature: req.Temperature,

		Smoking:             req.Smoking,
		Drinking:            req.Drinking,
		HasPets:             req.HasPets,
		PetTypes:            req.PetTypes,
		DietaryRestrictions: req.DietaryRestrictions,
		Interests:           req.Interests,
		WorkSchedule:        req.WorkSchedule,
	}
}
