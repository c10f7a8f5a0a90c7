package survey

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/roomeo-app/roomeo-backend/internal/common/utils"
	"github.com/roomeo-app/roomeo-backend/internal/matching"
)

// stubProfileRepo implements only the repository methods the survey service
// touches; everything else panics to flag unexpected use.
type stubProfileRepo struct {
	matching.Repository

	mu       sync.Mutex
	profiles map[int64]*matching.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[int64]*matching.Profile)}
}

func (s *stubProfileRepo) GetProfileByUserID(_ context.Context, userID int64) (*matching.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, matching.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *stubProfileRepo) UpsertProfile(_ context.Context, profile *matching.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *profile
	s.profiles[profile.UserID] = &copied
	return nil
}

// stubMatchService records which generation calls fire after a submit.
type stubMatchService struct {
	matching.Service

	calls chan string
}

func newStubMatchService() *stubMatchService {
	return &stubMatchService{calls: make(chan string, 4)}
}

func (s *stubMatchService) GenerateForUser(_ context.Context, _ int64) ([]int64, error) {
	s.calls <- "generate"
	return nil, nil
}

func (s *stubMatchService) RegenerateForUser(_ context.Context, _ int64) (int, error) {
	s.calls <- "regenerate"
	return 0, nil
}

func waitForCall(t *testing.T, calls chan string) string {
	t.Helper()
	select {
	case call := <-calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a generation call")
		return ""
	}
}

func TestSubmitNewProfileGenerates(t *testing.T) {
	repo := newStubProfileRepo()
	matches := newStubMatchService()
	svc := NewService(repo, matches)

	resp, err := svc.Submit(context.Background(), 7, &SubmitRequest{DisplayName: "Sam"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !resp.NewProfile {
		t.Error("expected a new profile")
	}

	if call := waitForCall(t, matches.calls); call != "generate" {
		t.Errorf("first call = %q, want generate", call)
	}

	profile, err := repo.GetProfileByUserID(context.Background(), 7)
	if err != nil {
		t.Fatalf("profile not stored: %v", err)
	}
	if profile.DisplayName != "Sam" {
		t.Errorf("display name = %q", profile.DisplayName)
	}
}

func TestSubmitExistingProfileRescores(t *testing.T) {
	repo := newStubProfileRepo()
	matches := newStubMatchService()
	svc := NewService(repo, matches)

	if _, err := svc.Submit(context.Background(), 7, &SubmitRequest{DisplayName: "Sam"}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	waitForCall(t, matches.calls)

	noise := 80
	resp, err := svc.Submit(context.Background(), 7, &SubmitRequest{DisplayName: "Sam", NoiseTolerance: &noise})
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if resp.NewProfile {
		t.Error("expected an existing profile")
	}

	if call := waitForCall(t, matches.calls); call != "regenerate" {
		t.Errorf("first call = %q, want regenerate", call)
	}
	if call := waitForCall(t, matches.calls); call != "generate" {
		t.Errorf("second call = %q, want generate", call)
	}

	profile, _ := repo.GetProfileByUserID(context.Background(), 7)
	if profile.NoiseTolerance == nil || *profile.NoiseTolerance != 80 {
		t.Error("noise tolerance not updated")
	}
}

func TestProfileFromRequestCopiesLists(t *testing.T) {
	req := &SubmitRequest{
		DisplayName: "Sam",
		Interests:   []string{"music", "climbing"},
		PetTypes:    []string{"cat"},
	}

	profile := profileFromRequest(3, req)
	if profile.UserID != 3 {
		t.Errorf("user id = %d", profile.UserID)
	}
	if len(profile.Interests) != 2 || profile.Interests[0] != "music" {
		t.Errorf("interests = %v", profile.Interests)
	}
	if len(profile.PetTypes) != 1 {
		t.Errorf("pet types = %v", profile.PetTypes)
	}
}

func strPtr(s string) *string { return &s }

// Categorical answers accepted by the request validator must be the same
// vocabulary the scorer's ordinal tables know, or they silently score as
// the neutral default.
func TestSubmittedCategoricalsReachTheScorer(t *testing.T) {
	tidy := &SubmitRequest{
		DisplayName:     "Alice",
		SleepSchedule:   strPtr("early-bird"),
		CleanlinessPref: strPtr("very-clean"),
		StudyHabits:     strPtr("quiet-study"),
		SocialPref:      strPtr("private"),
		GuestPolicy:     strPtr("no-guests"),
	}
	messy := &SubmitRequest{
		DisplayName:     "Bob",
		SleepSchedule:   strPtr("night-owl"),
		CleanlinessPref: strPtr("slightly-dirty"),
		StudyHabits:     strPtr("social-study"),
		SocialPref:      strPtr("very-social"),
		GuestPolicy:     strPtr("frequent-guests"),
	}

	for _, req := range []*SubmitRequest{tidy, messy} {
		if err := utils.ValidateStruct(req); err != nil {
			t.Fatalf("request for %s rejected by validator: %v", req.DisplayName, err)
		}
	}

	engine := matching.NewEngine()
	scores := engine.ScorePair(profileFromRequest(1, tidy), profileFromRequest(2, messy))

	// early-bird vs night-owl: ordinal distance 2 -> 100 - 2*30
	if scores.Sleep != 40 {
		t.Errorf("sleep score = %d, want 40", scores.Sleep)
	}
	// very-clean vs slightly-dirty: ordinal distance 3 -> 100 - 3*25.
	// A default-scored pair would report 100 here.
	if scores.Cleanliness != 25 {
		t.Errorf("cleanliness score = %d, want 25", scores.Cleanliness)
	}
}
