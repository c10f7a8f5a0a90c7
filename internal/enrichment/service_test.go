package enrichment

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/roomeo-app/roomeo-backend/internal/matching"
)

type stubGenerator struct{}

func (stubGenerator) MatchReport(_ context.Context, in *ReportInput) (string, error) {
	return FallbackReport(in), nil
}

func (stubGenerator) Icebreakers(_ context.Context, in *ReportInput) ([]string, error) {
	return FallbackIcebreakers(in), nil
}

func (stubGenerator) Close() {}

type recordingRepo struct {
	matching.Repository

	mu      sync.Mutex
	done    chan struct{}
	matchID int64
	report  string
	openers []string
}

func (r *recordingRepo) UpdateMatchEnrichment(_ context.Context, matchID int64, report string, icebreakers []string) error {
	r.mu.Lock()
	r.matchID = matchID
	r.report = report
	r.openers = icebreakers
	r.mu.Unlock()
	close(r.done)
	return nil
}

func strPtr(s string) *string { return &s }

func TestEnricherStoresReportAndIcebreakers(t *testing.T) {
	repo := &recordingRepo{done: make(chan struct{})}
	enricher := NewEnricher(repo, stubGenerator{})

	owner := &matching.Profile{
		UserID:        1,
		DisplayName:   "Alice",
		Interests:     []string{"Hiking", "cooking"},
		SleepSchedule: strPtr("early-bird"),
	}
	other := &matching.Profile{
		UserID:        2,
		DisplayName:   "Bob",
		Interests:     []string{"hiking", "gaming"},
		SleepSchedule: strPtr("early-bird"),
	}
	match := &matching.Match{ID: 42, User1ID: 1, User2ID: 2, OverallScore: 91}

	enricher.OnMatchCreated(context.Background(), match, owner, other)

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatal("enrichment never stored")
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.matchID != 42 {
		t.Errorf("match id = %d", repo.matchID)
	}
	if !strings.Contains(repo.report, "91/100") {
		t.Errorf("report missing score: %q", repo.report)
	}
	if !strings.Contains(repo.report, "sleep schedule") {
		t.Errorf("report missing shared trait: %q", repo.report)
	}
	if len(repo.openers) != 3 {
		t.Fatalf("got %d icebreakers, want 3", len(repo.openers))
	}
	if !strings.Contains(strings.ToLower(repo.openers[0]), "hiking") {
		t.Errorf("first icebreaker should use the shared interest: %q", repo.openers[0])
	}
}

func TestFallbackIcebreakersPadsToThree(t *testing.T) {
	in := &ReportInput{
		OwnerName:      "Alice",
		OtherName:      "Bob",
		OwnerInterests: []string{"chess"},
		OtherInterests: []string{"running"},
	}

	openers := FallbackIcebreakers(in)
	if len(openers) != 3 {
		t.Fatalf("got %d icebreakers, want 3", len(openers))
	}
}

func TestSharedInterestsCaseInsensitive(t *testing.T) {
	got := sharedInterests([]string{"Hiking", "Cooking"}, []string{"hiking", "gaming", "COOKING"})
	want := []string{"hiking", "COOKING"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sharedInterests = %v, want %v", got, want)
	}
}
