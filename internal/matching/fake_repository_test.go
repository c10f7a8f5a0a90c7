package matching

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeRepository is an in-memory Repository for tests.
type fakeRepository struct {
	mu       sync.Mutex
	profiles map[int64]*Profile
	matches  map[int64]*Match
	nextID   int64

	// failInsertFor makes InsertMatch fail for pairs touching these users,
	// to exercise the continue-on-error paths.
	failInsertFor map[int64]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		profiles:      make(map[int64]*Profile),
		matches:       make(map[int64]*Match),
		failInsertFor: make(map[int64]bool),
	}
}

func (f *fakeRepository) addProfile(p *Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.profiles[p.UserID] = p
}

func (f *fakeRepository) matchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matches)
}

func (f *fakeRepository) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepository) ListProfilesExcept(ctx context.Context, userID int64) ([]*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Profile
	for _, p := range f.profiles {
		if p.UserID == userID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepository) ListProfiles(ctx context.Context) ([]*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Profile
	for _, p := range f.profiles {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepository) UpsertProfile(ctx context.Context, profile *Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		f.nextID++
		profile.ID = f.nextID
	}
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeRepository) GetMatchByID(ctx context.Context, id int64) (*Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepository) GetMatchByPair(ctx context.Context, user1ID, user2ID int64) (*Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user1ID, user2ID = CanonicalPair(user1ID, user2ID)
	for _, m := range f.matches {
		if m.User1ID == user1ID && m.User2ID == user2ID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, ErrMatchNotFound
}

func (f *fakeRepository) InsertMatch(ctx context.Context, match *Match) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failInsertFor[match.User1ID] || f.failInsertFor[match.User2ID] {
		return false, fmt.Errorf("simulated insert failure")
	}

	match.User1ID, match.User2ID = CanonicalPair(match.User1ID, match.User2ID)
	for _, m := range f.matches {
		if m.User1ID == match.User1ID && m.User2ID == match.User2ID {
			return false, nil
		}
	}

	f.nextID++
	match.ID = f.nextID
	match.CreatedAt = time.Now()
	match.UpdatedAt = match.CreatedAt
	cp := *match
	f.matches[match.ID] = &cp
	return true, nil
}

func (f *fakeRepository) UpdateMatchScores(ctx context.Context, matchID int64, scores CategoryScores, overall int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	m.Scores = scores
	m.OverallScore = overall
	m.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepository) UpdateMatchStatus(ctx context.Context, matchID int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeRepository) UpdateMatchEnrichment(ctx context.Context, matchID int64, report string, icebreakers []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	m.Report = &report
	m.Icebreakers = icebreakers
	return nil
}

func (f *fakeRepository) ListMatchesForUser(ctx context.Context, userID int64) ([]*Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Match
	for _, m := range f.matches {
		if m.HasUser(userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepository) DeleteMatchesForUser(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, m := range f.matches {
		if m.HasUser(userID) {
			delete(f.matches, id)
			deleted++
		}
	}
	return deleted, nil
}

// Test profile helpers

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func testProfile(userID int64, name string) *Profile {
	return &Profile{
		UserID:         userID,
		DisplayName:    name,
		SleepSchedule:  strPtr("early-bird"),
		Cleanliness:    intPtr(3),
		NoiseTolerance: intPtr(50),
		SocialLevel:    intPtr(3),
		GuestFrequency: intPtr(3),
	}
}
