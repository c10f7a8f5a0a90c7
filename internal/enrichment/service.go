// internal/enrichment/service.go

package enrichment

import (
	"context"
	"log"
	"time"

	"github.com/roomeo-app/roomeo-backend/internal/matching"
)

const enrichBudget = 30 * time.Second

// Enricher listens for new matches and attaches an AI-written report and
// icebreakers to them. It runs off the match creation path: a slow or down
// generator never delays match creation.
type Enricher struct {
	repo      matching.Repository
	generator Generator
}

func NewEnricher(repo matching.Repository, generator Generator) *Enricher {
	return &Enricher{repo: repo, generator: generator}
}

// OnMatchCreated implements matching.MatchObserver.
func (e *Enricher) OnMatchCreated(_ context.Context, match *matching.Match, owner, other *matching.Profile) {
	go e.enrich(match, owner, other)
}

func (e *Enricher) enrich(match *matching.Match, owner, other *matching.Profile) {
	ctx, cancel := context.WithTimeout(context.Background(), enrichBudget)
	defer cancel()

	in := &ReportInput{
		OwnerName:      owner.DisplayName,
		OtherName:      other.DisplayName,
		OverallScore:   match.OverallScore,
		OwnerInterests: owner.Interests,
		OtherInterests: other.Interests,
		SharedTraits:   sharedTraits(owner, other),
	}

	report, err := e.generator.MatchReport(ctx, in)
	if err != nil {
		log.Printf("enrichment: report for match %d failed: %v", match.ID, err)
		return
	}

	icebreakers, err := e.generator.Icebreakers(ctx, in)
	if err != nil {
		log.Printf("enrichment: icebreakers for match %d failed: %v", match.ID, err)
		icebreakers = FallbackIcebreakers(in)
	}

	if err := e.repo.UpdateMatchEnrichment(ctx, match.ID, report, icebreakers); err != nil {
		log.Printf("enrichment: failed to store enrichment for match %d: %v", match.ID, err)
	}
}

// sharedTraits names the lifestyle answers the two profiles agree on.
func sharedTraits(a, b *matching.Profile) []string {
	var traits []string

	if a.SleepSchedule != nil && b.SleepSchedule != nil && *a.SleepSchedule == *b.SleepSchedule {
		traits = append(traits, "sleep schedule")
	}
	if a.StudyHabits != nil && b.StudyHabits != nil && *a.StudyHabits == *b.StudyHabits {
		traits = append(traits, "study habits")
	}
	if a.Smoking == b.Smoking && !a.Smoking {
		traits = append(traits, "smoke-free living")
	}
	if a.WorkSchedule != "" && a.WorkSchedule == b.WorkSchedule {
		traits = append(traits, "work schedule")
	}
	if a.HasPets && b.HasPets {
		traits = append(traits, "pet friendliness")
	}
	return traits
}
