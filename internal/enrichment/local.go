// internal/enrichment/local.go

package enrichment

import "context"

// localGenerator serves the deterministic fallbacks directly. Used when no
// Gemini key is configured.
type localGenerator struct{}

func NewLocalGenerator() Generator {
	return localGenerator{}
}

func (localGenerator) MatchReport(_ context.Context, in *ReportInput) (string, error) {
	return FallbackReport(in), nil
}

func (localGenerator) Icebreakers(_ context.Context, in *ReportInput) ([]string, error) {
	return FallbackIcebreakers(in), nil
}

func (localGenerator) Close() {}
