// internal/enrichment/gemini.go
// Thin wrapper around the Gemini API for match reports and icebreakers.
// Every call degrades to a deterministic local fallback so enrichment never
// depends on the API being up.

package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator produces the human-readable extras attached to a match.
type Generator interface {
	MatchReport(ctx context.Context, in *ReportInput) (string, error)
	Icebreakers(ctx context.Context, in *ReportInput) ([]string, error)
	Close()
}

// ReportInput is the slice of profile data the generator is allowed to see.
type ReportInput struct {
	OwnerName      string
	OtherName      string
	OverallScore   int
	OwnerInterests []string
	OtherInterests []string
	SharedTraits   []string
}

type geminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiGenerator(apiKey string) (Generator, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.7)

	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) Close() {
	g.client.Close()
}

func (g *geminiGenerator) MatchReport(ctx context.Context, in *ReportInput) (string, error) {
	prompt := fmt.Sprintf(`Two people were matched as potential roommates with a compatibility score of %d/100.
%s's interests: %v
%s's interests: %v
Traits they share: %v

Task: write a short, friendly report (2-3 sentences) on why they could live well together.
Mention concrete overlap where it exists. Do not invent facts.
Output: just the report text.`,
		in.OverallScore,
		in.OwnerName, in.OwnerInterests,
		in.OtherName, in.OtherInterests,
		in.SharedTraits,
	)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("enrichment: gemini unavailable, using fallback report: %v", err)
		return FallbackReport(in), nil
	}

	text := collectText(resp)
	if text == "" {
		return FallbackReport(in), nil
	}
	return text, nil
}

func (g *geminiGenerator) Icebreakers(ctx context.Context, in *ReportInput) ([]string, error) {
	prompt := fmt.Sprintf(`Generate 3 icebreaker messages for two newly matched potential roommates.
%s's interests: %v
%s's interests: %v

Task: create 3 distinct opening lines %s could send to %s. Lean on shared interests.
Output: JSON array of strings only. Example: ["Hey...", "Hi..."]`,
		in.OwnerName, in.OwnerInterests,
		in.OtherName, in.OtherInterests,
		in.OwnerName, in.OtherName,
	)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("enrichment: gemini unavailable, using fallback icebreakers: %v", err)
		return FallbackIcebreakers(in), nil
	}

	text := collectText(resp)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var icebreakers []string
	if err := json.Unmarshal([]byte(text), &icebreakers); err != nil || len(icebreakers) == 0 {
		return FallbackIcebreakers(in), nil
	}
	return icebreakers, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}

// FallbackReport builds a report from the scored data alone.
func FallbackReport(in *ReportInput) string {
	shared := sharedInterests(in.OwnerInterests, in.OtherInterests)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s and %s scored %d/100 on roommate compatibility.", in.OwnerName, in.OtherName, in.OverallScore)
	if len(shared) > 0 {
		fmt.Fprintf(&sb, " You both enjoy %s.", strings.Join(shared, ", "))
	}
	if len(in.SharedTraits) > 0 {
		fmt.Fprintf(&sb, " You line up on %s.", strings.Join(in.SharedTraits, " and "))
	}
	return sb.String()
}

// FallbackIcebreakers builds openers from shared interests, padding with
// generic roommate questions when there is little overlap.
func FallbackIcebreakers(in *ReportInput) []string {
	var icebreakers []string
	for _, interest := range sharedInterests(in.OwnerInterests, in.OtherInterests) {
		icebreakers = append(icebreakers, fmt.Sprintf("I saw you're into %s too — how did you get started?", interest))
		if len(icebreakers) == 3 {
			return icebreakers
		}
	}

	generic := []string{
		"What does your ideal weekend at home look like?",
		"Morning person or night owl — be honest!",
		"What's the one thing a place needs to feel like home to you?",
	}
	for _, line := range generic {
		if len(icebreakers) == 3 {
			break
		}
		icebreakers = append(icebreakers, line)
	}
	return icebreakers
}

func sharedInterests(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, interest := range a {
		seen[strings.ToLower(interest)] = true
	}

	var shared []string
	for _, interest := range b {
		if seen[strings.ToLower(interest)] {
			shared = append(shared, interest)
		}
	}
	return shared
}
