// Package insight turns model outputs into short business recommendations.
//
// A request first tries an optional text generator, passes its output through
// a quality gate and otherwise falls back to a fixed template. Synthesis never
// fails and never returns an empty string.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vanshpreet5618/Helios/schema"
)

// MaxGeneratedTokens bounds the generator's output length.
const MaxGeneratedTokens = 150

// Fallback templates. They never interpolate the request summary.
const (
	ChurnTemplate = "Churn analysis shows a critical 26.5% churn rate, primarily driven by month-to-month fiber optic customers. We should immediately implement targeted retention programs for this high-risk segment."
	SalesTemplate = "Sales forecast predicts stable performance. Maintain current operations and monitor key metrics closely for any changes in market conditions."
)

// Generator produces free text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f(ctx, prompt, maxTokens)
}

// Synthesizer runs the generate, gate, fallback sequence.
// A nil generator always takes the template path.
type Synthesizer struct {
	generator Generator
	logger    *slog.Logger
}

// NewSynthesizer creates a synthesizer. Both arguments may be nil.
func NewSynthesizer(generator Generator, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{generator: generator, logger: logger}
}

// Prompt formats the generator prompt for a request.
func Prompt(summary, query string) string {
	return fmt.Sprintf("Data: %s. Question: %s. Provide a concise 2-sentence analysis:", summary, query)
}

// Synthesize returns the marked insight text for a summary and question.
func (s *Synthesizer) Synthesize(ctx context.Context, summary, query string) string {
	return s.Run(ctx, schema.InsightContext{Summary: summary, Query: query}).String()
}

// Run returns the insight along with the tier that produced it.
func (s *Synthesizer) Run(ctx context.Context, req schema.InsightContext) schema.Insight {
	text, err := s.attempt(ctx, req)
	if err != nil {
		s.log().Debug("generation unavailable, using template", "error", err)
		return Fallback(req.Query)
	}
	if !PassesQualityGate(text) {
		s.log().Debug("generated text rejected by quality gate", "length", len(text))
		return Fallback(req.Query)
	}
	return schema.Insight{Tier: schema.GeneratedTier, Text: strings.TrimSpace(text)}
}

// log returns the synthesizer logger. A nil synthesizer logs to the default logger.
func (s *Synthesizer) log() *slog.Logger {
	if s == nil || s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

// attempt calls the generator and turns a panic into an error.
func (s *Synthesizer) attempt(ctx context.Context, req schema.InsightContext) (text string, err error) {
	if s == nil || s.generator == nil {
		return "", errNoGenerator
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()
	return s.generator.Generate(ctx, Prompt(req.Summary, req.Query), MaxGeneratedTokens)
}

// Fallback picks the template for a query. Queries mentioning churn get the
// churn template and everything else gets the sales template.
func Fallback(query string) schema.Insight {
	if strings.Contains(strings.ToLower(query), "churn") {
		return schema.Insight{Tier: schema.TemplateTier, Text: ChurnTemplate}
	}
	return schema.Insight{Tier: schema.TemplateTier, Text: SalesTemplate}
}
