package core

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/vanshpreet5618/Helios/core/insight"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/logging"
	"github.com/vanshpreet5618/Helios/schema"
)

// Report questions and the lines printed when a query fails.
const (
	SalesQuery       = "What should management focus on based on sales trends?"
	ChurnQuery       = "What are the main drivers of customer churn and what specific action should we take?"
	SalesUnavailable = "Sales analysis unavailable."
	ChurnUnavailable = "Churn analysis unavailable."
)

// ReportSource supplies the two model outputs the report summarizes.
type ReportSource interface {
	LatestForecast(ctx context.Context) (schema.ForecastRow, error)
	ChurnRate(ctx context.Context) (float64, error)
}

// SalesContext summarizes the most recent forecast value.
func SalesContext(ctx context.Context, src ReportSource) (schema.InsightContext, error) {
	row, err := src.LatestForecast(ctx)
	if err != nil {
		return schema.InsightContext{}, err
	}
	summary := "Sales forecast: $" + humanize.Comma(int64(math.Round(row.PointEstimate)))
	return schema.InsightContext{Summary: summary, Query: SalesQuery}, nil
}

// ChurnContext summarizes the aggregate churn rate.
func ChurnContext(ctx context.Context, src ReportSource) (schema.InsightContext, error) {
	rate, err := src.ChurnRate(ctx)
	if err != nil {
		return schema.InsightContext{}, err
	}
	return schema.InsightContext{Summary: fmt.Sprintf("Overall churn rate: %.1f%%", rate), Query: ChurnQuery}, nil
}

// SalesInsight returns the marked sales insight or SalesUnavailable.
func SalesInsight(ctx context.Context, src ReportSource, synth *insight.Synthesizer) string {
	if src == nil {
		return SalesUnavailable
	}
	req, err := SalesContext(ctx, src)
	if err != nil {
		logging.New("report").Error("error in sales insight", "error", err)
		return SalesUnavailable
	}
	return orTemplate(synth).Synthesize(ctx, req.Summary, req.Query)
}

// ChurnInsight returns the marked churn insight or ChurnUnavailable.
func ChurnInsight(ctx context.Context, src ReportSource, synth *insight.Synthesizer) string {
	if src == nil {
		return ChurnUnavailable
	}
	req, err := ChurnContext(ctx, src)
	if err != nil {
		logging.New("report").Error("error in churn insight", "error", err)
		return ChurnUnavailable
	}
	return orTemplate(synth).Synthesize(ctx, req.Summary, req.Query)
}

// BuildReport assembles the two-line report. A nil source degrades both lines.
func BuildReport(ctx context.Context, src ReportSource, synth *insight.Synthesizer) schema.BusinessReport {
	return schema.BusinessReport{
		Sales: SalesInsight(ctx, src, synth),
		Churn: ChurnInsight(ctx, src, synth),
	}
}

// ExecuteReport prints the business report. Store problems only degrade the
// report lines, so the returned error is about printing alone.
func ExecuteReport(ctx context.Context, cfg *contract.Config, env *Env) error {
	var src ReportSource
	if env.Store != nil {
		src = env.Store
	}
	report := BuildReport(ctx, src, env.Synth)
	return env.out().WriteReport(report, cfg)
}

// orTemplate returns synth, or a template-only synthesizer when it is nil.
func orTemplate(synth *insight.Synthesizer) *insight.Synthesizer {
	if synth == nil {
		return insight.NewSynthesizer(nil, nil)
	}
	return synth
}
