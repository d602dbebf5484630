package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// Report framing.
const (
	ReportTitle = "BUSINESS INSIGHTS (Hybrid AI/Template Approach)"
	SalesLabel  = "📈 SALES: "
	ChurnLabel  = "👥 CHURN: "
	ruleWidth   = 60
)

// PrintBusinessReport prints the report framed by rules, or as JSON when the
// output mode asks for it.
func PrintBusinessReport(w io.Writer, report schema.BusinessReport, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, report)
		}, "Wrote JSON report")
	}

	rule := strings.Repeat("=", ruleWidth)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, rule)
	_, _ = fmt.Fprintln(w, ReportTitle)
	_, _ = fmt.Fprintln(w, rule)
	_, _ = fmt.Fprintln(w, SalesLabel+colorInsight(report.Sales, cfg.UseColors))
	_, _ = fmt.Fprintln(w, ChurnLabel+colorInsight(report.Churn, cfg.UseColors))
	_, _ = fmt.Fprintln(w, rule)
	return nil
}

// colorInsight tints an insight line by the tier marker it starts with.
func colorInsight(text string, useColors bool) string {
	if !useColors {
		return text
	}
	var c *color.Color
	switch {
	case strings.HasPrefix(text, schema.GeneratedMarker):
		c = contract.GeneratedColor
	case strings.HasPrefix(text, schema.TemplateMarker):
		c = contract.TemplateColor
	default:
		return text
	}
	return c.Sprint(text)
}
