package outwriter

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// PrintClassificationReport prints per-class precision, recall, F1 and support
// followed by accuracy and averages.
func PrintClassificationReport(w io.Writer, report schema.ClassificationReport, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, report)
		}, "Wrote JSON classification report")
	}

	fmtFloat, _ := createFormatters(2)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Class", "Precision", "Recall", "F1", "Support"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	metricRow := func(m schema.ClassMetrics) []string {
		return []string{m.Label, fmtFloat(m.Precision), fmtFloat(m.Recall), fmtFloat(m.F1), fmt.Sprintf("%d", m.Support)}
	}

	data := make([][]string, 0, len(report.Classes)+2)
	for _, m := range report.Classes {
		data = append(data, metricRow(m))
	}
	data = append(data, metricRow(report.MacroAvg), metricRow(report.WeightedAvg))

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	label := contract.GetPlainLabel(report.Accuracy)
	if cfg.UseColors {
		label = contract.GetColorLabel(report.Accuracy)
	}
	_, _ = fmt.Fprintf(w, "Accuracy: %s (%s) on %d held-out rows\n", fmtFloat(report.Accuracy), label, report.Support)
	return nil
}
