package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// PrintModelSummary prints the manifest of a saved bundle.
func PrintModelSummary(w io.Writer, summary schema.ModelSummary, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, summary)
		}, "Wrote JSON model summary")
	}

	accuracy := contract.UnknownValue
	if summary.Accuracy != nil {
		label := contract.GetPlainLabel(*summary.Accuracy)
		if cfg.UseColors {
			label = contract.GetColorLabel(*summary.Accuracy)
		}
		accuracy = fmt.Sprintf("%.4f (%s)", *summary.Accuracy, label)
	}

	_, _ = fmt.Fprintf(w, "Bundle Path: %s\n", summary.Path)
	_, _ = fmt.Fprintf(w, "Bundle ID: %s\n", summary.BundleID)
	_, _ = fmt.Fprintf(w, "Model Version: %s\n", summary.ModelVersion)
	_, _ = fmt.Fprintf(w, "Created: %s\n", summary.CreatedAt.Local().Format(contract.DateTimeFormat))
	_, _ = fmt.Fprintf(w, "Trees: %d (max depth %d, learning rate %g)\n", summary.NumTrees, summary.MaxDepth, summary.LearningRate)
	_, _ = fmt.Fprintf(w, "Features: %s\n", strings.Join(summary.FeatureNames, ", "))
	_, _ = fmt.Fprintf(w, "Categorical: %s\n", strings.Join(summary.CategoricalColumns, ", "))
	_, _ = fmt.Fprintf(w, "Held-out Accuracy: %s\n", accuracy)
	return nil
}

// PrintChurnScores prints subscribers ranked by churn probability.
func PrintChurnScores(w io.Writer, scores []schema.ChurnScore, summary schema.ModelSummary, cfg *contract.Config) error {
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, scores)
		}, "Wrote JSON churn scores")
	case schema.CSVOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeCSVResultsForScores(out, scores)
		}, "Wrote CSV churn scores")
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Customer", "Probability", "Contract", "Tenure", "Monthly", "Churned"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(scores))
	for i, s := range scores {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.CustomerID,
			fmtFloat(s.Probability * 100),
			s.Contract,
			strconv.Itoa(s.Tenure),
			fmtMoney(s.MonthlyCharges),
			yesNo(s.Churned),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Showing top %d subscribers by churn probability (%%) under model %s\n", len(scores), summary.ModelVersion)
	return nil
}

func writeCSVResultsForScores(w io.Writer, scores []schema.ChurnScore) error {
	header := []string{"customer_id", "probability", "contract", "tenure", "monthly_charges", "churn"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range scores {
			record := []string{
				s.CustomerID,
				strconv.FormatFloat(s.Probability, 'f', 6, 64),
				s.Contract,
				strconv.Itoa(s.Tenure),
				strconv.FormatFloat(s.MonthlyCharges, 'f', 2, 64),
				yesNo(s.Churned),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

func yesNo(b bool) string {
	if b {
		return schema.ChurnYes
	}
	return schema.ChurnNo
}
