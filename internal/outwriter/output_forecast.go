package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// PrintForecastResults outputs forecast rows, dispatching based on the output format configured.
// Parquet output is handled by the parquet package.
func PrintForecastResults(w io.Writer, rows []schema.ForecastRow, cfg *contract.Config) error {
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, rows)
		}, "Wrote JSON forecast"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeCSVResultsForForecast(out, rows, fmtFloat)
		}, "Wrote CSV forecast"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printForecastTable(w, rows, cfg, fmtMoney); err != nil {
			return fmt.Errorf("error writing forecast table output: %w", err)
		}
	}
	return nil
}

// writeCSVResultsForForecast writes rows under the sales_forecast column names.
func writeCSVResultsForForecast(w io.Writer, rows []schema.ForecastRow, fmtFloat func(float64) string) error {
	header := []string{"ds", "yhat", "yhat_lower", "yhat_upper"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			record := []string{
				r.Timestamp.Format(contract.DateFormat),
				fmtFloat(r.PointEstimate),
				fmtFloat(r.LowerBound),
				fmtFloat(r.UpperBound),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// printForecastTable prints one row per date. The interval width column is
// dropped on narrow terminals.
func printForecastTable(w io.Writer, rows []schema.ForecastRow, cfg *contract.Config, fmtMoney func(float64) string) error {
	table := tablewriter.NewWriter(w)

	wide := !isNarrow(cfg)
	headers := []string{"Date", "Forecast", "Lower", "Upper"}
	if wide {
		headers = append(headers, "Width")
	}
	table.Header(headers)

	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			r.Timestamp.Format(contract.DateFormat),
			fmtMoney(r.PointEstimate),
			fmtMoney(r.LowerBound),
			fmtMoney(r.UpperBound),
		}
		if wide {
			row = append(row, fmtMoney(r.UpperBound-r.LowerBound))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(rows) > 0 {
		_, _ = fmt.Fprintf(w, "Showing %d forecast rows from %s to %s\n", len(rows),
			rows[0].Timestamp.Format(contract.DateFormat), rows[len(rows)-1].Timestamp.Format(contract.DateFormat))
	}
	return nil
}
