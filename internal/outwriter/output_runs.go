package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// PrintTrainingRuns outputs recorded training runs, newest first.
func PrintTrainingRuns(w io.Writer, runs []schema.TrainingRunRecord, cfg *contract.Config) error {
	if len(runs) > cfg.ResultLimit && cfg.ResultLimit > 0 {
		runs = runs[:cfg.ResultLimit]
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, runs)
		}, "Wrote JSON training runs")
	case schema.CSVOut:
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeCSVResultsForRuns(out, runs)
		}, "Wrote CSV training runs")
	default:
		return printRunsTable(w, runs, cfg)
	}
}

// runCells renders the optional columns of a run.
func runCells(r schema.TrainingRunRecord) (end, duration, accuracy, version string) {
	if r.EndTime != nil {
		end = r.EndTime.Format(contract.DateTimeFormat)
	}
	if r.RunDurationMs != nil {
		duration = strconv.Itoa(int(*r.RunDurationMs))
	}
	if r.ChurnAccuracy != nil {
		accuracy = strconv.FormatFloat(*r.ChurnAccuracy, 'f', 4, 64)
	}
	if r.ModelVersion != nil {
		version = *r.ModelVersion
	}
	return end, duration, accuracy, version
}

func writeCSVResultsForRuns(w io.Writer, runs []schema.TrainingRunRecord) error {
	header := []string{"run_id", "start_time", "end_time", "run_duration_ms", "forecast_rows", "churn_accuracy", "model_version"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range runs {
			end, duration, accuracy, version := runCells(r)
			record := []string{
				strconv.FormatInt(r.RunID, 10),
				r.StartTime.Format(contract.DateTimeFormat),
				end,
				duration,
				strconv.Itoa(int(r.ForecastRows)),
				accuracy,
				version,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

func printRunsTable(w io.Writer, runs []schema.TrainingRunRecord, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Started", "Duration (ms)", "Forecast Rows", "Accuracy", "Model"})

	data := make([][]string, 0, len(runs))
	for _, r := range runs {
		_, duration, accuracy, version := runCells(r)
		if r.ChurnAccuracy != nil && cfg.UseColors {
			accuracy += " " + contract.GetColorLabel(*r.ChurnAccuracy)
		}
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Local().Format("2006-01-02 15:04:05"),
			duration,
			strconv.Itoa(int(r.ForecastRows)),
			accuracy,
			version,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%d training runs shown\n", len(runs))
	return nil
}
