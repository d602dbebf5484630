// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"

	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// OutWriter provides a unified interface for all output operations.
// Tables and the report go to Stdout; JSON and CSV go to cfg.OutputFile when set.
type OutWriter struct {
	Stdout io.Writer
}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{Stdout: os.Stdout}
}

// WriteReport prints the two-line business report.
func (ow *OutWriter) WriteReport(report schema.BusinessReport, cfg *contract.Config) error {
	return PrintBusinessReport(ow.Stdout, report, cfg)
}

// WriteForecast prints forecast rows using the configured output format.
func (ow *OutWriter) WriteForecast(rows []schema.ForecastRow, cfg *contract.Config) error {
	return PrintForecastResults(ow.Stdout, rows, cfg)
}

// WriteClassification prints the held-out evaluation of the churn classifier.
func (ow *OutWriter) WriteClassification(report schema.ClassificationReport, cfg *contract.Config) error {
	return PrintClassificationReport(ow.Stdout, report, cfg)
}

// WriteRuns prints recorded training runs using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.TrainingRunRecord, cfg *contract.Config) error {
	return PrintTrainingRuns(ow.Stdout, runs, cfg)
}

// WriteTrainResult prints the outcome of a training invocation.
func (ow *OutWriter) WriteTrainResult(result schema.TrainResult, cfg *contract.Config) error {
	return PrintTrainResult(ow.Stdout, result, cfg)
}

// WriteModelSummary prints the manifest of the saved churn model.
func (ow *OutWriter) WriteModelSummary(summary schema.ModelSummary, cfg *contract.Config) error {
	return PrintModelSummary(ow.Stdout, summary, cfg)
}

// WriteChurnScores prints subscribers ranked by churn probability.
func (ow *OutWriter) WriteChurnScores(scores []schema.ChurnScore, summary schema.ModelSummary, cfg *contract.Config) error {
	return PrintChurnScores(ow.Stdout, scores, summary, cfg)
}
