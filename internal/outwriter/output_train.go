package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// PrintTrainResult prints what a training invocation produced, followed by
// the classification report when the classifier was fitted.
func PrintTrainResult(w io.Writer, result schema.TrainResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(w, cfg.OutputFile, func(out io.Writer) error {
			return writeJSON(out, result)
		}, "Wrote JSON training result")
	}

	_, _ = fmt.Fprintf(w, "Training finished in %s\n", result.Duration.Round(time.Millisecond))
	if result.ForecastRows > 0 {
		_, _ = fmt.Fprintf(w, "  Forecast: %d rows stored\n", result.ForecastRows)
	} else {
		_, _ = fmt.Fprintln(w, "  Forecast: not stored")
	}
	if result.ModelVersion != "" {
		_, _ = fmt.Fprintf(w, "  Churn model: version %s saved\n", result.ModelVersion)
	} else {
		_, _ = fmt.Fprintln(w, "  Churn model: not saved")
	}
	if result.Report == nil {
		return nil
	}
	_, _ = fmt.Fprintln(w)
	return PrintClassificationReport(w, *result.Report, cfg)
}
