// Package parquet exports forecast output and training-run history to Parquet
// files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/vanshpreet5618/Helios/schema"
)

// ForecastRow maps to the sales_forecast table.
type ForecastRow struct {
	// Ds is the forecast date at midnight UTC
	Ds time.Time `parquet:"ds,snappy"`

	Yhat      float64 `parquet:"yhat,snappy"`
	YhatLower float64 `parquet:"yhat_lower,snappy"`
	YhatUpper float64 `parquet:"yhat_upper,snappy"`
}

// TrainingRun maps to the helios_training_runs table.
type TrainingRun struct {
	// RunID is the unique identifier for this training run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when training began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when training completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the wall time of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// ForecastRows is the number of forecast rows written
	ForecastRows int32 `parquet:"forecast_rows,snappy"`

	// ChurnAccuracy is the held-out accuracy of the classifier (nullable)
	ChurnAccuracy *float64 `parquet:"churn_accuracy,optional,snappy"`

	// ModelVersion identifies the saved model bundle (nullable)
	ModelVersion *string `parquet:"model_version,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// writeParquet writes rows of T to outputPath using the schema derived from T's tags.
func writeParquet[T any](data []T, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the last row group and the footer.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteForecastParquet writes forecast rows to a Parquet file.
func WriteForecastParquet(data []ForecastRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTrainingRunsParquet writes training runs to a Parquet file.
func WriteTrainingRunsParquet(data []TrainingRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertForecastRows converts schema.ForecastRow to ForecastRow for Parquet export.
func ConvertForecastRows(rows []schema.ForecastRow) []ForecastRow {
	result := make([]ForecastRow, len(rows))
	for i, r := range rows {
		result[i] = ForecastRow{
			Ds:        r.Timestamp.UTC(),
			Yhat:      r.PointEstimate,
			YhatLower: r.LowerBound,
			YhatUpper: r.UpperBound,
		}
	}
	return result
}

// ConvertTrainingRunRecords converts schema.TrainingRunRecord to TrainingRun for Parquet export.
func ConvertTrainingRunRecords(records []schema.TrainingRunRecord) []TrainingRun {
	result := make([]TrainingRun, len(records))
	for i, record := range records {
		result[i] = TrainingRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			ForecastRows:  record.ForecastRows,
			ChurnAccuracy: record.ChurnAccuracy,
			ModelVersion:  record.ModelVersion,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}
