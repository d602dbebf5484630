package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanshpreet5618/Helios/schema"
)

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	out := make([]T, reader.NumRows())
	n, err := reader.Read(out)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return out[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"forecast", new(ForecastRow), []string{"ds", "yhat", "yhat_lower", "yhat_upper"}},
		{"runs", new(TrainingRun), []string{
			"run_id", "start_time", "end_time", "run_duration_ms",
			"forecast_rows", "churn_accuracy", "model_version", "config_params",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteForecastParquet(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]schema.ForecastRow, 90)
	for i := range rows {
		v := 50000 + float64(i)
		rows[i] = schema.ForecastRow{Timestamp: start.AddDate(0, 0, i), PointEstimate: v, LowerBound: v - 100, UpperBound: v + 100}
	}

	path := filepath.Join(t.TempDir(), "forecast.parquet")
	require.NoError(t, WriteForecastParquet(ConvertForecastRows(rows), path))

	got := readAll[ForecastRow](t, path)
	require.Len(t, got, len(rows))
	for i := range rows {
		assert.True(t, rows[i].Timestamp.Equal(got[i].Ds), "row %d date", i)
		assert.Equal(t, rows[i].PointEstimate, got[i].Yhat)
		assert.Equal(t, rows[i].LowerBound, got[i].YhatLower)
		assert.Equal(t, rows[i].UpperBound, got[i].YhatUpper)
	}
}

func TestWriteTrainingRunsParquet(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(3 * time.Second)
	ms := int32(3000)
	acc := 0.8
	version := "abc"
	params := `{"artifact_dir":"artifacts"}`
	records := []schema.TrainingRunRecord{
		{RunID: 2, StartTime: now, ForecastRows: 0},
		{RunID: 1, StartTime: now, EndTime: &end, RunDurationMs: &ms, ForecastRows: 1185, ChurnAccuracy: &acc, ModelVersion: &version, ConfigParams: &params},
	}

	path := filepath.Join(t.TempDir(), "runs.parquet")
	require.NoError(t, WriteTrainingRunsParquet(ConvertTrainingRunRecords(records), path))

	got := readAll[TrainingRun](t, path)
	require.Len(t, got, 2)

	assert.Equal(t, int64(2), got[0].RunID)
	assert.Nil(t, got[0].EndTime)
	assert.Nil(t, got[0].ChurnAccuracy)
	assert.Nil(t, got[0].ModelVersion)

	assert.Equal(t, int32(1185), got[1].ForecastRows)
	require.NotNil(t, got[1].EndTime)
	assert.WithinDuration(t, end, *got[1].EndTime, time.Nanosecond)
	require.NotNil(t, got[1].ChurnAccuracy)
	assert.Equal(t, acc, *got[1].ChurnAccuracy)
	require.NotNil(t, got[1].ConfigParams)
	assert.Equal(t, params, *got[1].ConfigParams)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteForecastParquet(nil, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteTrainingRunsParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}
