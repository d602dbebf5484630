package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

func textConfig() *contract.Config {
	return &contract.Config{Output: schema.TextOut, Precision: 1, ResultLimit: contract.DefaultResultLimit, Width: 120}
}

func TestPrintBusinessReport(t *testing.T) {
	report := schema.BusinessReport{
		Sales: schema.TemplateMarker + "Sales forecast predicts stable performance.",
		Churn: "Churn analysis unavailable.",
	}

	var buf bytes.Buffer
	require.NoError(t, PrintBusinessReport(&buf, report, textConfig()))

	rule := strings.Repeat("=", 60)
	expected := strings.Join([]string{
		"",
		rule,
		ReportTitle,
		rule,
		"📈 SALES: 📊 RELIABLE ANALYSIS: Sales forecast predicts stable performance.",
		"👥 CHURN: Churn analysis unavailable.",
		rule,
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestPrintBusinessReportJSON(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.JSONOut
	report := schema.BusinessReport{Sales: "a", Churn: "b"}

	var buf bytes.Buffer
	require.NoError(t, PrintBusinessReport(&buf, report, cfg))

	var decoded schema.BusinessReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report, decoded)
}

func TestColorInsight(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	gen := schema.GeneratedMarker + "x"
	assert.Equal(t, gen, colorInsight(gen, false))
	assert.NotEqual(t, gen, colorInsight(gen, true))
	assert.Contains(t, colorInsight(gen, true), gen)
	assert.Equal(t, "Sales analysis unavailable.", colorInsight("Sales analysis unavailable.", true))
}

func sampleForecast() []schema.ForecastRow {
	start := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	return []schema.ForecastRow{
		{Timestamp: start, PointEstimate: 51234.56, LowerBound: 40000, UpperBound: 62469.12},
		{Timestamp: start.AddDate(0, 0, 1), PointEstimate: 52000, LowerBound: 41000, UpperBound: 63000},
	}
}

func TestPrintForecastResults(t *testing.T) {
	tests := []struct {
		name     string
		output   schema.OutputMode
		width    int
		contains []string
		absent   []string
	}{
		{
			name:     "table",
			output:   schema.TextOut,
			width:    120,
			contains: []string{"DATE", "2024-12-30", "51,234.6", "WIDTH", "Showing 2 forecast rows from 2024-12-30 to 2024-12-31"},
		},
		{
			name:     "narrow table",
			output:   schema.TextOut,
			width:    40,
			contains: []string{"DATE", "51,234.6"},
			absent:   []string{"WIDTH"},
		},
		{
			name:     "csv",
			output:   schema.CSVOut,
			contains: []string{"ds,yhat,yhat_lower,yhat_upper\n", "2024-12-30,51234.6,40000.0,62469.1\n"},
		},
		{
			name:     "json",
			output:   schema.JSONOut,
			contains: []string{`"yhat": 51234.56`, `"yhat_lower": 40000`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := textConfig()
			cfg.Output = tt.output
			cfg.Width = tt.width

			var buf bytes.Buffer
			require.NoError(t, PrintForecastResults(&buf, sampleForecast(), cfg))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestPrintForecastResultsToFile(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "forecast.csv")

	var buf bytes.Buffer
	require.NoError(t, PrintForecastResults(&buf, sampleForecast(), cfg))
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestPrintClassificationReport(t *testing.T) {
	report := schema.ClassificationReport{
		Accuracy: 0.79,
		Support:  1409,
		Classes: []schema.ClassMetrics{
			{Label: "0", Precision: 0.83, Recall: 0.9, F1: 0.86, Support: 1035},
			{Label: "1", Precision: 0.63, Recall: 0.49, F1: 0.55, Support: 374},
		},
		MacroAvg:    schema.ClassMetrics{Label: "macro avg", Precision: 0.73, Recall: 0.7, F1: 0.71, Support: 1409},
		WeightedAvg: schema.ClassMetrics{Label: "weighted avg", Precision: 0.78, Recall: 0.79, F1: 0.78, Support: 1409},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintClassificationReport(&buf, report, textConfig()))
	out := buf.String()
	assert.Contains(t, out, "PRECISION")
	assert.Contains(t, out, "macro avg")
	assert.Contains(t, out, "weighted avg")
	assert.Contains(t, out, "1035")
	assert.Contains(t, out, "Accuracy: 0.79 (Fair) on 1409 held-out rows")
}

func TestPrintTrainingRuns(t *testing.T) {
	acc := 0.81
	ms := int32(1520)
	version := "0123456789ab"
	end := time.Date(2024, 1, 1, 10, 0, 2, 0, time.UTC)
	runs := []schema.TrainingRunRecord{
		{RunID: 2, StartTime: end, ForecastRows: 0},
		{RunID: 1, StartTime: end.Add(-2 * time.Second), EndTime: &end, RunDurationMs: &ms, ForecastRows: 1185, ChurnAccuracy: &acc, ModelVersion: &version},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintTrainingRuns(&buf, runs, textConfig()))
		assert.Contains(t, buf.String(), "0123456789ab")
		assert.Contains(t, buf.String(), "1520")
		assert.Contains(t, buf.String(), "2 training runs shown")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := textConfig()
		cfg.Output = schema.CSVOut
		var buf bytes.Buffer
		require.NoError(t, PrintTrainingRuns(&buf, runs, cfg))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "2,2024-01-01T10:00:02Z,,,0,,", lines[1])
		assert.Equal(t, "1,2024-01-01T10:00:00Z,2024-01-01T10:00:02Z,1520,1185,0.8100,0123456789ab", lines[2])
	})

	t.Run("limit", func(t *testing.T) {
		cfg := textConfig()
		cfg.Output = schema.JSONOut
		cfg.ResultLimit = 1
		var buf bytes.Buffer
		require.NoError(t, PrintTrainingRuns(&buf, runs, cfg))
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Len(t, decoded, 1)
	})
}
