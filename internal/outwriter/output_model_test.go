package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanshpreet5618/Helios/schema"
)

func TestPrintTrainResult(t *testing.T) {
	report := schema.ClassificationReport{
		Accuracy:    0.9,
		Support:     10,
		Classes:     []schema.ClassMetrics{{Label: "0", Support: 6}, {Label: "1", Support: 4}},
		MacroAvg:    schema.ClassMetrics{Label: "macro avg", Support: 10},
		WeightedAvg: schema.ClassMetrics{Label: "weighted avg", Support: 10},
	}

	tests := []struct {
		name     string
		result   schema.TrainResult
		contains []string
		excludes []string
	}{
		{
			name:     "both steps",
			result:   schema.TrainResult{ForecastRows: 1185, ModelVersion: "abc123", Report: &report, Duration: 1500 * time.Millisecond},
			contains: []string{"Training finished in 1.5s", "1185 rows stored", "version abc123 saved", "Accuracy: 0.90 (Strong) on 10 held-out rows"},
		},
		{
			name:     "nothing produced",
			result:   schema.TrainResult{Duration: time.Second},
			contains: []string{"Forecast: not stored", "Churn model: not saved"},
			excludes: []string{"Accuracy"},
		},
		{
			name:     "fitted but not saved",
			result:   schema.TrainResult{Report: &report},
			contains: []string{"Churn model: not saved", "held-out rows"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, PrintTrainResult(&buf, tt.result, textConfig()))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestPrintTrainResultJSON(t *testing.T) {
	cfg := textConfig()
	cfg.Output = schema.JSONOut
	var buf bytes.Buffer
	require.NoError(t, PrintTrainResult(&buf, schema.TrainResult{ForecastRows: 3, ModelVersion: "v"}, cfg))

	var decoded schema.TrainResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.ForecastRows)
	assert.Equal(t, "v", decoded.ModelVersion)
	assert.Nil(t, decoded.Report)
}

func sampleSummary() schema.ModelSummary {
	acc := 0.8
	return schema.ModelSummary{
		BundleID:           "5f0c2a6e-3c1b-4b7e-9d55-0c7f1a2b3c4d",
		ModelVersion:       "0123456789ab",
		CreatedAt:          time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Path:               "artifacts/churn_model",
		NumTrees:           100,
		MaxDepth:           6,
		LearningRate:       0.1,
		FeatureNames:       schema.ChurnFeatureNames,
		CategoricalColumns: schema.CategoricalColumns,
		Accuracy:           &acc,
	}
}

func TestPrintModelSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintModelSummary(&buf, sampleSummary(), textConfig()))
	out := buf.String()
	assert.Contains(t, out, "Bundle Path: artifacts/churn_model")
	assert.Contains(t, out, "Model Version: 0123456789ab")
	assert.Contains(t, out, "Trees: 100 (max depth 6, learning rate 0.1)")
	assert.Contains(t, out, "Features: tenure, monthly_charges, total_charges, contract")
	assert.Contains(t, out, "Held-out Accuracy: 0.8000 (Strong)")

	summary := sampleSummary()
	summary.Accuracy = nil
	buf.Reset()
	require.NoError(t, PrintModelSummary(&buf, summary, textConfig()))
	assert.Contains(t, buf.String(), "Held-out Accuracy: Unknown")
}

func TestPrintChurnScores(t *testing.T) {
	scores := []schema.ChurnScore{
		{CustomerID: "9237-HQITU", Probability: 0.8731, Contract: "Month-to-month", Tenure: 2, MonthlyCharges: 70.7, Churned: true},
		{CustomerID: "5575-GNVDE", Probability: 0.0412, Contract: "One year", Tenure: 34, MonthlyCharges: 56.95},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, PrintChurnScores(&buf, scores, sampleSummary(), textConfig()))
		out := buf.String()
		assert.Contains(t, out, "PROBABILITY")
		assert.Contains(t, out, "9237-HQITU")
		assert.Contains(t, out, "87.3")
		assert.Contains(t, out, "Showing top 2 subscribers by churn probability (%) under model 0123456789ab")
	})

	t.Run("csv", func(t *testing.T) {
		cfg := textConfig()
		cfg.Output = schema.CSVOut
		var buf bytes.Buffer
		require.NoError(t, PrintChurnScores(&buf, scores, sampleSummary(), cfg))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "customer_id,probability,contract,tenure,monthly_charges,churn", lines[0])
		assert.Equal(t, "9237-HQITU,0.873100,Month-to-month,2,70.70,Yes", lines[1])
		assert.Equal(t, "5575-GNVDE,0.041200,One year,34,56.95,No", lines[2])
	})

	t.Run("json", func(t *testing.T) {
		cfg := textConfig()
		cfg.Output = schema.JSONOut
		var buf bytes.Buffer
		require.NoError(t, PrintChurnScores(&buf, scores, sampleSummary(), cfg))
		var decoded []schema.ChurnScore
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, scores, decoded)
	})
}
