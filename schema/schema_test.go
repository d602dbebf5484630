package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsightString(t *testing.T) {
	tests := []struct {
		name     string
		insight  Insight
		expected string
	}{
		{"generated", Insight{Tier: GeneratedTier, Text: "Sales look fine."}, "🤖 AI ANALYSIS: Sales look fine."},
		{"template", Insight{Tier: TemplateTier, Text: "Fallback."}, "📊 RELIABLE ANALYSIS: Fallback."},
		{"unset tier renders as template", Insight{Text: "x"}, "📊 RELIABLE ANALYSIS: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.insight.String())
		})
	}
}

func TestChurnRecordCategorical(t *testing.T) {
	r := ChurnRecord{
		Contract:        "Month-to-month",
		InternetService: "Fiber optic",
		OnlineSecurity:  "No",
		TechSupport:     "Yes",
		PaymentMethod:   "Electronic check",
	}

	for _, col := range CategoricalColumns {
		v, ok := r.Categorical(col)
		assert.True(t, ok, col)
		assert.NotEmpty(t, v, col)
	}

	_, ok := r.Categorical("tenure")
	assert.False(t, ok)
}

func TestCategoryEncodingColumns(t *testing.T) {
	enc := CategoryEncoding{
		PaymentMethodColumn: {"a"},
		ContractColumn:      {"b"},
	}
	assert.Equal(t, []string{ContractColumn, PaymentMethodColumn}, enc.Columns())
}
