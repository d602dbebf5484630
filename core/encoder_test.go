package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanshpreet5618/Helios/schema"
)

func TestFitTransform(t *testing.T) {
	tests := []struct {
		name   string
		column []string
		codes  []int
		labels []string
	}{
		{
			name:   "first seen order",
			column: []string{"Month-to-month", "Two year", "Month-to-month", "One year"},
			codes:  []int{0, 1, 0, 2},
			labels: []string{"Month-to-month", "Two year", "One year"},
		},
		{
			name:   "single value",
			column: []string{"DSL", "DSL"},
			codes:  []int{0, 0},
			labels: []string{"DSL"},
		},
		{
			name:   "empty",
			column: nil,
			codes:  []int{},
			labels: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes, labels := FitTransform(tt.column)
			assert.Equal(t, tt.codes, codes)
			assert.Equal(t, tt.labels, labels)
		})
	}
}

func TestTransformRoundTrip(t *testing.T) {
	column := []string{"b", "a", "c", "a", "b"}
	codes, labels := FitTransform(column)

	again, err := Transform(column, labels)
	require.NoError(t, err)
	assert.Equal(t, codes, again)

	for i, c := range codes {
		assert.Equal(t, column[i], labels[c])
	}
}

func TestTransformUnknownCategory(t *testing.T) {
	_, labels := FitTransform([]string{"DSL", "Fiber optic"})

	_, err := Transform([]string{"DSL", "Satellite"}, labels)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCategory))
	assert.Contains(t, err.Error(), "Satellite")
}

func TestEncodeColumnsAndApply(t *testing.T) {
	records := []schema.ChurnRecord{
		{Tenure: 1, MonthlyCharges: 70, TotalCharges: 70, Contract: "Month-to-month", InternetService: "Fiber optic", OnlineSecurity: "No", TechSupport: "No", PaymentMethod: "Electronic check"},
		{Tenure: 40, MonthlyCharges: 20, TotalCharges: 800, Contract: "Two year", InternetService: "No", OnlineSecurity: "No internet service", TechSupport: "No internet service", PaymentMethod: "Mailed check"},
	}

	x, enc, err := EncodeColumns(records)
	require.NoError(t, err)
	require.Len(t, x, 2)
	assert.Len(t, x[0], len(schema.ChurnFeatureNames))
	assert.Equal(t, []float64{1, 70, 70, 0, 0, 0, 0, 0}, x[0])
	assert.Equal(t, []float64{40, 20, 800, 1, 1, 1, 1, 1}, x[1])
	assert.Equal(t, []string{"Month-to-month", "Two year"}, enc[schema.ContractColumn])

	again, err := ApplyEncoding(records, enc)
	require.NoError(t, err)
	assert.Equal(t, x, again)

	unseen := []schema.ChurnRecord{records[0]}
	unseen[0].PaymentMethod = "Bitcoin"
	_, err = ApplyEncoding(unseen, enc)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	delete(enc, schema.TechSupportColumn)
	_, err = ApplyEncoding(records, enc)
	assert.Error(t, err)
}
