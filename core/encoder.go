package core

import (
	"fmt"

	"github.com/vanshpreet5618/Helios/schema"
)

// FitTransform assigns each distinct value a code in first-seen order.
// It returns the codes for every input value and the ordered labels.
func FitTransform(column []string) ([]int, []string) {
	index := make(map[string]int)
	labels := make([]string, 0)
	codes := make([]int, len(column))
	for i, v := range column {
		code, ok := index[v]
		if !ok {
			code = len(labels)
			index[v] = code
			labels = append(labels, v)
		}
		codes[i] = code
	}
	return codes, labels
}

// Transform encodes values with an existing label list.
// Any value missing from labels fails with ErrUnknownCategory.
func Transform(column []string, labels []string) ([]int, error) {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	codes := make([]int, len(column))
	for i, v := range column {
		code, ok := index[v]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, v)
		}
		codes[i] = code
	}
	return codes, nil
}

// categoricalValues extracts one categorical column from the records.
func categoricalValues(records []schema.ChurnRecord, column string) ([]string, error) {
	values := make([]string, len(records))
	for i, r := range records {
		v, ok := r.Categorical(column)
		if !ok {
			return nil, fmt.Errorf("column %q is not categorical", column)
		}
		values[i] = v
	}
	return values, nil
}

// EncodeColumns fits an encoding for every categorical column and returns
// the encoded feature matrix in schema.ChurnFeatureNames order.
func EncodeColumns(records []schema.ChurnRecord) ([][]float64, schema.CategoryEncoding, error) {
	encoding := make(schema.CategoryEncoding, len(schema.CategoricalColumns))
	codes := make(map[string][]int, len(schema.CategoricalColumns))
	for _, col := range schema.CategoricalColumns {
		values, err := categoricalValues(records, col)
		if err != nil {
			return nil, nil, err
		}
		c, labels := FitTransform(values)
		encoding[col] = labels
		codes[col] = c
	}
	return buildMatrix(records, codes), encoding, nil
}

// ApplyEncoding encodes records with a previously fitted encoding.
func ApplyEncoding(records []schema.ChurnRecord, encoding schema.CategoryEncoding) ([][]float64, error) {
	codes := make(map[string][]int, len(schema.CategoricalColumns))
	for _, col := range schema.CategoricalColumns {
		labels, ok := encoding[col]
		if !ok {
			return nil, fmt.Errorf("encoding has no labels for column %q", col)
		}
		values, err := categoricalValues(records, col)
		if err != nil {
			return nil, err
		}
		c, err := Transform(values, labels)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		codes[col] = c
	}
	return buildMatrix(records, codes), nil
}

func buildMatrix(records []schema.ChurnRecord, codes map[string][]int) [][]float64 {
	x := make([][]float64, len(records))
	for i, r := range records {
		row := make([]float64, 0, len(schema.ChurnFeatureNames))
		row = append(row, float64(r.Tenure), r.MonthlyCharges, r.TotalCharges)
		for _, col := range schema.CategoricalColumns {
			row = append(row, float64(codes[col][i]))
		}
		x[i] = row
	}
	return x
}
