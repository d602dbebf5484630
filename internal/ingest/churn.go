// Package ingest reads the telecom churn export and generates the synthetic
// daily sales series.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vanshpreet5618/Helios/schema"
)

// Column headers of the telecom churn CSV export.
const (
	headerCustomerID      = "customerID"
	headerTenure          = "tenure"
	headerMonthlyCharges  = "MonthlyCharges"
	headerTotalCharges    = "TotalCharges"
	headerContract        = "Contract"
	headerInternetService = "InternetService"
	headerOnlineSecurity  = "OnlineSecurity"
	headerTechSupport     = "TechSupport"
	headerPaymentMethod   = "PaymentMethod"
	headerChurn           = "Churn"
)

// requiredHeaders must all be present. Extra columns are ignored.
var requiredHeaders = []string{
	headerCustomerID,
	headerTenure,
	headerMonthlyCharges,
	headerTotalCharges,
	headerContract,
	headerInternetService,
	headerOnlineSecurity,
	headerTechSupport,
	headerPaymentMethod,
	headerChurn,
}

// ErrMissingColumn is returned when the CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// ReadChurnCSV parses the telecom churn export.
// TotalCharges values that are not numbers, such as the blanks of new
// subscribers, become 0.
func ReadChurnCSV(r io.Reader) ([]schema.ChurnRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, h)
		}
	}

	var records []schema.ChurnRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		rec, err := parseChurnRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseChurnRow(row []string, index map[string]int) (schema.ChurnRecord, error) {
	get := func(h string) string { return strings.TrimSpace(row[index[h]]) }

	tenure, err := strconv.Atoi(get(headerTenure))
	if err != nil || tenure < 0 {
		return schema.ChurnRecord{}, fmt.Errorf("invalid tenure %q", get(headerTenure))
	}
	monthly, err := strconv.ParseFloat(get(headerMonthlyCharges), 64)
	if err != nil || monthly < 0 {
		return schema.ChurnRecord{}, fmt.Errorf("invalid MonthlyCharges %q", get(headerMonthlyCharges))
	}
	total := coerceFloat(get(headerTotalCharges))

	var churned bool
	switch strings.ToLower(get(headerChurn)) {
	case "yes", "1", "true":
		churned = true
	case "no", "0", "false":
	default:
		return schema.ChurnRecord{}, fmt.Errorf("invalid Churn %q", get(headerChurn))
	}

	return schema.ChurnRecord{
		CustomerID:      get(headerCustomerID),
		Tenure:          tenure,
		MonthlyCharges:  monthly,
		TotalCharges:    total,
		Contract:        get(headerContract),
		InternetService: get(headerInternetService),
		OnlineSecurity:  get(headerOnlineSecurity),
		TechSupport:     get(headerTechSupport),
		PaymentMethod:   get(headerPaymentMethod),
		Churned:         churned,
	}, nil
}

// coerceFloat parses v and maps anything unparseable, negative or non-finite to 0.
func coerceFloat(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
