// Package schema has the data models and constants shared by all parts of helios.
package schema

import "time"

// TimeSeriesPoint is one daily observation of a univariate series.
// A series must be chronological with at most one point per calendar date.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"ds"` // Calendar date, time of day is ignored
	Value     float64   `json:"y"`  // Observed value, must be finite
}

// ForecastRow is one row of forecast output covering history and horizon.
// LowerBound <= PointEstimate <= UpperBound always holds.
type ForecastRow struct {
	Timestamp     time.Time `json:"ds"`
	PointEstimate float64   `json:"yhat"`
	LowerBound    float64   `json:"yhat_lower"`
	UpperBound    float64   `json:"yhat_upper"`
}

// SalesRecord is one row of the sales_data table.
type SalesRecord struct {
	Date        time.Time `json:"date"`
	SalesAmount float64   `json:"sales_amount"`
	UnitsSold   int       `json:"units_sold"`
}

// ChurnRecord is one subscriber row of the telco_churn table.
type ChurnRecord struct {
	CustomerID      string  `json:"customer_id"`
	Tenure          int     `json:"tenure"`
	MonthlyCharges  float64 `json:"monthly_charges"`
	TotalCharges    float64 `json:"total_charges"`
	Contract        string  `json:"contract"`
	InternetService string  `json:"internet_service"`
	OnlineSecurity  string  `json:"online_security"`
	TechSupport     string  `json:"tech_support"`
	PaymentMethod   string  `json:"payment_method"`
	Churned         bool    `json:"churned"`
}

// Categorical returns the value of a categorical column by name.
// The second result is false for unknown column names.
func (r ChurnRecord) Categorical(column string) (string, bool) {
	switch column {
	case ContractColumn:
		return r.Contract, true
	case InternetServiceColumn:
		return r.InternetService, true
	case OnlineSecurityColumn:
		return r.OnlineSecurity, true
	case TechSupportColumn:
		return r.TechSupport, true
	case PaymentMethodColumn:
		return r.PaymentMethod, true
	default:
		return "", false
	}
}

// CategoryEncoding maps each categorical column to its ordered labels.
// A label's integer code is its position in the slice.
type CategoryEncoding map[string][]string

// Columns returns the encoded column names in CategoricalColumns order,
// followed by any extra columns in no particular order.
func (e CategoryEncoding) Columns() []string {
	cols := make([]string, 0, len(e))
	seen := make(map[string]struct{}, len(e))
	for _, c := range CategoricalColumns {
		if _, ok := e[c]; ok {
			cols = append(cols, c)
			seen[c] = struct{}{}
		}
	}
	for c := range e {
		if _, ok := seen[c]; !ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// InsightContext is the ephemeral input of one insight request.
type InsightContext struct {
	Summary string `json:"summary"` // Compact textual summary of model output
	Query   string `json:"query"`   // Business question to answer
}

// Insight is the output of the synthesizer.
type Insight struct {
	Tier InsightTier `json:"tier"`
	Text string      `json:"text"`
}

// String renders the insight with its tier marker.
func (i Insight) String() string {
	if i.Tier == GeneratedTier {
		return GeneratedMarker + i.Text
	}
	return TemplateMarker + i.Text
}

// ClassMetrics holds precision, recall and F1 for a single class.
type ClassMetrics struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// ClassificationReport summarizes held-out evaluation of the classifier.
type ClassificationReport struct {
	Accuracy    float64        `json:"accuracy"`
	Classes     []ClassMetrics `json:"classes"`
	MacroAvg    ClassMetrics   `json:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg"`
	Support     int            `json:"support"`
}

// TrainResult is what a training invocation produced.
type TrainResult struct {
	ForecastRows int                   `json:"forecast_rows"`
	Report       *ClassificationReport `json:"report,omitempty"`
	ModelVersion string                `json:"model_version,omitempty"`
	Duration     time.Duration         `json:"duration"`
}

// BusinessReport is the two-insight summary printed by the report command.
type BusinessReport struct {
	Sales string `json:"sales"`
	Churn string `json:"churn"`
}
