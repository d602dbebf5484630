package schema

import "time"

// ModelSummary describes a saved churn classifier bundle.
type ModelSummary struct {
	BundleID           string    `json:"bundle_id"`
	ModelVersion       string    `json:"model_version"`
	CreatedAt          time.Time `json:"created_at"`
	Path               string    `json:"path"`
	NumTrees           int       `json:"num_trees"`
	MaxDepth           int       `json:"max_depth"`
	LearningRate       float64   `json:"learning_rate"`
	FeatureNames       []string  `json:"feature_names"`
	CategoricalColumns []string  `json:"categorical_columns"`
	Accuracy           *float64  `json:"accuracy,omitempty"`
}

// ChurnScore is the predicted churn probability of one subscriber.
type ChurnScore struct {
	CustomerID     string  `json:"customer_id"`
	Probability    float64 `json:"probability"`
	Contract       string  `json:"contract"`
	Tenure         int     `json:"tenure"`
	MonthlyCharges float64 `json:"monthly_charges"`
	Churned        bool    `json:"churned"`
}
