package schema

import "time"

// StoreStatus represents the status of the relational store.
type StoreStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	SchemaVersion    uint             `json:"schema_version"`
	SalesRows        int              `json:"sales_rows"`
	ChurnRows        int              `json:"churn_rows"`
	ForecastRows     int              `json:"forecast_rows"`
	TotalRuns        int              `json:"total_runs"`
	LastRunID        int64            `json:"last_run_id"`
	LastRunTime      time.Time        `json:"last_run_time"`
	OldestRunTime    time.Time        `json:"oldest_run_time"`
	LatestForecastAt time.Time        `json:"latest_forecast_at"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}

// TrainingRunRecord represents a row from the helios_training_runs table.
type TrainingRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	ForecastRows  int32
	ChurnAccuracy *float64
	ModelVersion  *string
	ConfigParams  *string
}
