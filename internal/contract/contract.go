// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/vanshpreet5618/Helios/schema"
)

// SalesStore reads and seeds the daily sales series.
type SalesStore interface {
	// ReadSales returns the sales series ordered by date
	ReadSales(ctx context.Context) ([]schema.TimeSeriesPoint, error)

	// WriteSales replaces the sales table with the given records
	WriteSales(ctx context.Context, records []schema.SalesRecord) error
}

// ChurnStore reads and loads the subscriber table.
type ChurnStore interface {
	// ReadChurn returns every subscriber row
	ReadChurn(ctx context.Context) ([]schema.ChurnRecord, error)

	// WriteChurn replaces the subscriber table with the given records
	WriteChurn(ctx context.Context, records []schema.ChurnRecord) error

	// ChurnRate returns the percentage of churned subscribers rounded to one decimal
	ChurnRate(ctx context.Context) (float64, error)
}

// ForecastStore persists forecast output as a whole table.
type ForecastStore interface {
	// ReplaceForecast deletes the previous forecast and inserts rows in one transaction
	ReplaceForecast(ctx context.Context, rows []schema.ForecastRow) error

	// ReadForecast returns up to limit rows ordered by date, all rows when limit <= 0
	ReadForecast(ctx context.Context, limit int) ([]schema.ForecastRow, error)

	// LatestForecast returns the row with the greatest date
	LatestForecast(ctx context.Context) (schema.ForecastRow, error)
}

// RunTracker records training invocations.
type RunTracker interface {
	// BeginRun creates a new training run and returns its unique ID
	BeginRun(ctx context.Context, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the training run with completion data
	EndRun(ctx context.Context, runID int64, endTime time.Time, result schema.TrainResult) error

	// GetRuns returns every recorded run, newest first
	GetRuns(ctx context.Context) ([]schema.TrainingRunRecord, error)
}

// Store is the relational store behind DATABASE_URL.
type Store interface {
	SalesStore
	ChurnStore
	ForecastStore
	RunTracker

	// GetStatus returns status information about the store
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Clear removes all rows from every table
	Clear(ctx context.Context) error

	// Close closes the underlying connection
	Close() error
}
