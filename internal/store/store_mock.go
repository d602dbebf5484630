package store

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// MockStore is a mock implementation of contract.Store for testing.
type MockStore struct {
	mock.Mock
}

var _ contract.Store = &MockStore{} // Compile-time check

// ReadSales implements the Store interface.
func (m *MockStore) ReadSales(ctx context.Context) ([]schema.TimeSeriesPoint, error) {
	args := m.Called(ctx)
	points, _ := args.Get(0).([]schema.TimeSeriesPoint)
	return points, args.Error(1)
}

// WriteSales implements the Store interface.
func (m *MockStore) WriteSales(ctx context.Context, records []schema.SalesRecord) error {
	return m.Called(ctx, records).Error(0)
}

// ReadChurn implements the Store interface.
func (m *MockStore) ReadChurn(ctx context.Context) ([]schema.ChurnRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.ChurnRecord)
	return records, args.Error(1)
}

// WriteChurn implements the Store interface.
func (m *MockStore) WriteChurn(ctx context.Context, records []schema.ChurnRecord) error {
	return m.Called(ctx, records).Error(0)
}

// ChurnRate implements the Store interface.
func (m *MockStore) ChurnRate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// ReplaceForecast implements the Store interface.
func (m *MockStore) ReplaceForecast(ctx context.Context, rows []schema.ForecastRow) error {
	return m.Called(ctx, rows).Error(0)
}

// ReadForecast implements the Store interface.
func (m *MockStore) ReadForecast(ctx context.Context, limit int) ([]schema.ForecastRow, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]schema.ForecastRow)
	return rows, args.Error(1)
}

// LatestForecast implements the Store interface.
func (m *MockStore) LatestForecast(ctx context.Context) (schema.ForecastRow, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.ForecastRow), args.Error(1)
}

// BeginRun implements the Store interface.
func (m *MockStore) BeginRun(ctx context.Context, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(ctx, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the Store interface.
func (m *MockStore) EndRun(ctx context.Context, runID int64, endTime time.Time, result schema.TrainResult) error {
	return m.Called(ctx, runID, endTime, result).Error(0)
}

// GetRuns implements the Store interface.
func (m *MockStore) GetRuns(ctx context.Context) ([]schema.TrainingRunRecord, error) {
	args := m.Called(ctx)
	runs, _ := args.Get(0).([]schema.TrainingRunRecord)
	return runs, args.Error(1)
}

// GetStatus implements the Store interface.
func (m *MockStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Clear implements the Store interface.
func (m *MockStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Close implements the Store interface.
func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
