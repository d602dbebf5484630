package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanshpreet5618/Helios/schema"
)

func newMemoryStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := NewStore(context.Background(), schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewStore_UnsupportedBackend(t *testing.T) {
	_, err := NewStore(context.Background(), schema.NoneBackend, "")
	assert.Error(t, err)
}

func TestStore_Sales(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	records := []schema.SalesRecord{
		{Date: day(2024, 1, 2), SalesAmount: 52000.5, UnitsSold: 520},
		{Date: day(2024, 1, 1), SalesAmount: 48000, UnitsSold: 480},
	}
	require.NoError(t, s.WriteSales(ctx, records))

	points, err := s.ReadSales(ctx)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, day(2024, 1, 1), points[0].Timestamp)
	assert.Equal(t, 48000.0, points[0].Value)
	assert.Equal(t, day(2024, 1, 2), points[1].Timestamp)

	// A second write replaces the table.
	require.NoError(t, s.WriteSales(ctx, records[:1]))
	points, err = s.ReadSales(ctx)
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestStore_Churn(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.ChurnRate(ctx)
	assert.ErrorIs(t, err, ErrNoChurnData)

	records := []schema.ChurnRecord{
		{CustomerID: "0001-A", Tenure: 1, MonthlyCharges: 70.5, TotalCharges: 70.5, Contract: "Month-to-month",
			InternetService: "Fiber optic", OnlineSecurity: "No", TechSupport: "No", PaymentMethod: "Electronic check", Churned: true},
		{CustomerID: "0002-B", Tenure: 40, MonthlyCharges: 50, TotalCharges: 2000, Contract: "Two year",
			InternetService: "DSL", OnlineSecurity: "Yes", TechSupport: "Yes", PaymentMethod: "Mailed check"},
		{Tenure: 12, MonthlyCharges: 20, TotalCharges: 240, Contract: "One year",
			InternetService: "No", OnlineSecurity: "No internet service", TechSupport: "No internet service", PaymentMethod: "Bank transfer (automatic)"},
	}
	require.NoError(t, s.WriteChurn(ctx, records))

	got, err := s.ReadChurn(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, records[0], got[0])
	assert.Equal(t, "row-3", got[2].CustomerID)
	assert.False(t, got[2].Churned)

	rate, err := s.ChurnRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 33.3, rate)
}

func TestStore_Forecast(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.LatestForecast(ctx)
	assert.ErrorIs(t, err, ErrNoForecast)

	rows := []schema.ForecastRow{
		{Timestamp: day(2024, 3, 1), PointEstimate: 100, LowerBound: 90, UpperBound: 110},
		{Timestamp: day(2024, 3, 2), PointEstimate: 101, LowerBound: 91, UpperBound: 111},
		{Timestamp: day(2024, 3, 3), PointEstimate: 102, LowerBound: 92, UpperBound: 112},
	}
	require.NoError(t, s.ReplaceForecast(ctx, rows))

	all, err := s.ReadForecast(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, rows, all)

	limited, err := s.ReadForecast(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, rows[:2], limited)

	latest, err := s.LatestForecast(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows[2], latest)

	// Replacing drops rows that are no longer present.
	require.NoError(t, s.ReplaceForecast(ctx, rows[:1]))
	all, err = s.ReadForecast(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, rows[:1], all)
}

func TestStore_ReplaceForecastRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	rows := []schema.ForecastRow{{Timestamp: day(2024, 3, 1), PointEstimate: 1, LowerBound: 0, UpperBound: 2}}
	require.NoError(t, s.ReplaceForecast(ctx, rows))

	// Duplicate dates violate the primary key, so the old forecast must survive.
	dup := []schema.ForecastRow{
		{Timestamp: day(2024, 4, 1), PointEstimate: 5, LowerBound: 4, UpperBound: 6},
		{Timestamp: day(2024, 4, 1), PointEstimate: 5, LowerBound: 4, UpperBound: 6},
	}
	assert.Error(t, s.ReplaceForecast(ctx, dup))

	all, err := s.ReadForecast(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, rows, all)
}

func TestStore_Runs(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	start := time.Now().Add(-2 * time.Second)
	id1, err := s.BeginRun(ctx, start, map[string]any{"artifact_dir": "artifacts"})
	require.NoError(t, err)
	assert.Greater(t, id1, int64(0))

	report := &schema.ClassificationReport{Accuracy: 0.81}
	require.NoError(t, s.EndRun(ctx, id1, time.Now(), schema.TrainResult{ForecastRows: 1185, Report: report, ModelVersion: "abc123"}))

	id2, err := s.BeginRun(ctx, time.Now(), nil)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	runs, err := s.GetRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, id2, runs[0].RunID)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].ChurnAccuracy)

	finished := runs[1]
	assert.Equal(t, id1, finished.RunID)
	require.NotNil(t, finished.EndTime)
	require.NotNil(t, finished.RunDurationMs)
	assert.GreaterOrEqual(t, *finished.RunDurationMs, int32(2000))
	assert.Equal(t, int32(1185), finished.ForecastRows)
	require.NotNil(t, finished.ChurnAccuracy)
	assert.InDelta(t, 0.81, *finished.ChurnAccuracy, 1e-9)
	require.NotNil(t, finished.ModelVersion)
	assert.Equal(t, "abc123", *finished.ModelVersion)
	require.NotNil(t, finished.ConfigParams)
	assert.JSONEq(t, `{"artifact_dir":"artifacts"}`, *finished.ConfigParams)

	assert.Error(t, s.EndRun(ctx, 999, time.Now(), schema.TrainResult{}))
}

func TestStore_StatusAndClear(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	require.NoError(t, s.WriteSales(ctx, []schema.SalesRecord{{Date: day(2024, 1, 1), SalesAmount: 1, UnitsSold: 100}}))
	require.NoError(t, s.ReplaceForecast(ctx, []schema.ForecastRow{{Timestamp: day(2024, 6, 30), PointEstimate: 1, LowerBound: 1, UpperBound: 1}}))
	_, err := s.BeginRun(ctx, time.Now(), nil)
	require.NoError(t, err)

	status, err := s.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, uint(4), status.SchemaVersion)
	assert.Equal(t, 1, status.SalesRows)
	assert.Equal(t, 0, status.ChurnRows)
	assert.Equal(t, 1, status.ForecastRows)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, day(2024, 6, 30), status.LatestForecastAt)
	assert.Len(t, status.TableSizes, len(allTables))

	var buf bytes.Buffer
	PrintStoreStatus(&buf, status)
	assert.Contains(t, buf.String(), "Store Backend: sqlite")
	assert.Contains(t, buf.String(), "Forecast Through: 2024-06-30")
	assert.Contains(t, buf.String(), "sales_data: 1 rows")

	require.NoError(t, s.Clear(ctx))
	status, err = s.GetStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.SalesRows)
	assert.Zero(t, status.ForecastRows)
	assert.Zero(t, status.TotalRuns)
	assert.True(t, status.LatestForecastAt.IsZero())
}

func TestMigrate_FileDatabase(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "helios.db")
	var out bytes.Buffer

	require.NoError(t, Migrate(ctx, schema.SQLiteBackend, dsn, -1, &out))
	assert.Contains(t, out.String(), "to version 4")

	out.Reset()
	require.NoError(t, Migrate(ctx, schema.SQLiteBackend, dsn, -1, &out))
	assert.Contains(t, out.String(), "already at the latest version")

	out.Reset()
	require.NoError(t, Migrate(ctx, schema.SQLiteBackend, dsn, 2, &out))
	assert.Contains(t, out.String(), "from version 4 to version 2")

	out.Reset()
	require.NoError(t, Migrate(ctx, schema.SQLiteBackend, dsn, 0, &out))
	assert.Contains(t, out.String(), "rolled back")

	// Opening a store brings the schema back up.
	s, err := NewStore(ctx, schema.SQLiteBackend, dsn)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	status, err := s.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(4), status.SchemaVersion)
}

func TestBind(t *testing.T) {
	pg := &SQLStore{backend: schema.PostgreSQLBackend}
	lite := &SQLStore{backend: schema.SQLiteBackend}
	q := "UPDATE t SET a = ?, b = ? WHERE id = ?"
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", pg.bind(q))
	assert.Equal(t, q, lite.bind(q))
}

func TestQuoteAndValidateTableName(t *testing.T) {
	assert.Equal(t, "`sales_data`", quoteTableName("sales_data", schema.MySQLBackend))
	assert.Equal(t, `"sales_data"`, quoteTableName("sales_data", schema.PostgreSQLBackend))
	assert.Equal(t, `"sales_data"`, quoteTableName("sales_data", schema.SQLiteBackend))

	assert.NoError(t, validateTableName("helios_training_runs"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("1table"))
	assert.Error(t, validateTableName("sales; DROP TABLE x"))
}

func TestParseTimeValue(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 10, time.UTC)
	tests := []struct {
		name  string
		input any
		want  time.Time
		fails bool
	}{
		{name: "native", input: ts, want: ts},
		{name: "rfc3339", input: ts.Format(time.RFC3339Nano), want: ts},
		{name: "date", input: "2024-05-06", want: day(2024, 5, 6)},
		{name: "bytes", input: []byte("2024-05-06"), want: day(2024, 5, 6)},
		{name: "nil", input: nil, fails: true},
		{name: "garbage", input: "yesterday", fails: true},
		{name: "int", input: 42, fails: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeValue(tt.input)
			if tt.fails {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}
