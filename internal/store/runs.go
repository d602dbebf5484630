package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vanshpreet5618/Helios/schema"
)

// BeginRun creates a new training run and returns its unique ID.
func (s *SQLStore) BeginRun(ctx context.Context, startTime time.Time, configParams map[string]any) (int64, error) {
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := s.table(runsTable)

	var runID int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = s.db.QueryRowContext(ctx, query, s.formatTime(startTime), string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = s.db.ExecContext(ctx, query, s.formatTime(startTime), string(configJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert training run: %w", err)
		}
		runID, err = result.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert training run: %w", err)
	}
	return runID, nil
}

// EndRun updates the training run with completion data.
func (s *SQLStore) EndRun(ctx context.Context, runID int64, endTime time.Time, result schema.TrainResult) error {
	quotedTableName := s.table(runsTable)

	var rawStart any
	query := s.bind(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName))
	if err := s.db.QueryRowContext(ctx, query, runID).Scan(&rawStart); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	startTime, err := parseTimeValue(rawStart)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}

	var accuracy *float64
	if result.Report != nil {
		accuracy = &result.Report.Accuracy
	}
	var version *string
	if result.ModelVersion != "" {
		version = &result.ModelVersion
	}

	update := s.bind(fmt.Sprintf(
		`UPDATE %s SET end_time = ?, run_duration_ms = ?, forecast_rows = ?, churn_accuracy = ?, model_version = ? WHERE run_id = ?`,
		quotedTableName))
	durationMs := endTime.Sub(startTime).Milliseconds()
	if _, err := s.db.ExecContext(ctx, update,
		s.formatTime(endTime), durationMs, result.ForecastRows, accuracy, version, runID,
	); err != nil {
		return fmt.Errorf("failed to update training run: %w", err)
	}
	return nil
}

// GetRuns returns every recorded run, newest first.
func (s *SQLStore) GetRuns(ctx context.Context) ([]schema.TrainingRunRecord, error) {
	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, forecast_rows,
		churn_accuracy, model_version, config_params FROM %s ORDER BY run_id DESC`, s.table(runsTable))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query training runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.TrainingRunRecord
	for rows.Next() {
		var record schema.TrainingRunRecord
		var rawStart, rawEnd any
		if err := rows.Scan(&record.RunID, &rawStart, &rawEnd, &record.RunDurationMs, &record.ForecastRows,
			&record.ChurnAccuracy, &record.ModelVersion, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan training run: %w", err)
		}
		if record.StartTime, err = parseTimeValue(rawStart); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if rawEnd != nil {
			endTime, err := parseTimeValue(rawEnd)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating training runs: %w", err)
	}
	return results, nil
}
