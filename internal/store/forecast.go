package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vanshpreet5618/Helios/schema"
)

// ReplaceForecast deletes the previous forecast and inserts rows in one transaction.
func (s *SQLStore) ReplaceForecast(ctx context.Context, rows []schema.ForecastRow) error {
	insert := s.bind(fmt.Sprintf(`INSERT INTO %s (ds, yhat, yhat_lower, yhat_upper) VALUES (?, ?, ?, ?)`, s.table(forecastTable)))
	return s.replaceTable(ctx, forecastTable, insert, len(rows), func(stmt *sql.Stmt, i int) error {
		r := rows[i]
		_, err := stmt.ExecContext(ctx, s.formatDate(r.Timestamp), r.PointEstimate, r.LowerBound, r.UpperBound)
		return err
	})
}

// ReadForecast returns up to limit rows ordered by date, or all rows when limit <= 0.
func (s *SQLStore) ReadForecast(ctx context.Context, limit int) ([]schema.ForecastRow, error) {
	query := fmt.Sprintf(`SELECT ds, yhat, yhat_lower, yhat_upper FROM %s ORDER BY ds`, s.table(forecastTable))
	var args []any
	if limit > 0 {
		query = s.bind(query + ` LIMIT ?`)
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecast: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.ForecastRow
	for rows.Next() {
		row, err := scanForecastRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forecast rows: %w", err)
	}
	return out, nil
}

// LatestForecast returns the row with the greatest date, or ErrNoForecast.
func (s *SQLStore) LatestForecast(ctx context.Context) (schema.ForecastRow, error) {
	query := fmt.Sprintf(`SELECT ds, yhat, yhat_lower, yhat_upper FROM %s ORDER BY ds DESC LIMIT 1`, s.table(forecastTable))
	row, err := scanForecastRow(s.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return schema.ForecastRow{}, ErrNoForecast
	}
	return row, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanForecastRow(sc rowScanner) (schema.ForecastRow, error) {
	var rawDate any
	var row schema.ForecastRow
	if err := sc.Scan(&rawDate, &row.PointEstimate, &row.LowerBound, &row.UpperBound); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return row, err
		}
		return row, fmt.Errorf("failed to scan forecast row: %w", err)
	}
	ds, err := parseTimeValue(rawDate)
	if err != nil {
		return row, fmt.Errorf("failed to parse forecast date: %w", err)
	}
	row.Timestamp = asDate(ds)
	return row, nil
}
