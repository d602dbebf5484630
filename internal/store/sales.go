package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vanshpreet5618/Helios/schema"
)

// ReadSales returns the daily sales series ordered by date.
func (s *SQLStore) ReadSales(ctx context.Context) ([]schema.TimeSeriesPoint, error) {
	query := fmt.Sprintf(`SELECT date, sales_amount FROM %s ORDER BY date`, s.table(salesTable))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []schema.TimeSeriesPoint
	for rows.Next() {
		var rawDate any
		var amount float64
		if err := rows.Scan(&rawDate, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		date, err := parseTimeValue(rawDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sales date: %w", err)
		}
		points = append(points, schema.TimeSeriesPoint{Timestamp: asDate(date), Value: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales rows: %w", err)
	}
	return points, nil
}

// WriteSales replaces the sales table with records.
func (s *SQLStore) WriteSales(ctx context.Context, records []schema.SalesRecord) error {
	insert := s.bind(fmt.Sprintf(`INSERT INTO %s (date, sales_amount, units_sold) VALUES (?, ?, ?)`, s.table(salesTable)))
	return s.replaceTable(ctx, salesTable, insert, len(records), func(stmt *sql.Stmt, i int) error {
		r := records[i]
		_, err := stmt.ExecContext(ctx, s.formatDate(r.Date), r.SalesAmount, r.UnitsSold)
		return err
	})
}

// replaceTable deletes every row of table and inserts n rows through insert,
// all in one transaction.
func (s *SQLStore) replaceTable(ctx context.Context, table, insert string, n int, exec func(stmt *sql.Stmt, i int) error) error {
	if err := validateTableName(table); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table(table))); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range n {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", i, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}
