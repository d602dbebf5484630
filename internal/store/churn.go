package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"

	"github.com/vanshpreet5618/Helios/schema"
)

const churnColumns = `customer_id, tenure, monthly_charges, total_charges, contract,
	internet_service, online_security, tech_support, payment_method, churn`

// ReadChurn returns every subscriber row ordered by customer id.
func (s *SQLStore) ReadChurn(ctx context.Context) ([]schema.ChurnRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY customer_id`, churnColumns, s.table(churnTable))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query churn: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.ChurnRecord
	for rows.Next() {
		var r schema.ChurnRecord
		var churn string
		if err := rows.Scan(
			&r.CustomerID, &r.Tenure, &r.MonthlyCharges, &r.TotalCharges, &r.Contract,
			&r.InternetService, &r.OnlineSecurity, &r.TechSupport, &r.PaymentMethod, &churn,
		); err != nil {
			return nil, fmt.Errorf("failed to scan churn row: %w", err)
		}
		r.Churned = churn == schema.ChurnYes
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate churn rows: %w", err)
	}
	return records, nil
}

// WriteChurn replaces the subscriber table with records. Rows without a
// customer id get a positional one.
func (s *SQLStore) WriteChurn(ctx context.Context, records []schema.ChurnRecord) error {
	insert := s.bind(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table(churnTable), churnColumns))
	return s.replaceTable(ctx, churnTable, insert, len(records), func(stmt *sql.Stmt, i int) error {
		r := records[i]
		id := r.CustomerID
		if id == "" {
			id = "row-" + strconv.Itoa(i+1)
		}
		churn := schema.ChurnNo
		if r.Churned {
			churn = schema.ChurnYes
		}
		_, err := stmt.ExecContext(ctx,
			id, r.Tenure, r.MonthlyCharges, r.TotalCharges, r.Contract,
			r.InternetService, r.OnlineSecurity, r.TechSupport, r.PaymentMethod, churn,
		)
		return err
	})
}

// ChurnRate returns the share of churned subscribers as a percentage rounded
// to one decimal. It returns ErrNoChurnData on an empty table.
func (s *SQLStore) ChurnRate(ctx context.Context) (float64, error) {
	query := s.bind(fmt.Sprintf(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN churn = ? THEN 1 ELSE 0 END), 0) FROM %s`,
		s.table(churnTable)))
	var total, churned int64
	if err := s.db.QueryRowContext(ctx, query, schema.ChurnYes).Scan(&total, &churned); err != nil {
		return 0, fmt.Errorf("failed to query churn rate: %w", err)
	}
	if total == 0 {
		return 0, ErrNoChurnData
	}
	return math.Round(float64(churned)*1000/float64(total)) / 10, nil
}
