package core

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/ingest"
	"github.com/vanshpreet5618/Helios/internal/parquet"
	"github.com/vanshpreet5618/Helios/schema"
)

// errParquetFile is returned when parquet output has nowhere to go.
var errParquetFile = errors.New("parquet output requires --output-file")

// errNoForecast is returned when the forecast table is empty.
var errNoForecast = errors.New("no forecast rows stored; run 'helios train' first")

// LoadChurn reads the churn CSV export and replaces the stored subscribers.
func LoadChurn(ctx context.Context, st contract.ChurnStore, r io.Reader) (int, error) {
	records, err := ingest.ReadChurnCSV(r)
	if err != nil {
		return 0, fmt.Errorf("failed to parse churn CSV: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: churn CSV has no rows", ErrEmptyDataset)
	}
	if err := st.WriteChurn(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to store churn data: %w", err)
	}
	return len(records), nil
}

// SeedSales generates the synthetic sales series and replaces the stored one.
func SeedSales(ctx context.Context, st contract.SalesStore, opts ingest.SalesOptions) (int, error) {
	records, err := ingest.GenerateSales(opts)
	if err != nil {
		return 0, err
	}
	if err := st.WriteSales(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to store sales data: %w", err)
	}
	return len(records), nil
}

// ExecuteForecastShow prints the last ResultLimit forecast rows.
func ExecuteForecastShow(ctx context.Context, cfg *contract.Config, env *Env) error {
	rows, err := readForecast(ctx, env)
	if err != nil {
		return err
	}
	if len(rows) > cfg.ResultLimit {
		rows = rows[len(rows)-cfg.ResultLimit:]
	}
	return writeForecast(cfg, env, rows)
}

// ExecuteForecastExport writes every forecast row.
func ExecuteForecastExport(ctx context.Context, cfg *contract.Config, env *Env) error {
	rows, err := readForecast(ctx, env)
	if err != nil {
		return err
	}
	return writeForecast(cfg, env, rows)
}

func readForecast(ctx context.Context, env *Env) ([]schema.ForecastRow, error) {
	if err := env.requireStore(); err != nil {
		return nil, err
	}
	rows, err := env.Store.ReadForecast(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast: %w", err)
	}
	if len(rows) == 0 {
		return nil, errNoForecast
	}
	return rows, nil
}

func writeForecast(cfg *contract.Config, env *Env, rows []schema.ForecastRow) error {
	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return errParquetFile
		}
		if err := parquet.WriteForecastParquet(parquet.ConvertForecastRows(rows), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet forecast to %s\n", cfg.OutputFile)
		return nil
	}
	return env.out().WriteForecast(rows, cfg)
}

// ExecuteRuns prints recorded training runs, newest first.
func ExecuteRuns(ctx context.Context, cfg *contract.Config, env *Env) error {
	if err := env.requireStore(); err != nil {
		return err
	}
	runs, err := env.Store.GetRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to read training runs: %w", err)
	}
	if cfg.Output == schema.ParquetOut {
		if cfg.OutputFile == "" {
			return errParquetFile
		}
		if err := parquet.WriteTrainingRunsParquet(parquet.ConvertTrainingRunRecords(runs), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet training runs to %s\n", cfg.OutputFile)
		return nil
	}
	return env.out().WriteRuns(runs, cfg)
}

// ExecuteModelShow loads and verifies the saved bundle and prints its manifest.
func ExecuteModelShow(_ context.Context, cfg *contract.Config, env *Env) error {
	if env.Models == nil {
		return errNoModels
	}
	_, _, summary, err := env.Models.LoadModel()
	if err != nil {
		return err
	}
	return env.out().WriteModelSummary(summary, cfg)
}

// ScoreStoredChurn scores every stored subscriber with the saved model and
// returns the highest-risk ones first, at most limit of them.
func ScoreStoredChurn(ctx context.Context, st contract.ChurnStore, repo ModelRepository, limit int) ([]schema.ChurnScore, schema.ModelSummary, error) {
	clf, encoding, summary, err := repo.LoadModel()
	if err != nil {
		return nil, schema.ModelSummary{}, err
	}
	records, err := st.ReadChurn(ctx)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to read churn data: %w", err)
	}
	probs, err := ScoreChurn(clf, encoding, records)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to score churn data: %w", err)
	}

	scores := make([]schema.ChurnScore, len(records))
	for i, r := range records {
		scores[i] = schema.ChurnScore{
			CustomerID:     r.CustomerID,
			Probability:    probs[i],
			Contract:       r.Contract,
			Tenure:         r.Tenure,
			MonthlyCharges: r.MonthlyCharges,
			Churned:        r.Churned,
		}
	}
	slices.SortStableFunc(scores, func(a, b schema.ChurnScore) int {
		if c := cmp.Compare(b.Probability, a.Probability); c != 0 {
			return c
		}
		return cmp.Compare(a.CustomerID, b.CustomerID)
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, summary, nil
}

// ExecuteModelScore prints the highest-risk subscribers under the saved model.
func ExecuteModelScore(ctx context.Context, cfg *contract.Config, env *Env) error {
	if err := env.requireStore(); err != nil {
		return err
	}
	if env.Models == nil {
		return errNoModels
	}
	scores, summary, err := ScoreStoredChurn(ctx, env.Store, env.Models, cfg.ResultLimit)
	if err != nil {
		return err
	}
	return env.out().WriteChurnScores(scores, summary, cfg)
}
