package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/schema"
)

// TrainOptions configures one training invocation.
type TrainOptions struct {
	Forecast ForecastOptions
	Churn    ChurnOptions
}

// DefaultTrainOptions returns the options used by the train command.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Forecast: DefaultForecastOptions(),
		Churn:    DefaultChurnOptions(),
	}
}

// forecastStore is the part of the store the forecast step touches.
type forecastStore interface {
	contract.SalesStore
	contract.ForecastStore
}

// TrainForecast fits the forecaster on the stored sales series and replaces
// the stored forecast with the new rows.
func TrainForecast(ctx context.Context, st forecastStore, opts ForecastOptions) (int, error) {
	points, err := st.ReadSales(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read sales: %w", err)
	}
	rows, err := Forecast(points, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to forecast sales: %w", err)
	}
	if err := st.ReplaceForecast(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to store forecast: %w", err)
	}
	return len(rows), nil
}

// TrainChurnModel fits the churn classifier on the stored subscribers and
// saves it. When only the save fails, the fitted model is still returned
// alongside the error.
func TrainChurnModel(ctx context.Context, st contract.ChurnStore, repo ModelRepository, opts ChurnOptions) (*ChurnModel, schema.ModelSummary, error) {
	records, err := st.ReadChurn(ctx)
	if err != nil {
		return nil, schema.ModelSummary{}, fmt.Errorf("failed to read churn data: %w", err)
	}
	model, err := TrainChurn(records, opts)
	if err != nil {
		return nil, schema.ModelSummary{}, err
	}
	summary, err := repo.SaveModel(model)
	if err != nil {
		return model, schema.ModelSummary{}, fmt.Errorf("failed to save churn model: %w", err)
	}
	return model, summary, nil
}

// RunTraining runs the forecast and churn steps and records the run.
// The steps are independent: a failed step is logged and reported in the
// joined error while the other one still runs.
func RunTraining(ctx context.Context, cfg *contract.Config, env *Env, opts TrainOptions) (schema.TrainResult, error) {
	if err := env.requireStore(); err != nil {
		return schema.TrainResult{}, err
	}
	if env.Models == nil {
		return schema.TrainResult{}, errNoModels
	}
	logger := env.logger()
	start := time.Now()

	runID, err := env.Store.BeginRun(ctx, start, trainParams(cfg, opts))
	if err != nil {
		logger.Warn("failed to record training run start", "error", err)
		runID = 0
	}

	var result schema.TrainResult
	var errs []error

	rows, err := TrainForecast(ctx, env.Store, opts.Forecast)
	if err != nil {
		logger.Error("forecast training failed", "error", err)
		errs = append(errs, fmt.Errorf("forecast: %w", err))
	} else {
		result.ForecastRows = rows
		logger.Info("forecast stored", "rows", rows)
	}

	model, summary, err := TrainChurnModel(ctx, env.Store, env.Models, opts.Churn)
	if model != nil {
		report := model.Report
		result.Report = &report
		logger.Info("churn classifier evaluated", "accuracy", report.Accuracy, "train_rows", model.TrainRows, "test_rows", model.TestRows)
	}
	if err != nil {
		logger.Error("churn training failed", "error", err)
		errs = append(errs, fmt.Errorf("churn: %w", err))
	} else {
		result.ModelVersion = summary.ModelVersion
	}

	result.Duration = time.Since(start)
	if runID > 0 {
		if err := env.Store.EndRun(ctx, runID, time.Now(), result); err != nil {
			logger.Warn("failed to record training run end", "run_id", runID, "error", err)
		}
	}
	return result, errors.Join(errs...)
}

// trainParams is the configuration recorded with a training run.
func trainParams(cfg *contract.Config, opts TrainOptions) map[string]any {
	return map[string]any{
		"artifact_dir":  cfg.ArtifactDir,
		"horizon":       opts.Forecast.Horizon,
		"interval":      opts.Forecast.IntervalWidth,
		"num_trees":     opts.Churn.Boost.NumTrees,
		"max_depth":     opts.Churn.Boost.MaxDepth,
		"learning_rate": opts.Churn.Boost.LearningRate,
		"seed":          opts.Churn.Seed,
		"test_fraction": opts.Churn.TestFraction,
	}
}

// ExecuteTrain trains both models, prints a summary and fails if any step failed.
func ExecuteTrain(ctx context.Context, cfg *contract.Config, env *Env) error {
	result, err := RunTraining(ctx, cfg, env, DefaultTrainOptions())
	if errors.Is(err, errNoStore) || errors.Is(err, errNoModels) {
		return err
	}
	if perr := env.out().WriteTrainResult(result, cfg); perr != nil {
		return errors.Join(err, perr)
	}
	return err
}
