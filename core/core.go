// Package core has the forecasting, churn classification and insight
// orchestration behind every helios command.
package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vanshpreet5618/Helios/core/insight"
	"github.com/vanshpreet5618/Helios/internal/contract"
	"github.com/vanshpreet5618/Helios/internal/logging"
	"github.com/vanshpreet5618/Helios/internal/outwriter"
	"github.com/vanshpreet5618/Helios/schema"
)

// ModelRepository saves and loads the churn classifier bundle.
type ModelRepository interface {
	// SaveModel persists a trained model and summarizes the saved bundle
	SaveModel(model *ChurnModel) (schema.ModelSummary, error)

	// LoadModel reads back the classifier with the encoding it was fitted on
	LoadModel() (*TrainedClassifier, schema.CategoryEncoding, schema.ModelSummary, error)
}

// Env carries the collaborators of a command. A command only touches the
// fields it needs, and the rest may be nil.
type Env struct {
	Store  contract.Store
	Models ModelRepository
	Synth  *insight.Synthesizer
	Out    *outwriter.OutWriter
	Logger *slog.Logger
}

// ExecutorFunc defines the function signature for executing helios commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, env *Env) error

// Returned by executors when Env lacks a collaborator they need.
var (
	errNoStore  = errors.New("no store configured")
	errNoModels = errors.New("no model repository configured")
)

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logging.New("core")
}

func (e *Env) out() *outwriter.OutWriter {
	if e.Out != nil {
		return e.Out
	}
	return outwriter.NewOutWriter()
}

func (e *Env) requireStore() error {
	if e.Store == nil {
		return errNoStore
	}
	return nil
}
