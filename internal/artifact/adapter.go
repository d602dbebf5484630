package artifact

import (
	"errors"

	"github.com/vanshpreet5618/Helios/core"
	"github.com/vanshpreet5618/Helios/schema"
)

var _ core.ModelRepository = &Repository{} // Compile-time check

// SaveModel saves a freshly trained churn model and summarizes the new bundle.
func (r *Repository) SaveModel(model *core.ChurnModel) (schema.ModelSummary, error) {
	if model == nil {
		return schema.ModelSummary{}, errors.New("cannot save a nil churn model")
	}
	report := model.Report
	manifest, err := r.Save(model.Classifier, model.Encoding, &report)
	if err != nil {
		return schema.ModelSummary{}, err
	}
	return r.summarize(manifest), nil
}

// LoadModel loads the bundle and returns its classifier, encoding and summary.
func (r *Repository) LoadModel() (*core.TrainedClassifier, schema.CategoryEncoding, schema.ModelSummary, error) {
	bundle, err := r.Load()
	if err != nil {
		return nil, nil, schema.ModelSummary{}, err
	}
	return bundle.Classifier, bundle.Encoding, r.summarize(bundle.Manifest), nil
}

func (r *Repository) summarize(m Manifest) schema.ModelSummary {
	return schema.ModelSummary{
		BundleID:           m.BundleID,
		ModelVersion:       m.ModelVersion,
		CreatedAt:          m.CreatedAt,
		Path:               r.Path(),
		NumTrees:           m.Params.NumTrees,
		MaxDepth:           m.Params.MaxDepth,
		LearningRate:       m.Params.LearningRate,
		FeatureNames:       m.FeatureNames,
		CategoricalColumns: m.CategoricalColumns,
		Accuracy:           m.Accuracy,
	}
}
