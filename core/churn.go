package core

import (
	"fmt"

	"github.com/vanshpreet5618/Helios/schema"
)

// ChurnOptions configures churn classifier training.
type ChurnOptions struct {
	Boost        BoostParams
	TestFraction float64
	Seed         uint64
}

// DefaultChurnOptions returns the options used by the train command.
func DefaultChurnOptions() ChurnOptions {
	return ChurnOptions{
		Boost:        DefaultBoostParams(),
		TestFraction: DefaultTestFraction,
		Seed:         DefaultSplitSeed,
	}
}

// ChurnModel bundles a fitted classifier with the encoding it was fitted on
// and its held-out evaluation.
type ChurnModel struct {
	Classifier *TrainedClassifier
	Encoding   schema.CategoryEncoding
	Report     schema.ClassificationReport
	TrainRows  int
	TestRows   int
}

// churnClassNames labels the classification report rows.
var churnClassNames = [2]string{"0", "1"}

// TrainChurn encodes the dataset, splits it by label and fits the classifier.
// Evaluation on the held-out rows is reported and never feeds back into training.
func TrainChurn(records []schema.ChurnRecord, opts ChurnOptions) (*ChurnModel, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no churn records", ErrEmptyDataset)
	}

	labels := make([]int, len(records))
	var positives int
	for i, r := range records {
		if r.Churned {
			labels[i] = 1
			positives++
		}
	}
	if positives < 2 || len(records)-positives < 2 {
		return nil, fmt.Errorf("%w: %d churned of %d rows", ErrLabelImbalance, positives, len(records))
	}

	x, encoding, err := EncodeColumns(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode churn features: %w", err)
	}

	trainIdx, testIdx, err := StratifiedSplit(labels, opts.TestFraction, opts.Seed)
	if err != nil {
		return nil, err
	}

	xTrain := make([][]float64, len(trainIdx))
	yTrain := make([]float64, len(trainIdx))
	for k, i := range trainIdx {
		xTrain[k] = x[i]
		yTrain[k] = float64(labels[i])
	}

	clf, err := TrainBoosted(xTrain, yTrain, schema.ChurnFeatureNames, opts.Boost)
	if err != nil {
		return nil, fmt.Errorf("failed to fit churn classifier: %w", err)
	}
	clf.CategoricalFeatures = append([]string(nil), schema.CategoricalColumns...)

	yTrue := make([]int, len(testIdx))
	yPred := make([]int, len(testIdx))
	for k, i := range testIdx {
		yTrue[k] = labels[i]
		yPred[k] = clf.Predict(x[i])
	}

	return &ChurnModel{
		Classifier: clf,
		Encoding:   encoding,
		Report:     Evaluate(yTrue, yPred, churnClassNames),
		TrainRows:  len(trainIdx),
		TestRows:   len(testIdx),
	}, nil
}

// ScoreChurn returns the churn probability of each record under a trained model.
func ScoreChurn(clf *TrainedClassifier, encoding schema.CategoryEncoding, records []schema.ChurnRecord) ([]float64, error) {
	x, err := ApplyEncoding(records, encoding)
	if err != nil {
		return nil, err
	}
	probs := make([]float64, len(x))
	for i, row := range x {
		probs[i] = clf.PredictProba(row)
	}
	return probs, nil
}
