package core

import (
	"github.com/vanshpreet5618/Helios/schema"
)

// Evaluate builds a classification report for binary predictions.
// classNames[0] names label 0 and classNames[1] names label 1.
func Evaluate(yTrue, yPred []int, classNames [2]string) schema.ClassificationReport {
	var tp, fp, fn, tn int
	for i := range yTrue {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			tp++
		case yTrue[i] == 0 && yPred[i] == 1:
			fp++
		case yTrue[i] == 1 && yPred[i] == 0:
			fn++
		default:
			tn++
		}
	}

	total := len(yTrue)
	report := schema.ClassificationReport{Support: total}
	if total > 0 {
		report.Accuracy = float64(tp+tn) / float64(total)
	}

	negative := classMetrics(classNames[0], tn, fn, fp, tn+fp)
	positive := classMetrics(classNames[1], tp, fp, fn, tp+fn)
	report.Classes = []schema.ClassMetrics{negative, positive}

	report.MacroAvg = schema.ClassMetrics{
		Label:     "macro avg",
		Precision: (negative.Precision + positive.Precision) / 2,
		Recall:    (negative.Recall + positive.Recall) / 2,
		F1:        (negative.F1 + positive.F1) / 2,
		Support:   total,
	}
	report.WeightedAvg = schema.ClassMetrics{Label: "weighted avg", Support: total}
	if total > 0 {
		for _, c := range report.Classes {
			w := float64(c.Support) / float64(total)
			report.WeightedAvg.Precision += w * c.Precision
			report.WeightedAvg.Recall += w * c.Recall
			report.WeightedAvg.F1 += w * c.F1
		}
	}
	return report
}

// classMetrics computes per-class scores. Undefined ratios are reported as zero.
func classMetrics(label string, hit, falsePos, falseNeg, support int) schema.ClassMetrics {
	m := schema.ClassMetrics{Label: label, Support: support}
	if hit+falsePos > 0 {
		m.Precision = float64(hit) / float64(hit+falsePos)
	}
	if hit+falseNeg > 0 {
		m.Recall = float64(hit) / float64(hit+falseNeg)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
