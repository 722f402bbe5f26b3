// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrMismatchedLength = errors.New("mismatched length")
	ErrInvalidLabel     = errors.New("label must be 0 or 1")
	ErrSingleClass      = errors.New("only one class present")
	ErrZeroDivision     = errors.New("zero division")
)

// PositiveLabel is the label of the positive class.
const PositiveLabel = 1

// ConfusionMatrix of a binary classifier.
type ConfusionMatrix struct {
	TN int
	FP int
	FN int
	TP int
}

// NewConfusionMatrix counts outcomes of predicted labels against actual labels.
func NewConfusionMatrix(actual, predicted []int) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if len(actual) != len(predicted) {
		return cm, errors.Annotatef(ErrMismatchedLength, "%d actual labels, %d predicted labels", len(actual), len(predicted))
	}
	if err := checkLabels(actual); err != nil {
		return cm, errors.Trace(err)
	}
	if err := checkLabels(predicted); err != nil {
		return cm, errors.Trace(err)
	}
	for i := range actual {
		switch {
		case actual[i] == PositiveLabel && predicted[i] == PositiveLabel:
			cm.TP++
		case actual[i] == PositiveLabel:
			cm.FN++
		case predicted[i] == PositiveLabel:
			cm.FP++
		default:
			cm.TN++
		}
	}
	return cm, nil
}

// Ravel returns counts in the order tn, fp, fn, tp.
func (cm ConfusionMatrix) Ravel() []int {
	return []int{cm.TN, cm.FP, cm.FN, cm.TP}
}

func checkLabels(labels []int) error {
	valid := mapset.NewThreadUnsafeSet(0, PositiveLabel)
	for i, label := range labels {
		if !valid.Contains(label) {
			return errors.Annotatef(ErrInvalidLabel, "label %d at position %d", label, i)
		}
	}
	return nil
}

// ROCCurve holds the points of a receiver operating characteristic curve.
// Thresholds are decreasing and the first threshold is +Inf, so the curve
// starts at (0, 0) and ends at (1, 1).
type ROCCurve struct {
	FPR        []float64
	TPR        []float64
	Thresholds []float64
}

// ROC sweeps every distinct score as a threshold. A sample is predicted
// positive when its score is greater than or equal to the threshold.
func ROC(actual []int, scores []float64) (*ROCCurve, error) {
	if len(actual) != len(scores) {
		return nil, errors.Annotatef(ErrMismatchedLength, "%d labels, %d scores", len(actual), len(scores))
	}
	if err := checkLabels(actual); err != nil {
		return nil, errors.Trace(err)
	}
	y := make([]float64, len(scores))
	copy(y, scores)
	classes := make([]bool, len(actual))
	var numPos int
	for i, label := range actual {
		classes[i] = label == PositiveLabel
		if classes[i] {
			numPos++
		}
	}
	if numPos == 0 || numPos == len(actual) {
		return nil, errors.Trace(ErrSingleClass)
	}
	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, thresholds := stat.ROC(nil, y, classes, nil)
	return &ROCCurve{FPR: fpr, TPR: tpr, Thresholds: thresholds}, nil
}

// AUC computes the area under a curve by the trapezoidal rule. x must be
// non-decreasing.
func AUC(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return integrate.Trapezoidal(x, y)
}

// Performance summarizes a binary classifier. AUC, Recall, Precision and
// FScore are percentages, PPV and NPV are fractions. AUC is the area under
// Curve.
type Performance struct {
	ConfusionMatrix
	Curve     *ROCCurve
	AUC       float64
	Recall    float64
	Precision float64
	FScore    float64
	PPV       float64
	NPV       float64
}

// Evaluate computes the performance of a classifier from its predicted labels
// and positive class probabilities. A metric whose denominator is zero is an
// error rather than NaN.
func Evaluate(actual, predicted []int, probability []float64) (*Performance, error) {
	cm, err := NewConfusionMatrix(actual, predicted)
	if err != nil {
		return nil, errors.Trace(err)
	}
	curve, err := ROC(actual, probability)
	if err != nil {
		return nil, errors.Trace(err)
	}
	p := &Performance{ConfusionMatrix: cm, Curve: curve}
	p.AUC = AUC(curve.FPR, curve.TPR) * 100
	if p.Recall, err = ratio("recall", cm.TP, cm.FN+cm.TP); err != nil {
		return nil, err
	}
	if p.Precision, err = ratio("precision", cm.TP, cm.TP+cm.FP); err != nil {
		return nil, err
	}
	p.Recall *= 100
	p.Precision *= 100
	if p.Recall+p.Precision == 0 {
		return nil, errors.Annotate(ErrZeroDivision, "f-score: recall and precision are both zero")
	}
	p.FScore = 2 * (p.Recall * p.Precision) / (p.Recall + p.Precision)
	if p.PPV, err = ratio("positive predictive value", cm.TP, cm.TP+cm.FP); err != nil {
		return nil, err
	}
	if p.NPV, err = ratio("negative predictive value", cm.TN, cm.TN+cm.FN); err != nil {
		return nil, err
	}
	return p, nil
}

func ratio(name string, numerator, denominator int) (float64, error) {
	if denominator == 0 {
		return 0, errors.Annotatef(ErrZeroDivision, "%s", name)
	}
	return float64(numerator) / float64(denominator), nil
}

// R2Score is the coefficient of determination.
func R2Score(yTrue, yPred []float64) float64 {
	return stat.RSquaredFrom(yPred, yTrue, nil)
}

// AccuracyScore is the fraction of predictions equal to the truth after
// rounding to the nearest label.
func AccuracyScore(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	var correct int
	for i := range yTrue {
		if math.Round(yTrue[i]) == math.Round(yPred[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}
