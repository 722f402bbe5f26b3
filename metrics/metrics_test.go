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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evalEpsilon = 0.00001

func TestNewConfusionMatrix(t *testing.T) {
	cm, err := NewConfusionMatrix([]int{1, 1, 0, 0}, []int{1, 0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, ConfusionMatrix{TN: 1, FP: 1, FN: 1, TP: 1}, cm)
	assert.Equal(t, []int{1, 1, 1, 1}, cm.Ravel())

	cm, err = NewConfusionMatrix([]int{1, 1, 1, 0, 0}, []int{1, 1, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1, 2}, cm.Ravel())

	_, err = NewConfusionMatrix([]int{1, 0}, []int{1})
	assert.ErrorIs(t, err, ErrMismatchedLength)
	_, err = NewConfusionMatrix([]int{1, 2}, []int{1, 0})
	assert.ErrorIs(t, err, ErrInvalidLabel)
	_, err = NewConfusionMatrix([]int{1, 0}, []int{-1, 0})
	assert.ErrorIs(t, err, ErrInvalidLabel)
}

func TestROC(t *testing.T) {
	curve, err := ROC([]int{0, 0, 1, 1}, []float64{0.1, 0.4, 0.35, 0.8})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0.5, 0.5, 1}, curve.FPR)
	assert.Equal(t, []float64{0, 0.5, 0.5, 1, 1}, curve.TPR)
	assert.True(t, math.IsInf(curve.Thresholds[0], 1))
	assert.InDelta(t, 0.75, AUC(curve.FPR, curve.TPR), evalEpsilon)
}

func TestROCDoesNotModifyInput(t *testing.T) {
	scores := []float64{0.9, 0.1, 0.5}
	labels := []int{1, 0, 1}
	_, err := ROC(labels, scores)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.1, 0.5}, scores)
	assert.Equal(t, []int{1, 0, 1}, labels)
}

func TestROCPerfectAndInverse(t *testing.T) {
	curve, err := ROC([]int{0, 0, 1, 1}, []float64{0.1, 0.2, 0.8, 0.9})
	require.NoError(t, err)
	assert.InDelta(t, 1, AUC(curve.FPR, curve.TPR), evalEpsilon)

	curve, err = ROC([]int{1, 1, 0, 0}, []float64{0.1, 0.2, 0.8, 0.9})
	require.NoError(t, err)
	assert.InDelta(t, 0, AUC(curve.FPR, curve.TPR), evalEpsilon)

	// all scores tie
	curve, err = ROC([]int{1, 0, 1, 0}, []float64{0.5, 0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, AUC(curve.FPR, curve.TPR), evalEpsilon)
}

func TestROCErrors(t *testing.T) {
	_, err := ROC([]int{1, 1}, []float64{0.1, 0.2})
	assert.ErrorIs(t, err, ErrSingleClass)
	_, err = ROC([]int{0, 0}, []float64{0.1, 0.2})
	assert.ErrorIs(t, err, ErrSingleClass)
	_, err = ROC([]int{0, 1}, []float64{0.1})
	assert.ErrorIs(t, err, ErrMismatchedLength)
	_, err = ROC([]int{0, 3}, []float64{0.1, 0.2})
	assert.ErrorIs(t, err, ErrInvalidLabel)
}

func TestAUC(t *testing.T) {
	assert.InDelta(t, 0.5, AUC([]float64{0, 1}, []float64{0, 1}), evalEpsilon)
	assert.InDelta(t, 1, AUC([]float64{0, 0, 1}, []float64{0, 1, 1}), evalEpsilon)
	assert.Zero(t, AUC([]float64{0}, []float64{1}))
}

func TestEvaluate(t *testing.T) {
	p, err := Evaluate([]int{1, 1, 0, 0}, []int{1, 0, 0, 1}, []float64{0.35, 0.8, 0.1, 0.4})
	require.NoError(t, err)
	assert.Equal(t, ConfusionMatrix{TN: 1, FP: 1, FN: 1, TP: 1}, p.ConfusionMatrix)
	assert.InDelta(t, 50, p.Recall, evalEpsilon)
	assert.InDelta(t, 50, p.Precision, evalEpsilon)
	assert.InDelta(t, 50, p.FScore, evalEpsilon)
	assert.InDelta(t, 75, p.AUC, evalEpsilon)
	assert.InDelta(t, 0.5, p.PPV, evalEpsilon)
	assert.InDelta(t, 0.5, p.NPV, evalEpsilon)
	curve, err := ROC([]int{1, 1, 0, 0}, []float64{0.35, 0.8, 0.1, 0.4})
	require.NoError(t, err)
	assert.Equal(t, curve, p.Curve)

	p, err = Evaluate([]int{1, 1, 1, 0, 0}, []int{1, 1, 0, 0, 0}, []float64{0.9, 0.8, 0.3, 0.2, 0.1})
	require.NoError(t, err)
	assert.InDelta(t, 200.0/3, p.Recall, evalEpsilon)
	assert.InDelta(t, 100, p.Precision, evalEpsilon)
	assert.InDelta(t, 80, p.FScore, evalEpsilon)
	assert.InDelta(t, 1, p.PPV, evalEpsilon)
	assert.InDelta(t, 2.0/3, p.NPV, evalEpsilon)
	assert.InDelta(t, 100, p.AUC, evalEpsilon)
}

func TestEvaluateZeroDivision(t *testing.T) {
	// no predicted positives
	_, err := Evaluate([]int{1, 0, 1, 0}, []int{0, 0, 0, 0}, []float64{0.9, 0.1, 0.8, 0.2})
	assert.ErrorIs(t, err, ErrZeroDivision)
	// no predicted negatives
	_, err = Evaluate([]int{1, 0, 1, 0}, []int{1, 1, 1, 1}, []float64{0.9, 0.1, 0.8, 0.2})
	assert.ErrorIs(t, err, ErrZeroDivision)
	// every prediction wrong
	_, err = Evaluate([]int{1, 0, 1, 0}, []int{0, 1, 0, 1}, []float64{0.9, 0.1, 0.8, 0.2})
	assert.ErrorIs(t, err, ErrZeroDivision)
}

func TestR2Score(t *testing.T) {
	assert.InDelta(t, 1, R2Score([]float64{1, 2, 3}, []float64{1, 2, 3}), evalEpsilon)
	assert.InDelta(t, 0, R2Score([]float64{1, 2, 3}, []float64{2, 2, 2}), evalEpsilon)
}

func TestAccuracyScore(t *testing.T) {
	assert.InDelta(t, 0.75, AccuracyScore([]float64{1, 0, 1, 0}, []float64{1, 0, 0.2, 0}), evalEpsilon)
	assert.Zero(t, AccuracyScore(nil, nil))
}
