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

package report

import (
	"bytes"
	"testing"

	"github.com/gorse-io/evalviz/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestROCAUC(t *testing.T) {
	auc, fig, err := ROCAUC([]int{0, 0, 1, 1}, []float64{0.1, 0.4, 0.35, 0.8})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, auc, 1e-9)
	assert.Equal(t, "False Positive Rate", fig.Plot.X.Label.Text)
	assert.Equal(t, "True Positive Rate", fig.Plot.Y.Label.Text)
	assert.Equal(t, -0.02, fig.Plot.X.Min)
	assert.Equal(t, 1.02, fig.Plot.X.Max)
	assert.Equal(t, -0.02, fig.Plot.Y.Min)
	assert.Equal(t, 1.02, fig.Plot.Y.Max)
	assertPNG(t, fig)

	_, _, err = ROCAUC([]int{1, 1}, []float64{0.1, 0.4})
	assert.ErrorIs(t, err, metrics.ErrSingleClass)
	_, _, err = ROCAUC([]int{1, 0}, []float64{0.1})
	assert.ErrorIs(t, err, metrics.ErrMismatchedLength)
}

func TestPerformanceMetrics(t *testing.T) {
	var buf bytes.Buffer
	performance, fig, err := PerformanceMetrics(&buf, []int{1, 1, 0, 0}, []int{1, 0, 0, 1}, []float64{0.9, 0.4, 0.2, 0.6})
	require.NoError(t, err)
	assert.Equal(t, "precision: 50.00, recall: 50.00\nf-score: 50.00\n", buf.String())
	assert.Equal(t, metrics.ConfusionMatrix{TN: 1, FP: 1, FN: 1, TP: 1}, performance.ConfusionMatrix)
	assert.InDelta(t, 50, performance.Recall, 1e-9)
	assert.InDelta(t, 50, performance.Precision, 1e-9)
	assert.InDelta(t, 50, performance.FScore, 1e-9)
	assert.InDelta(t, 0.5, performance.PPV, 1e-9)
	assert.InDelta(t, 0.5, performance.NPV, 1e-9)
	assert.InDelta(t, 75, performance.AUC, 1e-9)
	assert.InDelta(t, 0.75, metrics.AUC(performance.Curve.FPR, performance.Curve.TPR), 1e-9)
	assertPNG(t, fig)

	buf.Reset()
	_, _, err = PerformanceMetrics(&buf, []int{1, 1, 0, 0}, []int{0, 0, 0, 0}, []float64{0.9, 0.4, 0.2, 0.6})
	assert.ErrorIs(t, err, metrics.ErrZeroDivision)
	assert.Empty(t, buf.String())
}
