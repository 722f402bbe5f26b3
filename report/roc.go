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
	"fmt"
	"image/color"

	"github.com/gorse-io/evalviz/metrics"
	"github.com/juju/errors"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	darkOrange = color.RGBA{R: 255, G: 140, A: 255}
	navy       = color.RGBA{B: 128, A: 255}
)

// ROCAUC computes the ROC curve of positive class probabilities and the
// area under it, and draws the curve against the no-skill diagonal.
func ROCAUC(actual []int, probability []float64) (float64, *Figure, error) {
	curve, err := metrics.ROC(actual, probability)
	if err != nil {
		return 0, nil, errors.Trace(err)
	}
	auc := metrics.AUC(curve.FPR, curve.TPR)
	fig, err := renderROC(curve, auc)
	if err != nil {
		return 0, nil, errors.Trace(err)
	}
	return auc, fig, nil
}

func renderROC(curve *metrics.ROCCurve, auc float64) (*Figure, error) {
	p := newPlot("", "False Positive Rate", "True Positive Rate")
	points := make(plotter.XYs, len(curve.FPR))
	for i := range curve.FPR {
		points[i] = plotter.XY{X: curve.FPR[i], Y: curve.TPR[i]}
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, errors.Trace(err)
	}
	line.Color = darkOrange
	line.Width = vg.Points(2)
	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return nil, errors.Trace(err)
	}
	diagonal.Color = navy
	diagonal.Width = vg.Points(2)
	diagonal.Dashes = dashes
	p.Add(line, diagonal)
	p.Legend.Add(fmt.Sprintf("ROC curve (area = %0.2f)", auc), line)
	// lower right
	p.Legend.Top = false
	p.Legend.Left = false
	p.X.Min, p.X.Max = -0.02, 1.02
	p.Y.Min, p.Y.Max = -0.02, 1.02
	return newFigure(p, 3*vg.Inch, 3*vg.Inch), nil
}
