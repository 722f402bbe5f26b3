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
	"context"
	"image/color"

	"github.com/gorse-io/evalviz/model"
	"github.com/gorse-io/evalviz/model/selection"
	"github.com/juju/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	trainColor = color.RGBA{R: 255, A: 255}
	testColor  = color.RGBA{G: 128, A: 255}
)

// YLim bounds the y axis.
type YLim struct {
	Min float64
	Max float64
}

// LearningCurveOptions configures PlotLearningCurve.
type LearningCurveOptions struct {
	selection.LearningCurveOptions
	YLim *YLim
}

// PlotLearningCurve computes the learning curve of an estimator and draws it.
func PlotLearningCurve(ctx context.Context, estimator model.Estimator, title string, x mat.Matrix, y []float64,
	opts LearningCurveOptions) (*Figure, error) {
	result, err := selection.LearningCurve(ctx, estimator, x, y, opts.LearningCurveOptions)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return RenderLearningCurve(title, result, opts.YLim)
}

// RenderLearningCurve draws training and cross-validation scores against
// train set sizes. Bands cover one standard deviation around the mean.
func RenderLearningCurve(title string, result *selection.LearningCurveResult, ylim *YLim) (*Figure, error) {
	p := newPlot(title, "Training examples", "Score")
	trainMean, trainStd := result.TrainMeanStd()
	testMean, testStd := result.TestMeanStd()
	if err := addScoreCurve(p, "Training score", result.TrainSizes, trainMean, trainStd, trainColor); err != nil {
		return nil, errors.Trace(err)
	}
	if err := addScoreCurve(p, "Cross-validation score", result.TrainSizes, testMean, testStd, testColor); err != nil {
		return nil, errors.Trace(err)
	}
	if ylim != nil {
		p.Y.Min, p.Y.Max = ylim.Min, ylim.Max
	}
	p.Legend.Top = true
	p.Legend.Left = false
	return newFigure(p, 7*vg.Inch, 7*vg.Inch), nil
}

func addScoreCurve(p *plot.Plot, label string, sizes []int, mean, std []float64, c color.RGBA) error {
	line := make(plotter.XYs, len(sizes))
	band := make(plotter.XYs, 2*len(sizes))
	for i, size := range sizes {
		line[i] = plotter.XY{X: float64(size), Y: mean[i]}
		band[i] = plotter.XY{X: float64(size), Y: mean[i] - std[i]}
		band[2*len(sizes)-1-i] = plotter.XY{X: float64(size), Y: mean[i] + std[i]}
	}
	fill, err := plotter.NewPolygon(band)
	if err != nil {
		return errors.Trace(err)
	}
	fill.Color = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 26}
	fill.LineStyle.Width = 0
	lines, points, err := plotter.NewLinePoints(line)
	if err != nil {
		return errors.Trace(err)
	}
	lines.Color = c
	points.Color = c
	points.Shape = draw.CircleGlyph{}
	p.Add(fill, lines, points)
	p.Legend.Add(label, lines, points)
	return nil
}
