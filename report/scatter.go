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
	"image/color"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var pointColor = color.RGBA{G: 0x77, B: 0xbe, A: 255}

// PlotActualVsPredicted scatters predicted values against actual values
// over the identity line.
func PlotActualVsPredicted(actual, predicted []float64) (*Figure, error) {
	if len(actual) != len(predicted) {
		return nil, errors.NotValidf("%d actual values, %d predicted values", len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return nil, errors.NotValidf("empty values")
	}
	p := newPlot("actual versus predicted values", "actual", "predicted")
	points := make(plotter.XYs, len(actual))
	for i := range actual {
		points[i] = plotter.XY{X: actual[i], Y: predicted[i]}
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, errors.Trace(err)
	}
	scatter.Shape = draw.RingGlyph{}
	scatter.Color = pointColor
	scatter.Radius = vg.Points(3)

	low := min(floats.Min(actual), floats.Min(predicted))
	high := max(floats.Max(actual), floats.Max(predicted))
	identity, err := plotter.NewLine(plotter.XYs{{X: low, Y: low}, {X: high, Y: high}})
	if err != nil {
		return nil, errors.Trace(err)
	}
	identity.Color = color.Black
	identity.Dashes = dashes
	p.Add(scatter, identity)
	return newFigure(p, 6*vg.Inch, 6*vg.Inch), nil
}
