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
	"io"
	"math"
	"strconv"

	"github.com/gorse-io/evalviz/importance"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var barColor = color.RGBA{R: 255, A: 255}

// errorBars places the std of each ranked feature on its bar.
type errorBars []importance.Feature

func (e errorBars) Len() int {
	return len(e)
}

func (e errorBars) XY(i int) (float64, float64) {
	return float64(i), e[i].Importance
}

func (e errorBars) YError(i int) (float64, float64) {
	return e[i].Std, e[i].Std
}

// FeatureImportance prints the ranking of the n most important features to
// w and draws their importances as bars labeled by feature index. Error bars
// show the standard deviation across ensemble members if stdDeviation is
// set. It returns names of the displayed features in rank order.
func FeatureImportance(w io.Writer, ensemble importance.Ensemble, names []string, n int, stdDeviation bool) ([]string, *Figure, error) {
	features, err := importance.Rank(ensemble, names, n)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	if _, err = fmt.Fprintln(w, "Feature ranking:"); err != nil {
		return nil, nil, errors.Trace(err)
	}
	for _, feature := range features {
		if _, err = fmt.Fprintf(w, "%d. feature %d (%.3f) : %s\n",
			feature.Rank, feature.Index, feature.Importance, feature.Name); err != nil {
			return nil, nil, errors.Trace(err)
		}
	}

	const size = 6 * vg.Inch
	p := newPlot("Feature importances", "", "")
	values := plotter.Values(lo.Map(features, func(f importance.Feature, _ int) float64 {
		return f.Importance
	}))
	bars, err := plotter.NewBarChart(values, size/vg.Length(2*(len(features)+2)))
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	if stdDeviation {
		yErrors, err := plotter.NewYErrorBars(errorBars(features))
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		p.Add(yErrors)
	}
	p.X.Tick.Marker = plot.ConstantTicks(lo.Map(features, func(f importance.Feature, i int) plot.Tick {
		return plot.Tick{Value: float64(i), Label: strconv.Itoa(f.Index)}
	}))
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min = -1
	p.X.Max = float64(len(features))
	return importance.Names(features), newFigure(p, size, size), nil
}
