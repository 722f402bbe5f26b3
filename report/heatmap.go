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
	"math"
	"sort"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/evalviz/model"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrInvalidGrid is returned if a grid search does not vary exactly two
// hyper-parameters.
var ErrInvalidGrid = errors.New("grid search must vary exactly two parameters")

// GridResults is the result of a grid search.
type GridResults interface {
	// ParamNames returns names of searched hyper-parameters.
	ParamNames() []model.ParamName
	// ParamColumn returns the value of a hyper-parameter for each trial.
	ParamColumn(name model.ParamName) []interface{}
	// MeanScores returns the mean validation score of each trial.
	MeanScores() []float64
}

// GridTable is a GridResults loaded from a table of trials.
type GridTable struct {
	Names   []model.ParamName
	Columns map[model.ParamName][]interface{}
	Scores  []float64
}

func (t *GridTable) ParamNames() []model.ParamName {
	return t.Names
}

func (t *GridTable) ParamColumn(name model.ParamName) []interface{} {
	return t.Columns[name]
}

func (t *GridTable) MeanScores() []float64 {
	return t.Scores
}

// ScoreGrid holds mean scores reshaped to rows of the first hyper-parameter
// and columns of the second. Values of each hyper-parameter are sorted.
type ScoreGrid struct {
	RowName model.ParamName
	ColName model.ParamName
	Rows    []interface{}
	Cols    []interface{}
	Scores  *mat.Dense
}

// NewScoreGrid reshapes mean scores of a grid search. Parameters that take a
// single value are ignored. Every combination of values must be scored
// exactly once.
func NewScoreGrid(results GridResults) (*ScoreGrid, error) {
	scores := results.MeanScores()
	if len(scores) == 0 {
		return nil, errors.NotValidf("empty grid search")
	}
	names := lo.Filter(results.ParamNames(), func(name model.ParamName, _ int) bool {
		return len(lo.Uniq(results.ParamColumn(name))) != 1
	})
	if len(names) != 2 {
		return nil, errors.Annotatef(ErrInvalidGrid, "got %d varying parameters", len(names))
	}
	rowColumn := results.ParamColumn(names[0])
	colColumn := results.ParamColumn(names[1])
	if len(rowColumn) != len(scores) || len(colColumn) != len(scores) {
		return nil, errors.NotValidf("%d scores with %d values of %s and %d values of %s",
			len(scores), len(rowColumn), names[0], len(colColumn), names[1])
	}
	grid := &ScoreGrid{
		RowName: names[0],
		ColName: names[1],
		Rows:    sortValues(lo.Uniq(rowColumn)),
		Cols:    sortValues(lo.Uniq(colColumn)),
	}
	if len(grid.Rows)*len(grid.Cols) != len(scores) {
		return nil, errors.NotValidf("%d scores for %dx%d grid", len(scores), len(grid.Rows), len(grid.Cols))
	}
	rowIndex := indexOf(grid.Rows)
	colIndex := indexOf(grid.Cols)
	grid.Scores = mat.NewDense(len(grid.Rows), len(grid.Cols), nil)
	seen := mapset.NewThreadUnsafeSet[[2]int]()
	for i, score := range scores {
		cell := [2]int{rowIndex[rowColumn[i]], colIndex[colColumn[i]]}
		if seen.Contains(cell) {
			return nil, errors.NotValidf("duplicated trial %s=%v, %s=%v", names[0], rowColumn[i], names[1], colColumn[i])
		}
		seen.Add(cell)
		grid.Scores.Set(cell[0], cell[1], score)
	}
	return grid, nil
}

// sortValues sorts numbers numerically and anything else by its text.
func sortValues(values []interface{}) []interface{} {
	numbers := make([]float64, len(values))
	numeric := true
	for i, v := range values {
		var err error
		if numbers[i], err = cast.ToFloat64E(v); err != nil {
			numeric = false
			break
		}
	}
	indices := lo.Range(len(values))
	if numeric {
		sort.SliceStable(indices, func(i, j int) bool { return numbers[indices[i]] < numbers[indices[j]] })
	} else {
		sort.SliceStable(indices, func(i, j int) bool {
			return fmt.Sprint(values[indices[i]]) < fmt.Sprint(values[indices[j]])
		})
	}
	return lo.Map(indices, func(i, _ int) interface{} { return values[i] })
}

func indexOf(values []interface{}) map[interface{}]int {
	index := make(map[interface{}]int, len(values))
	for i, v := range values {
		index[v] = i
	}
	return index
}

// tickLabel rounds numbers to 2 decimals.
func tickLabel(v interface{}) string {
	if f, err := cast.ToFloat64E(v); err == nil {
		return strconv.FormatFloat(scalar.Round(f, 2), 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// HeatmapOptions configures PlotGridSearch.
type HeatmapOptions struct {
	Midpoint float64
	VMin     float64
	VMax     float64 // zero means the best score
}

func DefaultHeatmapOptions() HeatmapOptions {
	return HeatmapOptions{
		Midpoint: 0.7,
		VMin:     0.2,
	}
}

// normalizedGrid is a plotter.GridXYZ of normalized scores. The first row
// is drawn at the top.
type normalizedGrid struct {
	scores    *mat.Dense
	normalize MidpointNormalize
}

func (g normalizedGrid) Dims() (c, r int) {
	r, c = g.scores.Dims()
	return c, r
}

func (g normalizedGrid) Z(c, r int) float64 {
	rows, _ := g.scores.Dims()
	return g.normalize.Normalize(g.scores.At(rows-1-r, c))
}

func (g normalizedGrid) X(c int) float64 {
	return float64(c)
}

func (g normalizedGrid) Y(r int) float64 {
	return float64(r)
}

// PlotGridSearch draws mean scores of a two-parameter grid search as a heat
// map. Colors are scaled so that VMin, Midpoint and VMax sit at the bottom,
// middle and top of the color bar.
func PlotGridSearch(results GridResults, opts HeatmapOptions) (*Figure, error) {
	grid, err := NewScoreGrid(results)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if opts.VMin >= opts.Midpoint {
		return nil, errors.NotValidf("vmin %v not below midpoint %v", opts.VMin, opts.Midpoint)
	}
	if opts.VMax == 0 {
		opts.VMax = floats.Max(grid.Scores.RawMatrix().Data)
	}
	opts.VMax = math.Max(opts.VMax, opts.Midpoint)
	normalize := MidpointNormalize{VMin: opts.VMin, Midpoint: opts.Midpoint, VMax: opts.VMax}

	colorMap := moreland.BlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(1)
	heatMap := plotter.NewHeatMap(normalizedGrid{scores: grid.Scores, normalize: normalize}, colorMap.Palette(255))
	heatMap.Min, heatMap.Max = 0, 1

	p := newPlot("grid search", string(grid.ColName), string(grid.RowName))
	p.Add(heatMap)
	p.X.Tick.Marker = plot.ConstantTicks(lo.Map(grid.Cols, func(v interface{}, i int) plot.Tick {
		return plot.Tick{Value: float64(i), Label: tickLabel(v)}
	}))
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Tick.Marker = plot.ConstantTicks(lo.Map(grid.Rows, func(v interface{}, i int) plot.Tick {
		return plot.Tick{Value: float64(len(grid.Rows) - 1 - i), Label: tickLabel(v)}
	}))

	colorBar := plot.New()
	colorBar.Add(&plotter.ColorBar{ColorMap: colorMap, Vertical: true})
	colorBar.HideX()
	colorBar.Y.Padding = 0
	colorBar.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: normalize.Normalize(opts.VMin), Label: tickLabel(opts.VMin)},
		{Value: normalize.Normalize(opts.Midpoint), Label: tickLabel(opts.Midpoint)},
		{Value: normalize.Normalize(opts.VMax), Label: tickLabel(opts.VMax)},
	})

	fig := newFigure(p, 8*vg.Inch, 6*vg.Inch)
	fig.ColorBar = colorBar
	return fig, nil
}
