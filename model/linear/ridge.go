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

package linear

import (
	"context"

	"github.com/gorse-io/evalviz/model"
	"github.com/juju/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Alpha is the strength of L2 regularization.
const Alpha model.ParamName = "alpha"

// Ridge is linear least squares with L2 regularization. The intercept is
// not regularized.
type Ridge struct {
	params    model.Params
	alpha     float64
	coef      []float64
	intercept float64
}

func NewRidge(params model.Params) *Ridge {
	ridge := new(Ridge)
	ridge.SetParams(params)
	return ridge
}

func (r *Ridge) GetParams() model.Params {
	return r.params
}

func (r *Ridge) SetParams(params model.Params) {
	r.params = params
	r.alpha = r.params.GetFloat64(Alpha, 1.0)
}

func (r *Ridge) Clone() model.Estimator {
	return NewRidge(r.params.Copy())
}

// Coef returns fitted weights of features.
func (r *Ridge) Coef() []float64 {
	return r.coef
}

// Intercept returns the fitted bias.
func (r *Ridge) Intercept() float64 {
	return r.intercept
}

// Fit solves (XᵀX + αI)w = Xᵀy on centered data.
func (r *Ridge) Fit(ctx context.Context, x mat.Matrix, y []float64) error {
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}
	if r.alpha < 0 {
		return errors.NotValidf("alpha %v", r.alpha)
	}
	n, p := x.Dims()
	if n != len(y) {
		return errors.NotValidf("%d samples with %d targets", n, len(y))
	}
	if n == 0 {
		return errors.NotValidf("empty train set")
	}
	if p == 0 {
		return errors.NotValidf("train set without features")
	}
	xMean := make([]float64, p)
	centered := mat.DenseCopyOf(x)
	for j := 0; j < p; j++ {
		column := mat.Col(nil, j, x)
		xMean[j] = stat.Mean(column, nil)
		floats.AddConst(-xMean[j], column)
		centered.SetCol(j, column)
	}
	yMean := stat.Mean(y, nil)
	target := make([]float64, n)
	floats.AddScaled(target, 1, y)
	floats.AddConst(-yMean, target)

	var gram mat.Dense
	gram.Mul(centered.T(), centered)
	for j := 0; j < p; j++ {
		gram.Set(j, j, gram.At(j, j)+r.alpha)
	}
	var moment mat.VecDense
	moment.MulVec(centered.T(), mat.NewVecDense(n, target))
	var w mat.VecDense
	if err := w.SolveVec(&gram, &moment); err != nil {
		return errors.Annotate(err, "solve normal equations")
	}
	r.coef = mat.Col(nil, 0, &w)
	r.intercept = yMean - floats.Dot(xMean, r.coef)
	return nil
}

func (r *Ridge) Predict(x mat.Matrix) ([]float64, error) {
	if r.coef == nil {
		return nil, errors.New("ridge is not fitted")
	}
	n, p := x.Dims()
	if p != len(r.coef) {
		return nil, errors.NotValidf("%d features, fitted on %d", p, len(r.coef))
	}
	var prediction mat.VecDense
	prediction.MulVec(x, mat.NewVecDense(p, r.coef))
	y := make([]float64, n)
	for i := range y {
		y[i] = prediction.AtVec(i) + r.intercept
	}
	return y, nil
}
