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

package model

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Estimator is a supervised model. Fit may be called on a clone only, so an
// Estimator can be shared between concurrent cross validation jobs.
type Estimator interface {
	Fit(ctx context.Context, x mat.Matrix, y []float64) error
	Predict(x mat.Matrix) ([]float64, error)
	// Clone returns an unfitted copy with the same hyper-parameters.
	Clone() Estimator
}

// Tunable is an estimator whose hyper-parameters can be searched.
type Tunable interface {
	Estimator
	GetParams() Params
	SetParams(params Params)
}

// ScoreFunc scores predictions against ground truth. Greater is better.
type ScoreFunc func(yTrue, yPred []float64) float64
