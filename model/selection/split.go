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

package selection

import (
	"math"
	"math/rand"

	"github.com/gorse-io/evalviz/common/parallel"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Split is a pair of train and test row indices.
type Split struct {
	Train []int
	Test  []int
}

// KFold splits n samples into k consecutive folds. The first n % k folds
// have one extra sample. Samples are permuted by seed first if shuffle is set.
func KFold(n, k int, shuffle bool, seed int64) ([]Split, error) {
	if k < 2 {
		return nil, errors.NotValidf("number of folds %d (must be at least 2)", k)
	}
	if k > n {
		return nil, errors.NotValidf("number of folds %d (greater than number of samples %d)", k, n)
	}
	perm := lo.Range(n)
	if shuffle {
		rng := rand.New(rand.NewSource(seed))
		perm = rng.Perm(n)
	}
	folds := parallel.Split(perm, k)
	splits := make([]Split, k)
	begin := 0
	for i, fold := range folds {
		end := begin + len(fold)
		train := make([]int, 0, n-len(fold))
		train = append(train, perm[:begin]...)
		train = append(train, perm[end:]...)
		splits[i] = Split{Train: train, Test: fold}
		begin = end
	}
	return splits, nil
}

func selectRows(x mat.Matrix, y []float64, indices []int) (*mat.Dense, []float64) {
	_, c := x.Dims()
	sub := mat.NewDense(len(indices), c, nil)
	target := make([]float64, len(indices))
	for i, j := range indices {
		sub.SetRow(i, mat.Row(nil, j, x))
		target[i] = y[j]
	}
	return sub, target
}

func checkXY(x mat.Matrix, y []float64) error {
	r, _ := x.Dims()
	if r != len(y) {
		return errors.NotValidf("%d samples with %d targets", r, len(y))
	}
	return nil
}

// meanStd returns the mean and the population standard deviation.
func meanStd(x []float64) (float64, float64) {
	if len(x) == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.Mean(x, nil), math.Sqrt(stat.PopVariance(x, nil))
}
