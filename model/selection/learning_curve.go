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
	"context"
	"math"
	"slices"

	"github.com/gorse-io/evalviz/base/log"
	"github.com/gorse-io/evalviz/base/progress"
	"github.com/gorse-io/evalviz/common/parallel"
	"github.com/gorse-io/evalviz/model"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultTrainSizes returns five evenly spaced fractions from 0.1 to 1.0.
func DefaultTrainSizes() []float64 {
	return floats.Span(make([]float64, 5), 0.1, 1.0)
}

// LearningCurveOptions configures LearningCurve.
type LearningCurveOptions struct {
	// TrainSizes are fractions of the largest train set if they lie in
	// (0, 1], otherwise absolute numbers of samples.
	TrainSizes []float64
	CV         int
	Shuffle    bool
	Seed       int64
	Jobs       int
	Scorer     model.ScoreFunc
}

// LearningCurveResult contains train and test scores for increasing train
// set sizes. Scores are indexed by [size][fold].
type LearningCurveResult struct {
	TrainSizes  []int
	TrainScores [][]float64
	TestScores  [][]float64
}

// TrainMeanStd returns the mean and standard deviation of train scores per size.
func (r *LearningCurveResult) TrainMeanStd() (mean, std []float64) {
	return aggregate(r.TrainScores)
}

// TestMeanStd returns the mean and standard deviation of test scores per size.
func (r *LearningCurveResult) TestMeanStd() (mean, std []float64) {
	return aggregate(r.TestScores)
}

func aggregate(scores [][]float64) (mean, std []float64) {
	mean = make([]float64, len(scores))
	std = make([]float64, len(scores))
	for i, s := range scores {
		mean[i], std[i] = meanStd(s)
	}
	return
}

// LearningCurve fits the estimator on growing prefixes of every train fold
// and scores it on the prefix and on the test fold.
func LearningCurve(ctx context.Context, estimator model.Estimator, x mat.Matrix, y []float64,
	opts LearningCurveOptions) (*LearningCurveResult, error) {
	if opts.CV == 0 {
		opts.CV = DefaultCV
	}
	if len(opts.TrainSizes) == 0 {
		opts.TrainSizes = DefaultTrainSizes()
	}
	search := SearchOptions{Scorer: opts.Scorer}
	search.fillDefault()
	if err := checkXY(x, y); err != nil {
		return nil, errors.Trace(err)
	}
	n, _ := x.Dims()
	splits, err := KFold(n, opts.CV, opts.Shuffle, opts.Seed)
	if err != nil {
		return nil, errors.Trace(err)
	}
	maxTrainSize := lo.Min(lo.Map(splits, func(s Split, _ int) int { return len(s.Train) }))
	sizes, err := resolveTrainSizes(opts.TrainSizes, maxTrainSize)
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Debug("learning curve",
		zap.Ints("train_sizes", sizes),
		zap.Int("n_folds", len(splits)))

	numFolds := len(splits)
	result := &LearningCurveResult{
		TrainSizes:  sizes,
		TrainScores: make([][]float64, len(sizes)),
		TestScores:  make([][]float64, len(sizes)),
	}
	for i := range sizes {
		result.TrainScores[i] = make([]float64, numFolds)
		result.TestScores[i] = make([]float64, numFolds)
	}
	span := progress.Start(ctx, "learning curve", len(sizes)*numFolds)
	err = parallel.Parallel(ctx, len(sizes)*numFolds, opts.Jobs, func(_, jobId int) error {
		sizeIndex, fold := jobId/numFolds, jobId%numFolds
		split := splits[fold]
		trainX, trainY := selectRows(x, y, split.Train[:sizes[sizeIndex]])
		testX, testY := selectRows(x, y, split.Test)
		m := estimator.Clone()
		if err := m.Fit(ctx, trainX, trainY); err != nil {
			return errors.Annotatef(err, "fit %d samples on fold %d", sizes[sizeIndex], fold)
		}
		trainPrediction, err := m.Predict(trainX)
		if err != nil {
			return errors.Trace(err)
		}
		testPrediction, err := m.Predict(testX)
		if err != nil {
			return errors.Trace(err)
		}
		result.TrainScores[sizeIndex][fold] = search.Scorer(trainY, trainPrediction)
		result.TestScores[sizeIndex][fold] = search.Scorer(testY, testPrediction)
		span.Add(1)
		return nil
	})
	if err != nil {
		span.Fail(err)
		return nil, errors.Trace(err)
	}
	span.End()
	return result, nil
}

// resolveTrainSizes converts fractions to sample counts, drops duplicates
// and sorts them.
func resolveTrainSizes(trainSizes []float64, maxTrainSize int) ([]int, error) {
	sizes := make([]int, 0, len(trainSizes))
	for _, size := range trainSizes {
		var n int
		if size > 0 && size <= 1 {
			n = int(math.Floor(size * float64(maxTrainSize)))
		} else {
			n = int(size)
		}
		if n < 1 || n > maxTrainSize {
			return nil, errors.NotValidf("train size %v (must resolve to a size in [1, %d])", size, maxTrainSize)
		}
		sizes = append(sizes, n)
	}
	sizes = lo.Uniq(sizes)
	slices.Sort(sizes)
	return sizes, nil
}
