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
	"fmt"
	"sort"
	"time"

	"github.com/gorse-io/evalviz/base/log"
	"github.com/gorse-io/evalviz/base/progress"
	"github.com/gorse-io/evalviz/common/parallel"
	"github.com/gorse-io/evalviz/metrics"
	"github.com/gorse-io/evalviz/model"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// SearchOptions configures GridSearchCV.
type SearchOptions struct {
	CV      int             // number of folds
	Shuffle bool            // shuffle samples before splitting
	Seed    int64           // seed for shuffling
	Jobs    int             // number of concurrent fits
	Scorer  model.ScoreFunc // defaults to R2
}

func (opts *SearchOptions) fillDefault() {
	if opts.CV == 0 {
		opts.CV = DefaultCV
	}
	if opts.Scorer == nil {
		opts.Scorer = metrics.R2Score
	}
}

// DefaultCV is the default number of folds.
const DefaultCV = 5

// CVResults contains the return of grid search. Slices are indexed by
// candidate in enumeration order.
type CVResults struct {
	Names           []model.ParamName
	Params          []model.Params
	SplitTestScores [][]float64 // [candidate][fold]
	MeanTestScore   []float64
	StdTestScore    []float64
	MeanFitTime     []time.Duration
	RankTestScore   []int
	BestIndex       int
	BestParams      model.Params
	BestScore       float64
}

// ParamNames returns names of searched hyper-parameters in enumeration order.
func (r *CVResults) ParamNames() []model.ParamName {
	return r.Names
}

// ParamColumn returns the value of a hyper-parameter for every candidate.
func (r *CVResults) ParamColumn(name model.ParamName) []interface{} {
	return lo.Map(r.Params, func(params model.Params, _ int) interface{} {
		return params[name]
	})
}

// MeanScores returns the mean test score of every candidate.
func (r *CVResults) MeanScores() []float64 {
	return r.MeanTestScore
}

// GridSearchCV evaluates every candidate of a grid by k-fold cross validation.
func GridSearchCV(ctx context.Context, estimator model.Tunable, x mat.Matrix, y []float64,
	paramGrid model.ParamsGrid, opts SearchOptions) (*CVResults, error) {
	opts.fillDefault()
	if err := checkXY(x, y); err != nil {
		return nil, errors.Trace(err)
	}
	candidates := paramGrid.Combinations()
	if len(candidates) == 0 {
		return nil, errors.NotValidf("empty parameter grid")
	}
	n, _ := x.Dims()
	splits, err := KFold(n, opts.CV, opts.Shuffle, opts.Seed)
	if err != nil {
		return nil, errors.Trace(err)
	}
	numFolds := len(splits)
	total := len(candidates) * numFolds
	scores := make([][]float64, len(candidates))
	fitTimes := make([][]time.Duration, len(candidates))
	for i := range candidates {
		scores[i] = make([]float64, numFolds)
		fitTimes[i] = make([]time.Duration, numFolds)
	}
	span := progress.Start(ctx, "grid search", total)
	err = parallel.Parallel(ctx, total, opts.Jobs, func(_, jobId int) error {
		candidate, fold := jobId/numFolds, jobId%numFolds
		params := candidates[candidate]
		if fold == 0 {
			log.Logger().Debug(fmt.Sprintf("grid search %v/%v", candidate+1, len(candidates)),
				zap.Stringer("params", params))
		}
		m, ok := estimator.Clone().(model.Tunable)
		if !ok {
			return errors.NotValidf("clone of %T", estimator)
		}
		m.SetParams(estimator.GetParams().Overwrite(params))
		split := splits[fold]
		trainX, trainY := selectRows(x, y, split.Train)
		testX, testY := selectRows(x, y, split.Test)
		start := time.Now()
		if err := m.Fit(ctx, trainX, trainY); err != nil {
			return errors.Annotatef(err, "fit %v on fold %d", params, fold)
		}
		fitTimes[candidate][fold] = time.Since(start)
		prediction, err := m.Predict(testX)
		if err != nil {
			return errors.Annotatef(err, "predict %v on fold %d", params, fold)
		}
		scores[candidate][fold] = opts.Scorer(testY, prediction)
		span.Add(1)
		return nil
	})
	if err != nil {
		span.Fail(err)
		return nil, errors.Trace(err)
	}
	span.End()

	results := &CVResults{
		Names:           paramGrid.Names(),
		Params:          candidates,
		SplitTestScores: scores,
		MeanTestScore:   make([]float64, len(candidates)),
		StdTestScore:    make([]float64, len(candidates)),
		MeanFitTime:     make([]time.Duration, len(candidates)),
	}
	for i := range candidates {
		results.MeanTestScore[i], results.StdTestScore[i] = meanStd(scores[i])
		results.MeanFitTime[i] = lo.Sum(fitTimes[i]) / time.Duration(numFolds)
	}
	results.RankTestScore = rank(results.MeanTestScore)
	results.BestIndex = lo.IndexOf(results.RankTestScore, 1)
	results.BestParams = candidates[results.BestIndex].Copy()
	results.BestScore = results.MeanTestScore[results.BestIndex]
	log.Logger().Info("complete grid search",
		zap.Int("n_candidates", len(candidates)),
		zap.Int("n_folds", numFolds),
		zap.Float64("best_score", results.BestScore),
		zap.Stringer("best_params", results.BestParams))
	return results, nil
}

// rank assigns 1 to the greatest score. Equal scores share the smallest rank.
func rank(scores []float64) []int {
	order := lo.Range(len(scores))
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	ranks := make([]int, len(scores))
	for i, idx := range order {
		if i > 0 && scores[idx] == scores[order[i-1]] {
			ranks[idx] = ranks[order[i-1]]
		} else {
			ranks[idx] = i + 1
		}
	}
	return ranks
}
