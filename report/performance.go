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
	"io"

	"github.com/gorse-io/evalviz/metrics"
	"github.com/juju/errors"
)

// PerformanceMetrics evaluates a binary classifier, prints its precision,
// recall and F-score to w and draws its ROC curve.
func PerformanceMetrics(w io.Writer, actual, predicted []int, probability []float64) (*metrics.Performance, *Figure, error) {
	performance, err := metrics.Evaluate(actual, predicted, probability)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	fig, err := renderROC(performance.Curve, performance.AUC/100)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	if _, err = fmt.Fprintf(w, "precision: %0.2f, recall: %0.2f\n", performance.Precision, performance.Recall); err != nil {
		return nil, nil, errors.Trace(err)
	}
	if _, err = fmt.Fprintf(w, "f-score: %0.2f\n", performance.FScore); err != nil {
		return nil, nil, errors.Trace(err)
	}
	return performance, fig, nil
}
