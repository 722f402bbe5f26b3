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
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotActualVsPredicted(t *testing.T) {
	fig, err := PlotActualVsPredicted([]float64{3, 1, 4, 1, 5}, []float64{2.5, 0.5, 4.5, 1.5, 6})
	require.NoError(t, err)
	assert.Equal(t, "actual versus predicted values", fig.Plot.Title.Text)
	assert.Equal(t, "actual", fig.Plot.X.Label.Text)
	assert.Equal(t, "predicted", fig.Plot.Y.Label.Text)
	// identity line spans both series
	assert.Equal(t, 0.5, fig.Plot.X.Min)
	assert.Equal(t, 6.0, fig.Plot.X.Max)
	assertPNG(t, fig)

	_, err = PlotActualVsPredicted([]float64{1, 2}, []float64{1})
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = PlotActualVsPredicted(nil, nil)
	assert.True(t, errors.Is(err, errors.NotValid))
}
