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

package importance

import (
	"testing"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

var names = []string{"age", "income", "height", "weight", "score"}

func newForest(t *testing.T) *Table {
	table, err := NewTable([][]float64{
		{0.10, 0.40, 0.05, 0.25, 0.20},
		{0.20, 0.30, 0.05, 0.25, 0.20},
		{0.15, 0.35, 0.05, 0.25, 0.20},
	})
	require.NoError(t, err)
	return table
}

func TestTable(t *testing.T) {
	forest := newForest(t)
	assert.InDeltaSlice(t, []float64{0.15, 0.35, 0.05, 0.25, 0.20}, forest.FeatureImportances(), 1e-9)
	assert.InDelta(t, 1, floats.Sum(forest.FeatureImportances()), 1e-9)
	assert.Len(t, forest.Estimators(), 3)

	_, err := NewTable(nil)
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewTable([][]float64{{1}, {0.5, 0.5}})
	assert.True(t, errors.Is(err, errors.NotValid))
}

func TestRank(t *testing.T) {
	forest := newForest(t)
	features, err := Rank(forest, names, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"income", "weight", "score"}, Names(features))
	assert.Equal(t, []int{1, 2, 3}, lo.Map(features, func(f Feature, _ int) int { return f.Rank }))
	assert.Equal(t, []int{1, 3, 4}, lo.Map(features, func(f Feature, _ int) int { return f.Index }))
	assert.InDelta(t, 0.35, features[0].Importance, 1e-9)
	// population standard deviation of {0.4, 0.3, 0.35}
	assert.InDelta(t, 0.0408248, features[0].Std, 1e-6)
	assert.InDelta(t, 0, features[1].Std, 1e-9)
}

func TestRankAll(t *testing.T) {
	forest := newForest(t)
	for _, n := range []int{AllFeatures, -1, len(names), 100} {
		features, err := Rank(forest, names, n)
		require.NoError(t, err)
		assert.Len(t, features, len(names))
		assert.ElementsMatch(t, names, Names(features))
		for i := 1; i < len(features); i++ {
			assert.GreaterOrEqual(t, features[i-1].Importance, features[i].Importance)
		}
	}
}

func TestRankStable(t *testing.T) {
	ensemble, err := NewTable([][]float64{{0.25, 0.25, 0.5, 0, 0}})
	require.NoError(t, err)
	features, err := Rank(ensemble, names, AllFeatures)
	require.NoError(t, err)
	assert.Equal(t, []string{"height", "age", "income", "weight", "score"}, Names(features))
}

type mockEnsemble struct {
	importances []float64
	members     []Importer
}

func (m mockEnsemble) FeatureImportances() []float64 { return m.importances }

func (m mockEnsemble) Estimators() []Importer { return m.members }

func TestRankInvalid(t *testing.T) {
	forest := newForest(t)
	_, err := Rank(forest, names[:2], AllFeatures)
	assert.True(t, errors.Is(err, errors.NotValid))

	ensemble := mockEnsemble{
		importances: []float64{0.5, 0.5},
		members:     []Importer{Importances{0.5, 0.5}, Importances{1}},
	}
	_, err = Rank(ensemble, []string{"a", "b"}, AllFeatures)
	assert.True(t, errors.Is(err, errors.NotValid))

	// an ensemble without members has no spread
	features, err := Rank(mockEnsemble{importances: []float64{0.3, 0.7}}, []string{"a", "b"}, AllFeatures)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, Names(features))
	assert.Zero(t, features[0].Std)
}
