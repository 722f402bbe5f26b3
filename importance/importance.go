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

// Package importance ranks features of a fitted ensemble by importance.
package importance

import (
	"math"
	"sort"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// AllFeatures requests every feature from Rank.
const AllFeatures = 0

// Importer exposes per-feature importances of a fitted estimator.
type Importer interface {
	FeatureImportances() []float64
}

// Ensemble is a fitted ensemble of estimators, such as a random forest. The
// importances of the ensemble are usually the mean of its members'.
type Ensemble interface {
	Importer
	Estimators() []Importer
}

// Feature is a ranked feature.
type Feature struct {
	Rank       int // 1-based
	Index      int // column in the training matrix
	Name       string
	Importance float64
	Std        float64 // standard deviation across members
}

// Rank sorts features by descending importance and keeps the top n. Ties keep
// the original feature order. n <= 0 keeps every feature.
func Rank(ensemble Ensemble, names []string, n int) ([]Feature, error) {
	importances := ensemble.FeatureImportances()
	if len(importances) != len(names) {
		return nil, errors.NotValidf("%d feature names for %d importances", len(names), len(importances))
	}
	if n <= AllFeatures || n > len(importances) {
		n = len(importances)
	}
	std, err := memberStd(ensemble.Estimators(), len(importances))
	if err != nil {
		return nil, errors.Trace(err)
	}
	indices := lo.Range(len(importances))
	sort.SliceStable(indices, func(i, j int) bool {
		return importances[indices[i]] > importances[indices[j]]
	})
	features := make([]Feature, n)
	for rank, index := range indices[:n] {
		features[rank] = Feature{
			Rank:       rank + 1,
			Index:      index,
			Name:       names[index],
			Importance: importances[index],
			Std:        std[index],
		}
	}
	return features, nil
}

// Names of ranked features in rank order.
func Names(features []Feature) []string {
	return lo.Map(features, func(f Feature, _ int) string {
		return f.Name
	})
}

func memberStd(members []Importer, numFeatures int) ([]float64, error) {
	std := make([]float64, numFeatures)
	if len(members) == 0 {
		return std, nil
	}
	column := make([]float64, len(members))
	for j := 0; j < numFeatures; j++ {
		for i, member := range members {
			importances := member.FeatureImportances()
			if len(importances) != numFeatures {
				return nil, errors.NotValidf("member %d has %d importances, ensemble has %d", i, len(importances), numFeatures)
			}
			column[i] = importances[j]
		}
		std[j] = math.Sqrt(stat.PopVariance(column, nil))
	}
	return std, nil
}

// Importances is a fixed importance vector.
type Importances []float64

func (imp Importances) FeatureImportances() []float64 {
	return imp
}

// Table is an Ensemble built from the importance vectors of its members. Its
// own importances are the member mean.
type Table struct {
	members []Importer
	mean    []float64
}

// NewTable creates an ensemble from member importance vectors of equal length.
func NewTable(members [][]float64) (*Table, error) {
	if len(members) == 0 {
		return nil, errors.NotValidf("empty ensemble")
	}
	numFeatures := len(members[0])
	table := &Table{
		members: make([]Importer, len(members)),
		mean:    make([]float64, numFeatures),
	}
	for i, member := range members {
		if len(member) != numFeatures {
			return nil, errors.NotValidf("member %d has %d importances, expect %d", i, len(member), numFeatures)
		}
		table.members[i] = Importances(member)
		for j, v := range member {
			table.mean[j] += v
		}
	}
	for j := range table.mean {
		table.mean[j] /= float64(len(members))
	}
	return table, nil
}

func (t *Table) FeatureImportances() []float64 {
	return t.mean
}

func (t *Table) Estimators() []Importer {
	return t.members
}
