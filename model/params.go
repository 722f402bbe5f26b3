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
	"fmt"
	"sort"

	"github.com/gorse-io/evalviz/base/log"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ParamName is the type of hyper-parameter names.
type ParamName string

// Params stores hyper-parameters for an estimator. It is a map between names
// and values. For example, hyper-parameters for a support vector machine are
// given by:
//
//	model.Params{
//		"C":     1.0,
//		"gamma": 0.01,
//	}
type Params map[ParamName]interface{}

// Copy hyper-parameters.
func (parameters Params) Copy() Params {
	newParams := make(Params, len(parameters))
	for k, v := range parameters {
		newParams[k] = v
	}
	return newParams
}

// GetInt gets an integer parameter by name. Returns _default if not exists or
// the value can't be converted.
func (parameters Params) GetInt(name ParamName, _default int) int {
	if val, exist := parameters[name]; exist {
		i, err := cast.ToIntE(val)
		if err != nil {
			log.Logger().Error("invalid integer parameter", zap.String("name", string(name)), zap.Error(err))
			return _default
		}
		return i
	}
	return _default
}

// GetFloat64 gets a float parameter by name. Returns _default if not exists or
// the value can't be converted.
func (parameters Params) GetFloat64(name ParamName, _default float64) float64 {
	if val, exist := parameters[name]; exist {
		f, err := cast.ToFloat64E(val)
		if err != nil {
			log.Logger().Error("invalid float parameter", zap.String("name", string(name)), zap.Error(err))
			return _default
		}
		return f
	}
	return _default
}

// Overwrite returns a copy of parameters updated by params.
func (parameters Params) Overwrite(params Params) Params {
	merged := make(Params, len(parameters)+len(params))
	for k, v := range parameters {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}
	return merged
}

func (parameters Params) String() string {
	names := lo.Keys(parameters)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return fmt.Sprint(lo.Map(names, func(name ParamName, _ int) string {
		return fmt.Sprintf("%s=%v", name, parameters[name])
	}))
}

// ParamsGrid contains candidates for grid search.
type ParamsGrid map[ParamName][]interface{}

func (grid ParamsGrid) Len() int {
	return len(grid)
}

// Names returns parameter names in lexicographic order.
func (grid ParamsGrid) Names() []ParamName {
	names := lo.Keys(grid)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (grid ParamsGrid) NumCombinations() int {
	if len(grid) == 0 {
		return 0
	}
	count := 1
	for _, values := range grid {
		count *= len(values)
	}
	return count
}

// Combinations enumerates every candidate. Names are sorted and the last name
// varies fastest.
func (grid ParamsGrid) Combinations() []Params {
	names := grid.Names()
	combinations := make([]Params, 0, grid.NumCombinations())
	if len(names) == 0 {
		return combinations
	}
	var dfs func(deep int, params Params)
	dfs = func(deep int, params Params) {
		if deep == len(names) {
			combinations = append(combinations, params.Copy())
			return
		}
		name := names[deep]
		for _, val := range grid[name] {
			params[name] = val
			dfs(deep+1, params)
		}
	}
	dfs(0, make(Params, len(names)))
	return combinations
}
