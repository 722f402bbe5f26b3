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

package main

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	path := writeCSV(t,
		"name, label, score",
		"a, 1, 0.5",
		"b, 0, rbf")
	table, err := readTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "label", "score"}, table.header)

	names, err := table.column("name")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	labels, err := table.ints("label")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, labels)
	values, err := table.values("score")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{0.5, "rbf"}, values)

	_, err = table.floats("score")
	assert.Error(t, err)
	_, err = table.column("probability")
	assert.True(t, errors.Is(err, errors.NotFound))

	_, err = readTable(writeCSV(t))
	assert.Error(t, err)
}
