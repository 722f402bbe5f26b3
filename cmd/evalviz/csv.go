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
	"encoding/csv"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// table is a CSV file with a header line.
type table struct {
	header []string
	rows   [][]string
}

func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Annotatef(err, "read %s", path)
	}
	if len(records) == 0 {
		return nil, errors.NotValidf("%s without header", path)
	}
	return &table{
		header: lo.Map(records[0], func(name string, _ int) string { return strings.TrimSpace(name) }),
		rows:   records[1:],
	}, nil
}

func (t *table) index(name string) (int, error) {
	i := lo.IndexOf(t.header, name)
	if i < 0 {
		return 0, errors.NotFoundf("column %s", name)
	}
	return i, nil
}

func (t *table) column(name string) ([]string, error) {
	i, err := t.index(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return lo.Map(t.rows, func(row []string, _ int) string { return row[i] }), nil
}

func (t *table) floats(name string) ([]float64, error) {
	column, err := t.column(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	values := make([]float64, len(column))
	for i, cell := range column {
		if values[i], err = cast.ToFloat64E(strings.TrimSpace(cell)); err != nil {
			return nil, errors.Annotatef(err, "row %d of column %s", i+1, name)
		}
	}
	return values, nil
}

func (t *table) ints(name string) ([]int, error) {
	column, err := t.column(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	values := make([]int, len(column))
	for i, cell := range column {
		if values[i], err = cast.ToIntE(strings.TrimSpace(cell)); err != nil {
			return nil, errors.Annotatef(err, "row %d of column %s", i+1, name)
		}
	}
	return values, nil
}

// values parses cells as numbers where possible and keeps text otherwise.
func (t *table) values(name string) ([]interface{}, error) {
	column, err := t.column(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return lo.Map(column, func(cell string, _ int) interface{} {
		cell = strings.TrimSpace(cell)
		if f, err := cast.ToFloat64E(cell); err == nil {
			return f
		}
		return cell
	}), nil
}
