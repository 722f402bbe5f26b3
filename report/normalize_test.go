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

	"github.com/stretchr/testify/assert"
)

func TestMidpointNormalize(t *testing.T) {
	n := MidpointNormalize{VMin: 0.2, Midpoint: 0.7, VMax: 0.9}
	assert.Equal(t, 0.0, n.Normalize(0.2))
	assert.Equal(t, 0.5, n.Normalize(0.7))
	assert.Equal(t, 1.0, n.Normalize(0.9))
	assert.InDelta(t, 0.25, n.Normalize(0.45), 1e-9)
	assert.InDelta(t, 0.75, n.Normalize(0.8), 1e-9)
	// clamped
	assert.Equal(t, 0.0, n.Normalize(-1))
	assert.Equal(t, 1.0, n.Normalize(2))
}
