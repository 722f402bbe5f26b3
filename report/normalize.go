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

// MidpointNormalize maps [VMin, Midpoint, VMax] to [0, 0.5, 1] piecewise
// linearly. Values outside [VMin, VMax] are clamped.
type MidpointNormalize struct {
	VMin     float64
	Midpoint float64
	VMax     float64
}

// Normalize maps a value into [0, 1].
func (n MidpointNormalize) Normalize(v float64) float64 {
	switch {
	case v <= n.VMin:
		return 0
	case v >= n.VMax:
		return 1
	case v <= n.Midpoint:
		return 0.5 * (v - n.VMin) / (n.Midpoint - n.VMin)
	default:
		return 0.5 + 0.5*(v-n.Midpoint)/(n.VMax-n.Midpoint)
	}
}
