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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorse-io/evalviz/base/log"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultFormat is the image format used by Figure.WriteTo.
const DefaultFormat = "png"

// colorBarFraction is the share of the figure width taken by a color bar.
const colorBarFraction = 0.15

// Figure is a rendered report. Nothing is written until the caller asks
// for it by WriteTo or Save.
type Figure struct {
	Plot     *plot.Plot
	ColorBar *plot.Plot // drawn right of Plot if not nil
	Width    vg.Length
	Height   vg.Length
	Format   string
}

func newFigure(p *plot.Plot, width, height vg.Length) *Figure {
	return &Figure{
		Plot:   p,
		Width:  width,
		Height: height,
		Format: DefaultFormat,
	}
}

// SetSize resizes the figure. Sizes are in inches and zero keeps the
// current size.
func (f *Figure) SetSize(width, height float64) {
	if width > 0 {
		f.Width = vg.Length(width) * vg.Inch
	}
	if height > 0 {
		f.Height = vg.Length(height) * vg.Inch
	}
}

// WriteTo encodes the figure in Format.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	return f.write(w, f.Format)
}

// Save writes the figure to a file. The format is taken from the file
// extension, such as png, svg, pdf, jpg, tiff or eps.
func (f *Figure) Save(path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return errors.NotValidf("figure path %s without extension", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	if _, err = f.write(file, format); err != nil {
		_ = file.Close()
		return errors.Trace(err)
	}
	return errors.Trace(file.Close())
}

func (f *Figure) write(w io.Writer, format string) (int64, error) {
	c, err := draw.NewFormattedCanvas(f.Width, f.Height, format)
	if err != nil {
		return 0, errors.Annotatef(err, "create %s canvas", format)
	}
	dc := draw.New(c)
	if f.ColorBar == nil {
		f.Plot.Draw(dc)
	} else {
		split := f.Width * (1 - colorBarFraction)
		f.Plot.Draw(draw.Crop(dc, 0, split-f.Width, 0, 0))
		f.ColorBar.Draw(draw.Crop(dc, split, 0, 0, 0))
	}
	n, err := c.WriteTo(w)
	if err != nil {
		return n, errors.Trace(err)
	}
	log.Logger().Debug("render figure",
		zap.String("title", f.Plot.Title.Text),
		zap.String("format", format),
		zap.Int64("bytes", n))
	return n, nil
}

// newPlot creates a plot with the common look of reports.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// dashes of a dashed line.
var dashes = []vg.Length{vg.Points(5), vg.Points(3)}
