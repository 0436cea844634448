// seehuhn.de/go/scrub - remove marked regions from PDF pages
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package testcases

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// WritePDF writes the pages of c as a PDF document to w.
// All content is drawn with filled rectangles, so that the pages
// contain vector graphics only.
func WritePDF(w io.Writer, c Case) error {
	out, err := pdf.NewWriter(w, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	rm := pdf.NewResourceManager(out)
	tree := pagetree.NewWriter(out, rm)

	for i, p := range c.Pages {
		if err := writePage(out, tree, p); err != nil {
			return fmt.Errorf("page %d: %w", i, err)
		}
	}

	ref, err := tree.Close()
	if err != nil {
		return err
	}
	out.GetMeta().Catalog.Pages = ref
	if err := rm.Close(); err != nil {
		return err
	}
	return out.Close()
}

func writePage(out *pdf.Writer, tree *pagetree.Writer, p Page) error {
	buf := &bytes.Buffer{}
	writeBackground(buf, p)
	for _, m := range p.Marks {
		fillRect(buf, m.Color, m.X, m.Y, m.Width, m.Height)
	}

	contentRef := out.Alloc()
	stm, err := out.OpenStream(contentRef, nil, pdf.FilterCompress{})
	if err != nil {
		return err
	}
	if _, err := stm.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := stm.Close(); err != nil {
		return err
	}

	dict := pdf.Dict{
		"Type":     pdf.Name("Page"),
		"MediaBox": pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Number(p.Width), pdf.Number(p.Height)},
		"Contents": contentRef,
	}
	return tree.AppendPageDict(out.Alloc(), dict)
}

func writeBackground(buf *bytes.Buffer, p Page) {
	switch bg := p.Background.(type) {
	case Uniform:
		fillRect(buf, bg.Color, 0, 0, p.Width, p.Height)
	case Stripes:
		period := bg.Period * p.Width
		fillRect(buf, bg.B, 0, 0, p.Width, p.Height)
		for x := 0.0; x < p.Width; x += period {
			fillRect(buf, bg.A, x, 0, min(period/2, p.Width-x), p.Height)
		}
	default:
		// one band per point, sampled in the middle
		n := int(math.Ceil(p.Height))
		for i := range n {
			v := (float64(i) + 0.5) / p.Height
			y := p.Height - float64(i+1)
			fillRect(buf, bg.At(0.5, v), 0, max(y, 0), p.Width, min(1, p.Height-float64(i)))
		}
	}
}

func fillRect(buf *bytes.Buffer, c color.NRGBA, x, y, w, h float64) {
	fmt.Fprintf(buf, "%.4f %.4f %.4f rg %.3f %.3f %.3f %.3f re f\n",
		float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, x, y, w, h)
}
