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

package scrub

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

// Preview styling.
var (
	PreviewFill    = color.NRGBA{R: 0xE0, G: 0x20, B: 0x20, A: 0x50}
	PreviewOutline = color.NRGBA{R: 0xE0, G: 0x20, B: 0x20, A: 0xFF}
)

const previewOutlineWidth = 2 // pixels, after scaling

// Preview draws the marked regions onto a copy of a rendered page.
// The rectangles are in pixel coordinates of img.  The copy is scaled by
// factor, which must be positive.  Regions are drawn in order, so later
// regions appear on top of earlier ones.
func Preview(img image.Image, rects []image.Rectangle, factor float64) *image.NRGBA {
	src := img.Bounds()
	w := max(int(math.Round(float64(src.Dx())*factor)), 1)
	h := max(int(math.Round(float64(src.Dy())*factor)), 1)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if factor == 1 {
		draw.Draw(out, out.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(out, out.Bounds(), img, src, draw.Src, nil)
	}

	ras := newRasteriser(clipRect(out.Bounds()))
	ras.CTM = matrix.Translate(-float64(src.Min.X), -float64(src.Min.Y)).
		Mul(matrix.Scale(factor, factor))
	d := previewOutlineWidth / factor // outline width before scaling

	for _, r := range rects {
		x0, y0 := float64(r.Min.X), float64(r.Min.Y)
		x1, y1 := float64(r.Max.X), float64(r.Max.Y)

		body := &path.Data{}
		appendRect(body, x0, y0, x1, y1)
		ras.fillNonZero(body, blendRow(out, PreviewFill))

		// Two nested rectangles of the same orientation leave a ring
		// under the even-odd rule.
		ring := &path.Data{}
		appendRect(ring, x0, y0, x1, y1)
		if x1-x0 > 2*d && y1-y0 > 2*d {
			appendRect(ring, x0+d, y0+d, x1-d, y1-d)
		}
		ras.fillEvenOdd(ring, blendRow(out, PreviewOutline))
	}
	return out
}

// blendRow returns a callback which composites col over dst, weighted by
// the coverage values.
func blendRow(dst *image.NRGBA, col color.NRGBA) func(y, x0 int, coverage []float32) {
	return func(y, x0 int, coverage []float32) {
		off := dst.PixOffset(x0, y)
		for i, c := range coverage {
			p := dst.Pix[off+4*i : off+4*i+4 : off+4*i+4]
			a := c * float32(col.A) / 255
			if a <= 0 {
				continue
			}
			da := float32(p[3]) / 255
			oa := a + da*(1-a)
			if oa <= 0 {
				continue
			}
			blend := func(s, d uint8) uint8 {
				return clampByte((float32(s)*a + float32(d)*da*(1-a)) / oa)
			}
			p[0] = blend(col.R, p[0])
			p[1] = blend(col.G, p[1])
			p[2] = blend(col.B, p[2])
			p[3] = clampByte(oa * 255)
		}
	}
}
