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
	"sync"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// rasterisers holds rasterisers for reuse across pages, so that the edge
// buffers are not reallocated for every mask.
var rasterisers = sync.Pool{
	New: func() any { return newRasteriser(rect.Rect{}) },
}

// regionMask returns a single-channel mask covering bounds, with every
// rectangle in rects painted white on black.
func regionMask(bounds image.Rectangle, rects []image.Rectangle) *image.Gray {
	mask := image.NewGray(bounds)
	ras := rasterisers.Get().(*rasteriser)
	defer rasterisers.Put(ras)
	ras.reset(clipRect(bounds))

	p := &path.Data{}
	for _, r := range rects {
		appendRect(p, float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
	}
	ras.fillNonZero(p, func(y, x0 int, coverage []float32) {
		off := mask.PixOffset(x0, y)
		row := mask.Pix[off : off+len(coverage)]
		for i, c := range coverage {
			row[i] = max(row[i], clampByte(c*255))
		}
	})
	return mask
}

// appendRect adds a closed, clockwise (in pixel space) rectangle to p.
func appendRect(p *path.Data, x0, y0, x1, y1 float64) {
	p.Cmds = append(p.Cmds,
		path.CmdMoveTo, path.CmdLineTo, path.CmdLineTo, path.CmdLineTo, path.CmdClose)
	p.Coords = append(p.Coords,
		vec.Vec2{X: x0, Y: y0},
		vec.Vec2{X: x1, Y: y0},
		vec.Vec2{X: x1, Y: y1},
		vec.Vec2{X: x0, Y: y1},
	)
}

func clipRect(b image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(b.Min.X), LLy: float64(b.Min.Y),
		URx: float64(b.Max.X), URy: float64(b.Max.Y),
	}
}
