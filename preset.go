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
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Corner names a corner of the page.
type Corner int

const (
	BottomRight Corner = iota
	BottomLeft
	TopRight
	TopLeft
)

var cornerNames = map[Corner]string{
	BottomRight: "bottom-right",
	BottomLeft:  "bottom-left",
	TopRight:    "top-right",
	TopLeft:     "top-left",
}

func (c Corner) String() string {
	if name, ok := cornerNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// ParseCorner converts a name like "top-left" to a Corner.
// Unknown names map to BottomRight.
func ParseCorner(name string) Corner {
	for c, n := range cornerNames {
		if n == name {
			return c
		}
	}
	return BottomRight
}

// DefaultMargin is the distance between a preset region and the page
// edges, in PDF points.
const DefaultMargin = 20

// PresetRegion returns a w×h rectangle, in DocumentPoint coordinates,
// placed in the given corner of the page at distance margin from both
// edges.  A margin of zero selects DefaultMargin; use a negative margin
// to place the rectangle flush with the page edges.  The rectangle is
// moved inwards if it would extend beyond the page, and shrunk if it is
// larger than the page.
func PresetRegion(c Corner, g PageGeometry, w, h, margin float64) Rect {
	if margin == 0 {
		margin = DefaultMargin
	}
	margin = max(margin, 0)
	w = min(w, g.WidthPts)
	h = min(h, g.HeightPts)

	var x, y float64
	switch c {
	case BottomLeft:
		x, y = margin, margin
	case TopRight:
		x, y = g.WidthPts-w-margin, g.HeightPts-h-margin
	case TopLeft:
		x, y = margin, g.HeightPts-h-margin
	default:
		x, y = g.WidthPts-w-margin, margin
	}
	x = min(max(x, 0), g.WidthPts-w)
	y = min(max(y, 0), g.HeightPts-h)
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Overlay is a replacement image, for example a logo, drawn onto every
// rebuilt page after the marked regions have been filled.
type Overlay struct {
	Image image.Image

	Corner Corner

	// WidthPts is the width of the overlay on the page.  The height
	// follows from the aspect ratio of Image.
	WidthPts float64

	// Margin is the distance from the page edges, in PDF points, with
	// the same conventions as for PresetRegion.
	Margin float64
}

// apply draws the overlay onto a rendered page.
// An overlay without an image is ignored.
func (o *Overlay) apply(p *RenderedPage) {
	if o.Image == nil {
		return
	}
	b := o.Image.Bounds()
	if b.Empty() || o.WidthPts <= 0 {
		return
	}
	g := p.Geometry()
	h := o.WidthPts * float64(b.Dy()) / float64(b.Dx())
	box := PresetRegion(o.Corner, g, o.WidthPts, h, o.Margin)
	px := ConvertRect(box, Document, PixelSpace(p.Scale), g)

	dst := image.Rect(
		int(math.Round(px.X)), int(math.Round(px.Y)),
		int(math.Round(px.X+px.Width)), int(math.Round(px.Y+px.Height)),
	).Intersect(p.Image.Bounds())
	if dst.Empty() {
		return
	}
	draw.CatmullRom.Scale(p.Image, dst, o.Image, b, draw.Over, nil)
}
