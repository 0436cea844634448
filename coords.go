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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// SpaceKind identifies a coordinate system for points and regions on a page.
type SpaceKind int

const (
	// RenderPixel is the pixel grid of a rendered page image.
	// The origin is the top-left corner, y grows downwards.
	RenderPixel SpaceKind = iota

	// NormalizedPage maps the page to the unit square.
	// The origin is the top-left corner, y grows downwards.
	NormalizedPage

	// DocumentPoint uses PDF points (1/72 inch).
	// The origin is the bottom-left corner, y grows upwards.
	DocumentPoint
)

func (k SpaceKind) String() string {
	switch k {
	case RenderPixel:
		return "pixel"
	case NormalizedPage:
		return "normalized"
	case DocumentPoint:
		return "document"
	default:
		return fmt.Sprintf("SpaceKind(%d)", int(k))
	}
}

// Space is a coordinate system together with its parameters.
type Space struct {
	Kind SpaceKind

	// Scale is the number of pixels per PDF point.
	// Only used for RenderPixel.
	Scale float64

	// Padding is the width of the margin around the page image, in pixels.
	// Only used for RenderPixel.
	Padding float64
}

// PixelSpace returns the render-pixel space at the given scale, without padding.
func PixelSpace(scale float64) Space {
	return Space{Kind: RenderPixel, Scale: scale}
}

// Predefined spaces which do not need parameters.
var (
	Normalized = Space{Kind: NormalizedPage}
	Document   = Space{Kind: DocumentPoint}
)

func (s Space) String() string {
	if s.Kind != RenderPixel {
		return s.Kind.String()
	}
	if s.Padding != 0 {
		return fmt.Sprintf("pixel(%g,pad=%g)", s.Scale, s.Padding)
	}
	return fmt.Sprintf("pixel(%g)", s.Scale)
}

// PageGeometry is the physical size of a page in PDF points.
type PageGeometry struct {
	WidthPts  float64
	HeightPts float64
}

// PixelSize returns the size of the page image rendered at the given scale.
func (g PageGeometry) PixelSize(scale float64) (w, h int) {
	return int(math.Ceil(g.WidthPts*scale - 1e-6)), int(math.Ceil(g.HeightPts*scale - 1e-6))
}

// Rect is an axis-aligned rectangle.  (X, Y) is the corner nearest to the
// origin of the space the rectangle is expressed in: top-left for
// RenderPixel and NormalizedPage, bottom-left for DocumentPoint.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Canon returns the rectangle with negative extents flipped, so that the
// result has Width >= 0 and Height >= 0.
func (r Rect) Canon() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// toNormalized returns the matrix which maps s to NormalizedPage.
func (s Space) toNormalized(g PageGeometry) matrix.Matrix {
	switch s.Kind {
	case RenderPixel:
		sx := s.Scale * g.WidthPts
		sy := s.Scale * g.HeightPts
		return matrix.Translate(-s.Padding, -s.Padding).Mul(matrix.Scale(1/sx, 1/sy))
	case DocumentPoint:
		return matrix.Scale(1/g.WidthPts, -1/g.HeightPts).Mul(matrix.Translate(0, 1))
	default:
		return matrix.Identity
	}
}

// fromNormalized returns the matrix which maps NormalizedPage to s.
func (s Space) fromNormalized(g PageGeometry) matrix.Matrix {
	switch s.Kind {
	case RenderPixel:
		sx := s.Scale * g.WidthPts
		sy := s.Scale * g.HeightPts
		return matrix.Scale(sx, sy).Mul(matrix.Translate(s.Padding, s.Padding))
	case DocumentPoint:
		return matrix.Translate(0, -1).Mul(matrix.Scale(g.WidthPts, -g.HeightPts))
	default:
		return matrix.Identity
	}
}

// Transform returns the matrix which maps coordinates in space from to
// coordinates in space to, for a page of the given size.
func Transform(from, to Space, g PageGeometry) matrix.Matrix {
	if g.WidthPts <= 0 || g.HeightPts <= 0 {
		panic(fmt.Sprintf("scrub: invalid page geometry %gx%g", g.WidthPts, g.HeightPts))
	}
	if (from.Kind == RenderPixel && from.Scale <= 0) || (to.Kind == RenderPixel && to.Scale <= 0) {
		panic("scrub: render scale must be positive")
	}
	return from.toNormalized(g).Mul(to.fromNormalized(g))
}

// Convert maps a point from one coordinate space to another.
func Convert(p vec.Vec2, from, to Space, g PageGeometry) vec.Vec2 {
	return Transform(from, to, g).Apply(p)
}

// ConvertRect maps a rectangle from one coordinate space to another.
// Crossing between top-left and bottom-left origin spaces moves (X, Y) to
// the corner nearest the new origin, so that for a normalized rectangle n
// the document Y coordinate is H - n.Y*H - height.
func ConvertRect(r Rect, from, to Space, g PageGeometry) Rect {
	m := Transform(from, to, g)
	r = r.Canon()
	a := m.Apply(vec.Vec2{X: r.X, Y: r.Y})
	b := m.Apply(vec.Vec2{X: r.X + r.Width, Y: r.Y + r.Height})
	return Rect{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// DocumentRect returns the region r, given in space s, as a PDF rectangle.
func DocumentRect(r Rect, s Space, g PageGeometry) rect.Rect {
	d := ConvertRect(r, s, Document, g)
	return rect.Rect{LLx: d.X, LLy: d.Y, URx: d.X + d.Width, URy: d.Y + d.Height}
}

// PixelBounds converts r into the pixel grid of a page rendered at the given
// scale.  The result covers every pixel touched by r and is clipped to the
// image.
func PixelBounds(r Rect, s Space, g PageGeometry, scale float64) image.Rectangle {
	p := ConvertRect(r, s, PixelSpace(scale), g)
	w, h := g.PixelSize(scale)
	out := image.Rect(
		int(math.Floor(p.X+roundSlack)),
		int(math.Floor(p.Y+roundSlack)),
		int(math.Ceil(p.X+p.Width-roundSlack)),
		int(math.Ceil(p.Y+p.Height-roundSlack)),
	)
	return out.Intersect(image.Rect(0, 0, w, h))
}

// roundSlack absorbs floating point noise when snapping to the pixel grid.
const roundSlack = 1e-6

// Layout is the list of page sizes of a document, indexed by page.
type Layout []PageGeometry

// Page returns the geometry of the page with the given index.
// An index out of range is a programming error and causes a panic.
func (l Layout) Page(idx int) PageGeometry {
	if idx < 0 || idx >= len(l) {
		panic(fmt.Sprintf("scrub: page index %d out of range [0,%d)", idx, len(l)))
	}
	return l[idx]
}
