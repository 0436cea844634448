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
	"image"
	"image/color"
	"math"
)

// Case is a synthetic document together with the regions to remove.
type Case struct {
	Name    string // lowercase a-z and _ only
	Pages   []Page
	Regions []Region
}

// Page is a synthetic page: a background with rectangular marks on top.
type Page struct {
	Width, Height float64 // in PDF points
	Background    Background
	Marks         []Mark
}

// Region is a rectangle to remove, in PDF points with the origin in the
// bottom-left corner of the page.
type Region struct {
	Page          int
	X, Y          float64
	Width, Height float64
}

// Mark is a filled rectangle drawn onto a page, in PDF points with the
// origin in the bottom-left corner.
type Mark struct {
	X, Y, Width, Height float64
	Color               color.NRGBA
}

// Background describes how the page is painted before the marks are drawn.
type Background interface {
	// At returns the colour at the normalized position (u, v),
	// where (0, 0) is the top-left corner of the page.
	At(u, v float64) color.NRGBA
}

// Uniform is a background of a single colour.
type Uniform struct {
	Color color.NRGBA
}

// At implements the Background interface.
func (b Uniform) At(u, v float64) color.NRGBA { return b.Color }

// Gradient changes linearly from Top to Bottom.
type Gradient struct {
	Top, Bottom color.NRGBA
}

// At implements the Background interface.
func (b Gradient) At(u, v float64) color.NRGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*(1-v) + float64(b)*v))
	}
	return color.NRGBA{
		R: mix(b.Top.R, b.Bottom.R),
		G: mix(b.Top.G, b.Bottom.G),
		B: mix(b.Top.B, b.Bottom.B),
		A: mix(b.Top.A, b.Bottom.A),
	}
}

// Stripes are vertical stripes of equal width, alternating between
// two colours.  Period is the width of one pair of stripes, as a fraction
// of the page width.
type Stripes struct {
	A, B   color.NRGBA
	Period float64
}

// At implements the Background interface.
func (b Stripes) At(u, v float64) color.NRGBA {
	if math.Mod(u, b.Period) < b.Period/2 {
		return b.A
	}
	return b.B
}

// Render draws the page at the given number of pixels per point.
// The result has its origin in the top-left corner of the page.
func (p Page) Render(scale float64) *image.NRGBA {
	w := int(math.Ceil(p.Width*scale - 1e-6))
	h := int(math.Ceil(p.Height*scale - 1e-6))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		v := (float64(y) + 0.5) / float64(h)
		for x := range w {
			u := (float64(x) + 0.5) / float64(w)
			img.SetNRGBA(x, y, p.Background.At(u, v))
		}
	}
	for _, m := range p.Marks {
		r := image.Rect(
			int(math.Round(m.X*scale)),
			int(math.Round((p.Height-m.Y-m.Height)*scale)),
			int(math.Round((m.X+m.Width)*scale)),
			int(math.Round((p.Height-m.Y)*scale)),
		).Intersect(img.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetNRGBA(x, y, m.Color)
			}
		}
	}
	return img
}

// Colours used by the cases.
var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	paper = color.NRGBA{R: 250, G: 246, B: 235, A: 255}
	ink   = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	red   = color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	grey  = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	blue  = color.NRGBA{R: 40, G: 60, B: 160, A: 255}
)

// Standard paper sizes in PDF points.
const (
	a4Width, a4Height         = 595, 842
	letterWidth, letterHeight = 612, 792
)
