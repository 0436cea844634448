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
	"image/color"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/rect"
)

// BenchmarkRasteriserO measures the rasteriser on an "O" shape, as used
// for the outline of the preview overlay.
func BenchmarkRasteriserO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := newRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			mid := float64(size) / 2
			o := ringPath(mid, mid, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.reset(clip)
				r.fillEvenOdd(o, func(y, x0 int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+x0:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO draws the same shape with x/image/vector, for comparison.
func BenchmarkVectorO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			c := float32(size) / 2
			outer := float32(size) * 0.45
			inner := float32(size) * 0.30

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				// vector only knows the nonzero rule, so the inner circle
				// runs the other way
				addCircleToVector(r, c, c, outer, false)
				addCircleToVector(r, c, c, inner, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkRegionMask measures mask construction for a full page at the
// default working scale.
func BenchmarkRegionMask(b *testing.B) {
	w, h := a4.PixelSize(DefaultWorkingScale)
	bounds := image.Rect(0, 0, w, h)
	rects := []image.Rectangle{
		image.Rect(990, 1560, 1160, 1640),
		image.Rect(40, 40, 400, 90),
	}
	b.ReportAllocs()
	for b.Loop() {
		regionMask(bounds, rects)
	}
}

func BenchmarkFill(b *testing.B) {
	w, h := a4.PixelSize(DefaultWorkingScale)
	rects := []image.Rectangle{image.Rect(990, 1560, 1160, 1640)}
	for _, s := range []Strategy{ColumnSample, GaussianBlur} {
		b.Run(s.String(), func(b *testing.B) {
			img := stripedImage(w, h)
			opt := FillOptions{Strategy: s, Radius: DefaultBlurRadius}
			for b.Loop() {
				if _, err := fillAt(img, rects, opt, DefaultWorkingScale); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic Bézier curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	if clockwise {
		r.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	r.ClosePath()
}
