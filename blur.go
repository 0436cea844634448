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
	"math"
)

// gaussKernel returns the normalized 1-D Gaussian kernel of size 2*radius+1
// with standard deviation radius/3.
func gaussKernel(radius int) []float32 {
	sigma := float64(radius) / 3
	k := make([]float32, 2*radius+1)
	var sum float64
	for i := range k {
		d := float64(i - radius)
		w := math.Exp(-d * d / (2 * sigma * sigma))
		k[i] = float32(w)
		sum += w
	}
	for i := range k {
		k[i] /= float32(sum)
	}
	return k
}

// gaussianBlur blurs the pixels inside r with a separable Gaussian filter,
// first horizontally and then vertically.  Only pixels inside r contribute;
// near the border of r the kernel is renormalized to the weight which falls
// inside.  A radius below 1 leaves the image unchanged.
func gaussianBlur(img *image.NRGBA, r image.Rectangle, radius int) {
	r = r.Intersect(img.Bounds())
	if radius < 1 || r.Empty() {
		return
	}
	kernel := gaussKernel(radius)
	w, h := r.Dx(), r.Dy()

	// load the region into a float buffer, 4 channels per pixel
	buf := make([]float32, 4*w*h)
	for y := range h {
		off := img.PixOffset(r.Min.X, r.Min.Y+y)
		row := img.Pix[off : off+4*w]
		for i, v := range row {
			buf[4*w*y+i] = float32(v)
		}
	}
	tmp := make([]float32, len(buf))

	blurPass(tmp, buf, kernel, w, h, 4, 4*w) // horizontal
	blurPass(buf, tmp, kernel, h, w, 4*w, 4) // vertical

	for y := range h {
		off := img.PixOffset(r.Min.X, r.Min.Y+y)
		row := img.Pix[off : off+4*w]
		for i := range row {
			row[i] = clampByte(buf[4*w*y+i])
		}
	}
}

// blurPass convolves n lines of length l with kernel.  Consecutive samples
// along a line are step floats apart, consecutive lines are stride floats
// apart.
func blurPass(dst, src, kernel []float32, l, n, step, stride int) {
	radius := len(kernel) / 2
	for line := range n {
		base := line * stride
		for i := range l {
			lo := max(i-radius, 0)
			hi := min(i+radius, l-1)

			var acc [4]float32
			var weight float32
			for j := lo; j <= hi; j++ {
				k := kernel[j-i+radius]
				p := base + j*step
				acc[0] += k * src[p]
				acc[1] += k * src[p+1]
				acc[2] += k * src[p+2]
				acc[3] += k * src[p+3]
				weight += k
			}
			p := base + i*step
			for c := range 4 {
				dst[p+c] = acc[c] / weight
			}
		}
	}
}

func clampByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
