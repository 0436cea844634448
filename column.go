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

// Geometry of the sample strip used by columnSample, in pixels at scale 1.
const (
	sampleOffset = 10 // distance between the strip and the region top
	sampleHeight = 2
)

// sampleRow returns the image row from which columnSample takes colours
// for a region starting at row top.
func sampleRow(img *image.NRGBA, top int, scale float64) int {
	b := img.Bounds()
	offset := int(math.Round(sampleOffset * scale))
	height := max(int(math.Round(sampleHeight*scale)), 1)

	start := max(top-offset, b.Min.Y)
	row := start + height/2
	return min(row, b.Max.Y-1)
}

// columnSample fills r column by column.  Each column of the region is
// painted with the colour found in the same column in a thin strip above
// the region.
//
// This only hides content convincingly where the background above the
// region is close to uniform; gradients and patterns are not reproduced.
func columnSample(img *image.NRGBA, r image.Rectangle, scale float64) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}

	src := sampleRow(img, r.Min.Y, scale)
	srcOff := img.PixOffset(r.Min.X, src)
	// copy the strip first, since it may overlap the region
	strip := make([]uint8, 4*r.Dx())
	copy(strip, img.Pix[srcOff:srcOff+len(strip)])

	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		copy(img.Pix[off:off+len(strip)], strip)
	}
}
