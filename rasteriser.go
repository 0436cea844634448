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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// rasteriser computes anti-aliased pixel coverage for filled paths.
// It is used to draw region masks and preview overlays.
// Buffers are kept between calls, so one instance should be reused for
// all shapes drawn onto the same image.  Not safe for concurrent use.
type rasteriser struct {
	// CTM maps path coordinates to pixel coordinates.
	CTM matrix.Matrix

	// Clip is the pixel area which receives output.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in pixels, between a curve and
	// the polygon which replaces it.
	Flatness float64

	// bufferThreshold is the largest bounding box area, in pixels, for
	// which whole-shape 2D buffers are used.  Larger shapes are processed
	// one scanline at a time using an active edge list.
	bufferThreshold int

	segs     []segment
	active   []int
	cover    []float32 // signed vertical extent per pixel; becomes the output
	area     []float32 // cover weighted by the position inside the pixel
	firstX   []int     // per row, leftmost pixel touched by an edge
	lastX    []int     // per row, rightmost pixel touched by an edge
	splits   []float64 // y values where a segment crosses a pixel column
	haveBBox bool
	bbox     rect.Rect // bounding box of segs in pixel coordinates
}

// segment is a non-horizontal line segment in pixel coordinates.
type segment struct {
	x0, y0, x1, y1 float64
	slope          float64 // dx/dy
}

func newRasteriser(clip rect.Rect) *rasteriser {
	return &rasteriser{
		CTM:             matrix.Identity,
		Clip:            clip,
		Flatness:        defaultFlatness,
		bufferThreshold: defaultBufferThreshold,
	}
}

const (
	defaultFlatness        = 0.25
	defaultBufferThreshold = 1 << 16

	// segments with a smaller vertical extent are ignored
	minSegmentHeight = 1e-10
)

// fillNonZero computes the coverage of p under the nonzero winding rule.
// emit is called once per affected row, with the coverage of the pixels
// starting at column x0.  The slice is reused after emit returns.
func (r *rasteriser) fillNonZero(p *path.Data, emit func(y, x0 int, coverage []float32)) {
	r.fill(p, false, emit)
}

// fillEvenOdd is like fillNonZero, but uses the even-odd rule.
func (r *rasteriser) fillEvenOdd(p *path.Data, emit func(y, x0 int, coverage []float32)) {
	r.fill(p, true, emit)
}

func (r *rasteriser) fill(p *path.Data, evenOdd bool, emit func(y, x0 int, coverage []float32)) {
	x0, x1, y0, y1, ok := r.collect(p)
	if !ok {
		return
	}
	if (x1-x0)*(y1-y0) < r.bufferThreshold {
		r.fillBuffered(x0, x1, y0, y1, evenOdd, emit)
	} else {
		r.fillScanlines(x0, x1, y0, y1, evenOdd, emit)
	}
}

// collect converts p into pixel space segments and returns the pixel
// range they touch, clipped to r.Clip.
func (r *rasteriser) collect(p *path.Data) (x0, x1, y0, y1 int, ok bool) {
	r.segs = r.segs[:0]
	r.haveBBox = false

	var cur, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			start = cur
			k++
		case path.CmdLineTo:
			r.addSegment(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuad(cur, p.Coords[k], p.Coords[k+1])
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCube(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if cur != start {
				r.addSegment(cur, start)
			}
			cur = start
		}
	}
	if len(r.segs) == 0 {
		return 0, 0, 0, 0, false
	}

	x0 = max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	x1 = min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	y0 = max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	y1 = min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return x0, x1, y0, y1, true
}

func (r *rasteriser) addSegment(a, b vec.Vec2) {
	a = r.CTM.Apply(a)
	b = r.CTM.Apply(b)
	dy := b.Y - a.Y
	if math.Abs(dy) < minSegmentHeight {
		return
	}
	r.segs = append(r.segs, segment{
		x0: a.X, y0: a.Y, x1: b.X, y1: b.Y,
		slope: (b.X - a.X) / dy,
	})

	box := rect.Rect{
		LLx: min(a.X, b.X), LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X), URy: max(a.Y, b.Y),
	}
	if !r.haveBBox {
		r.bbox = box
		r.haveBBox = true
		return
	}
	r.bbox.LLx = min(r.bbox.LLx, box.LLx)
	r.bbox.LLy = min(r.bbox.LLy, box.LLy)
	r.bbox.URx = max(r.bbox.URx, box.URx)
	r.bbox.URy = max(r.bbox.URy, box.URy)
}

// deviceLength returns the length of v after applying the linear part
// of the CTM.
func (r *rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

func (r *rasteriser) flattenQuad(p0, p1, p2 vec.Vec2) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addSegment(prev, q)
		prev = q
	}
}

func (r *rasteriser) flattenCube(p0, p1, p2, p3 vec.Vec2) {
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if f := math.Sqrt(3 * dev / (4 * r.Flatness)); f > 1 {
		n = int(math.Ceil(f)) // Wang's formula
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		q := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addSegment(prev, q)
		prev = q
	}
}

// accumulate adds the contribution of s within row y to cover and area.
// Index 0 of the buffers corresponds to pixel column x0; contributions left
// of x0 are folded into index 0, contributions right of x1 are dropped.
//
// For every pixel, cover holds the signed height of the segment parts in
// that pixel column and area holds the same value weighted by the fraction
// of the pixel to the right of the segment.  Integrating along the row
// then gives the signed area of the shape within each pixel.
func (r *rasteriser) accumulate(s *segment, y int, cover, area []float32, x0, x1 int) {
	top := max(float64(y), min(s.y0, s.y1))
	bot := min(float64(y+1), max(s.y0, s.y1))
	if bot <= top {
		return
	}
	dir := float32(1)
	if s.y1 < s.y0 {
		dir = -1
	}

	xt := s.x0 + s.slope*(top-s.y0)
	xb := s.x0 + s.slope*(bot-s.y0)
	left := int(math.Floor(min(xt, xb)))
	right := int(math.Floor(max(xt, xb)))
	if left >= x1 {
		return
	}

	r.splits = append(r.splits[:0], top, bot)
	for x := left + 1; x <= right; x++ {
		yx := s.y0 + (float64(x)-s.x0)/s.slope
		if yx > top && yx < bot {
			r.splits = append(r.splits, yx)
		}
	}
	if len(r.splits) > 2 {
		slices.Sort(r.splits)
	}

	for i := 1; i < len(r.splits); i++ {
		ya, yb := r.splits[i-1], r.splits[i]
		if yb <= ya {
			continue
		}
		c := dir * float32(yb-ya)
		xm := s.x0 + s.slope*((ya+yb)/2-s.y0)
		px := int(math.Floor(xm))
		switch {
		case px < x0:
			cover[0] += c
			area[0] += c
		case px < x1:
			cover[px-x0] += c
			area[px-x0] += c * float32(1-(xm-float64(px)))
		}
	}
}

// integrate turns a row of cover and area values into coverage, in place.
func integrate(cover, area []float32, evenOdd bool) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		if evenOdd {
			v -= 2 * float32(int(v/2))
			if v > 1 {
				v = 2 - v
			}
		} else if v > 1 {
			v = 1
		}
		cover[i] = v
	}
}

// nonZeroSpan returns the part of row between the first and the last
// non-zero entry, together with its offset.
func nonZeroSpan(row []float32) ([]float32, int) {
	lo, hi := 0, len(row)
	for lo < hi && row[lo] == 0 {
		lo++
	}
	for hi > lo && row[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return row[lo:hi], lo
}

// column returns the pixel column, relative to x0, in which s crosses the
// middle of its part within row y.  The result is clamped to [0, x1-x0).
func (s *segment) column(y int, x0, x1 int) int {
	top := max(float64(y), min(s.y0, s.y1))
	bot := min(float64(y+1), max(s.y0, s.y1))
	x := int(math.Floor(s.x0 + s.slope*((top+bot)/2-s.y0)))
	return min(max(x, x0), x1-1) - x0
}

// fillBuffered accumulates all rows of the shape at once.
// This avoids sorting the segments and is faster for small shapes.
func (r *rasteriser) fillBuffered(x0, x1, y0, y1 int, evenOdd bool, emit func(y, x0 int, coverage []float32)) {
	w, h := x1-x0, y1-y0
	r.cover = slices.Grow(r.cover[:0], w*h)[:w*h]
	r.area = slices.Grow(r.area[:0], w*h)[:w*h]
	clear(r.cover)
	clear(r.area)
	r.firstX = slices.Grow(r.firstX[:0], h)[:h]
	r.lastX = slices.Grow(r.lastX[:0], h)[:h]
	for i := range h {
		r.firstX[i] = w
		r.lastX[i] = -1
	}

	for i := range r.segs {
		s := &r.segs[i]
		from := max(int(math.Floor(min(s.y0, s.y1))), y0)
		to := min(int(math.Floor(max(s.y0, s.y1)))+1, y1)
		for y := from; y < to; y++ {
			row := y - y0
			r.accumulate(s, y, r.cover[row*w:(row+1)*w], r.area[row*w:(row+1)*w], x0, x1)
			c := s.column(y, x0, x1)
			r.firstX[row] = min(r.firstX[row], c)
			r.lastX[row] = max(r.lastX[row], c)
		}
	}

	for row := range h {
		if r.lastX[row] < 0 {
			continue
		}
		line := r.cover[row*w : (row+1)*w]
		integrate(line, r.area[row*w:(row+1)*w], evenOdd)
		if span, off := nonZeroSpan(line); span != nil {
			emit(y0+row, x0+off, span)
		}
	}
}

// fillScanlines processes one row at a time, keeping a list of the
// segments which intersect the current row.
func (r *rasteriser) fillScanlines(x0, x1, y0, y1 int, evenOdd bool, emit func(y, x0 int, coverage []float32)) {
	w := x1 - x0
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.segs, func(a, b segment) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})
	r.active = r.active[:0]
	next := 0

	for y := y0; y < y1; y++ {
		for next < len(r.segs) && min(r.segs[next].y0, r.segs[next].y1) < float64(y+1) {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			s := &r.segs[r.active[i]]
			if max(s.y0, s.y1) <= float64(y) {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			r.accumulate(s, y, r.cover, r.area, x0, x1)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, evenOdd)
		if span, off := nonZeroSpan(r.cover); span != nil {
			emit(y, x0+off, span)
		}
	}
}

// reset prepares the rasteriser for a new target area, keeping the
// allocated buffers.
func (r *rasteriser) reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.segs = r.segs[:0]
	r.active = r.active[:0]
	r.haveBBox = false
}
