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
)

// Strategy selects the algorithm used to fill marked regions.
type Strategy int

const (
	// ColumnSample paints every column of a region with the colour found
	// just above the region.  This is the default.
	ColumnSample Strategy = iota

	// GaussianBlur defocuses the contents of a region.
	GaussianBlur

	// ExemplarInpaint reconstructs a region from its surroundings using
	// an external inpainting library.
	ExemplarInpaint
)

func (s Strategy) String() string {
	switch s {
	case ColumnSample:
		return "column"
	case GaussianBlur:
		return "blur"
	case ExemplarInpaint:
		return "inpaint"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts the name returned by Strategy.String back into a
// Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{ColumnSample, GaussianBlur, ExemplarInpaint} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown fill strategy %q", name)
}

// FillOptions configures a fill.  Only the fields used by the selected
// strategy are consulted.
type FillOptions struct {
	Strategy Strategy

	// Radius is the blur radius (GaussianBlur) or the neighbourhood
	// radius (ExemplarInpaint), in pixels at scale 1.  The value is
	// multiplied by the working scale before use.  A blur radius below 1
	// leaves the image unchanged.
	Radius float64

	// Method selects the inpainting algorithm for ExemplarInpaint.
	Method InpaintMethod

	// Inpainter performs ExemplarInpaint fills.
	// If nil, DefaultInpainter() is used.
	Inpainter Inpainter
}

// Default fill parameters, in pixels at scale 1.
const (
	DefaultBlurRadius    = 8
	DefaultInpaintRadius = 3
)

// Fill applies the selected strategy to all rectangles in rects.
// The rectangles are given in pixel coordinates of img and are filled in
// order.  The image is modified in place where possible; the returned image
// always holds the result and has the same bounds as img.
func Fill(img *image.NRGBA, rects []image.Rectangle, opt FillOptions) (*image.NRGBA, error) {
	return fillAt(img, rects, opt, 1)
}

func fillAt(img *image.NRGBA, rects []image.Rectangle, opt FillOptions, scale float64) (*image.NRGBA, error) {
	if len(rects) == 0 {
		return img, nil
	}

	switch opt.Strategy {
	case ColumnSample:
		for _, r := range rects {
			columnSample(img, r, scale)
		}
		return img, nil

	case GaussianBlur:
		if opt.Radius < 1 {
			return img, nil
		}
		radius := int(opt.Radius*scale + 0.5)
		for _, r := range rects {
			gaussianBlur(img, r, radius)
		}
		return img, nil

	case ExemplarInpaint:
		inp := opt.Inpainter
		if inp == nil {
			inp = DefaultInpainter()
		}
		mask := regionMask(img.Bounds(), rects)
		out, err := inp.Inpaint(img, mask, opt.Radius*scale, opt.Method)
		if err != nil {
			return nil, err
		}
		if out.Bounds() != img.Bounds() {
			return nil, fmt.Errorf("inpainting changed the image size from %v to %v",
				img.Bounds(), out.Bounds())
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown fill strategy %d", int(opt.Strategy))
	}
}
