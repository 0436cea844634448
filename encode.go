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
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Format is the image format used for rebuilt pages.
type Format int

const (
	// JPEG is lossy and keeps rebuilt pages small.
	JPEG Format = iota

	// PNG is lossless.
	PNG
)

func (f Format) String() string {
	switch f {
	case JPEG:
		return "jpeg"
	case PNG:
		return "png"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts "jpeg" (or "jpg") and "png" to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "jpeg", "jpg":
		return JPEG, nil
	case "png":
		return PNG, nil
	}
	return 0, fmt.Errorf("unknown image format %q", name)
}

// Encode serializes img.  Transparent areas are composited over white,
// as they would appear on paper.
func Encode(img *image.NRGBA, f Format, quality int) ([]byte, error) {
	flat := flatten(img)
	buf := &bytes.Buffer{}
	var err error
	switch f {
	case JPEG:
		err = jpeg.Encode(buf, flat, &jpeg.Options{Quality: quality})
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		err = enc.Encode(buf, flat)
	default:
		err = fmt.Errorf("unsupported image format %s", f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flatten composites img over an opaque white background.
func flatten(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}
