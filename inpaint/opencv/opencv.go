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

//go:build gocv && cgo

package opencv

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"seehuhn.de/go/scrub"
)

// Inpainter reconstructs masked image areas using OpenCV.
// It implements the scrub.Inpainter interface.
type Inpainter struct{}

// New returns an OpenCV based Inpainter.
func New() (*Inpainter, error) {
	return &Inpainter{}, nil
}

// Load returns an OpenCV based Inpainter.
// It can be used as the Load function of a scrub.LazyInpainter.
func Load() (scrub.Inpainter, error) {
	return New()
}

// Inpaint implements the scrub.Inpainter interface.
// The alpha channel of src is copied to the result unchanged.
func (*Inpainter) Inpaint(src *image.NRGBA, mask *image.Gray, radius float64, method scrub.InpaintMethod) (*image.NRGBA, error) {
	b := src.Bounds()
	if mask.Bounds() != b {
		return nil, fmt.Errorf("mask bounds %v do not match image bounds %v", mask.Bounds(), b)
	}

	var flag gocv.InpaintMethods
	switch method {
	case scrub.Telea:
		flag = gocv.Telea
	case scrub.NavierStokes:
		flag = gocv.NS
	default:
		return nil, fmt.Errorf("unsupported inpainting method %s", method)
	}

	img, err := toBGR(src)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer img.Close()

	m, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, packGray(mask))
	if err != nil {
		return nil, fmt.Errorf("convert mask: %w", err)
	}
	defer m.Close()

	res := gocv.NewMat()
	defer res.Close()
	gocv.Inpaint(img, m, &res, float32(radius), flag)
	if res.Empty() {
		return nil, fmt.Errorf("inpainting produced no output")
	}

	rgba := gocv.NewMat()
	defer rgba.Close()
	gocv.CvtColor(res, &rgba, gocv.ColorBGRToRGBA)
	pix := rgba.ToBytes()
	if len(pix) != 4*b.Dx()*b.Dy() {
		return nil, fmt.Errorf("unexpected output size %d", len(pix))
	}

	out := image.NewNRGBA(b)
	for y := range b.Dy() {
		row := out.Pix[y*out.Stride : y*out.Stride+4*b.Dx()]
		copy(row, pix[4*b.Dx()*y:])
		orig := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := range b.Dx() {
			row[4*x+3] = orig[4*x+3]
		}
	}
	return out, nil
}

// toBGR converts an image into the 3-channel layout used by OpenCV.
func toBGR(src *image.NRGBA) (gocv.Mat, error) {
	b := src.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	for y := range b.Dy() {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[4*b.Dx()*y:], src.Pix[off:off+4*b.Dx()])
	}
	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, pix)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer mat.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// packGray returns the mask pixels without row padding.
func packGray(m *image.Gray) []byte {
	b := m.Bounds()
	if m.Stride == b.Dx() && b.Min == (image.Point{}) {
		return m.Pix[:b.Dx()*b.Dy()]
	}
	pix := make([]byte, b.Dx()*b.Dy())
	for y := range b.Dy() {
		off := m.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[b.Dx()*y:], m.Pix[off:off+b.Dx()])
	}
	return pix
}
