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

//go:build !gocv || !cgo

package opencv

import (
	"image"

	"seehuhn.de/go/scrub"
)

// Inpainter is not functional in builds without OpenCV.
type Inpainter struct{}

// New fails with ErrNotAvailable in builds without OpenCV.
func New() (*Inpainter, error) {
	return nil, ErrNotAvailable
}

// Load fails with ErrNotAvailable in builds without OpenCV.
func Load() (scrub.Inpainter, error) {
	return nil, ErrNotAvailable
}

// Inpaint always fails with ErrNotAvailable.
func (*Inpainter) Inpaint(*image.NRGBA, *image.Gray, float64, scrub.InpaintMethod) (*image.NRGBA, error) {
	return nil, ErrNotAvailable
}
