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

// Package opencv provides exemplar inpainting through OpenCV.
//
// OpenCV is only linked in when building with cgo and the build tag gocv.
// Otherwise every constructor reports [ErrNotAvailable], which wraps
// scrub.ErrInpaintUnavailable, so that callers can fall back to another
// fill strategy.
package opencv

import (
	"fmt"

	"seehuhn.de/go/scrub"
)

// ErrNotAvailable is returned when the package was built without OpenCV.
var ErrNotAvailable = fmt.Errorf("%w: built without OpenCV (use -tags gocv)", scrub.ErrInpaintUnavailable)
