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
	"context"
	"image"
)

// RenderedPage is a page rasterised for filling.  It is discarded once the
// page has been rebuilt.
type RenderedPage struct {
	PageIndex int
	Image     *image.NRGBA

	// Scale is the number of pixels per PDF point.
	Scale float64

	// WidthPts and HeightPts give the physical page size.
	WidthPts, HeightPts float64
}

// Geometry returns the physical size of the page.
func (p *RenderedPage) Geometry() PageGeometry {
	return PageGeometry{WidthPts: p.WidthPts, HeightPts: p.HeightPts}
}

// Source is an input document which can be rendered page by page.
// Implementations need not be safe for concurrent use.
type Source interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// RenderPage rasterises a page at the given number of pixels per point.
	RenderPage(ctx context.Context, idx int, scale float64) (*RenderedPage, error)
}

// PageHandle identifies a page of an OutputDocument.
type PageHandle int

// ImageHandle identifies an image embedded in an OutputDocument.
type ImageHandle int

// OutputDocument accumulates the pages of the result of a run.
// It is owned by a single run and finalized by exactly one call to Save.
type OutputDocument interface {
	// AddPage appends an empty page of the given size, in PDF points.
	AddPage(widthPts, heightPts float64) (PageHandle, error)

	// EmbedImage stores encoded image data in the document.
	EmbedImage(data []byte, f Format) (ImageHandle, error)

	// DrawImage places an embedded image on a page.  (x, y) is the
	// lower-left corner, in PDF points.
	DrawImage(page PageHandle, img ImageHandle, x, y, w, h float64) error

	// CopyPage appends page idx of the source document unchanged.
	CopyPage(idx int) error

	// Save finalizes the document and returns its serialized form.
	Save() ([]byte, error)
}
