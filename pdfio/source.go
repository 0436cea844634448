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

// Package pdfio connects the scrub pipeline to PDF files.
//
// [Source] reads and renders the pages of an input document, [Writer]
// builds the output document.
package pdfio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"golang.org/x/image/draw"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/converter"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/scrub"
)

// Source is an input PDF document.
// It implements the scrub.Source interface.
type Source struct {
	r     *pdf.Reader
	conv  *converter.Converter
	sizes []scrub.PageGeometry
}

// Open opens the PDF file with the given name.
// Files larger than maxBytes are rejected with scrub.ErrInputTooLarge;
// if maxBytes is zero or negative, the size is not checked.
func Open(fname string, maxBytes int64) (*Source, error) {
	if maxBytes > 0 {
		fi, err := os.Stat(fname)
		if err != nil {
			return nil, err
		}
		if fi.Size() > maxBytes {
			return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)",
				fname, scrub.ErrInputTooLarge, fi.Size(), maxBytes)
		}
	}
	r, err := pdf.Open(fname, nil)
	if err != nil {
		return nil, err
	}
	s, err := NewSource(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return s, nil
}

// OpenBytes reads a PDF document from memory.
// Documents larger than maxBytes are rejected as for Open.
func OpenBytes(data []byte, maxBytes int64) (*Source, error) {
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w (%d bytes, limit %d)",
			scrub.ErrInputTooLarge, len(data), maxBytes)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, err
	}
	s, err := NewSource(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return s, nil
}

// NewSource wraps an open PDF reader.  The page sizes are read
// immediately.  Closing the Source closes r.
func NewSource(r *pdf.Reader) (*Source, error) {
	n, err := pagetree.NumPages(r)
	if err != nil {
		return nil, fmt.Errorf("reading page tree: %w", err)
	}
	sizes := make([]scrub.PageGeometry, n)
	for i := range n {
		_, dict, err := pagetree.GetPage(r, i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		g, err := pageGeometry(r, dict)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		sizes[i] = g
	}
	return &Source{
		r:     r,
		conv:  converter.NewConverter(r),
		sizes: sizes,
	}, nil
}

var errNoMediaBox = errors.New("missing or empty MediaBox")

func pageGeometry(r pdf.Getter, dict pdf.Dict) (scrub.PageGeometry, error) {
	box, err := pdf.GetRectangle(r, dict["MediaBox"])
	if err != nil {
		return scrub.PageGeometry{}, err
	}
	if box == nil || box.URx <= box.LLx || box.URy <= box.LLy {
		return scrub.PageGeometry{}, errNoMediaBox
	}
	return scrub.PageGeometry{
		WidthPts:  box.URx - box.LLx,
		HeightPts: box.URy - box.LLy,
	}, nil
}

// Layout returns the sizes of all pages.
func (s *Source) Layout() scrub.Layout {
	return scrub.Layout(s.sizes)
}

// NumPages implements the scrub.Source interface.
func (s *Source) NumPages() int {
	return len(s.sizes)
}

// PageSize returns the physical size of a page.
func (s *Source) PageSize(idx int) (scrub.PageGeometry, error) {
	if idx < 0 || idx >= len(s.sizes) {
		return scrub.PageGeometry{}, fmt.Errorf("page %d out of range [0,%d)", idx, len(s.sizes))
	}
	return s.sizes[idx], nil
}

// RenderPage implements the scrub.Source interface.
func (s *Source) RenderPage(ctx context.Context, idx int, scale float64) (*scrub.RenderedPage, error) {
	g, err := s.PageSize(idx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := s.conv.RenderPageToImage(idx+1, 72*scale)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty page image")
	}
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return &scrub.RenderedPage{
		PageIndex: idx,
		Image:     rgba,
		Scale:     scale,
		WidthPts:  g.WidthPts,
		HeightPts: g.HeightPts,
	}, nil
}

// Close closes the underlying reader.
func (s *Source) Close() error {
	return s.r.Close()
}
