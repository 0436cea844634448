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
	"fmt"
	"image"
)

// PageState is the progress of a single page through the pipeline.
type PageState int

const (
	PageIdle PageState = iota
	RenderingPage
	Filling
	Encoding
	Embedding
	PageDone
)

func (s PageState) String() string {
	switch s {
	case PageIdle:
		return "idle"
	case RenderingPage:
		return "rendering"
	case Filling:
		return "filling"
	case Encoding:
		return "encoding"
	case Embedding:
		return "embedding"
	case PageDone:
		return "done"
	default:
		return fmt.Sprintf("PageState(%d)", int(s))
	}
}

// DocState is the progress of a whole document run.
type DocState int

const (
	DocIdle DocState = iota
	ProcessingDocument
	Complete
	Failed
)

func (s DocState) String() string {
	switch s {
	case DocIdle:
		return "idle"
	case ProcessingDocument:
		return "processing"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("DocState(%d)", int(s))
	}
}

// pageRun holds the state of one page while it is rebuilt.
type pageRun struct {
	rc      *RunContext
	idx     int
	regions []Region
}

func (p *pageRun) enter(s PageState) {
	p.rc.Logger.Debug("page state", "page", p.idx, "state", s)
	if p.rc.OnState != nil {
		p.rc.OnState(p.idx, s)
	}
}

// rebuild renders the page, fills the regions and appends the result to
// the output document as a full-page image.
func (p *pageRun) rebuild(ctx context.Context) error {
	rc := p.rc

	p.enter(RenderingPage)
	page, err := rc.Source.RenderPage(ctx, p.idx, rc.WorkingScale)
	if err == nil && (page == nil || page.Image == nil) {
		err = fmt.Errorf("renderer returned no image")
	}
	if err != nil {
		return &Error{Kind: KindRender, Page: p.idx, Err: err}
	}

	p.enter(Filling)
	img, err := p.fill(page)
	if err != nil {
		return &Error{Kind: KindFill, Page: p.idx, Err: err}
	}
	page.Image = img
	if rc.Overlay != nil {
		rc.Overlay.apply(page)
	}

	p.enter(Encoding)
	data, err := Encode(page.Image, rc.Format, rc.Quality)
	if err != nil {
		return &Error{Kind: KindEncode, Page: p.idx, Err: err}
	}

	p.enter(Embedding)
	if err := embedPage(rc.Output, data, rc.Format, page.WidthPts, page.HeightPts); err != nil {
		return &Error{Kind: KindEmbed, Page: p.idx, Err: err}
	}

	rc.Logger.Info("page rebuilt",
		"page", p.idx,
		"strategy", rc.Fill.Strategy,
		"regions", len(p.regions),
		"bytes", len(data))
	p.enter(PageDone)
	return nil
}

// pixelRects converts the page regions into the pixel grid of page.
func (p *pageRun) pixelRects(page *RenderedPage) []image.Rectangle {
	g := page.Geometry()
	bounds := page.Image.Bounds()
	rects := make([]image.Rectangle, 0, len(p.regions))
	for _, r := range p.regions {
		pr := PixelBounds(r.Rect, p.rc.Selection.Space, g, page.Scale).Intersect(bounds)
		if !pr.Empty() {
			rects = append(rects, pr)
		}
	}
	return rects
}

// fill applies the configured strategy, and the fallback strategy if the
// first one fails and a fallback has been configured.
func (p *pageRun) fill(page *RenderedPage) (*image.NRGBA, error) {
	rc := p.rc
	rects := p.pixelRects(page)

	img, err := fillAt(page.Image, rects, rc.Fill, page.Scale)
	if err == nil || rc.Fallback == nil {
		return img, err
	}

	rc.Logger.Warn("fill failed, using fallback",
		"page", p.idx,
		"strategy", rc.Fill.Strategy,
		"fallback", rc.Fallback.Strategy,
		"err", err)
	img, err2 := fillAt(page.Image, rects, *rc.Fallback, page.Scale)
	if err2 != nil {
		return nil, fmt.Errorf("%w (fallback: %w)", err, err2)
	}
	return img, nil
}

// embedPage adds a page of the given size to out, covered by one image.
func embedPage(out OutputDocument, data []byte, f Format, w, h float64) error {
	img, err := out.EmbedImage(data, f)
	if err != nil {
		return err
	}
	page, err := out.AddPage(w, h)
	if err != nil {
		return err
	}
	return out.DrawImage(page, img, 0, 0, w, h)
}
