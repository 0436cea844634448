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

package pdfio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"strconv"

	"golang.org/x/image/draw"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/pdfcopy"

	"seehuhn.de/go/scrub"
)

// Writer builds an output PDF document in memory.
// Pages are written in the order in which they are added.
// It implements the scrub.OutputDocument interface.
type Writer struct {
	src    *pdf.Reader
	buf    *bytes.Buffer
	out    *pdf.Writer
	rm     *pdf.ResourceManager
	tree   *pagetree.Writer
	copier *pdfcopy.Copier

	images []embeddedImage
	pages  int
	open   *pendingPage
	saved  bool
}

type embeddedImage struct {
	ref pdf.Reference
}

// pendingPage is a page which still receives drawing operations.
// It is written when the next page is started or the document is saved.
type pendingPage struct {
	handle   scrub.PageHandle
	ref      pdf.Reference
	w, h     float64
	content  bytes.Buffer
	xObjects pdf.Dict
}

// NewWriter creates an empty output document.  Pages copied with CopyPage
// are taken from src, which may be nil if CopyPage is not used.
func NewWriter(src *Source) (*Writer, error) {
	v := pdf.V1_7
	var r *pdf.Reader
	if src != nil {
		r = src.r
		if srcV := pdf.GetVersion(r); srcV > v {
			v = srcV
		}
	}

	buf := &bytes.Buffer{}
	out, err := pdf.NewWriter(buf, v, nil)
	if err != nil {
		return nil, err
	}
	rm := pdf.NewResourceManager(out)
	w := &Writer{
		src:  r,
		buf:  buf,
		out:  out,
		rm:   rm,
		tree: pagetree.NewWriter(out, rm),
	}
	if r != nil {
		w.copier = pdfcopy.NewCopier(out, r)
	}
	return w, nil
}

var errSaved = errors.New("document has already been saved")

// AddPage implements the scrub.OutputDocument interface.
func (w *Writer) AddPage(width, height float64) (scrub.PageHandle, error) {
	if w.saved {
		return 0, errSaved
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("invalid page size %gx%g", width, height)
	}
	if err := w.flush(); err != nil {
		return 0, err
	}
	w.open = &pendingPage{
		handle:   scrub.PageHandle(w.pages),
		ref:      w.out.Alloc(),
		w:        width,
		h:        height,
		xObjects: pdf.Dict{},
	}
	w.pages++
	return w.open.handle, nil
}

// EmbedImage implements the scrub.OutputDocument interface.
// JPEG data is stored unchanged; PNG data is decoded and stored
// losslessly with Flate compression.
func (w *Writer) EmbedImage(data []byte, f scrub.Format) (scrub.ImageHandle, error) {
	if w.saved {
		return 0, errSaved
	}
	ref := w.out.Alloc()
	var err error
	switch f {
	case scrub.JPEG:
		err = w.putJPEG(ref, data)
	case scrub.PNG:
		err = w.putPNG(ref, data)
	default:
		err = fmt.Errorf("unsupported image format %s", f)
	}
	if err != nil {
		return 0, err
	}
	w.images = append(w.images, embeddedImage{ref: ref})
	return scrub.ImageHandle(len(w.images) - 1), nil
}

func (w *Writer) putJPEG(ref pdf.Reference, data []byte) error {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}
	colorSpace := pdf.Name("DeviceRGB")
	if cfg.ColorModel == color.GrayModel {
		colorSpace = "DeviceGray"
	}
	stm, err := w.out.OpenStream(ref, pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(cfg.Width),
		"Height":           pdf.Integer(cfg.Height),
		"ColorSpace":       colorSpace,
		"BitsPerComponent": pdf.Integer(8),
		"Filter":           pdf.Name("DCTDecode"),
	})
	if err != nil {
		return err
	}
	if _, err := stm.Write(data); err != nil {
		return err
	}
	return stm.Close()
}

func (w *Writer) putPNG(ref pdf.Reference, data []byte) error {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	stm, err := w.out.OpenStream(ref, pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(b.Dx()),
		"Height":           pdf.Integer(b.Dy()),
		"ColorSpace":       pdf.Name("DeviceRGB"),
		"BitsPerComponent": pdf.Integer(8),
	}, pdf.FilterCompress{})
	if err != nil {
		return err
	}
	row := make([]byte, 3*b.Dx())
	for y := range b.Dy() {
		pix := rgba.Pix[y*rgba.Stride:]
		for x := range b.Dx() {
			row[3*x] = pix[4*x]
			row[3*x+1] = pix[4*x+1]
			row[3*x+2] = pix[4*x+2]
		}
		if _, err := stm.Write(row); err != nil {
			return err
		}
	}
	return stm.Close()
}

// DrawImage implements the scrub.OutputDocument interface.
// Only the most recently added page can be drawn on.
func (w *Writer) DrawImage(page scrub.PageHandle, img scrub.ImageHandle, x, y, width, height float64) error {
	if w.open == nil || w.open.handle != page {
		return fmt.Errorf("page %d is not open for drawing", page)
	}
	if int(img) < 0 || int(img) >= len(w.images) {
		return fmt.Errorf("unknown image %d", img)
	}
	name := pdf.Name(fmt.Sprintf("Im%d", len(w.open.xObjects)))
	w.open.xObjects[name] = w.images[img].ref
	fmt.Fprintf(&w.open.content, "q %s 0 0 %s %s %s cm /%s Do Q\n",
		num(width), num(height), num(x), num(y), name)
	return nil
}

// CopyPage implements the scrub.OutputDocument interface.
func (w *Writer) CopyPage(idx int) error {
	if w.saved {
		return errSaved
	}
	if w.src == nil {
		return errors.New("no source document")
	}
	if err := w.flush(); err != nil {
		return err
	}

	origRef, dict, err := pagetree.GetPage(w.src, idx)
	if err != nil {
		return err
	}
	page := pdf.Dict{}
	for key, val := range dict {
		if key != "Parent" {
			page[key] = val
		}
	}

	// references back to the page, e.g. from annotations, must point
	// to the copy
	ref := w.out.Alloc()
	if origRef != 0 {
		w.copier.Redirect(origRef, ref)
	}
	copied, err := w.copier.CopyDict(page)
	if err != nil {
		return err
	}
	w.pages++
	return w.tree.AppendPageDict(ref, copied)
}

// flush writes the open page, if any.
func (w *Writer) flush() error {
	p := w.open
	if p == nil {
		return nil
	}
	w.open = nil

	contentRef := w.out.Alloc()
	stm, err := w.out.OpenStream(contentRef, nil, pdf.FilterCompress{})
	if err != nil {
		return err
	}
	if _, err := stm.Write(p.content.Bytes()); err != nil {
		return err
	}
	if err := stm.Close(); err != nil {
		return err
	}

	dict := pdf.Dict{
		"Type":     pdf.Name("Page"),
		"MediaBox": pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Number(p.w), pdf.Number(p.h)},
		"Contents": contentRef,
	}
	if len(p.xObjects) > 0 {
		dict["Resources"] = pdf.Dict{"XObject": p.xObjects}
	}
	return w.tree.AppendPageDict(p.ref, dict)
}

// Save implements the scrub.OutputDocument interface.
func (w *Writer) Save() ([]byte, error) {
	if w.saved {
		return nil, errSaved
	}
	w.saved = true

	if err := w.flush(); err != nil {
		return nil, err
	}
	ref, err := w.tree.Close()
	if err != nil {
		return nil, err
	}
	w.out.GetMeta().Catalog.Pages = ref
	if err := w.rm.Close(); err != nil {
		return nil, err
	}
	if err := w.out.Close(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

// NumPages returns the number of pages added so far.
func (w *Writer) NumPages() int {
	return w.pages
}

// num formats a number for use in a content stream.
func num(x float64) string {
	return strconv.FormatFloat(math.Round(x*1000)/1000, 'f', -1, 64)
}
