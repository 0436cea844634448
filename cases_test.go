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
	"context"
	"image"
	"image/color"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"seehuhn.de/go/scrub/testcases"
)

// caseSource renders the pages of a test case directly, without a PDF.
type caseSource struct {
	c testcases.Case
}

func (s caseSource) NumPages() int { return len(s.c.Pages) }

func (s caseSource) RenderPage(ctx context.Context, idx int, scale float64) (*RenderedPage, error) {
	p := s.c.Pages[idx]
	return &RenderedPage{
		PageIndex: idx,
		Image:     p.Render(scale),
		Scale:     scale,
		WidthPts:  p.Width,
		HeightPts: p.Height,
	}, nil
}

func caseSelection(c testcases.Case) Selection {
	sel := Selection{Space: Document}
	for _, r := range c.Regions {
		sel.Regions = append(sel.Regions, Region{
			Rect: Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height},
			Page: r.Page,
		})
	}
	return sel
}

// splitMarks separates the marks of p into those lying inside one of the
// regions on the page and the others.
func splitMarks(p testcases.Page, page int, regions []testcases.Region) (covered, kept []testcases.Mark) {
	for _, m := range p.Marks {
		inside := false
		for _, r := range regions {
			if r.Page == page && r.X <= m.X && r.Y <= m.Y &&
				m.X+m.Width <= r.X+r.Width && m.Y+m.Height <= r.Y+r.Height {
				inside = true
			}
		}
		if inside {
			covered = append(covered, m)
		} else {
			kept = append(kept, m)
		}
	}
	return covered, kept
}

// cleanPage returns p without the marks which lie inside a region.
func cleanPage(p testcases.Page, page int, regions []testcases.Region) testcases.Page {
	_, p.Marks = splitMarks(p, page, regions)
	return p
}

// TestCasesColumnSample removes the marks of all test cases.  On uniform
// backgrounds the result must match the page without the marks.
func TestCasesColumnSample(t *testing.T) {
	const scale = 1
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, c := range testcases.All[category] {
			name := category + "_" + c.Name
			t.Run(name, func(t *testing.T) {
				out := &fakeOutput{}
				res, err := Run(context.Background(), &RunContext{
					Source:       caseSource{c},
					Output:       out,
					Selection:    caseSelection(c),
					Format:       PNG,
					WorkingScale: scale,
				})
				if err != nil {
					t.Fatal(err)
				}
				if len(res.PagesProcessed) != len(out.images) {
					t.Fatalf("%d pages processed, %d images", len(res.PagesProcessed), len(out.images))
				}

				for k, idx := range res.PagesProcessed {
					got, err := png.Decode(bytes.NewReader(out.images[k]))
					if err != nil {
						t.Fatal(err)
					}
					page := c.Pages[idx]
					want := cleanPage(page, idx, c.Regions).Render(scale)

					if touchesTop(c, idx) {
						// the sample strip lies inside the region
						continue
					}
					if _, uniform := page.Background.(testcases.Uniform); !uniform {
						covered, _ := splitMarks(page, idx, c.Regions)
						checkMarksGone(t, got, page, covered, scale)
						continue
					}
					if n := countDiff(want, got); n > 0 {
						_ = writeDebugImage(name, want, got)
						t.Errorf("page %d: %d pixels differ", idx, n)
					}
				}
			})
		}
	}
}

func touchesTop(c testcases.Case, page int) bool {
	for _, r := range c.Regions {
		if r.Page == page && r.Y+r.Height >= c.Pages[page].Height-sampleOffset {
			return true
		}
	}
	return false
}

// checkMarksGone verifies that the centre pixel of every removed mark no
// longer has the mark's colour.
func checkMarksGone(t *testing.T, img image.Image, p testcases.Page, removed []testcases.Mark, scale float64) {
	t.Helper()
	for _, m := range removed {
		cx := (m.X + m.Width/2) * scale
		cy := (p.Height - m.Y - m.Height/2) * scale
		got := color.NRGBAModel.Convert(img.At(int(cx), int(cy))).(color.NRGBA)
		if got == m.Color {
			t.Errorf("mark %v still visible", m)
		}
	}
}

func TestSplitMarks(t *testing.T) {
	p := testcases.Page{
		Width:  200,
		Height: 100,
		Marks: []testcases.Mark{
			{X: 10, Y: 10, Width: 20, Height: 10},
			{X: 50, Y: 10, Width: 20, Height: 10},
			{X: 150, Y: 60, Width: 20, Height: 30},
		},
	}
	regions := []testcases.Region{
		{Page: 0, X: 5, Y: 5, Width: 30, Height: 20},
		{Page: 1, X: 45, Y: 5, Width: 30, Height: 20},
		{Page: 0, X: 140, Y: 50, Width: 30, Height: 20},
	}
	covered, kept := splitMarks(p, 0, regions)
	if len(covered) != 1 || covered[0] != p.Marks[0] {
		t.Errorf("covered: %v", covered)
	}
	if len(kept) != 2 || kept[0] != p.Marks[1] || kept[1] != p.Marks[2] {
		t.Errorf("kept: %v", kept)
	}
}

func countDiff(want *image.NRGBA, got image.Image) int {
	n := 0
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.NRGBAModel.Convert(got.At(x, y)).(color.NRGBA)
			if g != want.NRGBAAt(x, y) {
				n++
			}
		}
	}
	return n
}

// writeDebugImage writes the expected (left) and actual (right) page next
// to each other into the debug directory.
func writeDebugImage(name string, want *image.NRGBA, got image.Image) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}
	b := want.Bounds()
	w := b.Dx()
	img := image.NewNRGBA(image.Rect(0, 0, 2*w, b.Dy()))
	for y := range b.Dy() {
		for x := range w {
			img.Set(x, y, want.At(b.Min.X+x, b.Min.Y+y))
			img.Set(x+w, y, got.At(b.Min.X+x, b.Min.Y+y))
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
