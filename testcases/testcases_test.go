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

package testcases

import (
	"bytes"
	"regexp"
	"testing"
)

var validName = regexp.MustCompile(`^[a-z_]+$`)

func TestCases(t *testing.T) {
	seen := map[string]bool{}
	for category, cases := range All {
		for _, c := range cases {
			name := category + "_" + c.Name
			if !validName.MatchString(c.Name) {
				t.Errorf("%s: invalid name", name)
			}
			if seen[name] {
				t.Errorf("%s: duplicate name", name)
			}
			seen[name] = true

			if len(c.Pages) == 0 || len(c.Regions) == 0 {
				t.Errorf("%s: no pages or no regions", name)
			}
			for _, r := range c.Regions {
				if r.Page < 0 || r.Page >= len(c.Pages) {
					t.Errorf("%s: region on page %d", name, r.Page)
				}
			}
		}
	}
}

// Every mark must be inside one of the regions, so that a perfect fill
// leaves only the background.
func TestMarksCovered(t *testing.T) {
	for category, cases := range All {
		for _, c := range cases {
			for i, p := range c.Pages {
				for _, m := range p.Marks {
					if !markCovered(m, i, c.Regions) && !isText(m) {
						t.Errorf("%s_%s: mark %v on page %d not covered", category, c.Name, m, i)
					}
				}
			}
		}
	}
}

func markCovered(m Mark, page int, regions []Region) bool {
	for _, r := range regions {
		if r.Page == page && r.X <= m.X && r.Y <= m.Y &&
			m.X+m.Width <= r.X+r.Width && m.Y+m.Height <= r.Y+r.Height {
			return true
		}
	}
	return false
}

// isText reports whether m is a line of body text, which is meant to stay.
func isText(m Mark) bool {
	return m.Color == ink && m.Height == 12
}

func TestRender(t *testing.T) {
	p := Page{
		Width: 100, Height: 50,
		Background: Uniform{Color: white},
		Marks:      []Mark{{X: 10, Y: 10, Width: 20, Height: 10, Color: red}},
	}
	img := p.Render(2)
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("size %v", b)
	}
	// the mark is at y in [10, 20] points from the bottom, which is
	// y in [60, 80) pixels from the top
	if got := img.NRGBAAt(30, 70); got != red {
		t.Errorf("mark: got %v", got)
	}
	if got := img.NRGBAAt(30, 55); got != white {
		t.Errorf("background: got %v", got)
	}
}

func TestBackgrounds(t *testing.T) {
	g := Gradient{Top: white, Bottom: ink}
	if g.At(0.5, 0) != white || g.At(0.5, 1) != ink {
		t.Error("gradient end points wrong")
	}
	s := Stripes{A: white, B: red, Period: 0.2}
	if s.At(0.05, 0.5) != white || s.At(0.15, 0.5) != red {
		t.Error("stripes wrong")
	}
}

func TestWritePDF(t *testing.T) {
	for category, cases := range All {
		for _, c := range cases {
			buf := &bytes.Buffer{}
			if err := WritePDF(buf, c); err != nil {
				t.Errorf("%s_%s: %v", category, c.Name, err)
				continue
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-1.7")) {
				t.Errorf("%s_%s: missing PDF header", category, c.Name)
			}
		}
	}
}
