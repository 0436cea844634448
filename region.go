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
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Region is a rectangle marked for removal on a single page.
// The coordinates are given in the space of the Session which
// recorded the region.
type Region struct {
	Rect
	Page int
}

// Session records the regions a user has marked on a document.
// Regions are kept in insertion order.  A Session is safe for concurrent
// use, but it refuses mutations while a run holds its selection.
type Session struct {
	// Space is the coordinate space all regions are recorded in.
	Space Space

	// MinSize is the smallest accepted width and height of a region, in
	// units of Space.  If zero, a default depending on the space is used.
	MinSize float64

	mu      sync.Mutex
	regions []Region
	busy    int
}

// NewSession returns an empty session which records regions in space s.
func NewSession(s Space) *Session {
	return &Session{Space: s}
}

// Default minimum region sizes.
const (
	minRegionPixels   = 10   // at scale 1
	minRegionFraction = 0.05 // of the page, in normalized space
	minRegionPoints   = 10
)

// minSize returns the minimum region size for regions in space sp.
func (s *Session) minSize(sp Space) float64 {
	if s.MinSize > 0 {
		return s.MinSize
	}
	switch sp.Kind {
	case RenderPixel:
		return minRegionPixels * max(sp.Scale, 1)
	case NormalizedPage:
		return minRegionFraction
	default:
		return minRegionPoints
	}
}

// Add appends the rectangle r on the given page.
// Rectangles drawn from right to left or bottom to top are normalized first.
// If the result is smaller than the minimum size in either direction, or if
// the selection is currently in use by a run, the region is discarded and
// Add returns false.
func (s *Session) Add(r Rect, page int) bool {
	if page < 0 {
		return false
	}
	r = r.Canon()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy > 0 || !s.accept(r, s.Space) {
		return false
	}
	s.regions = append(s.regions, Region{Rect: r, Page: page})
	return true
}

// accept reports whether r is large enough to be stored as a region in
// space sp.
func (s *Session) accept(r Rect, sp Space) bool {
	minSize := s.minSize(sp)
	return r.Width >= minSize && r.Height >= minSize
}

// Undo removes the most recently added region, whichever page it is on.
// It reports whether a region was removed.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy > 0 || len(s.regions) == 0 {
		return false
	}
	s.regions = s.regions[:len(s.regions)-1]
	return true
}

// Clear removes all regions.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy > 0 {
		return
	}
	s.regions = nil
}

// Len returns the total number of regions.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regions)
}

// ForPage returns the regions on the given page, in insertion order.
func (s *Session) ForPage(page int) []Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []Region
	for _, r := range s.regions {
		if r.Page == page {
			res = append(res, r)
		}
	}
	return res
}

// Snapshot returns a copy of the current selection.
// Later changes to the session do not affect the returned value.
func (s *Session) Snapshot() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Selection {
	regions := make([]Region, len(s.regions))
	copy(regions, s.regions)
	return Selection{Space: s.Space, Regions: regions}
}

// Acquire takes a snapshot of the selection and locks the session against
// changes until release is called.  Release may be called more than once.
func (s *Session) Acquire() (sel Selection, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy++
	var once sync.Once
	release = func() {
		once.Do(func() {
			s.mu.Lock()
			s.busy--
			s.mu.Unlock()
		})
	}
	return s.snapshotLocked(), release
}

// Busy reports whether a run currently holds the selection.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy > 0
}

// Selection is an immutable snapshot of the regions of a session.
type Selection struct {
	Space   Space
	Regions []Region
}

// ForPage returns the regions on the given page, in insertion order.
func (sel Selection) ForPage(page int) []Region {
	var res []Region
	for _, r := range sel.Regions {
		if r.Page == page {
			res = append(res, r)
		}
	}
	return res
}

// Pages returns the set of pages with at least one region.
func (sel Selection) Pages() map[int]bool {
	pages := make(map[int]bool)
	for _, r := range sel.Regions {
		pages[r.Page] = true
	}
	return pages
}

type jsonSpace struct {
	Kind    string  `json:"kind"`
	Scale   float64 `json:"scale,omitempty"`
	Padding float64 `json:"padding,omitempty"`
}

type jsonRegion struct {
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonSelection struct {
	Space   jsonSpace    `json:"space"`
	Regions []jsonRegion `json:"regions"`
}

// MarshalJSON encodes the current selection.
func (s *Session) MarshalJSON() ([]byte, error) {
	sel := s.Snapshot()
	out := jsonSelection{
		Space: jsonSpace{
			Kind:    sel.Space.Kind.String(),
			Scale:   sel.Space.Scale,
			Padding: sel.Space.Padding,
		},
		Regions: make([]jsonRegion, len(sel.Regions)),
	}
	for i, r := range sel.Regions {
		out.Regions[i] = jsonRegion{Page: r.Page, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	}
	return json.Marshal(out)
}

// UnmarshalJSON replaces the session contents with the encoded selection.
// Regions below the minimum size are dropped, as for Add.
func (s *Session) UnmarshalJSON(data []byte) error {
	var in jsonSelection
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var space Space
	switch in.Space.Kind {
	case "pixel":
		if in.Space.Scale <= 0 {
			return fmt.Errorf("pixel space needs a positive scale, got %g", in.Space.Scale)
		}
		space = Space{Kind: RenderPixel, Scale: in.Space.Scale, Padding: in.Space.Padding}
	case "normalized":
		space = Normalized
	case "document", "":
		space = Document
	default:
		return fmt.Errorf("unknown coordinate space %q", in.Space.Kind)
	}

	var regions []Region
	for _, r := range in.Regions {
		rect := Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}.Canon()
		if r.Page < 0 || !s.accept(rect, space) {
			continue
		}
		regions = append(regions, Region{Rect: rect, Page: r.Page})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy > 0 {
		return ErrSessionBusy
	}
	s.Space = space
	s.regions = regions
	return nil
}

// ErrSessionBusy is returned when a session is modified while a run
// holds its selection.
var ErrSessionBusy = errors.New("selection is in use by a running job")
