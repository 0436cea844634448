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

// Command export writes the regions of all test cases as selection files
// which can be passed to the scrub-pdf command.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/scrub"
	"seehuhn.de/go/scrub/testcases"
)

const outDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := writeSelection(tc, filepath.Join(outDir, name+".json")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func writeSelection(tc testcases.Case, fname string) error {
	s := scrub.NewSession(scrub.Document)
	for _, r := range tc.Regions {
		ok := s.Add(scrub.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, r.Page)
		if !ok {
			return fmt.Errorf("region %v rejected", r)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fname, append(data, '\n'), 0644)
}
