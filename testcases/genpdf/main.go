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

// Command genpdf generates the input documents and reference images for
// the scrub tests.  For every test case it writes a PDF file, the expected
// rendering of each page as PNG, and a rendering of the PDF made with
// Ghostscript, which can be used to check the PDF renderer.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"

	"seehuhn.de/go/scrub/testcases"
)

const refDir = "testdata/reference"

func main() {
	useGS := flag.Bool("gs", true, "render reference images with Ghostscript")
	scale := flag.Float64("scale", 1, "pixels per point for the expected images")
	flag.Parse()

	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			for i, p := range tc.Pages {
				pngPath := filepath.Join(refDir, fmt.Sprintf("%s-%d.png", name, i))
				if err := writePNG(p, *scale, pngPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
			if *useGS {
				gsPath := filepath.Join(refDir, name+"-gs-%d.png")
				if err := renderPNG(pdfPath, gsPath, *scale); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func generatePDF(tc testcases.Case, pdfPath string) error {
	buf := &bytes.Buffer{}
	if err := testcases.WritePDF(buf, tc); err != nil {
		return err
	}
	return os.WriteFile(pdfPath, buf.Bytes(), 0644)
}

func writePNG(p testcases.Page, scale float64, pngPath string) error {
	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.Render(scale)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderPNG(pdfPath, pngPattern string, scale float64) error {
	// -sDEVICE=png16m: 24-bit RGB
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	// Ghostscript numbers the output pages from 1.
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=png16m",
		"-r"+strconv.FormatFloat(72*scale, 'f', -1, 64),
		"-dGraphicsAlphaBits=4",
		"-o", pngPattern,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
