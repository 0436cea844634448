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

import "image/color"

var gradientCases = []Case{
	{
		Name: "vertical_gradient",
		Pages: []Page{{
			Width: a4Width, Height: a4Height,
			Background: Gradient{
				Top:    color.NRGBA{R: 230, G: 240, B: 255, A: 255},
				Bottom: color.NRGBA{R: 40, G: 60, B: 120, A: 255},
			},
			Marks: []Mark{
				{X: 250, Y: 400, Width: 95, Height: 40, Color: white},
			},
		}},
		Regions: []Region{{Page: 0, X: 245, Y: 395, Width: 105, Height: 50}},
	},
	{
		Name: "stripes",
		Pages: []Page{{
			Width: letterWidth, Height: letterHeight,
			Background: Stripes{A: white, B: paper, Period: 0.05},
			Marks: []Mark{
				{X: 100, Y: 100, Width: 150, Height: 30, Color: red},
			},
		}},
		Regions: []Region{{Page: 0, X: 95, Y: 95, Width: 160, Height: 40}},
	},
}
