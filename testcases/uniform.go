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

var uniformCases = []Case{
	{
		Name: "logo_corner",
		Pages: []Page{{
			Width: a4Width, Height: a4Height,
			Background: Uniform{Color: white},
			Marks: []Mark{
				{X: 60, Y: 700, Width: 300, Height: 12, Color: ink},
				{X: 60, Y: 680, Width: 280, Height: 12, Color: ink},
				{X: 500, Y: 20, Width: 75, Height: 30, Color: red},
			},
		}},
		Regions: []Region{{Page: 0, X: 495, Y: 15, Width: 85, Height: 40}},
	},
	{
		Name: "centre_stamp",
		Pages: []Page{{
			Width: letterWidth, Height: letterHeight,
			Background: Uniform{Color: paper},
			Marks: []Mark{
				{X: 206, Y: 346, Width: 200, Height: 100, Color: grey},
			},
		}},
		Regions: []Region{{Page: 0, X: 200, Y: 340, Width: 212, Height: 112}},
	},
	{
		Name: "two_regions",
		Pages: []Page{{
			Width: a4Width, Height: a4Height,
			Background: Uniform{Color: white},
			Marks: []Mark{
				{X: 30, Y: 800, Width: 100, Height: 20, Color: blue},
				{X: 465, Y: 800, Width: 100, Height: 20, Color: blue},
			},
		}},
		Regions: []Region{
			{Page: 0, X: 25, Y: 795, Width: 110, Height: 30},
			{Page: 0, X: 460, Y: 795, Width: 110, Height: 30},
		},
	},
}
