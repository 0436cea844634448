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

// edgeCases have regions which touch or cross the page boundary.
var edgeCases = []Case{
	{
		Name: "top_edge",
		Pages: []Page{{
			Width: a4Width, Height: a4Height,
			Background: Uniform{Color: paper},
			Marks: []Mark{
				{X: 200, Y: 822, Width: 195, Height: 20, Color: ink},
			},
		}},
		Regions: []Region{{Page: 0, X: 190, Y: 815, Width: 215, Height: 27}},
	},
	{
		Name: "overhanging",
		Pages: []Page{{
			Width: a4Width, Height: a4Height,
			Background: Uniform{Color: white},
			Marks: []Mark{
				{X: 0, Y: 0, Width: 60, Height: 40, Color: blue},
			},
		}},
		Regions: []Region{{Page: 0, X: -20, Y: -20, Width: 90, Height: 70}},
	},
	{
		Name: "small_page",
		Pages: []Page{{
			Width: 144, Height: 72,
			Background: Uniform{Color: white},
			Marks: []Mark{
				{X: 100, Y: 10, Width: 30, Height: 15, Color: red},
			},
		}},
		Regions: []Region{{Page: 0, X: 95, Y: 5, Width: 40, Height: 25}},
	},
}
