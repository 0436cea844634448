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

// multipageCases have pages without regions, which must be copied
// unchanged.
var multipageCases = []Case{
	{
		Name: "second_of_three",
		Pages: []Page{
			{Width: a4Width, Height: a4Height, Background: Uniform{Color: white},
				Marks: []Mark{{X: 60, Y: 700, Width: 300, Height: 12, Color: ink}}},
			{Width: a4Width, Height: a4Height, Background: Uniform{Color: white},
				Marks: []Mark{{X: 500, Y: 20, Width: 75, Height: 30, Color: red}}},
			{Width: a4Width, Height: a4Height, Background: Uniform{Color: white},
				Marks: []Mark{{X: 60, Y: 700, Width: 300, Height: 12, Color: ink}}},
		},
		Regions: []Region{{Page: 1, X: 495, Y: 15, Width: 85, Height: 40}},
	},
	{
		Name: "mixed_sizes",
		Pages: []Page{
			{Width: a4Width, Height: a4Height, Background: Uniform{Color: paper},
				Marks: []Mark{{X: 500, Y: 20, Width: 75, Height: 30, Color: blue}}},
			{Width: a4Height, Height: a4Width, Background: Uniform{Color: paper},
				Marks: []Mark{{X: 747, Y: 20, Width: 75, Height: 30, Color: blue}}},
		},
		Regions: []Region{
			{Page: 0, X: 495, Y: 15, Width: 85, Height: 40},
			{Page: 1, X: 742, Y: 15, Width: 85, Height: 40},
		},
	},
}
