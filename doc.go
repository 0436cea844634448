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

// Package scrub removes rectangular regions, such as watermarks or logos,
// from the pages of a document.
//
// Regions are recorded in a [Session], in one of three coordinate spaces:
// the pixel grid of a rendered page, normalized page coordinates, or PDF
// points.  [Convert] and [ConvertRect] translate between these spaces.
//
// [Run] processes a document page by page.  A page without regions is
// copied unchanged.  A page with regions is rendered at a working scale,
// the regions are filled using one of the strategies [ColumnSample],
// [GaussianBlur] or [ExemplarInpaint], and the result replaces the page as
// a single full-page image.  Vector content on such pages is lost.
//
// Exemplar inpainting needs an external library.  It is accessed through
// the [Inpainter] interface; see the package seehuhn.de/go/scrub/inpaint/opencv
// for an implementation.
package scrub
