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
	"errors"
	"fmt"
)

// Kind classifies the failures of a run.
type Kind int

const (
	KindRender Kind = iota + 1
	KindFill
	KindEncode
	KindEmbed
	KindSave
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindRender:
		return "render failed"
	case KindFill:
		return "fill failed"
	case KindEncode:
		return "encode failed"
	case KindEmbed:
		return "embed failed"
	case KindSave:
		return "save failed"
	case KindCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error describes why a run stopped.
type Error struct {
	Kind Kind

	// Page is the index of the page which was being processed,
	// or -1 for failures which do not belong to a page.
	Page int

	Err error
}

func (e *Error) Error() string {
	var msg string
	if e.Page >= 0 {
		msg = fmt.Sprintf("page %d: %s", e.Page, e.Kind)
	} else {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

var (
	// ErrInpaintUnavailable is reported, wrapped in a KindFill error, when
	// exemplar inpainting is requested but no inpainting library can be
	// loaded.
	ErrInpaintUnavailable = errors.New("inpainting is not available")

	// ErrInputTooLarge is returned for input documents above the
	// configured size limit.
	ErrInputTooLarge = errors.New("input document too large")
)
