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
	"fmt"
	"image"
	"sync"
)

// InpaintMethod selects the inpainting algorithm.
type InpaintMethod int

const (
	// Telea is the fast marching method by A. Telea (2004).
	Telea InpaintMethod = iota

	// NavierStokes is the fluid dynamics based method by Bertalmio,
	// Bertozzi and Sapiro (2001).
	NavierStokes
)

func (m InpaintMethod) String() string {
	switch m {
	case Telea:
		return "telea"
	case NavierStokes:
		return "ns"
	default:
		return fmt.Sprintf("InpaintMethod(%d)", int(m))
	}
}

// ParseInpaintMethod converts the name returned by InpaintMethod.String
// back into an InpaintMethod.
func ParseInpaintMethod(name string) (InpaintMethod, error) {
	switch name {
	case "telea":
		return Telea, nil
	case "ns":
		return NavierStokes, nil
	}
	return 0, fmt.Errorf("unknown inpainting method %q", name)
}

// Inpainter reconstructs the masked part of an image from its surroundings.
//
// The mask has the bounds of src.  Non-zero mask pixels mark the area to
// reconstruct.  The returned image must have the same bounds as src.
// Implementations need not be safe for concurrent use.
type Inpainter interface {
	Inpaint(src *image.NRGBA, mask *image.Gray, radius float64, method InpaintMethod) (*image.NRGBA, error)
}

// InpainterFunc adapts an ordinary function to the Inpainter interface.
type InpainterFunc func(src *image.NRGBA, mask *image.Gray, radius float64, method InpaintMethod) (*image.NRGBA, error)

// Inpaint calls f.
func (f InpainterFunc) Inpaint(src *image.NRGBA, mask *image.Gray, radius float64, method InpaintMethod) (*image.NRGBA, error) {
	return f(src, mask, radius, method)
}

// unavailable is used when no inpainting library has been installed.
type unavailable struct{}

func (unavailable) Inpaint(*image.NRGBA, *image.Gray, float64, InpaintMethod) (*image.NRGBA, error) {
	return nil, ErrInpaintUnavailable
}

var (
	defaultMu        sync.RWMutex
	defaultInpainter Inpainter = unavailable{}
)

// DefaultInpainter returns the Inpainter used when FillOptions.Inpainter
// is nil.  Unless SetDefaultInpainter has been called, every call of the
// returned Inpainter fails with ErrInpaintUnavailable.
func DefaultInpainter() Inpainter {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultInpainter
}

// SetDefaultInpainter installs inp as the default Inpainter.
// Passing nil restores the initial state.
func SetDefaultInpainter(inp Inpainter) {
	if inp == nil {
		inp = unavailable{}
	}
	defaultMu.Lock()
	defaultInpainter = inp
	defaultMu.Unlock()
}

// LazyInpainter loads an Inpainter on first use.
// Loading is attempted at most once; if it fails, every call to Inpaint
// reports the load error wrapped together with ErrInpaintUnavailable.
type LazyInpainter struct {
	Load func() (Inpainter, error)

	once sync.Once
	inp  Inpainter
	err  error
}

func (l *LazyInpainter) load() {
	l.once.Do(func() {
		if l.Load == nil {
			l.err = ErrInpaintUnavailable
			return
		}
		inp, err := l.Load()
		if err == nil && inp == nil {
			err = ErrInpaintUnavailable
		}
		if err != nil {
			l.err = fmt.Errorf("%w: %w", ErrInpaintUnavailable, err)
			return
		}
		l.inp = inp
	})
}

// Preload starts loading in the background.  The returned channel is
// closed once loading has finished, successfully or not.
func (l *LazyInpainter) Preload() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		l.load()
		close(done)
	}()
	return done
}

// Available loads the Inpainter if needed and reports whether it can be used.
func (l *LazyInpainter) Available() bool {
	l.load()
	return l.err == nil
}

// Inpaint implements the Inpainter interface.
func (l *LazyInpainter) Inpaint(src *image.NRGBA, mask *image.Gray, radius float64, method InpaintMethod) (*image.NRGBA, error) {
	l.load()
	if l.err != nil {
		return nil, l.err
	}
	return l.inp.Inpaint(src, mask, radius, method)
}
