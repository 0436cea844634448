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
	"io"
	"log/slog"
	"time"
)

// Config holds the settings shared by all runs of a Runner.
// The zero value is valid; unset fields take the defaults listed below.
type Config struct {
	// WorkingScale is the number of pixels per point used when rendering
	// pages for filling.  Default: 2.
	WorkingScale float64

	// Format is the image format of rebuilt pages.  Default: JPEG.
	Format Format

	// Quality is the JPEG quality, 1-100.  Default: 95.
	Quality int

	// BlurRadius and InpaintRadius are the radii, in pixels at scale 1,
	// used by Runner.FillOptions.  Defaults: 8 and 3.
	BlurRadius    float64
	InpaintRadius float64

	// MaxInputBytes limits the size of input documents.  Default: 100 MiB.
	MaxInputBytes int64

	// MaxConcurrentJobs limits the number of documents processed at the
	// same time.  Default: 2.
	MaxConcurrentJobs int

	// Timeout bounds the duration of a single run.  Default: 5 minutes.
	Timeout time.Duration

	// Logger receives progress and failure messages.
	// Default: messages are discarded.
	Logger *slog.Logger
}

// Default configuration values.
const (
	DefaultWorkingScale      = 2.0
	DefaultQuality           = 95
	DefaultMaxInputBytes     = 100 << 20
	DefaultMaxConcurrentJobs = 2
	DefaultTimeout           = 5 * time.Minute
)

func (c *Config) defaults() {
	if c.WorkingScale <= 0 {
		c.WorkingScale = DefaultWorkingScale
	}
	if c.Quality <= 0 || c.Quality > 100 {
		c.Quality = DefaultQuality
	}
	if c.BlurRadius <= 0 {
		c.BlurRadius = DefaultBlurRadius
	}
	if c.InpaintRadius <= 0 {
		c.InpaintRadius = DefaultInpaintRadius
	}
	if c.MaxInputBytes <= 0 {
		c.MaxInputBytes = DefaultMaxInputBytes
	}
	if c.MaxConcurrentJobs <= 0 {
		c.MaxConcurrentJobs = DefaultMaxConcurrentJobs
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = discardLogger
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
