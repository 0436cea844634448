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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// RunContext contains everything needed to process one document.
// A RunContext must not be shared between concurrent runs.
type RunContext struct {
	Source Source
	Output OutputDocument

	// Selection is the snapshot of regions to remove.
	Selection Selection

	Fill FillOptions

	// Fallback, if set, is used for a page when Fill fails on that page.
	Fallback *FillOptions

	// Overlay, if set, is drawn onto every rebuilt page.
	Overlay *Overlay

	// WorkingScale is the number of pixels per point used for rendering.
	// Default: 2.
	WorkingScale float64

	Format  Format
	Quality int // JPEG quality, default 95

	Logger *slog.Logger

	// OnState, if set, is called whenever a page changes state.
	OnState func(page int, s PageState)
}

func (rc *RunContext) defaults() {
	if rc.WorkingScale <= 0 {
		rc.WorkingScale = DefaultWorkingScale
	}
	if rc.Quality <= 0 || rc.Quality > 100 {
		rc.Quality = DefaultQuality
	}
	if rc.Logger == nil {
		rc.Logger = discardLogger
	}
}

// Result summarizes a run.
type Result struct {
	// Data is the serialized output document.  It is nil if the run failed.
	Data []byte

	// PagesProcessed lists the pages which were rebuilt, in order.
	PagesProcessed []int

	// Failed is set if the run did not complete.
	Failed *Failure
}

// Failure describes the page at which a run stopped.
type Failure struct {
	// PageIndex is the 0-based index of the failed page, or -1 for
	// failures which do not belong to a page.
	PageIndex int
	Reason    string
}

// Run processes all pages of rc.Source in order.  Pages without regions
// are copied to the output unchanged, all other pages are rebuilt as
// images.  Cancellation of ctx is checked between pages.
//
// If any step fails, the run stops and no output data is returned; the
// returned error is an *Error which identifies the page.
//
// Regions on pages which do not exist in the source are a programming
// error and cause a panic.
func Run(ctx context.Context, rc *RunContext) (*Result, error) {
	rc.defaults()
	log := rc.Logger

	n := rc.Source.NumPages()
	pages := make(map[int][]Region)
	for _, r := range rc.Selection.Regions {
		if r.Page < 0 || r.Page >= n {
			panic(fmt.Sprintf("scrub: region on page %d, document has %d pages", r.Page, n))
		}
		pages[r.Page] = append(pages[r.Page], r)
	}

	res := &Result{}
	fail := func(err error) (*Result, error) {
		var e *Error
		if !errors.As(err, &e) {
			e = &Error{Kind: KindSave, Page: -1, Err: err}
		}
		res.Failed = &Failure{PageIndex: e.Page, Reason: e.Error()}
		log.Error("run failed", "page", e.Page, "kind", e.Kind, "err", e.Err)
		return res, e
	}

	log.Info("run started", "pages", n, "edited", len(pages), "strategy", rc.Fill.Strategy)
	for idx := range n {
		if err := ctx.Err(); err != nil {
			return fail(&Error{Kind: KindCanceled, Page: idx, Err: err})
		}

		regions := pages[idx]
		if len(regions) == 0 {
			if err := rc.Output.CopyPage(idx); err != nil {
				return fail(&Error{Kind: KindEmbed, Page: idx, Err: err})
			}
			log.Debug("page copied", "page", idx)
			if rc.OnState != nil {
				rc.OnState(idx, PageDone)
			}
			continue
		}

		p := &pageRun{rc: rc, idx: idx, regions: regions}
		if err := p.rebuild(ctx); err != nil {
			return fail(err)
		}
		res.PagesProcessed = append(res.PagesProcessed, idx)
	}

	data, err := rc.Output.Save()
	if err != nil {
		return fail(&Error{Kind: KindSave, Page: -1, Err: err})
	}
	res.Data = data
	log.Info("run complete", "pages", n, "rebuilt", len(res.PagesProcessed), "bytes", len(data))
	return res, nil
}

// Job is a run executing in the background.
type Job struct {
	done  chan struct{}
	mu    sync.Mutex
	state DocState
	res   *Result
	err   error
}

// Start begins processing in a new goroutine.  The caller must not use
// rc after calling Start.  If release is not nil, it is called once the
// run has finished; this is typically the function returned by
// Session.Acquire.
func Start(ctx context.Context, rc *RunContext, release func()) *Job {
	return startJob(func() (*Result, error) { return Run(ctx, rc) }, release)
}

func startJob(run func() (*Result, error), release func()) *Job {
	j := &Job{done: make(chan struct{}), state: ProcessingDocument}
	go func() {
		defer close(j.done)
		if release != nil {
			defer release()
		}
		res, err := run()

		j.mu.Lock()
		j.res, j.err = res, err
		if err != nil {
			j.state = Failed
		} else {
			j.state = Complete
		}
		j.mu.Unlock()
	}()
	return j
}

// State returns the current state of the job.
func (j *Job) State() DocState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Done returns a channel which is closed when the job has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job has finished and returns its result.
func (j *Job) Wait() (*Result, error) {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.res, j.err
}

// Runner executes document runs with the limits given in a Config.
type Runner struct {
	cfg Config
	sem chan struct{}
}

// NewRunner returns a Runner for the given configuration.
func NewRunner(cfg Config) *Runner {
	cfg.defaults()
	return &Runner{
		cfg: cfg,
		sem: make(chan struct{}, cfg.MaxConcurrentJobs),
	}
}

// Config returns the configuration of the runner, with defaults filled in.
func (r *Runner) Config() Config {
	return r.cfg
}

// Run waits until fewer than MaxConcurrentJobs runs are active and then
// processes the document.  Unset fields of rc are taken from the runner
// configuration.  The run is limited to the configured timeout.
func (r *Runner) Run(ctx context.Context, rc *RunContext) (*Result, error) {
	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return &Result{Failed: &Failure{PageIndex: -1, Reason: ctx.Err().Error()}},
			&Error{Kind: KindCanceled, Page: -1, Err: ctx.Err()}
	}
	defer func() { <-r.sem }()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	if rc.WorkingScale <= 0 {
		rc.WorkingScale = r.cfg.WorkingScale
	}
	if rc.Quality <= 0 {
		rc.Quality = r.cfg.Quality
	}
	if rc.Logger == nil {
		rc.Logger = r.cfg.Logger
	}
	return Run(ctx, rc)
}

// FillOptions returns the options for strategy s with the radius taken
// from the runner configuration.
func (r *Runner) FillOptions(s Strategy) FillOptions {
	opt := FillOptions{Strategy: s}
	switch s {
	case GaussianBlur:
		opt.Radius = r.cfg.BlurRadius
	case ExemplarInpaint:
		opt.Radius = r.cfg.InpaintRadius
	}
	return opt
}

// NewRunContext returns a RunContext for the given documents which uses
// the settings of the runner.
func (r *Runner) NewRunContext(src Source, out OutputDocument, fill FillOptions) *RunContext {
	return &RunContext{
		Source:       src,
		Output:       out,
		Fill:         fill,
		WorkingScale: r.cfg.WorkingScale,
		Format:       r.cfg.Format,
		Quality:      r.cfg.Quality,
		Logger:       r.cfg.Logger,
	}
}

// RunSession runs the pipeline in the background on a snapshot of s.
// The session rejects changes until the job has finished.
func (r *Runner) RunSession(ctx context.Context, s *Session, rc *RunContext) *Job {
	sel, release := s.Acquire()
	rc.Selection = sel
	return startJob(func() (*Result, error) { return r.Run(ctx, rc) }, release)
}
