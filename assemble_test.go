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
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeSource renders white pages with one black mark each.
type fakeSource struct {
	pages []PageGeometry
	mark  image.Rectangle // in pixels at scale 1

	mu       sync.Mutex
	rendered []int
	failAt   map[int]error
	block    chan struct{} // if set, RenderPage waits for it or ctx
}

func newFakeSource(n int) *fakeSource {
	s := &fakeSource{mark: image.Rect(55, 52, 70, 58)}
	for range n {
		s.pages = append(s.pages, a4)
	}
	return s
}

func (s *fakeSource) NumPages() int { return len(s.pages) }

func (s *fakeSource) RenderPage(ctx context.Context, idx int, scale float64) (*RenderedPage, error) {
	s.mu.Lock()
	s.rendered = append(s.rendered, idx)
	err := s.failAt[idx]
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	g := s.pages[idx]
	w, h := g.PixelSize(scale)
	img := whitePage(w, h)
	m := image.Rect(
		int(float64(s.mark.Min.X)*scale), int(float64(s.mark.Min.Y)*scale),
		int(float64(s.mark.Max.X)*scale), int(float64(s.mark.Max.Y)*scale),
	)
	paintRect(img, m, color.NRGBA{A: 255})
	return &RenderedPage{
		PageIndex: idx,
		Image:     img,
		Scale:     scale,
		WidthPts:  g.WidthPts,
		HeightPts: g.HeightPts,
	}, nil
}

// fakeOutput records the operations performed on it.
type fakeOutput struct {
	ops     []string
	images  [][]byte
	formats []Format
	saves   int
	saveErr error
}

func (o *fakeOutput) AddPage(w, h float64) (PageHandle, error) {
	o.ops = append(o.ops, fmt.Sprintf("page %gx%g", w, h))
	return PageHandle(len(o.ops)), nil
}

func (o *fakeOutput) EmbedImage(data []byte, f Format) (ImageHandle, error) {
	o.images = append(o.images, data)
	o.formats = append(o.formats, f)
	o.ops = append(o.ops, "image")
	return ImageHandle(len(o.images) - 1), nil
}

func (o *fakeOutput) DrawImage(page PageHandle, img ImageHandle, x, y, w, h float64) error {
	o.ops = append(o.ops, fmt.Sprintf("draw %d %g %g %g %g", img, x, y, w, h))
	return nil
}

func (o *fakeOutput) CopyPage(idx int) error {
	o.ops = append(o.ops, fmt.Sprintf("copy %d", idx))
	return nil
}

func (o *fakeOutput) Save() ([]byte, error) {
	o.saves++
	if o.saveErr != nil {
		return nil, o.saveErr
	}
	return []byte("%PDF"), nil
}

func pixelSelection(scale float64, regions ...Region) Selection {
	return Selection{Space: PixelSpace(scale), Regions: regions}
}

func TestRunTwoPages(t *testing.T) {
	src := newFakeSource(2)
	out := &fakeOutput{}

	type event struct {
		Page  int
		State PageState
	}
	var events []event
	rc := &RunContext{
		Source: src,
		Output: out,
		Selection: pixelSelection(2,
			Region{Rect: Rect{X: 100, Y: 100, Width: 50, Height: 20}, Page: 1}),
		Format: PNG,
		OnState: func(page int, s PageState) {
			events = append(events, event{page, s})
		},
	}

	res, err := Run(context.Background(), rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Data) != "%PDF" || res.Failed != nil {
		t.Errorf("result %+v", res)
	}
	if d := cmp.Diff([]int{1}, res.PagesProcessed); d != "" {
		t.Errorf("processed pages: (-want +got)\n%s", d)
	}
	if d := cmp.Diff([]int{1}, src.rendered); d != "" {
		t.Errorf("rendered pages: (-want +got)\n%s", d)
	}

	wantOps := []string{
		"copy 0",
		"image",
		"page 595x842",
		"draw 0 0 0 595 842",
	}
	if d := cmp.Diff(wantOps, out.ops); d != "" {
		t.Errorf("output: (-want +got)\n%s", d)
	}
	if out.saves != 1 {
		t.Errorf("%d saves", out.saves)
	}

	wantEvents := []event{
		{0, PageDone},
		{1, RenderingPage},
		{1, Filling},
		{1, Encoding},
		{1, Embedding},
		{1, PageDone},
	}
	if d := cmp.Diff(wantEvents, events); d != "" {
		t.Errorf("events: (-want +got)\n%s", d)
	}

	// the mark at (110,104)-(140,116) is gone
	img, err := png.Decode(bytes.NewReader(out.images[0]))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1190 || b.Dy() != 1684 {
		t.Fatalf("image size %v", b)
	}
	for y := 100; y < 120; y++ {
		for x := 100; x < 150; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || b != 0xffff {
				t.Fatalf("pixel (%d,%d) not filled", x, y)
			}
		}
	}
}

func TestRunNoRegions(t *testing.T) {
	src := newFakeSource(3)
	out := &fakeOutput{}
	res, err := Run(context.Background(), &RunContext{Source: src, Output: out})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.PagesProcessed) != 0 || len(src.rendered) != 0 {
		t.Errorf("processed %v, rendered %v", res.PagesProcessed, src.rendered)
	}
	if d := cmp.Diff([]string{"copy 0", "copy 1", "copy 2"}, out.ops); d != "" {
		t.Errorf("output: (-want +got)\n%s", d)
	}
}

func TestRunRenderFailure(t *testing.T) {
	errBroken := errors.New("broken content stream")
	src := newFakeSource(3)
	src.failAt = map[int]error{1: errBroken}
	out := &fakeOutput{}

	var regions []Region
	for i := range 3 {
		regions = append(regions, Region{Rect: Rect{X: 100, Y: 100, Width: 50, Height: 20}, Page: i})
	}
	res, err := Run(context.Background(), &RunContext{
		Source:    src,
		Output:    out,
		Selection: pixelSelection(2, regions...),
	})

	if !IsKind(err, KindRender) || !errors.Is(err, errBroken) {
		t.Fatalf("got error %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Page != 1 {
		t.Errorf("error page: %v", err)
	}
	if res.Data != nil || res.Failed == nil || res.Failed.PageIndex != 1 {
		t.Errorf("result %+v", res)
	}
	if d := cmp.Diff([]int{0}, res.PagesProcessed); d != "" {
		t.Errorf("processed pages: (-want +got)\n%s", d)
	}
	if d := cmp.Diff([]int{0, 1}, src.rendered); d != "" {
		t.Errorf("rendered pages: (-want +got)\n%s", d)
	}
	if out.saves != 0 {
		t.Error("document saved after failure")
	}
}

func TestRunFailurePage(t *testing.T) {
	for failed := range 3 {
		src := newFakeSource(3)
		src.failAt = map[int]error{failed: errors.New("cannot render")}
		out := &fakeOutput{}

		var regions []Region
		for i := range 3 {
			regions = append(regions, Region{Rect: Rect{X: 100, Y: 100, Width: 50, Height: 20}, Page: i})
		}
		res, err := Run(context.Background(), &RunContext{
			Source:    src,
			Output:    out,
			Selection: pixelSelection(2, regions...),
		})
		if !IsKind(err, KindRender) {
			t.Fatalf("page %d: got error %v", failed, err)
		}
		if res.Data != nil {
			t.Errorf("page %d: %d bytes of output", failed, len(res.Data))
		}
		if res.Failed == nil || res.Failed.PageIndex != failed {
			t.Errorf("page %d: failure %+v", failed, res.Failed)
		}
		if len(res.PagesProcessed) != failed {
			t.Errorf("page %d: processed %v", failed, res.PagesProcessed)
		}
	}
}

func TestRunFillFallback(t *testing.T) {
	sel := pixelSelection(2, Region{Rect: Rect{X: 100, Y: 100, Width: 50, Height: 20}, Page: 0})
	inpaint := FillOptions{Strategy: ExemplarInpaint}

	// without fallback the run fails
	_, err := Run(context.Background(), &RunContext{
		Source:    newFakeSource(1),
		Output:    &fakeOutput{},
		Selection: sel,
		Fill:      inpaint,
	})
	if !IsKind(err, KindFill) || !errors.Is(err, ErrInpaintUnavailable) {
		t.Errorf("got %v", err)
	}

	out := &fakeOutput{}
	res, err := Run(context.Background(), &RunContext{
		Source:    newFakeSource(1),
		Output:    out,
		Selection: sel,
		Fill:      inpaint,
		Fallback:  &FillOptions{Strategy: GaussianBlur, Radius: DefaultBlurRadius},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.PagesProcessed) != 1 || len(out.images) != 1 {
		t.Errorf("result %+v", res)
	}
	if out.formats[0] != JPEG {
		t.Errorf("format %s", out.formats[0])
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := newFakeSource(3)
	out := &fakeOutput{}
	rc := &RunContext{
		Source: src,
		Output: out,
		Selection: pixelSelection(2,
			Region{Rect: Rect{X: 100, Y: 100, Width: 50, Height: 20}, Page: 0},
			Region{Rect: Rect{X: 100, Y: 100, Width: 50, Height: 20}, Page: 2}),
		OnState: func(page int, s PageState) {
			if page == 0 && s == PageDone {
				cancel()
			}
		},
	}
	res, err := Run(ctx, rc)
	if !IsKind(err, KindCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if res.Failed == nil || res.Failed.PageIndex != 1 {
		t.Errorf("failure %+v", res.Failed)
	}
	if out.saves != 0 {
		t.Error("document saved after cancellation")
	}
}

func TestRunSaveFailure(t *testing.T) {
	out := &fakeOutput{saveErr: errors.New("disk full")}
	res, err := Run(context.Background(), &RunContext{Source: newFakeSource(1), Output: out})
	if !IsKind(err, KindSave) {
		t.Fatalf("got %v", err)
	}
	if res.Failed == nil || res.Failed.PageIndex != -1 {
		t.Errorf("failure %+v", res.Failed)
	}
}

func TestRunRegionOnMissingPage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	Run(context.Background(), &RunContext{
		Source:    newFakeSource(2),
		Output:    &fakeOutput{},
		Selection: pixelSelection(1, Region{Rect: Rect{Width: 20, Height: 20}, Page: 2}),
	})
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("out of memory")
	cases := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindRender, Page: 2, Err: cause}, "page 2: render failed: out of memory"},
		{&Error{Kind: KindSave, Page: -1, Err: cause}, "save failed: out of memory"},
		{&Error{Kind: KindCanceled, Page: 0}, "page 0: canceled"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
	if IsKind(cause, KindRender) {
		t.Error("plain error has a kind")
	}
	wrapped := fmt.Errorf("job: %w", cases[0].err)
	if !IsKind(wrapped, KindRender) || !errors.Is(wrapped, cause) {
		t.Error("wrapped error not recognised")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := NewRunner(Config{}).Config()
	want := Config{
		WorkingScale:      DefaultWorkingScale,
		Format:            JPEG,
		Quality:           DefaultQuality,
		BlurRadius:        DefaultBlurRadius,
		InpaintRadius:     DefaultInpaintRadius,
		MaxInputBytes:     DefaultMaxInputBytes,
		MaxConcurrentJobs: DefaultMaxConcurrentJobs,
		Timeout:           DefaultTimeout,
		Logger:            cfg.Logger,
	}
	if cfg.Logger == nil {
		t.Error("no logger")
	}
	if cfg != want {
		t.Errorf("got %+v", cfg)
	}
}

func TestRunnerFillOptions(t *testing.T) {
	cases := []struct {
		cfg  Config
		s    Strategy
		want float64
	}{
		{Config{}, ColumnSample, 0},
		{Config{}, GaussianBlur, DefaultBlurRadius},
		{Config{}, ExemplarInpaint, DefaultInpaintRadius},
		{Config{BlurRadius: 2.5}, GaussianBlur, 2.5},
		{Config{InpaintRadius: 5}, ExemplarInpaint, 5},
	}
	for _, c := range cases {
		opt := NewRunner(c.cfg).FillOptions(c.s)
		if opt.Strategy != c.s || opt.Radius != c.want {
			t.Errorf("%s: got %+v, want radius %g", c.s, opt, c.want)
		}
	}
}

func TestRunnerSession(t *testing.T) {
	src := newFakeSource(2)
	src.block = make(chan struct{})
	runner := NewRunner(Config{})

	s := NewSession(PixelSpace(2))
	s.Add(Rect{X: 100, Y: 100, Width: 50, Height: 20}, 1)

	out := &fakeOutput{}
	job := runner.RunSession(context.Background(), s, runner.NewRunContext(src, out, FillOptions{}))

	if !s.Busy() {
		t.Error("session not busy during run")
	}
	if job.State() != ProcessingDocument {
		t.Errorf("state %s", job.State())
	}
	if s.Add(Rect{X: 0, Y: 0, Width: 50, Height: 50}, 0) {
		t.Error("region added during run")
	}

	close(src.block)
	res, err := job.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if job.State() != Complete {
		t.Errorf("state %s", job.State())
	}
	if s.Busy() {
		t.Error("session still busy")
	}
	if d := cmp.Diff([]int{1}, res.PagesProcessed); d != "" {
		t.Errorf("processed pages: (-want +got)\n%s", d)
	}
}

func TestRunnerTimeout(t *testing.T) {
	src := newFakeSource(1)
	src.block = make(chan struct{}) // never closed
	runner := NewRunner(Config{Timeout: 20 * time.Millisecond})

	rc := runner.NewRunContext(src, &fakeOutput{}, FillOptions{})
	rc.Selection = pixelSelection(2, Region{Rect: Rect{X: 100, Y: 100, Width: 50, Height: 20}, Page: 0})
	_, err := runner.Run(context.Background(), rc)
	if !IsKind(err, KindRender) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v", err)
	}
}

func TestRunnerConcurrencyLimit(t *testing.T) {
	src := newFakeSource(1)
	src.block = make(chan struct{})
	runner := NewRunner(Config{MaxConcurrentJobs: 1})

	rc := runner.NewRunContext(src, &fakeOutput{}, FillOptions{})
	rc.Selection = pixelSelection(2, Region{Rect: Rect{X: 100, Y: 100, Width: 50, Height: 20}, Page: 0})
	first := startJob(func() (*Result, error) { return runner.Run(context.Background(), rc) }, nil)

	// wait until the first run holds the slot
	for {
		src.mu.Lock()
		n := len(src.rendered)
		src.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	res, err := runner.Run(ctx, runner.NewRunContext(newFakeSource(1), &fakeOutput{}, FillOptions{}))
	if !IsKind(err, KindCanceled) || res.Failed == nil {
		t.Errorf("second run: %v", err)
	}

	close(src.block)
	if _, err := first.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestStart(t *testing.T) {
	released := 0
	job := Start(context.Background(), &RunContext{
		Source: newFakeSource(2),
		Output: &fakeOutput{saveErr: errors.New("read-only file system")},
	}, func() { released++ })

	<-job.Done()
	if job.State() != Failed {
		t.Errorf("state %s", job.State())
	}
	res, err := job.Wait()
	if !IsKind(err, KindSave) || res.Failed == nil {
		t.Errorf("got %+v, %v", res, err)
	}
	if released != 1 {
		t.Errorf("release called %d times", released)
	}
}
