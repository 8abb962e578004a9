package mandel

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"

	"github.com/marben/mandel/bitmap"
)

// State is the phase a render is in.
type State int

const (
	Idle State = iota
	Dispatching
	Joining
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dispatching:
		return "dispatching"
	case Joining:
		return "joining"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// BandError reports a worker that did not complete its band.
type BandError struct {
	Band int // worker number, starting at 1
	Err  error
}

func (e *BandError) Error() string {
	return fmt.Sprintf("band %d: %v", e.Band, e.Err)
}

func (e *BandError) Unwrap() error { return e.Err }

var ErrCanvasSize = errors.New("canvas size does not match render config")

// Canvas is the pixel grid a render writes into.
// SetPixel may be called concurrently for distinct pixels.
type Canvas interface {
	SetPixel(x, y int, c bitmap.Color)
	Width() int
	Height() int
}

var _ Canvas = (*bitmap.Canvas)(nil)

// Renderer renders a config with one goroutine per band.
// The zero value is ready to use and may render several configs at once.
type Renderer struct {
	// OnState, if set, is called from the rendering goroutine on every state change.
	OnState func(State)

	// OnBand, if set, is called from the worker goroutine after it finishes a band.
	// It must be safe for concurrent use.
	OnBand func(PixelBand)
}

// Render allocates a canvas of the configured size, fills it with
// bitmap.Sentinel and renders c into it.
//
// The canvas is returned even when some bands failed; the error then joins
// a *BandError for every failed band and the rows of those bands may still
// hold the sentinel.
func (r *Renderer) Render(c RenderConfig) (*bitmap.Canvas, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	canvas := bitmap.New(c.Width, c.Height)
	canvas.Reset(bitmap.Sentinel)
	return canvas, r.RenderInto(c, canvas)
}

// RenderInto renders c into canvas, which must be c.Width × c.Height.
// Errors other than a mismatched or invalid config are *BandError values joined together.
func (r *Renderer) RenderInto(c RenderConfig, canvas Canvas) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if canvas.Width() != c.Width || canvas.Height() != c.Height {
		return fmt.Errorf("%w: canvas %dx%d, config %dx%d",
			ErrCanvasSize, canvas.Width(), canvas.Height(), c.Width, c.Height)
	}

	r.setState(Idle)
	start := time.Now()
	vp := ViewportOf(c)
	bands := Bands(c)
	if rows := Unrendered(c); len(rows) > 0 {
		logx.Infow("rows not covered by any band",
			logx.Field("height", c.Height), logx.Field("threads", c.Threads),
			logx.Field("skipped", len(rows)))
	}

	// Bands are disjoint, so every worker writes its own rows and its own
	// results slot and nothing needs a lock.
	results := make([]error, len(bands))
	var g errgroup.Group

	r.setState(Dispatching)
	for i, band := range bands {
		logx.Debugw("creating worker", logx.Field("band", band.Index))
		g.Go(func() error {
			err := r.renderBand(c, vp, band, canvas)
			results[i] = err
			return err
		})
	}

	r.setState(Joining)
	logx.Debugw("joining workers", logx.Field("count", len(bands)))

	// Wait returns only the first failure, results holds every one of them.
	var errs []error
	if err := g.Wait(); err != nil {
		for _, err := range results {
			if err != nil {
				logx.Errorw("band not rendered", logx.Field("error", err))
				errs = append(errs, err)
			}
		}
	}
	r.setState(Done)

	logx.Debugw("render finished",
		logx.Field("bands", len(bands)), logx.Field("failed", len(errs)),
		logx.Field("took", time.Since(start).String()))
	return errors.Join(errs...)
}

func (r *Renderer) renderBand(c RenderConfig, vp Viewport, band PixelBand, canvas Canvas) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &BandError{Band: band.Index, Err: fmt.Errorf("worker panicked: %v", p)}
		}
	}()

	for jl := range band.RowCount {
		y := band.Y(jl)
		j := band.RowStart + jl
		for i := range c.Width {
			canvas.SetPixel(i, j, IterationsAtPoint(vp.X(i), y, c.MaxIterations))
		}
	}

	logx.Debugw("worker finished", logx.Field("band", band.Index), logx.Field("rect", band.Rect(c.Width).String()))
	if r.OnBand != nil {
		r.OnBand(band)
	}
	return nil
}

func (r *Renderer) setState(s State) {
	if r.OnState != nil {
		r.OnState(s)
	}
}

// Render renders c with a zero Renderer.
func Render(c RenderConfig) (*bitmap.Canvas, error) {
	var r Renderer
	return r.Render(c)
}
