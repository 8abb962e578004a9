package mandel

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Framing selects how the vertical plane window is derived from the center and scale.
type Framing string

const (
	// FramingShifted moves the working center down by one scale/threads unit
	// before the bands are laid out, so the window depends on the thread count.
	FramingShifted Framing = "shifted"

	// FramingSymmetric uses [center.y-scale, center.y+scale] for any thread count.
	FramingSymmetric Framing = "symmetric"
)

func (f Framing) valid() bool {
	return f == FramingShifted || f == FramingSymmetric
}

// ParseFraming returns the framing named by s.
func ParseFraming(s string) (Framing, error) {
	f := Framing(strings.ToLower(s))
	if !f.valid() {
		return "", fmt.Errorf("unknown framing %q (want %q or %q)", s, FramingShifted, FramingSymmetric)
	}
	return f, nil
}

// RenderConfig describes one render. It is read by every worker and never modified during a render.
type RenderConfig struct {
	CenterX       float64 `json:"x"`
	CenterY       float64 `json:"y"`
	Scale         float64 `json:"scale"` // half-width of the plane window
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MaxIterations int     `json:"max"`
	Threads       int     `json:"threads"`
	Framing       Framing `json:"framing,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		CenterX:       0,
		CenterY:       0,
		Scale:         4,
		Width:         500,
		Height:        500,
		MaxIterations: 1000,
		Threads:       1,
		Framing:       FramingShifted,
	}
}

var ErrInvalidConfig = errors.New("invalid render config")

// Validate reports the first field that makes c unrenderable.
// An empty Framing is accepted and means FramingShifted.
func (c RenderConfig) Validate() error {
	switch {
	case !(c.Scale > 0):
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidConfig, c.Scale)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations %d must be positive", ErrInvalidConfig, c.MaxIterations)
	case c.Threads < 1:
		return fmt.Errorf("%w: thread count %d must be at least 1", ErrInvalidConfig, c.Threads)
	case c.Framing != "" && !c.Framing.valid():
		return fmt.Errorf("%w: unknown framing %q", ErrInvalidConfig, c.Framing)
	}
	return nil
}

func (c RenderConfig) framing() Framing {
	if c.Framing == "" {
		return FramingShifted
	}
	return c.Framing
}

// String formats c the way it is printed before a render.
func (c RenderConfig) String() string {
	return fmt.Sprintf("x=%f y=%f scale=%f max=%d size=%dx%d threads=%d framing=%s",
		c.CenterX, c.CenterY, c.Scale, c.MaxIterations, c.Width, c.Height, c.Threads, c.framing())
}

// Preset is a named, well known place in the Mandelbrot set.
type Preset struct {
	Name    string  `json:"name"`
	CenterX float64 `json:"x"`
	CenterY float64 `json:"y"`
	Scale   float64 `json:"scale"`
}

// Apply moves c to the preset's viewport, leaving size, iterations and threads alone.
func (p Preset) Apply(c RenderConfig) RenderConfig {
	c.CenterX, c.CenterY, c.Scale = p.CenterX, p.CenterY, p.Scale
	return c
}

// Classic regions / landmarks in the Mandelbrot set
var Presets = []Preset{
	// dense filaments and repeating "seahorse" curls
	{Name: "seahorse-valley", CenterX: -0.75, CenterY: 0.1, Scale: 0.05},
	// large bulb with trunk-like tendrils
	{Name: "elephant-valley", CenterX: -1.8, CenterY: -0.06, Scale: 0.05},
	// small Mandelbrot copy with tight spiral arms
	{Name: "spiral-minibrot", CenterX: -0.74275, CenterY: 0.13175, Scale: 0.00075},
	// threefold symmetric spiral structure
	{Name: "triple-spiral", CenterX: -0.7465, CenterY: 0.0965, Scale: 0.0015},
	// deep, highly detailed spiral filaments
	{Name: "valley-of-the-dragon", CenterX: -0.7375, CenterY: 0.1825, Scale: 0.0025},
	// self-similar Mandelbrot copy inside a spiral arm
	{Name: "minibrot-in-mini-spiral", CenterX: -1.73825, CenterY: -0.02275, Scale: 0.00075},
	// examples from the mandel help text
	{Name: "example-1", CenterX: -0.5, CenterY: -0.5, Scale: 0.2},
	{Name: "example-2", CenterX: -0.38, CenterY: -0.665, Scale: 0.05},
	{Name: "example-3", CenterX: 0.286932, CenterY: 0.014287, Scale: 0.0005},
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, bool) {
	i := slices.IndexFunc(Presets, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return Preset{}, false
	}
	return Presets[i], true
}
