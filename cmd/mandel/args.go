package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marben/mandel"
	"github.com/marben/mandel/bitmap"
)

type options struct {
	cfg     mandel.RenderConfig
	outfile string
	format  bitmap.Format
	verbose bool
}

const helpText = `Use: mandel [options]
Where options are:
-m <max>     The maximum number of iterations per point. (default=1000)
-x <coord>   X coordinate of image center point. (default=0)
-y <coord>   Y coordinate of image center point. (default=0)
-s <scale>   Scale of the image in Mandelbrot coordinates. (default=4)
-W <pixels>  Width of the image in pixels. (default=500)
-H <pixels>  Height of the image in pixels. (default=500)
-o <file>    Set output file, .bmp, .png or .tiff. (default=mandel.bmp)
-n <threads> Number of threads to use. (default=1)
-framing <f> Vertical framing, shifted or symmetric. (default=shifted)
-preset <p>  Start from a named viewport; -x, -y and -s still override it.
-v           Log every worker as it is created and joined.
-h           Show this help text.

Some examples are:
mandel -x -0.5 -y -0.5 -s 0.2
mandel -x -.38 -y -.665 -s .05 -m 100
mandel -x 0.286932 -y 0.014287 -s .0005 -m 1000
`

func printHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
	fmt.Fprintln(w, "\nPresets:")
	for _, p := range mandel.Presets {
		fmt.Fprintf(w, "  %-24s x=%g y=%g s=%g\n", p.Name, p.CenterX, p.CenterY, p.Scale)
	}
}

// parseArgs reads the command line. Numbers are read like atof and atoi do:
// the longest numeric prefix counts and anything unreadable is 0.
func parseArgs(args []string, out io.Writer) (options, error) {
	opts := options{cfg: mandel.DefaultConfig(), outfile: "mandel.bmp"}
	c := &opts.cfg
	var preset string

	fs := flag.NewFlagSet("mandel", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { printHelp(fs.Output()) }

	floatVar(fs, &c.CenterX, "x", "X coordinate of image center point")
	floatVar(fs, &c.CenterY, "y", "Y coordinate of image center point")
	floatVar(fs, &c.Scale, "s", "scale of the image in Mandelbrot coordinates")
	intVar(fs, &c.Width, "W", "width of the image in pixels")
	intVar(fs, &c.Height, "H", "height of the image in pixels")
	intVar(fs, &c.MaxIterations, "m", "maximum number of iterations per point")
	intVar(fs, &c.Threads, "n", "number of threads")
	fs.StringVar(&opts.outfile, "o", opts.outfile, "output file")
	fs.Func("framing", "vertical framing, shifted or symmetric", func(s string) error {
		f, err := mandel.ParseFraming(s)
		if err != nil {
			return err
		}
		c.Framing = f
		return nil
	})
	fs.StringVar(&preset, "preset", "", "named viewport")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	// extensions other than .png and .tiff get a bitmap
	if f, err := bitmap.FormatFor(opts.outfile); err == nil {
		opts.format = f
	} else {
		opts.format = bitmap.BMP
	}

	if preset != "" {
		p, ok := mandel.LookupPreset(preset)
		if !ok {
			return opts, fmt.Errorf("unknown preset %q", preset)
		}
		explicit := *c
		*c = p.Apply(*c)
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "x":
				c.CenterX = explicit.CenterX
			case "y":
				c.CenterY = explicit.CenterY
			case "s":
				c.Scale = explicit.Scale
			}
		})
	}
	return opts, nil
}

func floatVar(fs *flag.FlagSet, dst *float64, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		*dst = atof(s)
		return nil
	})
}

func intVar(fs *flag.FlagSet, dst *int, name, usage string) {
	fs.Func(name, usage, func(s string) error {
		*dst = atoi(s)
		return nil
	})
}

func atof(s string) float64 {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		f, err := strconv.ParseFloat(s[:end], 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return f
		}
	}
	return 0
}

func atoi(s string) int {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		i, err := strconv.Atoi(s[:end])
		if err == nil || errors.Is(err, strconv.ErrRange) {
			return i
		}
	}
	return 0
}
