// Command mandel renders a grayscale Mandelbrot image into a bitmap file,
// splitting the rows among a fixed number of worker goroutines.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/marben/mandel"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "mandel: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseArgs(args, stdout)
	if err != nil {
		return err
	}
	setupLogging(opts.verbose)

	c := opts.cfg
	logx.Infof("mandel: x=%f y=%f scale=%f max=%d outfile=%s threads=%d",
		c.CenterX, c.CenterY, c.Scale, c.MaxIterations, opts.outfile, c.Threads)

	start := time.Now()
	r := mandel.Renderer{
		OnState: func(s mandel.State) { logx.Debugw("renderer", logx.Field("state", s.String())) },
	}
	canvas, err := r.Render(c)
	if canvas == nil {
		return err
	}
	if err != nil {
		logx.Errorf("mandel: image incomplete: %v", err)
	}

	if err := canvas.SaveAs(opts.outfile, opts.format); err != nil {
		return fmt.Errorf("couldn't write to %s: %w", opts.outfile, err)
	}
	logx.Infof("mandel: %dx%d image saved to %s in %s", c.Width, c.Height, opts.outfile, time.Since(start))
	return nil
}

func setupLogging(verbose bool) {
	level := "info"
	if verbose {
		level = "debug"
	}
	logx.MustSetup(logx.LogConf{
		ServiceName: "mandel",
		Mode:        "console",
		Encoding:    "plain",
		Level:       level,
	})
}
