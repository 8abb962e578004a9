// Command cliclient asks a mandel server for a render and saves the result locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/marben/mandel"
	"github.com/marben/mandel/bitmap"
	"github.com/marben/mandel/remote"
)

func main() {
	logx.MustSetup(logx.LogConf{ServiceName: "cliclient", Mode: "console", Encoding: "plain"})
	if err := run(os.Args[1:], os.Stderr); err != nil {
		logx.Errorf("FATAL: %v", err)
		os.Exit(1)
	}
}

type options struct {
	addr    string
	outfile string
	timeout time.Duration
	cfg     mandel.RenderConfig
}

func parseArgs(args []string, out io.Writer) (options, error) {
	opts := options{cfg: mandel.DefaultConfig()}
	c := &opts.cfg
	framing := string(c.Framing)

	fs := flag.NewFlagSet("cliclient", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.addr, "addr", "localhost:8081", "mandel server, host:port for tcp or a ws:// url")
	fs.StringVar(&opts.outfile, "o", "mandel.png", "output file, .bmp, .png or .tiff")
	fs.DurationVar(&opts.timeout, "timeout", time.Minute, "give up after this long")
	fs.Float64Var(&c.CenterX, "x", c.CenterX, "X coordinate of image center point")
	fs.Float64Var(&c.CenterY, "y", c.CenterY, "Y coordinate of image center point")
	fs.Float64Var(&c.Scale, "s", c.Scale, "scale of the image in Mandelbrot coordinates")
	fs.IntVar(&c.Width, "W", c.Width, "width of the image in pixels")
	fs.IntVar(&c.Height, "H", c.Height, "height of the image in pixels")
	fs.IntVar(&c.MaxIterations, "m", c.MaxIterations, "maximum number of iterations per point")
	fs.IntVar(&c.Threads, "n", c.Threads, "number of server threads")
	fs.StringVar(&framing, "framing", framing, "vertical framing, shifted or symmetric")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	f, err := mandel.ParseFraming(framing)
	if err != nil {
		return opts, err
	}
	c.Framing = f

	// fail before asking the server for anything we could not save
	if _, err := bitmap.FormatFor(opts.outfile); err != nil {
		return opts, err
	}
	return opts, nil
}

// run connects to the server, requests the render and saves it.
func run(args []string, out io.Writer) error {
	opts, err := parseArgs(args, out)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	logx.Infof("connecting to mandel server on %s", opts.addr)
	cl, err := remote.Dial(ctx, opts.addr)
	if err != nil {
		return err
	}
	defer cl.Close()

	logx.Infof("requesting %s", opts.cfg)
	canvas, failed, err := cl.Render(ctx, opts.cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for _, f := range failed {
		logx.Errorf("server could not render %s", f)
	}

	if err := canvas.Save(opts.outfile); err != nil {
		return fmt.Errorf("couldn't write to %s: %w", opts.outfile, err)
	}
	logx.Infof("rendered image saved to %q", opts.outfile)
	return nil
}
