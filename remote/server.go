// Package remote serves mandel.FrameProvider over irpc and fetches frames back.
//
// A Server accepts irpc connections on any net.Listener (plain TCP in
// cmd/server) and on websockets opened at /ws. The same handler renders
// encoded images for plain HTTP clients at /render.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
	"github.com/marben/irpc"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/syncx"

	"github.com/marben/mandel"
	"github.com/marben/mandel/bitmap"
)

// Limits caps what a single request may ask for. Zero means no limit.
type Limits struct {
	MaxThreads int
	MaxPixels  int
}

var ErrLimit = errors.New("request exceeds server limits")

func (l Limits) check(c mandel.RenderConfig) error {
	if l.MaxThreads > 0 && c.Threads > l.MaxThreads {
		return fmt.Errorf("%w: %d threads, at most %d allowed", ErrLimit, c.Threads, l.MaxThreads)
	}
	if l.MaxPixels > 0 && c.Width*c.Height > l.MaxPixels {
		return fmt.Errorf("%w: %dx%d image, at most %d pixels allowed", ErrLimit, c.Width, c.Height, l.MaxPixels)
	}
	return nil
}

// Server renders requests received over irpc or plain HTTP.
// Identical requests in flight at the same time share one render.
type Server struct {
	limits   Limits
	origins  []string
	renderer mandel.Renderer
	flight   syncx.SingleFlight

	rpc *irpc.Server
	ws  *WebsocketListener
}

var _ mandel.FrameProvider = (*Server)(nil)

// NewServer returns a server enforcing limits and starts accepting irpc
// connections arriving over websocket.
// originPatterns lists the hosts allowed to open cross-origin websockets.
func NewServer(limits Limits, originPatterns ...string) *Server {
	s := &Server{
		limits:  limits,
		origins: originPatterns,
		flight:  syncx.NewSingleFlight(),
		ws:      NewWSListener(context.Background(), "/ws"),
	}

	// all connections share this one FrameProvider and so one singleflight
	s.rpc = irpc.NewServer(
		irpc.WithServices(mandel.NewFrameProviderIrpcService(s)),
		irpc.WithOnConnect(func(ep *irpc.Endpoint) {
			logx.Infow("client connected", logx.Field("remote", fmt.Sprint(ep.RemoteAddr())))
		}),
	)

	go func() {
		if err := s.Serve(s.ws); !errors.Is(err, irpc.ErrServerClosed) {
			logx.Errorw("server.Serve ws", logx.Field("error", err))
		}
	}()
	return s
}

// Serve accepts irpc connections on l. It returns irpc.ErrServerClosed after Close.
func (s *Server) Serve(l net.Listener) error {
	return s.rpc.Serve(l)
}

// Close stops every listener and drops every connection.
func (s *Server) Close() error {
	return errors.Join(s.rpc.Close(), s.ws.Close())
}

// Handler routes /ws to the irpc websocket transport, /render to the HTTP
// image endpoint and /presets to the preset list.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWebsocket)
	mux.HandleFunc("GET /render", s.serveImage)
	mux.HandleFunc("GET /presets", servePresets)
	return mux
}

// RenderFrame implements mandel.FrameProvider.
func (s *Server) RenderFrame(ctx context.Context, c mandel.RenderConfig) (mandel.Frame, error) {
	if err := ctx.Err(); err != nil {
		return mandel.Frame{}, err
	}
	f, err := s.render(c)
	if err != nil {
		logx.WithContext(ctx).Infow("render refused", logx.Field("config", c.String()), logx.Field("error", err))
	}
	return f, err
}

func (s *Server) render(c mandel.RenderConfig) (mandel.Frame, error) {
	if c.Framing == "" {
		c.Framing = mandel.FramingShifted
	}
	if err := c.Validate(); err != nil {
		return mandel.Frame{}, err
	}
	if err := s.limits.check(c); err != nil {
		return mandel.Frame{}, err
	}

	key, err := sonic.MarshalString(c)
	if err != nil {
		return mandel.Frame{}, err
	}
	v, err := s.flight.Do(key, func() (any, error) {
		canvas, err := s.renderer.Render(c)
		if canvas == nil {
			return nil, err
		}
		return mandel.Frame{Canvas: canvas, Failed: bandFailures(err)}, nil
	})
	if err != nil {
		return mandel.Frame{}, err
	}
	return v.(mandel.Frame), nil
}

func bandFailures(err error) []string {
	if err == nil {
		return nil
	}
	var failed []string
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			failed = append(failed, e.Error())
		}
		return failed
	}
	return []string{err.Error()}
}

// serveWebsocket handles the /ws endpoint.
// A successfully opened websocket is passed on to the irpc server.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		logx.WithContext(r.Context()).Errorw("websocket accept", logx.Field("error", err))
		return
	}
	if err := s.ws.push(c); err != nil {
		c.Close(websocket.StatusGoingAway, "server is shutting down")
	}
}

// FailedBandsHeader carries the number of bands the HTTP endpoint could not render.
const FailedBandsHeader = "X-Mandel-Failed-Bands"

// serveImage handles GET /render, answering with an encoded image.
func (s *Server) serveImage(w http.ResponseWriter, r *http.Request) {
	c, format, err := parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f, err := s.render(c)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, mandel.ErrInvalidConfig) || errors.Is(err, ErrLimit) {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	var buf bytes.Buffer
	if err := bitmap.Encode(&buf, f.Canvas, format); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if len(f.Failed) > 0 {
		w.Header().Set(FailedBandsHeader, strconv.Itoa(len(f.Failed)))
	}
	if _, err := buf.WriteTo(w); err != nil {
		logx.WithContext(r.Context()).Infow("write image", logx.Field("error", err))
	}
}

// servePresets handles GET /presets with the JSON list of named viewports.
func servePresets(w http.ResponseWriter, r *http.Request) {
	data, err := sonic.Marshal(mandel.Presets)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		logx.WithContext(r.Context()).Infow("write presets", logx.Field("error", err))
	}
}

// parseQuery reads a render config from query parameters, starting from the defaults.
func parseQuery(q url.Values) (mandel.RenderConfig, bitmap.Format, error) {
	c := mandel.DefaultConfig()
	format := bitmap.PNG

	if v := q.Get("preset"); v != "" {
		p, ok := mandel.LookupPreset(v)
		if !ok {
			return c, format, fmt.Errorf("unknown preset %q", v)
		}
		c = p.Apply(c)
	}

	floats := map[string]*float64{"x": &c.CenterX, "y": &c.CenterY, "s": &c.Scale}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return c, format, fmt.Errorf("parameter %s: %w", name, err)
			}
			*dst = f
		}
	}

	ints := map[string]*int{"w": &c.Width, "h": &c.Height, "m": &c.MaxIterations, "n": &c.Threads}
	for name, dst := range ints {
		if v := q.Get(name); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return c, format, fmt.Errorf("parameter %s: %w", name, err)
			}
			*dst = i
		}
	}

	if v := q.Get("framing"); v != "" {
		f, err := mandel.ParseFraming(v)
		if err != nil {
			return c, format, err
		}
		c.Framing = f
	}
	if v := q.Get("format"); v != "" {
		f, err := bitmap.ParseFormat(strings.TrimSpace(v))
		if err != nil {
			return c, format, err
		}
		format = f
	}
	return c, format, nil
}
