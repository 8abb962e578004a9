package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/coder/websocket"
	"github.com/marben/irpc"

	"github.com/marben/mandel"
	"github.com/marben/mandel/bitmap"
)

// Client fetches renders from a Server over one irpc endpoint.
// It may be used by several goroutines at once.
type Client struct {
	ep       *irpc.Endpoint
	provider *mandel.FrameProviderIrpcClient
}

// Dial connects to addr. ws:// and wss:// URLs are opened as websockets,
// anything else is dialed as a TCP host:port.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var conn net.Conn
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		wc, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket.Dial: %w", err)
		}
		// the connection outlives ctx, which only bounds the dial
		conn = websocket.NetConn(context.Background(), wc, websocket.MessageBinary)
	} else {
		var d net.Dialer
		c, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to server: %w", err)
		}
		conn = c
	}
	return NewClient(conn)
}

// NewClient speaks irpc over conn. Closing the client closes conn.
func NewClient(conn io.ReadWriteCloser) (*Client, error) {
	ep := irpc.NewEndpoint(conn)
	provider, err := mandel.NewFrameProviderIrpcClient(ep)
	if err != nil {
		ep.Close()
		return nil, fmt.Errorf("failed to create FrameProvider client: %w", err)
	}
	return &Client{ep: ep, provider: provider}, nil
}

// Render asks the server to render c and returns the canvas together with
// the descriptions of bands the server failed to render.
func (cl *Client) Render(ctx context.Context, c mandel.RenderConfig) (*bitmap.Canvas, []string, error) {
	f, err := cl.provider.RenderFrame(ctx, c)
	if err != nil {
		return nil, nil, fmt.Errorf("client.RenderFrame: %w", err)
	}
	if f.Canvas == nil {
		return nil, nil, errors.New("server sent no image")
	}
	if f.Canvas.Width() != c.Width || f.Canvas.Height() != c.Height {
		return nil, nil, fmt.Errorf("image is %dx%d, asked for %dx%d",
			f.Canvas.Width(), f.Canvas.Height(), c.Width, c.Height)
	}
	return f.Canvas, f.Failed, nil
}

// Close drops the connection.
func (cl *Client) Close() error {
	return cl.ep.Close()
}
