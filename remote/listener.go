package remote

import (
	"context"
	"net"

	"github.com/coder/websocket"
)

// WebsocketListener implements net.Listener.
// Connections accepted by an HTTP handler are handed over with push
// and come out of Accept as binary message streams.
type WebsocketListener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func NewWSListener(ctx context.Context, addr string) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

// push hands c to Accept. It fails once the listener is closed.
func (l *WebsocketListener) push(c *websocket.Conn) error {
	select {
	case l.ch <- c:
		return nil
	case <-l.ctx.Done():
		return net.ErrClosed
	}
}

// Accept returns the next pushed connection.
// The connection lives until it is closed or the listener is closed.
func (l *WebsocketListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, net.ErrClosed
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
