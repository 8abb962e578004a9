// Command server renders Mandelbrot images on request.
// irpc clients connect over plain TCP or over websocket at /ws,
// HTTP clients fetch encoded images from /render.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/marben/irpc"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/marben/mandel/remote"
)

var configFile = flag.String("f", "", "config file")

func main() {
	flag.Parse()
	logx.Must(run())
}

func run() error {
	c, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	logx.MustSetup(c.Log)
	defer logx.Close()

	if c.Gops {
		if err := agent.Listen(agent.Options{Addr: c.GopsAddr}); err != nil {
			return err
		}
		defer agent.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rs := remote.NewServer(c.limits(), c.Origins...)
	defer rs.Close()

	tcpListener, err := net.Listen("tcp", c.RpcListenOn)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	rpcErrc := make(chan error, 1)
	go func() {
		logx.Infof("tcp listening on %s", tcpListener.Addr())
		rpcErrc <- rs.Serve(tcpListener)
	}()

	srv := webServer(c, rs)
	errc := make(chan error, 1)
	go func() {
		logx.Infof("http listening on %s", c.ListenOn)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case err := <-rpcErrc:
		return fmt.Errorf("server.Serve tcp: %w", err)
	case <-ctx.Done():
	}

	logx.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	rs.Close()
	if err := <-rpcErrc; !errors.Is(err, irpc.ErrServerClosed) {
		return err
	}
	return nil
}

// webServer builds the HTTP server serving the websocket and image endpoints of rs.
func webServer(c Config, rs *remote.Server) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", rs.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return &http.Server{
		Addr:              c.ListenOn,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
