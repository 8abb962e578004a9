package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/marben/mandel"
	"github.com/marben/mandel/remote"
)

func TestMain(m *testing.M) {
	logx.Disable()
	os.Exit(m.Run())
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if c.ListenOn != ":8080" || c.RpcListenOn != ":8081" || c.MaxThreads != 64 || c.MaxPixels != 16777216 || c.Gops {
		t.Errorf("defaults = %+v", c)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := "ListenOn: 127.0.0.1:9000\nMaxThreads: 8\nOrigins:\n  - example.com\nLog:\n  Mode: console\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.ListenOn != "127.0.0.1:9000" || c.MaxThreads != 8 || c.MaxPixels != 16777216 {
		t.Errorf("config = %+v", c)
	}
	if !slices.Equal(c.Origins, []string{"example.com"}) {
		t.Errorf("origins = %v", c.Origins)
	}
	if c.limits() != (remote.Limits{MaxThreads: 8, MaxPixels: 16777216}) {
		t.Errorf("limits = %+v", c.limits())
	}
}

func TestWebServer(t *testing.T) {
	c, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	rs := remote.NewServer(c.limits())
	defer rs.Close()
	srv := webServer(c, rs)
	if srv.Addr != ":8080" || srv.ReadHeaderTimeout == 0 {
		t.Errorf("server = %+v", srv)
	}

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Errorf("healthz status %d", res.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cfg := mandel.RenderConfig{Scale: 2, Width: 16, Height: 16, MaxIterations: 20, Threads: 4}
	cl, err := remote.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws")
	if err != nil {
		t.Fatal(err)
	}
	defer cl.Close()
	canvas, _, err := cl.Render(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if canvas.Width() != 16 || canvas.Height() != 16 {
		t.Errorf("canvas %dx%d", canvas.Width(), canvas.Height())
	}
}
