package main

import (
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/marben/mandel/remote"
)

// Config is the server configuration, read from a YAML, JSON or TOML file.
type Config struct {
	// HTTP endpoints, websocket irpc included.
	ListenOn string `json:",default=:8080"`
	// Plain TCP irpc.
	RpcListenOn string `json:",default=:8081"`

	// Ceilings for a single request.
	MaxThreads int `json:",default=64"`
	MaxPixels  int `json:",default=16777216"`

	// Hosts allowed to open cross-origin websockets.
	Origins []string `json:",optional"`

	// Gops starts a diagnostics agent on GopsAddr (any free port when empty).
	Gops     bool   `json:",optional"`
	GopsAddr string `json:",optional"`

	Log logx.LogConf
}

func (c Config) limits() remote.Limits {
	return remote.Limits{MaxThreads: c.MaxThreads, MaxPixels: c.MaxPixels}
}

// loadConfig reads path, or only applies the defaults when path is empty.
func loadConfig(path string) (Config, error) {
	var c Config
	var err error
	if path == "" {
		err = conf.LoadFromJsonBytes([]byte("{}"), &c)
	} else {
		err = conf.Load(path, &c, conf.UseEnv())
	}
	return c, err
}
