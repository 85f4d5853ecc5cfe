// Package cli holds the flags shared by every opschema command.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/broady/opschema/config"
)

// Globals are flags accepted by every command. Set flags override the
// config file and environment.
type Globals struct {
	Config   string   `help:"Config file (default: opschema.yaml if present)." short:"c" type:"path"`
	Packages []string `help:"Go packages to scan." short:"p" sep:","`
	Dir      string   `help:"Directory package patterns are resolved in." type:"path"`
	LogLevel string   `help:"Log level (debug, info, warn, error)."`
	JSONLog  bool     `help:"Log as JSON." name:"json-log"`

	// Stderr receives log output. Nil means os.Stderr.
	Stderr io.Writer `kong:"-"`
}

// Load returns the effective configuration and a logger configured from it.
func (g *Globals) Load() (config.Config, *slog.Logger, error) {
	res, err := config.Read(g.Config)
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg := res.Config
	if len(g.Packages) > 0 {
		cfg.Packages = g.Packages
	}
	if g.Dir != "" {
		cfg.Dir = g.Dir
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.JSONLog {
		cfg.JSONLog = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, g.logger(cfg), nil
}

func (g *Globals) logger(cfg config.Config) *slog.Logger {
	w := g.Stderr
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.JSONLog {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
