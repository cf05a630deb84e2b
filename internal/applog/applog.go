// Package applog configures the process-wide zerolog logger. Libraries in
// pkg/ stay log-free and return errors; logging happens at the edges, in
// cmd and the server middleware, through the logger built here.
package applog

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-ampgen/pkg/config"
)

// Setup builds the root logger from configuration: console output on a
// TTY, JSON otherwise, unless the format is forced.
func Setup(cfg config.Log) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
			level = parsed
		}
	}

	var out io.Writer = os.Stderr
	if useConsole(cfg.Format) {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func useConsole(format string) bool {
	switch strings.ToLower(format) {
	case "console":
		return true
	case "json":
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}
