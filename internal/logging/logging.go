// Package logging configures structured logging via zerolog.
//
// DESIGN: Logs go to stderr so they never interleave with the interactive
// prompt on stdout. The console writer keeps output readable; level defaults
// to warn and drops to debug with --debug or JARVIS_DEBUG=1.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. debug forces debug level; otherwise
// JARVIS_DEBUG=1 (or a level name in JARVIS_LOG_LEVEL) is honored.
func Setup(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.WarnLevel
	if lvl := os.Getenv("JARVIS_LOG_LEVEL"); lvl != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(lvl)); err == nil {
			level = parsed
		}
	}
	if debug || os.Getenv("JARVIS_DEBUG") == "1" {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	log.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
