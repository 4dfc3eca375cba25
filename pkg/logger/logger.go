// Package logger builds the process logger on zerolog. Call Init once in main;
// everything else receives the logger by constructor or through Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Level is the minimum level name; unknown names fall back to info.
	Level string
	// Pretty switches to coloured console output for local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service, when set, is stamped on every line.
	Service string
}

var (
	mu     sync.Mutex
	global *zerolog.Logger
)

// New returns a logger configured by opts without touching the process-wide one.
func New(opts Options) zerolog.Logger {
	w := opts.Output
	if w == nil {
		w = os.Stdout
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lctx := zerolog.New(w).Level(parseLevel(opts.Level)).With().Timestamp().Caller()
	if opts.Service != "" {
		lctx = lctx.Str("service", opts.Service)
	}
	return lctx.Logger()
}

// Init builds the process-wide logger on first use and returns it. Later calls
// return the existing logger and ignore opts.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if global == nil {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := New(opts)
		global = &l
	}
	return *global
}

// Get returns the logger built by Init. It panics when Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if global == nil {
		panic("logger: Get() called before Init()")
	}
	return *global
}

// Reset drops the process-wide logger. Tests only.
func Reset() {
	mu.Lock()
	global = nil
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
