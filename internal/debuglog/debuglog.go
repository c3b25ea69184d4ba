// Package debuglog provides optional structured diagnostics for tracing
// which code path (native call, fallback, process search) served a
// request. Output is disabled unless BRIDGECTL_DEBUG is set, so normal
// invocations stay quiet.
package debuglog

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var initOnce sync.Once
var root zerolog.Logger

func logger() zerolog.Logger {
	initOnce.Do(func() {
		if os.Getenv("BRIDGECTL_DEBUG") == "" {
			root = zerolog.Nop()
			return
		}
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		root = zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	})
	return root
}

// WithComponent returns a logger tagged with the given component name.
func WithComponent(name string) zerolog.Logger {
	return logger().With().Str("component", name).Logger()
}
