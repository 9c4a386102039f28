// Package debug provides opt-in diagnostic logging. Output goes to stderr
// when PODIFF_DEBUG is set, and additionally to a size-rotated log file when
// PODIFF_DEBUG_LOG names one.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once    sync.Once
	enabled bool
	sink    io.Writer
)

func setup() {
	enabled = os.Getenv("PODIFF_DEBUG") != ""
	if !enabled {
		return
	}
	sink = os.Stderr
	if path := os.Getenv("PODIFF_DEBUG_LOG"); path != "" {
		sink = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    5, // megabytes
			MaxBackups: 2,
		})
	}
}

// Logf writes one diagnostic line when debug logging is enabled.
func Logf(format string, args ...any) {
	once.Do(setup)
	if !enabled {
		return
	}
	fmt.Fprintf(sink, "debug: "+format+"\n", args...)
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	once.Do(setup)
	return enabled
}
