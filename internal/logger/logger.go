// Package logger provides the leveled logger used across the server.
package logger

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/gookit/color"
)

// Level is a log severity level.
type Level int32

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var current atomic.Int32

func init() {
	current.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be written.
func SetLevel(l Level) {
	current.Store(int32(l))
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	return Level(current.Load())
}

func enabled(l Level) bool {
	return int32(l) >= current.Load()
}

func write(tag string, paint color.Color, format string, args ...any) {
	ts := time.Now().Format("2006/01/02 15:04:05")
	fmt.Fprintf(os.Stderr, "%s %s %s\n", ts, paint.Render(tag), fmt.Sprintf(format, args...))
}

// Tracef logs at trace level.
func Tracef(format string, args ...any) {
	if enabled(LevelTrace) {
		write("TRC", color.FgGray, format, args...)
	}
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	if enabled(LevelDebug) {
		write("DBG", color.FgCyan, format, args...)
	}
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	if enabled(LevelInfo) {
		write("INF", color.FgGreen, format, args...)
	}
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	if enabled(LevelWarn) {
		write("WRN", color.FgYellow, format, args...)
	}
}

// Errorf logs at error level.
func Errorf(format string, args ...any) {
	if enabled(LevelError) {
		write("ERR", color.FgRed, format, args...)
	}
}
