// Package logging is the levelled stderr logger shared by the CLI and the
// chart pipeline.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var prefixes = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// ParseLevel maps a level name to a Level. Unknown names report false.
func ParseLevel(s string) (Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLevel parses and sets the global log level. Unknown names are ignored.
func SetLevel(s string) {
	l, ok := ParseLevel(s)
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
}

// GetLevel returns the current global log level.
func GetLevel() Level { return Level(atomic.LoadInt32(&currentLevel)) }

// SetOutput redirects log output, returning the previous writer's logger so
// callers (mostly tests) can restore it.
func SetOutput(w io.Writer) *log.Logger {
	prev := baseLogger
	baseLogger = log.New(w, "", prev.Flags())
	return prev
}

// Restore puts back a logger obtained from SetOutput.
func Restore(l *log.Logger) { baseLogger = l }

func logf(l Level, format string, args ...interface{}) {
	// Plain messages are written as-is so literal % (percent labels) survive.
	if len(args) == 0 {
		output(l, format)
		return
	}
	output(l, fmt.Sprintf(format, args...))
}

func output(l Level, msg string) {
	if GetLevel() > l {
		return
	}
	baseLogger.Print("[" + prefixes[l] + "] " + msg)
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// Info writes msg verbatim at info level.
func Info(msg string) { output(LevelInfo, msg) }

// TimeTrack logs the elapsed time of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
