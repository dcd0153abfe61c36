// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package log provides the small structured-logging facade used across
// the classfile package: a thin Logger interface, a Helper with
// printf-style convenience methods, and a level Filter that wraps any
// Logger.
package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level is a logging severity.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every log call is routed through.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes leveled, timestamped lines to an io.Writer.
type stdLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStdLogger returns a Logger that writes to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{out: w}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.out, "%s %s %v\n", time.Now().Format(time.RFC3339), level, keyvals)
	return err
}

// filter drops records below a minimum level before they reach the
// wrapped Logger.
type filter struct {
	logger Logger
	level  Level
}

// FilterOption configures a filter built by NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a record must meet to pass through.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.level = level }
}

// NewFilter wraps logger with the given options.
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	f := &filter{logger: logger, level: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.logger.Log(level, keyvals...)
}

// Helper adds printf-style convenience methods on top of a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(level, fmt.Sprintf(format, args...))
}

func (h *Helper) Debugf(format string, args ...interface{}) { h.log(LevelDebug, format, args...) }
func (h *Helper) Infof(format string, args ...interface{})  { h.log(LevelInfo, format, args...) }
func (h *Helper) Warnf(format string, args ...interface{})  { h.log(LevelWarn, format, args...) }
func (h *Helper) Errorf(format string, args ...interface{}) { h.log(LevelError, format, args...) }
