// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import (
	"os"

	"github.com/jvmgo/classfile/internal/log"
)

// Options configures a Parse/Open call. It is optional everywhere it
// appears; a nil *Options is replaced by defaults.
type Options struct {
	// MaxInstructions bounds the number of instructions a single method's
	// Code attribute may decode into, guarding against adversarial or
	// corrupt bytecode arrays. Zero means DefaultMaxInstructions.
	MaxInstructions uint32

	// Logger receives non-fatal diagnostics encountered during Parse,
	// such as trailing bytes left over after the last class attribute.
	// Defaults to a stderr logger filtered at LevelError when nil.
	Logger log.Logger
}

// DefaultMaxInstructions is used when Options.MaxInstructions is zero.
const DefaultMaxInstructions = 1 << 20

func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.MaxInstructions == 0 {
		out.MaxInstructions = DefaultMaxInstructions
	}
	return &out
}

func (o *Options) helper() *log.Helper {
	if o.Logger != nil {
		return log.NewHelper(o.Logger)
	}
	logger := log.NewStdLogger(os.Stderr)
	return log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelError)))
}
