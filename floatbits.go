// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import "math"

func float32frombits(bits uint32) float32 { return math.Float32frombits(bits) }
func float64frombits(bits uint64) float64 { return math.Float64frombits(bits) }

// floatKey and doubleKey wrap a float/double's raw IEEE-754 bit pattern
// so it can be used as a map key for constant pool interning. Comparing
// floats by bit pattern rather than by == is deliberate: it is the only
// way to give NaN a stable identity, and it distinguishes +0.0 from
// -0.0, both of which the class file format treats as distinct pool
// entries despite being == in IEEE-754 arithmetic.
type floatKey struct{ bits uint32 }
type doubleKey struct{ bits uint64 }

func newFloatKey(v float32) floatKey   { return floatKey{bits: math.Float32bits(v)} }
func newDoubleKey(v float64) doubleKey { return doubleKey{bits: math.Float64bits(v)} }
