// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// Fuzz is a go-fuzz entry point: it round-trips data through Parse and
// Write, returning 1 when both succeed so the corpus mutator favors
// inputs that make it all the way through the codec.
func Fuzz(data []byte) int {
	cf, err := OpenBytes(data, &Options{})
	if err != nil {
		return 0
	}
	if err := cf.Parse(); err != nil {
		return 0
	}
	if _, err := cf.Write(); err != nil {
		return 0
	}
	return 1
}
