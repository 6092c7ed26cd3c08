// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace renders a human-readable record of what each pass of
// the preprocessor did to a line of source, the debugging aid a
// disassembler serves for a running CPU.
package trace

import (
	"fmt"
	"io"
	"strings"
)

// Step is one pass's transformation of a single line: before is what
// the pass received, after is what it produced. after may contain zero,
// one, or several lines (a macro expansion produces its whole body from
// one invocation; a line dropped by the conditional filter produces
// none).
type Step struct {
	Pass   string
	Before string
	After  []string
}

// Recorder accumulates Steps across a run of the pipeline. It is not
// safe for concurrent use; a Pipeline processes one file at a time.
type Recorder struct {
	steps []Step
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one pass's transformation of a line.
func (r *Recorder) Record(pass, before string, after []string) {
	r.steps = append(r.steps, Step{Pass: pass, Before: before, After: append([]string(nil), after...)})
}

// Steps returns every recorded step, in recording order.
func (r *Recorder) Steps() []Step {
	return append([]Step(nil), r.steps...)
}

// Reset discards every recorded step, so a Recorder can be reused
// across files.
func (r *Recorder) Reset() {
	r.steps = r.steps[:0]
}

// WriteTo renders every recorded step as an indented listing:
//
//	[normalize] ".global foo"
//	    -> ".globl foo"
//	[macro] "INC_BOTH a, b"
//	    -> "add a, 1"
//	    -> "add b, 1"
//
// A step whose after slice is empty (such as a line dropped by the
// conditional filter) renders with no arrows at all, so a reader can
// tell "consumed" apart from "unchanged".
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, s := range r.steps {
		fmt.Fprintf(&b, "[%s] %q\n", s.Pass, s.Before)
		for _, line := range s.After {
			fmt.Fprintf(&b, "    -> %q\n", line)
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
