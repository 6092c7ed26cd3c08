// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"strings"
	"testing"
)

func TestRecorderWriteTo(t *testing.T) {
	r := NewRecorder()
	r.Record("normalize", ".global foo", []string{".globl foo"})
	r.Record("macro", ".purgem m", nil)

	var b strings.Builder
	if _, err := r.WriteTo(&b); err != nil {
		t.Fatalf("WriteTo returned error: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, `[normalize] ".global foo"`) {
		t.Errorf("expected normalize step header, got:\n%s", out)
	}
	if !strings.Contains(out, `-> ".globl foo"`) {
		t.Errorf("expected rewritten line in output, got:\n%s", out)
	}
	if strings.Contains(out, `[macro] ".purgem m"`) && strings.Contains(out, "-> \"\"") {
		t.Errorf("a step with no after lines should render no arrows, got:\n%s", out)
	}
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder()
	r.Record("pass", "a", []string{"b"})
	if len(r.Steps()) != 1 {
		t.Fatalf("expected 1 step, got %d", len(r.Steps()))
	}
	r.Reset()
	if len(r.Steps()) != 0 {
		t.Errorf("expected 0 steps after Reset, got %d", len(r.Steps()))
	}
}
