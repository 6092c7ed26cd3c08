// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gaspp

import (
	"testing"

	"github.com/beevik/gaspp/arch"
)

func TestRewriteARMLiteralLoad(t *testing.T) {
	p := NewPipeline(arch.ARM)
	got := p.rewriteARMLiteralLoad("ldr r3, =0x1000")
	if got != "ldr r3, .Literal_0" {
		t.Errorf("got %q, want %q", got, "ldr r3, .Literal_0")
	}
	if p.literals.isEmpty() {
		t.Error("expected the literal pool to have one pending entry")
	}
}

func TestRewritePPCRelocations(t *testing.T) {
	cases := map[string]string{
		"lis r3, sym@ha":  "lis r3, ha16(sym)",
		"addi r3, r3, sym@l": "addi r3, r3, lo16(sym)",
	}
	for in, want := range cases {
		got := rewritePPCRelocations(in)
		if got != want {
			t.Errorf("rewritePPCRelocations(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRewritePPCSPR(t *testing.T) {
	if got := rewritePPCSPR("mfctr 3"); got != "mfspr 3, 9" {
		t.Errorf("got %q, want %q", got, "mfspr 3, 9")
	}
	if got := rewritePPCSPR("mtvrsave 4"); got != "mtspr 256, 4" {
		t.Errorf("got %q, want %q", got, "mtspr 256, 4")
	}
	if got := rewritePPCSPR("mfunknown 1"); got != "mfunknown 1" {
		t.Errorf("unknown symbolic register should pass through unchanged, got %q", got)
	}
}

func TestDuplicateUnreq(t *testing.T) {
	got := duplicateUnreq(".unreq Rtmp")
	want := []string{".unreq rtmp", ".unreq RTMP"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSectionStackPrevious(t *testing.T) {
	var s sectionStack
	s.push(".text")
	s.push(".const_data")
	prev, err := s.previous("")
	if err != nil {
		t.Fatalf("previous returned error: %v", err)
	}
	if prev != ".text" {
		t.Errorf("got %q, want %q", prev, ".text")
	}
}

func TestSectionStackPreviousUnderflow(t *testing.T) {
	var s sectionStack
	s.push(".text")
	if _, err := s.previous(""); err == nil {
		t.Error("expected an error when fewer than two section directives precede .previous")
	}
}

func TestLiteralPoolSharesLabelAndDrainEmptiesPool(t *testing.T) {
	lp := newLiteralPool()
	l1 := lp.intern("foo")
	l2 := lp.intern("foo")
	if l1 != l2 {
		t.Errorf("interning the same expression twice should share a label: %q != %q", l1, l2)
	}
	lines := lp.drain()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines from drain, got %d: %v", len(lines), lines)
	}
	if !lp.isEmpty() {
		t.Error("pool should be empty after drain")
	}
}
