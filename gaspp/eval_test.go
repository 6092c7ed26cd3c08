// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gaspp

import "testing"

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want int
	}{
		{"1 + 2", 3},
		{"2 * 3 + 4", 10},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 - 3 - 2", 5},
		{"-5 + 10", 5},
		{"~0", -1},
		{"!0", 1},
		{"!5", 0},
		{"0x10", 16},
		{"0xFF & 0x0F", 15},
		{"1 << 4", 16},
		{"256 >> 4", 16},
		{"1 == 1", 1},
		{"1 != 1", 0},
		{"3 < 4", 1},
		{"4 <= 4", 1},
		{"5 > 4", 1},
		{"4 >= 5", 0},
		{"1 && 0", 0},
		{"1 || 0", 1},
		{"5 % 2", 1},
	}
	for _, c := range cases {
		got, err := eval(c.expr)
		if err != nil {
			t.Errorf("eval(%q) returned error: %v", c.expr, err)
			continue
		}
		if got != c.want {
			t.Errorf("eval(%q) = %d, want %d", c.expr, got, c.want)
		}
	}
}

func TestEvalMissingCloseParen(t *testing.T) {
	if _, err := eval("(1 + 2"); err == nil {
		t.Error("expected an error for unbalanced parentheses")
	}
}

func TestEvalTrailingGarbage(t *testing.T) {
	if _, err := eval("1 2"); err == nil {
		t.Error("expected an error for trailing unconsumed tokens")
	}
}
