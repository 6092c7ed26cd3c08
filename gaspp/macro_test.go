// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gaspp

import (
	"testing"

	"github.com/beevik/gaspp/arch"
)

func TestLongestNameSubstitution(t *testing.T) {
	src := ".macro m a, aa\n\\aa \\a\n.endm\nm X, Y\n"
	checkProcess(t, arch.ARM, src, "Y X")
}

func TestVarargConcatenation(t *testing.T) {
	src := ".macro m x:vararg\n\\x\n.endm\nm 1, 2, 3\n"
	checkProcess(t, arch.ARM, src, "1, 2, 3")
}

func TestVarargConcatenationWithEmptyArgument(t *testing.T) {
	src := ".macro m x:vararg\n\\x\n.endm\nm 1,, 3\n"
	checkProcess(t, arch.ARM, src, "1, 3")
}

func TestDefaultParameter(t *testing.T) {
	src := ".macro m a=5\nmov r0, #\\a\n.endm\nm\n"
	checkProcess(t, arch.ARM, src, "mov r0, #5")
}

func TestNamedArgumentOverridesPositional(t *testing.T) {
	// last-write-wins: the named assignment for "a" is processed after
	// the positional assignment it shadows, so it wins.
	src := ".macro m a\nmov \\a\n.endm\nm 1, a=2\n"
	checkProcess(t, arch.ARM, src, "mov 2")
}

func TestMacroInvokingMacroRecursively(t *testing.T) {
	src := ".macro inner v\nmov r0, #\\v\n.endm\n" +
		".macro outer v\ninner \\v\n.endm\n" +
		"outer 7\n"
	checkProcess(t, arch.ARM, src, "mov r0, #7")
}

func TestMacroInvocationLabelPrecedesExpansion(t *testing.T) {
	src := ".macro m\nnop\n.endm\nloop: m\n"
	checkProcess(t, arch.ARM, src, "loop:", "nop")
}

func TestTooManyArgumentsToNonVarargMacro(t *testing.T) {
	checkProcessError(t, arch.ARM, ".macro m a\nmov \\a\n.endm\nm 1, 2\n", ErrMalformedInput)
}

func TestPurgemRemovesMacro(t *testing.T) {
	src := ".macro m\nnop\n.endm\n.purgem m\nm\n"
	out := process(t, arch.ARM, src)
	if !contains(out, "m") {
		t.Errorf("expected literal 'm' opcode to pass through after purge, got:\n%s", out)
	}
}

func contains(haystack, needle string) bool {
	for _, line := range splitLines(haystack) {
		if trimmedEquals(line, needle) {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func trimmedEquals(line, want string) bool {
	l := newLx(line).consumeWhitespace()
	return l.str == want
}
