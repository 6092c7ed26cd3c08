// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gaspp

import "strings"

// neutralized lists the directives the downstream assembler rejects
// outright. Each is commented out rather than dropped, so a reader of
// the emitted source can still see it was there.
//
// .ltorg is deliberately excluded here even though section 6 of the
// preprocessor's directive surface lists it among the commented-out
// set: by the time the repetition/rewriter pass (Pass 2) sees a line,
// it needs to match ".ltorg" verbatim in order to drain the pending
// literal pool in its place. Pass 2 replaces the directive with the
// drained pool entirely (or nothing, if the pool is empty) rather than
// forwarding a commented-out husk, which is what section 6's "(after
// expansion)" qualifier describes.
var neutralized = []string{
	".type",
	".func",
	".endfunc",
	".size",
	".fpu",
	".arch",
	".object_arch",
}

// aliasRewrite renames a directive while preserving the remainder of the
// line untouched.
type aliasRewrite struct {
	from, to string
}

var aliasRewrites = []aliasRewrite{
	{".global", ".globl"},
	{".int", ".long"},
	{".float", ".single"},
}

// normalizeLine implements Pass 1a. It strips comments, neutralizes
// directives the target assembler doesn't understand, applies the
// fixed alias rewrites, and rejects .section directives that aren't
// already in Mach-O two-part form.
func (p *Pipeline) normalizeLine(line string) (string, error) {
	line = stripComment(line, p.commentChar)

	indent, trimmed := splitIndent(line)

	if rewritten, ok := rewriteRodataSection(indent, trimmed); ok {
		return rewritten, nil
	}

	for _, a := range aliasRewrites {
		if hasWordPrefix(trimmed, a.from) {
			trimmed = a.to + trimmed[len(a.from):]
			line = indent + trimmed
			break
		}
	}

	if hasWordPrefix(trimmed, ".section") {
		if err := checkMachOSection(line, trimmed); err != nil {
			return "", err
		}
	}

	for _, d := range neutralized {
		if hasWordPrefix(trimmed, d) {
			return indent + string(p.commentChar) + trimmed, nil
		}
	}

	return line, nil
}

// stripComment removes everything from the first occurrence of the
// architecture's comment character to end of line.
func stripComment(line string, commentChar byte) string {
	l := newLx(line)
	kept, _ := l.consumeUntilChar(commentChar)
	return kept.str
}

// splitIndent separates a line's leading whitespace from the rest.
func splitIndent(line string) (indent, rest string) {
	l := newLx(line)
	ws, remain := l.consumeWhile(whitespace)
	return ws.str, remain.str
}

// rewriteRodataSection replaces a ".section" directive that mentions
// "rodata" anywhere in its operand with the Mach-O pseudo-op
// ".const_data", dropping the rest of the line.
func rewriteRodataSection(indent, trimmed string) (string, bool) {
	if !hasWordPrefix(trimmed, ".section") {
		return "", false
	}
	if !strings.Contains(trimmed, "rodata") {
		return "", false
	}
	return indent + ".const_data", true
}

// checkMachOSection rejects a .section directive whose name isn't the
// Mach-O two-part "__SEGMENT,__section" form.
func checkMachOSection(line, trimmed string) error {
	l := newLx(trimmed).consume(len(".section")).consumeWhitespace()
	name, _ := l.consumeUntil(whitespace)
	if !strings.Contains(name.str, ",") {
		return unsupported(line, "section name %q is not in Mach-O two-part form", name.str)
	}
	return nil
}
