// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gaspp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/gaspp/arch"
)

// sectionStack tracks section-directive lines so that ".previous" can
// resolve to the second-from-top entry. Pushing that resolved entry onto
// the stack is what makes a second ".previous" toggle back.
type sectionStack struct {
	entries []string
}

func (s *sectionStack) push(line string) {
	s.entries = append(s.entries, line)
}

func (s *sectionStack) previous(line string) (string, error) {
	if len(s.entries) < 2 {
		return "", unsupported(line, ".previous used without two prior section directives")
	}
	prev := s.entries[len(s.entries)-2]
	s.push(prev)
	return prev, nil
}

var sectionDirectiveRe = regexp.MustCompile(`^\s*\.(section|text|const_data)\b`)

func isSectionDirective(line string) bool {
	return sectionDirectiveRe.MatchString(line)
}

// literalPool interns the "=expr" operand of ARM "ldr Rn,=expr" into a
// shared label, so that repeated loads of the same expression collapse
// to a single pooled word. The counter never resets so labels stay
// unique across every drain.
type literalPool struct {
	labelFor map[string]string
	order    []string
	counter  int
}

func newLiteralPool() *literalPool {
	return &literalPool{labelFor: make(map[string]string)}
}

func (lp *literalPool) intern(expr string) string {
	if label, ok := lp.labelFor[expr]; ok {
		return label
	}
	label := fmt.Sprintf(".Literal_%d", lp.counter)
	lp.counter++
	lp.labelFor[expr] = label
	lp.order = append(lp.order, expr)
	return label
}

// drain emits "LABEL:\n\t.word EXPR\n" for every pending entry and
// clears the pool.
func (lp *literalPool) drain() []string {
	var lines []string
	for _, expr := range lp.order {
		label := lp.labelFor[expr]
		lines = append(lines, label+":", "\t.word "+expr)
	}
	lp.order = nil
	lp.labelFor = make(map[string]string)
	return lines
}

func (lp *literalPool) isEmpty() bool {
	return len(lp.order) == 0
}

var armLdrLiteralRe = regexp.MustCompile(`^(\s*\S*\s*ldr\s+\S+\s*,\s*)=(.+)$`)

// rewriteARMLiteralLoad rewrites "PREFIX ldr REGS,=EXPR" to
// "PREFIX ldr REGS,LABEL", interning EXPR into the literal pool.
func (p *Pipeline) rewriteARMLiteralLoad(line string) string {
	m := armLdrLiteralRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	label := p.literals.intern(strings.TrimSpace(m[2]))
	return m[1] + label
}

var ppcRelocRe = regexp.MustCompile(`([\w.$]+)@(l|ha)\b`)

// rewritePPCRelocations rewrites PowerPC "X@l"/"X@ha" relocation
// suffixes to the "lo16(X)"/"ha16(X)" forms Apple's assembler expects.
func rewritePPCRelocations(line string) string {
	return ppcRelocRe.ReplaceAllStringFunc(line, func(m string) string {
		sub := ppcRelocRe.FindStringSubmatch(m)
		sym, kind := sub[1], sub[2]
		if kind == "l" {
			return "lo16(" + sym + ")"
		}
		return "ha16(" + sym + ")"
	})
}

var (
	mfsprRe = regexp.MustCompile(`^(\s*)mf(\w+)(\s+)(\S.*)$`)
	mtsprRe = regexp.MustCompile(`^(\s*)mt(\w+)(\s+)(\S.*)$`)
)

// rewritePPCSPR rewrites the symbolic mfNAME/mtNAME forms of the known
// special-purpose registers into numeric mfspr/mtspr instructions. The
// operand order differs: "mtspr NUM, REG" but "mfspr REG, NUM".
func rewritePPCSPR(line string) string {
	if m := mfsprRe.FindStringSubmatch(line); m != nil {
		if num, ok := arch.SPR(m[2]); ok {
			return fmt.Sprintf("%smfspr%s%s, %d", m[1], m[3], m[4], num)
		}
	}
	if m := mtsprRe.FindStringSubmatch(line); m != nil {
		if num, ok := arch.SPR(m[2]); ok {
			return fmt.Sprintf("%smtspr%s%d, %s", m[1], m[3], num, m[4])
		}
	}
	return line
}

var unreqRe = regexp.MustCompile(`^(\s*\.unreq\s+)(\S+)\s*$`)

// duplicateUnreq implements the ARM legacy-gas ".unreq" quirk: ".req"
// registers a name in both upper and lower case, but ".unreq" removes
// only the case it's given, so this emits both forms.
func duplicateUnreq(line string) []string {
	m := unreqRe.FindStringSubmatch(line)
	if m == nil {
		return []string{line}
	}
	prefix, reg := m[1], m[2]
	lower, upper := strings.ToLower(reg), strings.ToUpper(reg)
	if lower == upper {
		return []string{line}
	}
	return []string{prefix + lower, prefix + upper}
}

// rewriteLine applies Pass 2's per-line, order-sensitive actions
// (everything except repetition and section tracking, which the caller
// folds in because they can consume or multiply lines).
func (p *Pipeline) rewriteLine(line string) []string {
	if p.arch == arch.ARM {
		line = p.rewriteARMLiteralLoad(line)
	}
	if p.arch == arch.PowerPC {
		line = rewritePPCRelocations(line)
		line = rewritePPCSPR(line)
	}
	if p.arch == arch.ARM && p.fixUnreq {
		return duplicateUnreq(line)
	}
	return []string{line}
}
