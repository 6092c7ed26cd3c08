// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gaspp implements the three-pass transform that turns
// GNU-assembler source into the dialect Apple's legacy assembler
// accepts: a normalizer, a recursive macro/repetition/conditional
// expansion engine, and a handful of architecture-specific rewrites.
// It has no notion of an outer compiler driver or subprocess; it reads
// a stream of already-preprocessed lines and writes a stream of lines.
package gaspp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/beevik/gaspp/arch"
	"github.com/beevik/gaspp/trace"
)

// deque is the work queue Pass 1 drains lines from. Macro expansion
// prepends its substituted body lines to the front, so the expanded
// lines are always processed before the lines that follow the
// invocation and were already queued — the mechanism that makes expansion
// recursive without an explicit call stack.
type deque struct {
	items []string
}

func newDeque(lines []string) *deque {
	d := &deque{items: make([]string, len(lines))}
	copy(d.items, lines)
	return d
}

func (d *deque) empty() bool {
	return len(d.items) == 0
}

func (d *deque) popFront() string {
	x := d.items[0]
	d.items = d.items[1:]
	return x
}

func (d *deque) pushFront(lines []string) {
	if len(lines) == 0 {
		return
	}
	merged := make([]string, 0, len(lines)+len(d.items))
	merged = append(merged, lines...)
	merged = append(merged, d.items...)
	d.items = merged
}

// Option configures a Pipeline at construction time.
type Option func(*Pipeline)

// WithFixUnreq enables or disables the ARM legacy-gas ".unreq"
// uppercase-duplication quirk. It defaults to enabled, matching the
// driver-surface default on Apple hosts.
func WithFixUnreq(enabled bool) Option {
	return func(p *Pipeline) { p.fixUnreq = enabled }
}

// WithVerbose turns on pass-by-pass logging to the Pipeline's output
// writer.
func WithVerbose(w io.Writer) Option {
	return func(p *Pipeline) {
		p.verbose = true
		p.out = w
	}
}

// WithTrace attaches a trace.Recorder that every pass reports its
// per-line work to. Passing nil (the default) disables recording
// entirely, so Process pays nothing for it when -trace isn't requested.
func WithTrace(r *trace.Recorder) Option {
	return func(p *Pipeline) { p.rec = r }
}

// Pipeline owns every piece of state shared across the three passes: the
// macro table, the section stack, the literal pool, the conditional
// stack, and the (at most one) active repetition context. It processes
// a single input stream from start to finish; create a new Pipeline for
// each file.
type Pipeline struct {
	arch        arch.Tag
	commentChar byte
	fixUnreq    bool

	out     io.Writer
	verbose bool

	macros       map[string]*macro
	macroLevel   int
	currentMacro *macro
	pass1Out     []string

	sections *sectionStack
	literals *literalPool
	rep      *repContext
	conds    *condStack

	rec *trace.Recorder
}

// trace records a pass's transformation of before into after, a no-op
// when no Recorder is attached.
func (p *Pipeline) trace(pass, before string, after ...string) {
	if p.rec != nil {
		p.rec.Record(pass, before, after)
	}
}

// NewPipeline creates a Pipeline targeting the given architecture.
// fix-unreq defaults to enabled, matching the driver default on Apple
// hosts; pass WithFixUnreq(false) to disable it.
func NewPipeline(tag arch.Tag, opts ...Option) *Pipeline {
	p := &Pipeline{
		arch:        tag,
		commentChar: tag.CommentChar(),
		fixUnreq:    true,
		out:         os.Stderr,
		macros:      make(map[string]*macro),
		sections:    &sectionStack{},
		literals:    newLiteralPool(),
		conds:       &condStack{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process reads gas source from r, runs it through all three passes,
// and writes the resulting Apple-assembler-compatible source to w,
// followed by a final ".text" and any literal-pool entries that were
// never explicitly drained by a ".ltorg".
func (p *Pipeline) Process(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return downstream("reading input: %v", err)
	}

	pass1, err := p.runPass1(lines)
	if err != nil {
		return err
	}

	pass2, err := p.runPass2(pass1)
	if err != nil {
		return err
	}

	pass3, err := p.runPass3(pass2)
	if err != nil {
		return err
	}

	pass3 = append(pass3, p.Flush()...)

	for _, line := range pass3 {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return downstream("writing output: %v", err)
		}
	}
	return nil
}

// runPass1 drives the normalizer (1a) and macro engine (1b) together
// over a work queue, since macro expansion must feed its output back
// through the same normalize-then-dispatch loop.
func (p *Pipeline) runPass1(lines []string) ([]string, error) {
	p.pass1Out = nil
	q := newDeque(lines)

	for !q.empty() {
		raw := q.popFront()

		norm, err := p.normalizeLine(raw)
		if err != nil {
			return nil, err
		}
		if norm != raw {
			p.trace("normalize", raw, norm)
		}

		trimmed := trimForDirectiveMatch(norm)
		switch {
		case hasWordPrefix(trimmed, ".macro"):
			p.logLine(norm, "macro_def")
			if err := p.beginMacroDef(norm); err != nil {
				return nil, err
			}
		case hasWordPrefix(trimmed, ".endm"):
			p.logLine(norm, "macro_end")
			if err := p.endMacroDef(norm); err != nil {
				return nil, err
			}
		case p.macroLevel > 0:
			p.currentMacro.body = append(p.currentMacro.body, norm)
		default:
			if err := p.dispatchLine(q, norm); err != nil {
				return nil, err
			}
		}
	}

	if p.macroLevel != 0 {
		return nil, malformed("", "unterminated .macro: %d definition(s) still open", p.macroLevel)
	}

	return p.pass1Out, nil
}

func trimForDirectiveMatch(line string) string {
	_, trimmed := splitIndent(line)
	return trimmed
}

// Flush drains whatever remains in the literal pool after all three
// passes have run, emitting a leading ".text" the way the original
// tool guarantees a backing word for every otherwise-undrained
// "ldr …,=EXPR".
func (p *Pipeline) Flush() []string {
	if p.literals.isEmpty() {
		p.trace("flush", "", ".text")
		return []string{".text"}
	}
	drained := p.literals.drain()
	out := append([]string{".text"}, drained...)
	p.trace("flush", "", out...)
	return out
}

// PendingLiterals reports the expressions currently interned in the
// literal pool but not yet drained, in insertion order. It exists for
// introspection (the console package's "literals" command); it does
// not mutate the pool.
func (p *Pipeline) PendingLiterals() []string {
	return append([]string(nil), p.literals.order...)
}

// Sections reports the current section-directive stack, bottom to top.
func (p *Pipeline) Sections() []string {
	return append([]string(nil), p.sections.entries...)
}

// MacroNames reports the names of every currently defined macro.
func (p *Pipeline) MacroNames() []string {
	names := make([]string, 0, len(p.macros))
	for name := range p.macros {
		names = append(names, name)
	}
	return names
}

// Arch reports the architecture tag the Pipeline was constructed with.
func (p *Pipeline) Arch() arch.Tag {
	return p.arch
}

func (p *Pipeline) logf(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, format, args...)
}

// logLine writes a tagged detail alongside the source line it describes,
// in verbose mode only.
func (p *Pipeline) logLine(line, format string, args ...any) {
	if !p.verbose {
		return
	}
	detail := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.out, "%-20s | %s\n", detail, line)
}
