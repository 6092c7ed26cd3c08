// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package console implements an interactive REPL for gaspp: a user can
// paste a line, a ".macro" definition, or a ".rept" block and see
// immediately what the pipeline would emit, without piping through a
// real assembler. There's no emulated machine to single-step here,
// only a Pipeline's accumulated state (macros, sections, pending
// literals) to inspect between commands.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/cmd"

	"github.com/beevik/gaspp/arch"
	"github.com/beevik/gaspp/gaspp"
	"github.com/beevik/gaspp/trace"
)

// Console holds one Pipeline for the lifetime of the session, so macro
// definitions, the section stack, and the literal pool accumulate
// across successive "process" commands the way they would across lines
// of a single real source file.
type Console struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool

	pipeline *gaspp.Pipeline
	rec      *trace.Recorder
	settings *settings
	lastCmd  *cmd.Selection
}

// New creates a Console targeting the given architecture.
func New(tag arch.Tag) *Console {
	c := &Console{
		rec:      trace.NewRecorder(),
		settings: newSettings(),
	}
	c.settings.Arch = tag.String()
	c.rebuildPipeline()
	return c
}

func (c *Console) rebuildPipeline() {
	tag, _ := arch.Parse(c.settings.Arch)
	opts := []gaspp.Option{gaspp.WithTrace(c.rec)}
	if !c.settings.FixUnreq {
		opts = append(opts, gaspp.WithFixUnreq(false))
	}
	c.pipeline = gaspp.NewPipeline(tag, opts...)
}

// Run reads console commands from r and writes results to w. If
// interactive is true, a prompt is displayed while the console waits
// for the next command.
func (c *Console) Run(r io.Reader, w io.Writer, interactive bool) {
	c.input = bufio.NewScanner(r)
	c.input.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	c.output = bufio.NewWriter(w)
	c.interactive = interactive

	for {
		c.prompt()

		line, err := c.getLine()
		if err != nil {
			break
		}

		var sel cmd.Selection
		switch {
		case line != "":
			sel, err = commands.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				c.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				c.println("Command is ambiguous.")
				continue
			case err != nil:
				c.printf("ERROR: %v\n", err)
				continue
			}
		case c.lastCmd != nil:
			sel = *c.lastCmd
		default:
			continue
		}

		if sel.Command == nil {
			continue
		}
		c.lastCmd = &sel

		handler := sel.Command.Data.(func(*Console, cmd.Selection) error)
		if err := handler(c, sel); err != nil {
			if err != errQuit {
				c.printf("%v\n", err)
			}
			break
		}
	}

	c.flush()
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.output, format, args...)
	c.flush()
}

func (c *Console) println(args ...any) {
	fmt.Fprintln(c.output, args...)
	c.flush()
}

func (c *Console) flush() {
	c.output.Flush()
}

func (c *Console) prompt() {
	if c.interactive {
		c.printf("gaspp> ")
	}
}

func (c *Console) getLine() (string, error) {
	if c.input.Scan() {
		return c.input.Text(), nil
	}
	if c.input.Err() != nil {
		return "", c.input.Err()
	}
	return "", io.EOF
}

// readBlock reads lines from the input until one consisting of a single
// "." (the paste-mode terminator), or EOF.
func (c *Console) readBlock() []string {
	var lines []string
	for {
		line, err := c.getLine()
		if err != nil || strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	return lines
}
