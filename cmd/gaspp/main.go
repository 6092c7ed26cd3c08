// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/beevik/gaspp/arch"
	"github.com/beevik/gaspp/console"
	"github.com/beevik/gaspp/gaspp"
	"github.com/beevik/gaspp/trace"
)

var (
	archName    string
	fixUnreq    bool
	output      string
	showTrace   bool
	interactive bool
)

func init() {
	flag.StringVar(&archName, "arch", "arm", "target architecture: arm or powerpc")
	flag.BoolVar(&fixUnreq, "fix-unreq", true, "duplicate .unreq across register case (ARM only)")
	flag.StringVar(&output, "o", "", "output file (default stdout)")
	flag.BoolVar(&showTrace, "trace", false, "interleave pass-boundary annotations on stderr")
	flag.BoolVar(&interactive, "i", false, "start the interactive console")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: gaspp [-arch arm|powerpc] [-fix-unreq] [-o file] [-trace] [file ...]\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	tag, err := arch.Parse(archName)
	if err != nil {
		exitOnError(err)
	}

	args := flag.Args()

	if interactive || (len(args) == 0 && term.IsTerminal(int(os.Stdin.Fd()))) {
		c := console.New(tag)
		c.Run(os.Stdin, os.Stdout, true)
		return
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			exitOnError(err)
		}
		defer f.Close()
		out = f
	}

	opts := []gaspp.Option{gaspp.WithFixUnreq(fixUnreq)}
	var rec *trace.Recorder
	if showTrace {
		rec = trace.NewRecorder()
		opts = append(opts, gaspp.WithTrace(rec))
	}

	in := os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			exitOnError(err)
		}
		defer f.Close()
		in = f
	}

	p := gaspp.NewPipeline(tag, opts...)
	err = p.Process(in, out)
	if rec != nil {
		rec.WriteTo(os.Stderr)
	}
	if err != nil {
		exitOnError(err)
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
