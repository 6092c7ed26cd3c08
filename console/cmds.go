// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/beevik/cmd"

	"github.com/beevik/gaspp/arch"
)

var commands *cmd.Tree

func init() {
	commands = cmd.NewTree("gaspp", []cmd.Command{
		{
			Name:     "help",
			Shortcut: "?",
			Brief:    "Display help for a command",
			HelpText: "help [<command>]",
			Data:     (*Console).cmdHelp,
		},
		{
			Name:  "process",
			Brief: "Run a block of source through the pipeline",
			Description: "Run one or more lines of gas source through the" +
				" three-pass pipeline and print what it emits. With no" +
				" arguments, reads lines until one containing only \".\".",
			HelpText: "process [<line>]",
			Data:     (*Console).cmdProcess,
		},
		{
			Name:        "macros",
			Brief:       "List currently defined macros",
			Description: "List the name of every macro defined so far this session.",
			HelpText:    "macros",
			Data:        (*Console).cmdMacros,
		},
		{
			Name:        "sections",
			Brief:       "Show the section-directive stack",
			Description: "Show every section directive seen so far, bottom to top.",
			HelpText:    "sections",
			Data:        (*Console).cmdSections,
		},
		{
			Name:  "literals",
			Brief: "Show pending literal-pool entries",
			Description: "Show the ARM literal-pool expressions interned by" +
				" \"ldr Rn,=expr\" but not yet drained by a .ltorg.",
			HelpText: "literals",
			Data:     (*Console).cmdLiterals,
		},
		{
			Name:  "set",
			Brief: "Set a configuration variable",
			Description: "Set the value of a configuration variable. Type the set" +
				" command without a variable name or value to display the current" +
				" values of all configuration variables.",
			HelpText: "set <var> <value>",
			Data:     (*Console).cmdSet,
		},
		{
			Name:  "arch",
			Brief: "Show or change the target architecture",
			Description: "With no argument, show the current architecture." +
				" With one, switch to it (arm or powerpc) and start a fresh" +
				" pipeline, discarding accumulated macros and section state.",
			HelpText: "arch [arm|powerpc]",
			Data:     (*Console).cmdArch,
		},
		{
			Name:     "quit",
			Brief:    "Quit the console",
			HelpText: "quit",
			Data:     (*Console).cmdQuit,
		},
	})
}

func (c *Console) cmdHelp(sel cmd.Selection) error {
	if len(sel.Args) == 0 {
		c.displayCommands(commands)
		return nil
	}
	s, err := commands.Lookup(strings.Join(sel.Args, " "))
	if err != nil {
		c.printf("%v\n", err)
		return nil
	}
	if s.Command.HelpText != "" {
		c.printf("Syntax: %s\n", s.Command.HelpText)
	}
	switch {
	case s.Command.Description != "":
		c.println(s.Command.Description)
	case s.Command.Brief != "":
		c.println(s.Command.Brief)
	}
	return nil
}

func (c *Console) displayCommands(tree *cmd.Tree) {
	c.printf("%s commands:\n", tree.Title)
	for _, cm := range tree.Commands {
		if cm.Brief != "" {
			c.printf("    %-12s  %s\n", cm.Name, cm.Brief)
		}
	}
}

func (c *Console) cmdProcess(sel cmd.Selection) error {
	var lines []string
	if len(sel.Args) > 0 {
		lines = []string{strings.Join(sel.Args, " ")}
	} else {
		lines = c.readBlock()
	}

	c.rec.Reset()
	var out bytes.Buffer
	err := c.pipeline.Process(strings.NewReader(strings.Join(lines, "\n")), &out)
	if err != nil {
		c.printf("ERROR: %v\n", err)
		return nil
	}

	if c.settings.Trace {
		c.rec.WriteTo(c.output)
	}
	c.output.Write(out.Bytes())
	c.flush()
	return nil
}

func (c *Console) cmdMacros(sel cmd.Selection) error {
	names := c.pipeline.MacroNames()
	if len(names) == 0 {
		c.println("No macros defined.")
		return nil
	}
	for _, name := range names {
		c.println("    " + name)
	}
	return nil
}

func (c *Console) cmdSections(sel cmd.Selection) error {
	stack := c.pipeline.Sections()
	if len(stack) == 0 {
		c.println("No section directives seen yet.")
		return nil
	}
	for _, s := range stack {
		c.println("    " + s)
	}
	return nil
}

func (c *Console) cmdLiterals(sel cmd.Selection) error {
	pending := c.pipeline.PendingLiterals()
	if len(pending) == 0 {
		c.println("Literal pool is empty.")
		return nil
	}
	for _, expr := range pending {
		c.println("    " + expr)
	}
	return nil
}

func (c *Console) cmdSet(sel cmd.Selection) error {
	switch len(sel.Args) {
	case 0:
		c.println("Variables:")
		c.settings.Display(c.output)

	case 1:
		c.displayHelpText(sel.Command)

	default:
		key, value := sel.Args[0], strings.Join(sel.Args[1:], " ")
		if c.settings.Kind(key) == reflect.Invalid {
			c.printf("Unknown variable %q.\n", key)
			return nil
		}

		var err error
		switch {
		case strings.EqualFold(key, "arch"):
			err = c.setArch(value)
		default:
			b, convErr := stringToBool(value)
			if convErr != nil {
				err = c.settings.Set(key, value)
			} else {
				err = c.settings.Set(key, b)
			}
			if f, findErr := settingsTree.FindValue(strings.ToLower(key)); err == nil && findErr == nil && f.name == "FixUnreq" {
				c.rebuildPipeline()
			}
		}
		if err != nil {
			c.printf("%v\n", err)
			return nil
		}
		c.printf("%s set to %s.\n", key, value)
	}
	return nil
}

func (c *Console) cmdArch(sel cmd.Selection) error {
	if len(sel.Args) == 0 {
		c.println(c.settings.Arch)
		return nil
	}
	if err := c.setArch(sel.Args[0]); err != nil {
		c.printf("%v\n", err)
		return nil
	}
	c.printf("Architecture set to %s; pipeline reset.\n", c.settings.Arch)
	return nil
}

func (c *Console) setArch(name string) error {
	tag, err := arch.Parse(name)
	if err != nil {
		return err
	}
	c.settings.Arch = tag.String()
	c.rebuildPipeline()
	return nil
}

func (c *Console) cmdQuit(sel cmd.Selection) error {
	return errQuit
}

func (c *Console) displayHelpText(cm *cmd.Command) {
	if cm.HelpText != "" {
		c.printf("Syntax: %s\n", cm.HelpText)
	} else {
		c.println("<no help text>")
	}
}
