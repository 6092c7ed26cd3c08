// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings holds the console's interactive configuration: everything a
// user can inspect or change with "set" (with no arguments it displays
// them) without restarting the process. Changing Arch or FixUnreq takes
// effect on the next "process" command, since both are baked into the
// Pipeline at construction time and setting either rebuilds it.
type settings struct {
	Arch     string `doc:"target architecture: arm or powerpc"`
	FixUnreq bool   `doc:"duplicate .unreq across register case"`
	Trace    bool   `doc:"show each pass's effect on every line"`
}

func newSettings() *settings {
	return &settings{
		Arch:     "arm",
		FixUnreq: true,
		Trace:    false,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var rendered string
		switch f.kind {
		case reflect.String:
			rendered = fmt.Sprintf("    %-10s %q", f.name, v.String())
		case reflect.Bool:
			rendered = fmt.Sprintf("    %-10s %v", f.name, v.Bool())
		default:
			rendered = fmt.Sprintf("    %-10s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-32s (%s)\n", rendered, f.doc)
	}
}

func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.String && vIn.Kind() != reflect.String) ||
		(f.kind != reflect.String && vIn.Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return errors.New("invalid type")
	}

	reflect.ValueOf(s).Elem().Field(f.index).Set(vIn.Convert(f.typ))
	return nil
}
