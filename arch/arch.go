// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arch holds the architecture-specific tables consulted by the
// gaspp rewriting passes: the comment character gas uses on each target,
// and the PowerPC symbolic special-purpose-register names that
// mfspr/mtspr rewriting recognizes.
package arch

import (
	"fmt"
	"strings"
)

// Tag selects the target instruction set architecture. It determines the
// comment character and which architecture-specific rewrites apply.
type Tag byte

const (
	// ARM selects the ARM rewrites: ldr Rn,=expr literal-pool rewriting
	// and (optionally) uppercase .unreq duplication.
	ARM Tag = iota

	// PowerPC selects the PowerPC rewrites: @l/@ha relocation suffixes
	// and mfspr/mtspr symbolic register forms.
	PowerPC
)

// String returns the canonical name of the architecture tag.
func (t Tag) String() string {
	switch t {
	case ARM:
		return "arm"
	case PowerPC:
		return "ppc"
	default:
		return fmt.Sprintf("Tag(%d)", byte(t))
	}
}

// Parse converts a driver-supplied architecture name ("arm" or "ppc",
// case-insensitively) into a Tag.
func Parse(name string) (Tag, error) {
	switch strings.ToLower(name) {
	case "arm":
		return ARM, nil
	case "ppc", "powerpc":
		return PowerPC, nil
	default:
		return 0, fmt.Errorf("unknown architecture %q", name)
	}
}

// CommentChar returns the character that begins a comment to end-of-line
// on this architecture: '@' on ARM, '#' on PowerPC.
func (t Tag) CommentChar() byte {
	if t == ARM {
		return '@'
	}
	return '#'
}

// sprTable maps a PowerPC symbolic SPR name (the suffix of mfNAME/mtNAME)
// to its numeric special-purpose-register index.
var sprTable = map[string]int{
	"ctr":    9,
	"vrsave": 256,
}

// SPR looks up the numeric index of a symbolic special-purpose-register
// name. ok is false if name isn't a known SPR.
func SPR(name string) (num int, ok bool) {
	num, ok = sprTable[name]
	return num, ok
}
