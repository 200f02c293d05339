/*
Package textfile loads UTF-8 text files as annotated text.

Paragraphs of a text file are separated by blank lines. Lines within a
paragraph are joined with a single space, leaving line breaking to the
layout. Clients interested in loading progress may subscribe to a
broadcaster, which receives a LoadEvent for every paragraph loaded.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
