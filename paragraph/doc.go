/*
Package paragraph lays out a single paragraph of styled, bidirectional text.

Layout happens in two steps. Prepare does all the width-independent work:
it resolves styles, runs the bidi algorithm, finds break opportunities and
measures every character. The result, Intrinsics, knows the minimum and maximum
intrinsic widths of the paragraph and may be laid out repeatedly for different
constraints:

	in, err := paragraph.Prepare(text, base, pstyle, provider)
	...
	layout, err := in.Layout(paragraph.Constraints{Width: 300}, paragraph.MaxLines(3))

A Layout holds lines, their vertical metrics and the horizontal position of
every character. It answers geometry queries: hit-testing, caret positions,
selection paths and word boundaries. Coordinates have their origin at the
top left corner of the paragraph, with y growing downwards. Text positions
are UTF-16 code units.

Layouts are immutable and may be queried concurrently.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package paragraph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
