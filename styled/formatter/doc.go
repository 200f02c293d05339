/*
Package formatter outputs laid-out text on devices with fixed-width fonts,
and as simple HTML. Think of it in terms of `fmt.Println` for styled,
bi-directional text.

Output of styled text differs in many aspects from simple string output.
Not only do we need an output device which is capable of displaying text
styles, but we need to consider line-breaking and the handling of
bi-directional (Bidi) text as well. Formatting delegates all of this to
package multipara, measuring text in terms of character cells (see
metrics.Cells). What remains for a formatter is to translate the segments
of every line into device specific output.

	text, _ := inline.TextFromHTML(strings.NewReader(
	    "<p>The <b>quick</b> brown fox jumps over the כלב עצלן!</p>"))
	console := formatter.NewConsoleFixedWidthFormat(nil, nil)
	console.Print(text, nil)

Terminals have their own kinds of challenges with bidi, see
https://terminal-wg.pages.freedesktop.org/bidi/bidi-intro/why-terminals-are-special.html.
As long as there is no widely accepted standard for Bidi-handling in
terminals, formats declare whether they need right-to-left text reordered
for them (see ReorderFlag).

# Status

API not stable.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package formatter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
