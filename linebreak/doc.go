/*
Package linebreak breaks paragraphs of text into lines.

Breaking is done in two steps. Analyze finds the boundaries of a text which
are relevant for line breaking: grapheme clusters (UAX#29), words (UAX#29) and
line break opportunities (UAX#14). Break then fills lines greedily, given the
advance width of every text position and a width constraint.

Line breaking happens on the logical text; it is independent of the visual
order of bidirectional runs.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package linebreak

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
