/*
Package bidirun segments a paragraph of text into directional runs.

Segment applies the Unicode Bidirectional Algorithm (UAX#9) to a paragraph,
assigning an embedding level to every text position. Maximal ranges of equal
level form runs, kept in logical order. Reorder computes the visual order of
the runs for a single line of the paragraph, applying rules L1 and L2 of UAX#9.

Hard line separators (LF, CR, CRLF, NEL, LS, PS) end a run; the separator
belongs to the run it terminates and carries the paragraph level. Under
DirectionAuto every line block between hard separators determines its own
base direction, the way text editors treat newline-separated blocks.

Segmentation never fails. Unusual input results in a direction assignment
the client may consider surprising, but never in an error.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package bidirun

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
