/*
Package styled makes styled text.

An AnnotatedText is an immutable string together with two lists of
range-tagged styles: character styles (TextStyle) and paragraph styles
(ParagraphStyle). Ranges count UTF-16 code units.

Character styles may overlap. Function Resolve flattens a base style and a
list of overrides into a Timeline, holding exactly one resolved style for
every text position. Later overrides win over earlier ones, attribute by
attribute.

Paragraph styles must not overlap. Text not covered by any paragraph style
is assigned to implicit default paragraphs, so that the paragraphs of a text
always form a partition of it.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package styled

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
