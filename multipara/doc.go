/*
Package multipara lays out text consisting of several paragraphs.

The text is split at its paragraph styles, every paragraph is laid out by
package paragraph at a common width, and the results are stacked vertically
without any gap. The resulting Layout answers the same queries as a
paragraph.Layout, in terms of global text positions, global line indices and
y positions relative to the top of the first paragraph.

Layout of large texts may be spread over several goroutines and may be
cancelled between paragraphs through a context.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package multipara

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
