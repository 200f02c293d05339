/*
Package textlayout lays out paragraphs of styled, possibly bidirectional text.

Textlayout

Given a run of styled text and a width constraint, the packages of this module
produce a concrete visual layout: line breaks, per-character geometry,
baselines, intrinsic widths, and answers to cursor and selection queries.
The pipeline is

	text + styles + constraints
	   → styled.Resolve      (resolved style timeline)
	   → bidirun.Segment     (directional runs, UAX#9)
	   → linebreak.Break     (greedy line fill, UAX#14)
	   → paragraph.Layout    (lines, metrics, alignment, queries)
	   → multipara.New       (paragraphs stacked into one coordinate space)
	   → geometry.Queries    (uniform query surface)

Fonts are not handled by this module. Advance widths and line metrics are
requested from a metrics.Provider, which may be backed by a real shaping
engine or by fixed-width metrics for terminals and tests.

Text positions

All text positions are indices of UTF-16 code units, the way UI toolkits
usually count them. Type UnitIndex converts between Go strings, runes and
UTF-16 positions. Ranges never split a surrogate pair, and line breaks never
split a grapheme cluster.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package textlayout

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// LayoutError is an error type for the textlayout module.
type LayoutError string

func (e LayoutError) Error() string {
	return string(e)
}

// ErrInvalidArgument is flagged whenever function parameters are invalid,
// e.g. a non-positive width or a missing direction policy.
const ErrInvalidArgument = LayoutError("invalid argument")

// ErrIndexOutOfRange is flagged whenever a text position is outside the
// range permitted for a query.
const ErrIndexOutOfRange = LayoutError("index out of range")

// ErrInvalidRange is flagged for style ranges which are inverted, exceed
// the text or split a surrogate pair.
const ErrInvalidRange = LayoutError("invalid range")

// ErrTextCompleted signals that a text builder has already completed a text and
// it's illegal to further add fragments.
const ErrTextCompleted = LayoutError("forbidden to add fragments; text has been completed")
