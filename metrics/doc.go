/*
Package metrics measures text for layout.

Layout needs two kinds of information from fonts: the advance width of every
character and the vertical metrics of a line (ascent, descent and line gap).
Interface Provider delivers both. Font file handling, shaping and rasterization
are hidden behind it.

This package has three providers:

  - Monospace: constant advances, useful for tests and fixed-pitch output
  - FaceProvider: golang.org/x/image font faces, from registered OpenType data
  - Cells: terminal character cells, respecting East Asian width

A HarfBuzz based provider lives in sub-package shaper.

All providers are safe for concurrent use.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}
