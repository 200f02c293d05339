/*
Package geometry is a uniform query facade for text layouts.

Embedding code which paints text, moves carets or highlights selections
should not need to care whether a text consists of one paragraph or of many.
Both paragraph.Layout and multipara.Layout implement Queries, and Of wraps
either of them into a Surface.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package geometry

import (
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/bidirun"
	"github.com/npillmayer/textlayout/multipara"
	"github.com/npillmayer/textlayout/paragraph"
)

// Queries is the query surface of a finished layout. Text positions are
// UTF-16 offsets, lines are zero-based, coordinates are relative to the
// top-left corner of the layout.
type Queries interface {
	Len() int
	Width() float64
	Height() float64
	DidExceedMaxLines() bool
	FirstBaseline() float64
	LastBaseline() float64
	//
	OffsetForPosition(x, y float64) int
	BoundingBox(i int) (textlayout.Rect, error)
	CursorRect(i int) (textlayout.Rect, error)
	PrimaryHorizontal(i int) (float64, error)
	SecondaryHorizontal(i int) (float64, error)
	LineForOffset(i int) (int, error)
	PathForRange(start, end int) ([]textlayout.Rect, error)
	WordBoundary(i int) (textlayout.Range, error)
	ParagraphDirection(i int) (bidirun.Direction, error)
	BidiRunDirection(i int) (bidirun.Direction, error)
	//
	LineCount() int
	LineForVerticalPosition(y float64) int
	LineStart(line int) (int, error)
	LineEnd(line int, visibleEnd bool) (int, error)
	LineTop(line int) (float64, error)
	LineBottom(line int) (float64, error)
	LineBaseline(line int) (float64, error)
	LineLeft(line int) (float64, error)
	LineRight(line int) (float64, error)
	LineWidth(line int) (float64, error)
	LineHeight(line int) (float64, error)
	IsLineEllipsized(line int) (bool, error)
	Segments(line int) ([]paragraph.Segment, error)
}

var _ Queries = (*paragraph.Layout)(nil)
var _ Queries = (*multipara.Layout)(nil)

// Surface forwards every query to a layout.
type Surface struct {
	q Queries
}

// Of wraps a layout.
func Of(q Queries) *Surface {
	return &Surface{q: q}
}

func (s *Surface) Len() int                { return s.q.Len() }
func (s *Surface) Width() float64          { return s.q.Width() }
func (s *Surface) Height() float64         { return s.q.Height() }
func (s *Surface) DidExceedMaxLines() bool { return s.q.DidExceedMaxLines() }
func (s *Surface) FirstBaseline() float64  { return s.q.FirstBaseline() }
func (s *Surface) LastBaseline() float64   { return s.q.LastBaseline() }

func (s *Surface) OffsetForPosition(x, y float64) int {
	return s.q.OffsetForPosition(x, y)
}

func (s *Surface) BoundingBox(i int) (textlayout.Rect, error) {
	return s.q.BoundingBox(i)
}

func (s *Surface) CursorRect(i int) (textlayout.Rect, error) {
	return s.q.CursorRect(i)
}

func (s *Surface) PrimaryHorizontal(i int) (float64, error) {
	return s.q.PrimaryHorizontal(i)
}

func (s *Surface) SecondaryHorizontal(i int) (float64, error) {
	return s.q.SecondaryHorizontal(i)
}

func (s *Surface) LineForOffset(i int) (int, error) {
	return s.q.LineForOffset(i)
}

func (s *Surface) PathForRange(start, end int) ([]textlayout.Rect, error) {
	return s.q.PathForRange(start, end)
}

func (s *Surface) WordBoundary(i int) (textlayout.Range, error) {
	return s.q.WordBoundary(i)
}

func (s *Surface) ParagraphDirection(i int) (bidirun.Direction, error) {
	return s.q.ParagraphDirection(i)
}

func (s *Surface) BidiRunDirection(i int) (bidirun.Direction, error) {
	return s.q.BidiRunDirection(i)
}

func (s *Surface) LineCount() int { return s.q.LineCount() }

func (s *Surface) LineForVerticalPosition(y float64) int {
	return s.q.LineForVerticalPosition(y)
}

func (s *Surface) LineStart(line int) (int, error) { return s.q.LineStart(line) }

func (s *Surface) LineEnd(line int, visibleEnd bool) (int, error) {
	return s.q.LineEnd(line, visibleEnd)
}

func (s *Surface) LineTop(line int) (float64, error)      { return s.q.LineTop(line) }
func (s *Surface) LineBottom(line int) (float64, error)   { return s.q.LineBottom(line) }
func (s *Surface) LineBaseline(line int) (float64, error) { return s.q.LineBaseline(line) }
func (s *Surface) LineLeft(line int) (float64, error)     { return s.q.LineLeft(line) }
func (s *Surface) LineRight(line int) (float64, error)    { return s.q.LineRight(line) }
func (s *Surface) LineWidth(line int) (float64, error)    { return s.q.LineWidth(line) }
func (s *Surface) LineHeight(line int) (float64, error)   { return s.q.LineHeight(line) }
func (s *Surface) IsLineEllipsized(line int) (bool, error) {
	return s.q.IsLineEllipsized(line)
}

func (s *Surface) Segments(line int) ([]paragraph.Segment, error) {
	return s.q.Segments(line)
}

var _ Queries = (*Surface)(nil)
