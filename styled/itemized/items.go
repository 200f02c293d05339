/*
Package itemized splits a paragraph of styled text into items.

An item is a maximal range of text where both the resolved style and the
bidi embedding level are uniform. Items are the pieces of text handed to a
metrics provider for measurement, and the pieces a renderer outputs with a
single style.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package itemized

import (
	"fmt"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/bidirun"
	"github.com/npillmayer/textlayout/styled"
)

// Item is a range of text with uniform style and embedding level.
type Item struct {
	textlayout.Range
	Style      *styled.Resolved
	StyleIndex int   // index of Style in the timeline's style table
	Level      uint8 // bidi embedding level
}

// RTL is true for items with right-to-left direction.
func (it Item) RTL() bool {
	return it.Level&1 == 1
}

func (it Item) String() string {
	return fmt.Sprintf("%v@%d#%d", it.Range, it.Level, it.StyleIndex)
}

// Itemize splits a paragraph into items, in logical order. The timeline and the
// bidi paragraph must cover the same text.
func Itemize(tl *styled.Timeline, para *bidirun.Paragraph) []Item {
	n := tl.Len()
	if n == 0 {
		return nil
	}
	items := make([]Item, 0, tl.StyleCount()+len(para.Runs()))
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && tl.StyleIndex(i) == tl.StyleIndex(start) && para.LevelAt(i) == para.LevelAt(start) {
			continue
		}
		items = append(items, Item{
			Range:      textlayout.Range{Start: start, End: i},
			Style:      tl.At(start),
			StyleIndex: tl.StyleIndex(start),
			Level:      para.LevelAt(start),
		})
		start = i
	}
	return items
}

// Clip returns the items intersecting a range, cut to the range.
func Clip(items []Item, r textlayout.Range) []Item {
	var clipped []Item
	for _, it := range items {
		if it.End <= r.Start {
			continue
		}
		if it.Start >= r.End {
			break
		}
		it.Range = it.Range.Intersect(r)
		clipped = append(clipped, it)
	}
	return clipped
}

// Iterator iterates over items.
type Iterator struct {
	items []Item
	inx   int
}

// IterateText creates an iterator over the items of a paragraph.
func IterateText(tl *styled.Timeline, para *bidirun.Paragraph) *Iterator {
	return &Iterator{items: Itemize(tl, para)}
}

// IterateItems creates an iterator over a slice of items.
func IterateItems(items []Item) *Iterator {
	return &Iterator{items: items}
}

// Next moves the iterator to the next item.
func (it *Iterator) Next() bool {
	if it.inx >= len(it.items) {
		return false
	}
	it.inx++
	return true
}

// Item returns the item at the current iterator position.
func (it *Iterator) Item() Item {
	if it.inx == 0 {
		return Item{}
	}
	return it.items[it.inx-1]
}

// Style returns the style at the current iterator position, together with
// the text indices [from…to) of the item.
func (it *Iterator) Style() (*styled.Resolved, int, int) {
	if it.inx == 0 {
		return nil, 0, 0
	}
	item := it.items[it.inx-1]
	return item.Style, item.Start, item.End
}
