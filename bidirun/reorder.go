package bidirun

import (
	"slices"

	"github.com/npillmayer/textlayout"
	"golang.org/x/text/unicode/bidi"
)

// Reorder returns the runs of a single line of the paragraph in visual order,
// i.e. from left to right. The line is given as a range of text positions and
// must not cross a hard line separator other than at its end.
//
// Runs are clipped to the line. Rule L1 of UAX#9 resets trailing whitespace,
// and whitespace in front of segment separators, to the paragraph level;
// therefore the levels of a line's runs may differ from those reported by Runs.
// Rule L2 reverses any contiguous sequence of runs at a level of k or higher,
// from the highest level down to the lowest odd level.
func (p *Paragraph) Reorder(line textlayout.Range) []Run {
	line = line.Intersect(textlayout.Range{Start: 0, End: len(p.levels)})
	if line.IsEmpty() {
		return nil
	}
	base := p.LineDirection(line.Start).Level()
	levels := slices.Clone(p.levels[line.Start:line.End])
	classes := p.classes[line.Start:line.End]
	trailing := true
	for i := len(levels) - 1; i >= 0; i-- {
		switch c := classes[i]; {
		case c == bidi.S || c == bidi.B:
			levels[i] = base
			trailing = true
		case trailing && isL1Whitespace(c):
			levels[i] = base
		default:
			trailing = false
		}
	}
	visual := reorderRuns(collapse(levels, line.Start))
	tracer().Debugf("bidi: line %v has visual runs %v", line, visual)
	return visual
}

func isL1Whitespace(c bidi.Class) bool {
	return c == bidi.WS || c == bidi.BN || isExplicit(c)
}

// reorderRuns applies rule L2 to runs given in logical order and returns a
// reordered copy, with field Visual set.
func reorderRuns(runs []Run) []Run {
	var hi uint8
	lo := uint8(255)
	for _, r := range runs {
		hi = max(hi, r.Level)
		if r.Level&1 == 1 {
			lo = min(lo, r.Level)
		}
	}
	visual := slices.Clone(runs)
	for lvl := hi; lvl >= lo && lvl > 0; lvl-- {
		for i := 0; i < len(visual); {
			if visual[i].Level < lvl {
				i++
				continue
			}
			j := i
			for j < len(visual) && visual[j].Level >= lvl {
				j++
			}
			slices.Reverse(visual[i:j])
			i = j
		}
	}
	for i := range visual {
		visual[i].Visual = i
	}
	return visual
}
