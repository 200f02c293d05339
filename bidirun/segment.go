package bidirun

import (
	"fmt"
	"slices"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/styled"
	"golang.org/x/text/unicode/bidi"
)

// Direction is the visual direction of a run of text.
type Direction uint8

// Directions.
const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "RTL"
	}
	return "LTR"
}

// Level returns the paragraph embedding level for a base direction d.
func (d Direction) Level() uint8 {
	return uint8(d)
}

// Run is a maximal range of text positions sharing one embedding level.
// Odd levels are right-to-left.
type Run struct {
	textlayout.Range
	Level  uint8 // UAX#9 embedding level
	Visual int   // position of the run in visual order
}

// Direction returns the visual direction of the run.
func (r Run) Direction() Direction {
	return Direction(r.Level & 1)
}

func (r Run) String() string {
	return fmt.Sprintf("%v%s@%d", r.Range, r.Direction(), r.Level)
}

// block is a range of text between hard line separators, including the
// terminating separator. Blocks are the unit of direction resolution.
type block struct {
	textlayout.Range
	dir Direction
}

// Paragraph holds the result of bidi segmentation of one paragraph of text.
// It is immutable.
type Paragraph struct {
	dir     Direction
	levels  []uint8      // one level per UTF-16 code unit
	classes []bidi.Class // one bidi class per UTF-16 code unit
	blocks  []block
	runs    []Run // in logical order
}

// Segment runs the Unicode Bidi Algorithm over a paragraph of text.
//
// With DirectionAuto the overall direction is taken from the first strong
// character of the text, defaulting to left-to-right. DirectionUnset is treated
// like DirectionAuto; rejecting an unset direction is the task of the caller.
//
// Segment never fails.
func Segment(ix *textlayout.UnitIndex, policy styled.DirectionPolicy) *Paragraph {
	runes := ix.Runes()
	rclass := make([]bidi.Class, len(runes))
	for k, r := range runes {
		props, _ := bidi.LookupRune(r)
		rclass[k] = props.Class()
	}
	p := &Paragraph{
		levels:  make([]uint8, ix.Len()),
		classes: make([]bidi.Class, ix.Len()),
	}
	for i := range p.classes {
		p.classes[i] = rclass[ix.RuneIndex(i)]
	}
	switch policy {
	case styled.DirectionLTR:
		p.dir = LeftToRight
	case styled.DirectionRTL:
		p.dir = RightToLeft
	default:
		p.dir, _ = firstStrong(rclass)
	}
	start := 0 // start of current block, as rune index
	for k := 0; k < len(runes); k++ {
		if !isSeparator(runes[k], rclass[k]) {
			continue
		}
		content := k
		if runes[k] == '\r' && k+1 < len(runes) && runes[k+1] == '\n' {
			k++
		}
		p.addBlock(ix, rclass, start, content, k+1, policy)
		start = k + 1
	}
	if start < len(runes) || len(p.blocks) == 0 {
		p.addBlock(ix, rclass, start, len(runes), len(runes), policy)
	}
	p.runs = p.collectRuns()
	tracer().Debugf("bidi: %d positions, direction %s, %d runs", ix.Len(), p.dir, len(p.runs))
	return p
}

// addBlock resolves the levels for the runes in [start, end), where the
// runes from content on are hard line separators.
func (p *Paragraph) addBlock(ix *textlayout.UnitIndex, rclass []bidi.Class, start, content, end int,
	policy styled.DirectionPolicy) {
	//
	dir := p.dir
	if policy != styled.DirectionLTR && policy != styled.DirectionRTL {
		if d, ok := firstStrong(rclass[start:content]); ok {
			dir = d
		}
	}
	levels := resolveLevels(ix.Runes()[start:content], rclass[start:content], dir)
	for k := start; k < end; k++ {
		lvl := dir.Level()
		if k < content {
			lvl = levels[k-start]
		}
		for i := ix.UnitOffset(k); i < ix.UnitOffset(k+1); i++ {
			p.levels[i] = lvl
		}
	}
	p.blocks = append(p.blocks, block{
		Range: textlayout.Range{Start: ix.UnitOffset(start), End: ix.UnitOffset(end)},
		dir:   dir,
	})
}

// resolveLevels computes embedding levels for a block of text without hard line
// separators. Resolution of weak and neutral types is done by package
// golang.org/x/text/unicode/bidi, which reports runs of uniform direction.
// Levels are re-built from these directions: in a left-to-right block, RTL runs
// are at level 1 and numbers following RTL text at level 2; in a right-to-left
// block, LTR runs are at level 2.
func resolveLevels(runes []rune, classes []bidi.Class, dir Direction) (levels []uint8) {
	base := dir.Level()
	levels = make([]uint8, len(runes))
	for i := range levels {
		levels[i] = base
	}
	if len(runes) == 0 || (dir == LeftToRight && !needsResolution(classes)) {
		return levels
	}
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("bidi resolution failed, falling back to level %d: %v", base, r)
			for i := range levels {
				levels[i] = base
			}
		}
	}()
	var para bidi.Paragraph
	text, offset := string(runes), 0
	var opts []bidi.Option
	if dir == RightToLeft {
		opts = append(opts, bidi.DefaultDirection(bidi.RightToLeft))
	} else { // a leading LRM forces level 0 for the paragraph
		text, offset = "\u200e"+text, 1
	}
	if _, err := para.SetString(text, opts...); err != nil {
		tracer().Errorf("bidi: %v", err)
		return levels
	}
	order, err := para.Order()
	if err != nil {
		tracer().Errorf("bidi: %v", err)
		return levels
	}
	for i := 0; i < order.NumRuns(); i++ {
		run := order.Run(i)
		s, e := run.Pos()
		lvl := uint8(0)
		if run.Direction() == bidi.RightToLeft {
			lvl = 1
		} else if dir == RightToLeft {
			lvl = 2
		}
		for k := max(0, s-offset); k <= e-offset && k < len(levels); k++ {
			levels[k] = lvl
		}
	}
	if dir == LeftToRight && !hasExplicitFormatting(classes) {
		raiseNumbers(classes, levels)
	}
	return levels
}

// raiseNumbers lifts numbers in a left-to-right block to level 2, where
// weak type resolution (rules W1 to W7 of UAX#9) leaves them as European or
// Arabic numbers. Visually this keeps numbers inside right-to-left text in
// place while the surrounding text is reversed.
func raiseNumbers(classes []bidi.Class, levels []uint8) {
	t := slices.Clone(classes)
	prev := bidi.L
	for i, c := range t { // W1
		if c == bidi.NSM {
			t[i] = prev
		}
		prev = t[i]
	}
	strong := bidi.L
	for i, c := range t { // W2, W3
		switch c {
		case bidi.L, bidi.R:
			strong = c
		case bidi.AL:
			strong = c
			t[i] = bidi.R
		case bidi.EN:
			if strong == bidi.AL {
				t[i] = bidi.AN
			}
		}
	}
	for i := 1; i+1 < len(t); i++ { // W4
		if t[i] == bidi.ES && t[i-1] == bidi.EN && t[i+1] == bidi.EN {
			t[i] = bidi.EN
		} else if t[i] == bidi.CS && t[i-1] == t[i+1] && (t[i-1] == bidi.EN || t[i-1] == bidi.AN) {
			t[i] = t[i-1]
		}
	}
	for i := 0; i < len(t); i++ { // W5
		if t[i] != bidi.ET {
			continue
		}
		j := i
		for j < len(t) && t[j] == bidi.ET {
			j++
		}
		if (i > 0 && t[i-1] == bidi.EN) || (j < len(t) && t[j] == bidi.EN) {
			for k := i; k < j; k++ {
				t[k] = bidi.EN
			}
		}
		i = j
	}
	strong = bidi.L
	for i, c := range t { // W7
		switch c {
		case bidi.L, bidi.R:
			strong = c
		case bidi.EN:
			if strong == bidi.L {
				t[i] = bidi.L
			}
		}
	}
	for i, c := range t {
		if (c == bidi.EN || c == bidi.AN) && levels[i] == 0 {
			levels[i] = 2
		}
	}
}

// firstStrong finds the direction of the first strong character, skipping
// characters between isolate initiators and their matching PDI (rules P2, P3).
func firstStrong(classes []bidi.Class) (Direction, bool) {
	isolates := 0
	for _, c := range classes {
		switch c {
		case bidi.LRI, bidi.RLI, bidi.FSI:
			isolates++
		case bidi.PDI:
			if isolates > 0 {
				isolates--
			}
		case bidi.L:
			if isolates == 0 {
				return LeftToRight, true
			}
		case bidi.R, bidi.AL:
			if isolates == 0 {
				return RightToLeft, true
			}
		}
	}
	return LeftToRight, false
}

func isSeparator(r rune, c bidi.Class) bool {
	return c == bidi.B || r == '\u2028'
}

// needsResolution is false for left-to-right text which cannot produce any
// level other than 0.
func needsResolution(classes []bidi.Class) bool {
	for _, c := range classes {
		switch c {
		case bidi.R, bidi.AL, bidi.AN:
			return true
		}
		if isExplicit(c) {
			return true
		}
	}
	return false
}

func hasExplicitFormatting(classes []bidi.Class) bool {
	return slices.ContainsFunc(classes, isExplicit)
}

func isExplicit(c bidi.Class) bool {
	switch c {
	case bidi.LRE, bidi.RLE, bidi.LRO, bidi.RLO, bidi.PDF, bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI:
		return true
	}
	return false
}

// collectRuns collapses equal levels into runs. Blocks end runs.
func (p *Paragraph) collectRuns() []Run {
	var runs []Run
	for _, b := range p.blocks {
		blockRuns := collapse(p.levels[b.Start:b.End], b.Start)
		for _, r := range reorderRuns(blockRuns) {
			blockRuns[slices.IndexFunc(blockRuns, func(x Run) bool { return x.Start == r.Start })].Visual =
				len(runs) + r.Visual
		}
		runs = append(runs, blockRuns...)
	}
	return runs
}

func collapse(levels []uint8, offset int) []Run {
	var runs []Run
	start := 0
	for i := 1; i <= len(levels); i++ {
		if i < len(levels) && levels[i] == levels[start] {
			continue
		}
		runs = append(runs, Run{
			Range: textlayout.Range{Start: offset + start, End: offset + i},
			Level: levels[start],
		})
		start = i
	}
	return runs
}

// --- Accessors -------------------------------------------------------------

// Direction returns the overall direction of the paragraph.
func (p *Paragraph) Direction() Direction {
	return p.dir
}

// Len returns the number of text positions.
func (p *Paragraph) Len() int {
	return len(p.levels)
}

// Runs returns the directional runs of the paragraph in logical order.
func (p *Paragraph) Runs() []Run {
	return slices.Clone(p.runs)
}

// LevelAt returns the embedding level at text position i. Positions outside
// the text have the paragraph level of the nearest line block.
func (p *Paragraph) LevelAt(i int) uint8 {
	if i < 0 || i >= len(p.levels) {
		return p.LineDirection(i).Level()
	}
	return p.levels[i]
}

// DirectionAt returns the visual direction of the character at position i.
func (p *Paragraph) DirectionAt(i int) Direction {
	return Direction(p.LevelAt(i) & 1)
}

// LineDirection returns the base direction of the block of text between hard
// line separators which contains position i. Lines use it to resolve
// start/end alignment.
func (p *Paragraph) LineDirection(i int) Direction {
	for _, b := range p.blocks {
		if i < b.End {
			return b.dir
		}
	}
	return p.blocks[len(p.blocks)-1].dir
}

// IsWhitespace is true if the character at position i has bidi class WS.
func (p *Paragraph) IsWhitespace(i int) bool {
	return i >= 0 && i < len(p.classes) && p.classes[i] == bidi.WS
}
