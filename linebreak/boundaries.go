package linebreak

import (
	"unicode"

	"github.com/npillmayer/textlayout"
	"github.com/rivo/uniseg"
)

// Opportunity classifies the position between two grapheme clusters.
type Opportunity uint8

// Line break opportunities.
const (
	NoBreak   Opportunity = iota // breaking is not allowed
	CanBreak                     // a line may be broken
	MustBreak                    // a line must be broken, after a hard line separator
)

// Boundaries holds the segmentation of a text into grapheme clusters, words and
// line break opportunities. All slices are indexed by UTF-16 positions and
// have one extra entry for the end of the text.
type Boundaries struct {
	n        int
	cluster  []bool        // a grapheme cluster starts at i
	word     []bool        // a word boundary is at i
	wordlike []bool        // position i is part of a word made of letters or digits
	brk      []Opportunity // break opportunity in front of position i
	space    []bool        // position i is a whitespace character which may hang
	sep      []bool        // position i is part of a hard line separator
}

// Analyze finds grapheme cluster boundaries, word boundaries and line break
// opportunities of a text.
func Analyze(ix *textlayout.UnitIndex) *Boundaries {
	n := ix.Len()
	b := &Boundaries{
		n:        n,
		cluster:  make([]bool, n+1),
		word:     make([]bool, n+1),
		wordlike: make([]bool, n+1),
		brk:      make([]Opportunity, n+1),
		space:    make([]bool, n+1),
		sep:      make([]bool, n+1),
	}
	b.cluster[0], b.cluster[n] = true, true
	b.word[0], b.word[n] = true, true
	for i := 0; i < n; i++ {
		r := ix.RuneAt(i)
		b.sep[i] = isHardSeparator(r)
		b.space[i] = b.sep[i] || isHangingSpace(r)
	}
	rest, state := ix.String(), -1
	bytepos, wordStart := 0, 0
	var cluster string
	var boundaries int
	for len(rest) > 0 {
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		start := ix.UnitOfByte(bytepos)
		bytepos += len(cluster)
		end := ix.UnitOfByte(bytepos)
		b.cluster[start] = true
		if boundaries&uniseg.MaskWord != 0 {
			b.word[end] = true
			b.markWordlike(ix, wordStart, end)
			wordStart = end
		}
		switch boundaries & uniseg.MaskLine {
		case uniseg.LineMustBreak:
			if len(rest) > 0 {
				b.brk[end] = MustBreak
			}
		case uniseg.LineCanBreak:
			b.brk[end] = CanBreak
		}
	}
	if wordStart < n {
		b.markWordlike(ix, wordStart, n)
	}
	tracer().Debugf("analyzed boundaries of text with %d positions", n)
	return b
}

func (b *Boundaries) markWordlike(ix *textlayout.UnitIndex, start, end int) {
	like := false
	for _, r := range ix.RunesOf(textlayout.Range{Start: start, End: end}) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			like = true
			break
		}
	}
	for i := start; i < end; i++ {
		b.wordlike[i] = like
	}
}

func isHardSeparator(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isHangingSpace is true for whitespace which does not count for the visual
// width at the end of a line. No-break spaces are excluded.
func isHangingSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.IsSpace(r)
}

// Len returns the number of text positions.
func (b *Boundaries) Len() int {
	return b.n
}

// IsClusterStart is true if a grapheme cluster starts at position i.
// The end of the text counts as a cluster start.
func (b *Boundaries) IsClusterStart(i int) bool {
	return i >= 0 && i <= b.n && b.cluster[i]
}

// NextCluster returns the start of the grapheme cluster following the one
// which contains position i.
func (b *Boundaries) NextCluster(i int) int {
	if i >= b.n {
		return b.n
	}
	i = max(i+1, 1)
	for !b.cluster[i] {
		i++
	}
	return i
}

// PrevCluster returns the start of the grapheme cluster preceding position i.
func (b *Boundaries) PrevCluster(i int) int {
	if i <= 0 {
		return 0
	}
	i = min(i-1, b.n)
	for i > 0 && !b.cluster[i] {
		i--
	}
	return i
}

// BreakAt returns the break opportunity in front of position i.
func (b *Boundaries) BreakAt(i int) Opportunity {
	if i < 0 || i > b.n {
		return NoBreak
	}
	return b.brk[i]
}

// IsSpace is true if position i holds whitespace, including hard line separators.
func (b *Boundaries) IsSpace(i int) bool {
	return i >= 0 && i < b.n && b.space[i]
}

// IsSeparator is true if position i is part of a hard line separator.
func (b *Boundaries) IsSeparator(i int) bool {
	return i >= 0 && i < b.n && b.sep[i]
}

// EndsWithSeparator is true if the text ends with a hard line separator.
func (b *Boundaries) EndsWithSeparator() bool {
	return b.n > 0 && b.sep[b.n-1]
}

// WordAt returns the range of the word enclosing position i, according to
// the Unicode word boundary rules. If i sits at the end of a word and is not
// followed by another word, the preceding word is returned. Positions
// outside any word result in an empty range at i.
func (b *Boundaries) WordAt(i int) textlayout.Range {
	i = max(0, min(i, b.n))
	if i < b.n && b.wordlike[i] {
		return textlayout.Range{Start: b.prevWord(i), End: b.nextWord(i)}
	}
	if i > 0 && b.wordlike[i-1] {
		return textlayout.Range{Start: b.prevWord(i - 1), End: i}
	}
	return textlayout.Range{Start: i, End: i}
}

// prevWord returns the largest word boundary ≤ i.
func (b *Boundaries) prevWord(i int) int {
	for i > 0 && !b.word[i] {
		i--
	}
	return i
}

// nextWord returns the smallest word boundary > i.
func (b *Boundaries) nextWord(i int) int {
	i++
	for i < b.n && !b.word[i] {
		i++
	}
	return min(i, b.n)
}
