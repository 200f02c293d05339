package textlayout

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UnitIndex maps between the positions of a text in terms of UTF-16 code units,
// runes and UTF-8 bytes. A UnitIndex is immutable and safe for concurrent use.
//
// Go strings are UTF-8, whereas layout positions count UTF-16 code units.
// Runes outside the basic multilingual plane occupy two units (a surrogate pair);
// the second unit of a pair is not a valid boundary for ranges.
type UnitIndex struct {
	text   string
	runes  []rune
	units  []int // UTF-16 start position of every rune, plus total length
	bytes  []int // UTF-8 start position of every rune, plus total length
	runeOf []int // rune index for every UTF-16 unit
}

// IndexString creates a UnitIndex for s. Invalid UTF-8 is read as U+FFFD.
func IndexString(s string) *UnitIndex {
	n := utf8.RuneCountInString(s)
	if !utf8.ValidString(s) {
		T().Debugf("text index: invalid UTF-8 in text, reading as U+FFFD")
	}
	ix := &UnitIndex{
		text:  s,
		runes: make([]rune, 0, n),
		units: make([]int, 0, n+1),
		bytes: make([]int, 0, n+1),
	}
	u := 0
	for b, r := range s {
		ix.runes = append(ix.runes, r)
		ix.units = append(ix.units, u)
		ix.bytes = append(ix.bytes, b)
		k := len(ix.runes) - 1
		ix.runeOf = append(ix.runeOf, k)
		if utf16.RuneLen(r) == 2 {
			ix.runeOf = append(ix.runeOf, k)
			u += 2
		} else {
			u++
		}
	}
	ix.units = append(ix.units, u)
	ix.bytes = append(ix.bytes, len(s))
	return ix
}

// String returns the indexed text.
func (ix *UnitIndex) String() string {
	return ix.text
}

// Len returns the length of the text in UTF-16 code units.
func (ix *UnitIndex) Len() int {
	return ix.units[len(ix.units)-1]
}

// RuneCount returns the number of runes of the text.
func (ix *UnitIndex) RuneCount() int {
	return len(ix.runes)
}

// Runes returns the runes of the text. Clients must not modify the slice.
func (ix *UnitIndex) Runes() []rune {
	return ix.runes
}

// RuneIndex returns the index of the rune covering UTF-16 position i.
// For i == Len() it returns RuneCount().
func (ix *UnitIndex) RuneIndex(i int) int {
	if i >= len(ix.runeOf) {
		return len(ix.runes)
	}
	if i < 0 {
		return 0
	}
	return ix.runeOf[i]
}

// UnitOffset returns the UTF-16 position of the rune with index k.
func (ix *UnitIndex) UnitOffset(k int) int {
	if k >= len(ix.units) {
		return ix.Len()
	}
	return ix.units[k]
}

// ByteOffset returns the UTF-8 byte position for UTF-16 position i.
// Positions inside a surrogate pair map to the start of the pair.
func (ix *UnitIndex) ByteOffset(i int) int {
	return ix.bytes[ix.RuneIndex(i)]
}

// UnitOfByte returns the UTF-16 position for a UTF-8 byte position, which
// should be at a rune boundary.
func (ix *UnitIndex) UnitOfByte(b int) int {
	lo, hi := 0, len(ix.bytes)-1
	for lo < hi {
		m := (lo + hi) / 2
		if ix.bytes[m] < b {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return ix.units[lo]
}

// RuneAt returns the rune covering UTF-16 position i.
func (ix *UnitIndex) RuneAt(i int) rune {
	if i < 0 || i >= len(ix.runeOf) {
		return utf8.RuneError
	}
	return ix.runes[ix.runeOf[i]]
}

// IsBoundary is true if i is a valid range boundary, i.e. it is inside
// [0, Len()] and does not point to the second half of a surrogate pair.
func (ix *UnitIndex) IsBoundary(i int) bool {
	if i < 0 || i > ix.Len() {
		return false
	}
	if i == ix.Len() {
		return true
	}
	return ix.units[ix.runeOf[i]] == i
}

// IsTrailSurrogate is true if position i holds the second unit of a surrogate pair.
func (ix *UnitIndex) IsTrailSurrogate(i int) bool {
	return i > 0 && i < ix.Len() && !ix.IsBoundary(i)
}

// Substring returns the text for a range of UTF-16 positions.
func (ix *UnitIndex) Substring(r Range) string {
	if r.IsEmpty() {
		return ""
	}
	return ix.text[ix.ByteOffset(r.Start):ix.ByteOffset(r.End)]
}

// RunesOf returns the runes covering a range of UTF-16 positions.
// Clients must not modify the slice.
func (ix *UnitIndex) RunesOf(r Range) []rune {
	return ix.runes[ix.RuneIndex(r.Start):ix.RuneIndex(r.End)]
}
