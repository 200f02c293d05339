package styled

import (
	"fmt"
	"iter"

	"github.com/npillmayer/textlayout"
)

// AnnotatedText is an immutable string with character styles and paragraph
// styles attached to ranges of it. Ranges are in terms of UTF-16 code units.
type AnnotatedText struct {
	index *textlayout.UnitIndex
	spans []SpanStyle
	paras []ParagraphSpan
}

// TextFromString creates an annotated text without any styles.
func TextFromString(s string) *AnnotatedText {
	return &AnnotatedText{index: textlayout.IndexString(s)}
}

// NewText creates an annotated text from a string and lists of character styles
// and paragraph styles. Every range must be inside the text and must not
// split a surrogate pair; otherwise textlayout.ErrInvalidRange is returned.
//
// Paragraph styles are not required to cover the whole text, see Paragraphs.
func NewText(s string, spans []SpanStyle, paras []ParagraphSpan) (*AnnotatedText, error) {
	t := TextFromString(s)
	for _, sp := range spans {
		if err := t.checkRange(sp.Range); err != nil {
			return nil, err
		}
	}
	for _, p := range paras {
		if err := t.checkRange(p.Range); err != nil {
			return nil, err
		}
	}
	t.spans = append([]SpanStyle(nil), spans...)
	t.paras = append([]ParagraphSpan(nil), paras...)
	return t, nil
}

func (t *AnnotatedText) checkRange(r textlayout.Range) error {
	if r.Start > r.End {
		return fmt.Errorf("range %v is inverted: %w", r, textlayout.ErrInvalidRange)
	}
	if r.Start < 0 || r.End > t.index.Len() {
		return fmt.Errorf("range %v exceeds text of length %d: %w", r, t.index.Len(),
			textlayout.ErrInvalidRange)
	}
	if !t.index.IsBoundary(r.Start) || !t.index.IsBoundary(r.End) {
		return fmt.Errorf("range %v splits a surrogate pair: %w", r, textlayout.ErrInvalidRange)
	}
	return nil
}

// String returns the raw text without any styles.
func (t *AnnotatedText) String() string {
	return t.index.String()
}

// Len returns the length of the text in UTF-16 code units.
func (t *AnnotatedText) Len() int {
	return t.index.Len()
}

// Index returns the position index of the text.
func (t *AnnotatedText) Index() *textlayout.UnitIndex {
	return t.index
}

// Spans returns a copy of the character styles, in order of precedence
// (later styles override earlier ones).
func (t *AnnotatedText) Spans() []SpanStyle {
	return append([]SpanStyle(nil), t.spans...)
}

// ParagraphStyles returns a copy of the explicit paragraph styles.
func (t *AnnotatedText) ParagraphStyles() []ParagraphSpan {
	return append([]ParagraphSpan(nil), t.paras...)
}

// EachSpan iterates over the character styles which intersect range r.
func (t *AnnotatedText) EachSpan(r textlayout.Range) iter.Seq[SpanStyle] {
	return func(yield func(SpanStyle) bool) {
		for _, sp := range t.spans {
			if sp.Range.Intersect(r).IsEmpty() {
				continue
			}
			if !yield(sp) {
				return
			}
		}
	}
}

// Section copies a piece of annotated text, delimited by range r. Styles are
// clipped to r and re-based to start at 0. Styles which do not intersect r
// are dropped.
func (t *AnnotatedText) Section(r textlayout.Range) (*AnnotatedText, error) {
	if err := t.checkRange(r); err != nil {
		return nil, err
	}
	section := TextFromString(t.index.Substring(r))
	for _, sp := range t.spans {
		if c := sp.Range.Intersect(r); !c.IsEmpty() {
			section.spans = append(section.spans, SpanStyle{Style: sp.Style, Range: c.Shift(-r.Start)})
		}
	}
	for _, p := range t.paras {
		if c := p.Range.Intersect(r); !c.IsEmpty() {
			section.paras = append(section.paras, ParagraphSpan{Style: p.Style, Range: c.Shift(-r.Start)})
		}
	}
	tracer().Debugf("section %v of text with %d spans: %d spans", r, len(t.spans), len(section.spans))
	return section, nil
}
