package styled

import (
	"strings"
	"unicode/utf16"

	"github.com/npillmayer/textlayout"
)

// TextBuilder is for building annotated text from styled fragments.
type TextBuilder struct {
	buf    strings.Builder
	length int
	done   bool
	spans  []SpanStyle
	paras  []ParagraphSpan
	open   bool // a paragraph is open
}

// NewTextBuilder creates a new and empty builder for styled.AnnotatedText.
func NewTextBuilder() *TextBuilder {
	return &TextBuilder{}
}

// Len returns the length of the text built so far, in UTF-16 code units.
func (b *TextBuilder) Len() int {
	return b.length
}

// Append appends a text fragment with a given style at the end of the text
// to build. A zero style does not create a style span.
func (b *TextBuilder) Append(s string, style TextStyle) error {
	if b.done {
		return textlayout.ErrTextCompleted
	}
	if s == "" {
		return nil
	}
	n := 0
	for _, r := range s {
		n += max(1, utf16.RuneLen(r))
	}
	b.buf.WriteString(s)
	if !style.IsZero() {
		b.spans = append(b.spans, SpanStyle{
			Style: style,
			Range: textlayout.Range{Start: b.length, End: b.length + n},
		})
	}
	b.length += n
	return nil
}

// StartParagraph opens a new paragraph with a given style at the current end of
// the text. A paragraph still open is closed first.
func (b *TextBuilder) StartParagraph(style ParagraphStyle) error {
	if b.done {
		return textlayout.ErrTextCompleted
	}
	b.EndParagraph()
	b.paras = append(b.paras, ParagraphSpan{
		Style: style,
		Range: textlayout.Range{Start: b.length, End: b.length},
	})
	b.open = true
	return nil
}

// EndParagraph closes the currently open paragraph, if any.
func (b *TextBuilder) EndParagraph() {
	if !b.open {
		return
	}
	b.paras[len(b.paras)-1].Range.End = b.length
	b.open = false
}

// Text returns the annotated text which this builder is holding up to now.
// It is illegal to continue adding fragments after Text has been called,
// but Text may be called multiple times.
func (b *TextBuilder) Text() *AnnotatedText {
	b.EndParagraph()
	b.done = true
	t := TextFromString(b.buf.String())
	t.spans = append([]SpanStyle(nil), b.spans...)
	t.paras = append([]ParagraphSpan(nil), b.paras...)
	if t.Len() == 0 {
		tracer().Debugf("text builder: text is empty")
	}
	return t
}
