package formatter

import (
	"context"
	"io"
	"strings"

	"github.com/npillmayer/textlayout/styled"
	"github.com/npillmayer/textlayout/styled/inline"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/net/html"
)

var htmlStyles = []inline.Style{
	inline.BoldStyle, inline.ItalicsStyle, inline.StrongStyle, inline.EmStyle,
	inline.SmallStyle, inline.BigStyle, inline.MarkedStyle,
}

// HTML is a format for simple HTML output. Lines are output as lines of
// a `pre` element, every segment wrapped into a span with its direction.
type HTML struct {
	reorderPolicy ReorderFlag
	bidi          bool // a span is open
}

// NewHTML creates an HTML formatter. Browsers reorder text of spans with a
// `dir` attribute by themselves, thus reorder should usually be ReorderNone.
func NewHTML(reorder ReorderFlag) *HTML {
	h := &HTML{
		reorderPolicy: reorder,
	}
	return h
}

// Print outputs styled text as HTML.
//
// If parameter config is nil, a default configuration will be used.
// Config.Context will also be created based on heuristics
// from the user environment.
func (h *HTML) Print(text *styled.AnnotatedText, w io.Writer, config *Config) error {
	if config == nil {
		config = &Config{
			LineWidth: 40,
			Context:   uax11.ContextFromEnvironment(),
		}
	}
	return Output(context.Background(), text, w, config, h)
}

// StyledText is called by the formatting driver to output a sequence of
// uniformly styled text (item). Text is escaped.
// (Part of interface Format)
func (h *HTML) StyledText(s string, style *styled.Resolved, w io.Writer) {
	hs := HTMLStyleOf(style)
	w.Write([]byte(hs.tags(false)))
	w.Write([]byte(html.EscapeString(s)))
	w.Write([]byte(hs.tags(true)))
}

// Preamble is called by the output driver before text will be formatted.
// It outputs the a `pre` tag.
// (Part of interface Format)
func (h *HTML) Preamble(w io.Writer) {
	w.Write([]byte("<pre>\n"))
}

// Postamble will be called after text has been formatted.
// It outputs a closing `</pre>` tag.
// (Part of interface Format)
func (h *HTML) Postamble(w io.Writer) {
	w.Write([]byte("</pre>\n"))
}

// LTR signals to w that a left-to-right segment is to be output.
// It outputs a closing `</span>` if necessary, and a `<span dir="ltr">` tag.
// (Part of interface Format)
func (h *HTML) LTR(w io.Writer) {
	h.closeSpan(w)
	w.Write([]byte("<span dir=\"ltr\">"))
	h.bidi = true
}

// RTL signals to w that a right-to-left segment is to be output.
// It outputs a closing `</span>` if necessary, and a `<span dir="rtl">` tag.
// (Part of interface Format)
func (h *HTML) RTL(w io.Writer) {
	h.closeSpan(w)
	w.Write([]byte("<span dir=\"rtl\">"))
	h.bidi = true
}

func (h *HTML) closeSpan(w io.Writer) {
	if h.bidi {
		w.Write([]byte("</span>"))
		h.bidi = false
	}
}

// Line is a signal from the output driver that a new line is to be output.
//
// Currently does nothing.
// (Part of interface Format)
func (h *HTML) Line(n int, length int, w io.Writer) {
}

// Newline will be called at the end of every formatted line of text.
// It closes an open span and outputs a newline.
// (Part of interface Format)
func (h *HTML) Newline(w io.Writer) {
	h.closeSpan(w)
	w.Write([]byte("\n"))
}

// NeedsReordering signals to the formatting driver what kind of support the
// browser needs with Bidi text.
func (h *HTML) NeedsReordering() ReorderFlag {
	return h.reorderPolicy
}

// HTMLStyle is a style equivalent to inline.Style, which offers some convenience
// functions.
type HTMLStyle inline.Style

// HTMLStyleOf returns the HTML formatting tags for a resolved style. Weight
// and slant map to `b` and `i`, text in inline.MarkColor to `mark`.
func HTMLStyleOf(style *styled.Resolved) HTMLStyle {
	if style == nil {
		return HTMLStyle(inline.PlainStyle)
	}
	s := inline.PlainStyle
	if style.IsBold() {
		s = s.Add(inline.BoldStyle)
	}
	if style.IsItalic() {
		s = s.Add(inline.ItalicsStyle)
	}
	if style.Color == inline.MarkColor {
		s = s.Add(inline.MarkedStyle)
	}
	return HTMLStyle(s)
}

func (s HTMLStyle) String() string {
	return s.tags(false)
}

func (s HTMLStyle) tags(closing bool) string {
	if s == 0 {
		return ""
	}
	var b strings.Builder
	for i := range htmlStyles {
		st := htmlStyles[i]
		if closing {
			st = htmlStyles[len(htmlStyles)-1-i]
		}
		if inline.Style(s).Has(st) {
			b.WriteByte('<')
			if closing {
				b.WriteByte('/')
			}
			b.WriteString(st.String())
			b.WriteByte('>')
		}
	}
	return b.String() // may be empty string
}

// Add combines a style with another style
func (s HTMLStyle) Add(sty HTMLStyle) HTMLStyle {
	return HTMLStyle(inline.Style(s).Add(inline.Style(sty)))
}
