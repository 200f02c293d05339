/*
Package inline creates annotated text from HTML markup.

Only inline formatting elements and a few block elements are interpreted:

	<b> <strong> <i> <em> <small> <big> <mark>   character styles
	<br>                                         line separator U+2028
	<p> <div> <li> <h1> to <h6>                 paragraphs

Block elements may carry attributes `dir` (ltr, rtl, auto) and `align`
(start, end, left, right, center, justify). Headings are set in bold.
Whitespace is collapsed the way browsers do it for normal text.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package inline

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/styled"
	"golang.org/x/net/html"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}

// InnerText creates an annotated text for the textual content of an HTML element
// and all its descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript, except that InnerText cannot respect CSS styling (including
// properties changing the visibility of the node's descendents).
func InnerText(n *html.Node) (*styled.AnnotatedText, error) {
	if n == nil {
		return nil, fmt.Errorf("HTML node is nil: %w", textlayout.ErrInvalidArgument)
	}
	c := &collector{b: styled.NewTextBuilder()}
	if err := c.collect(n, PlainStyle); err != nil {
		return nil, err
	}
	return c.b.Text(), nil
}

// TextFromHTML creates an annotated text from the textual content of an HTML
// fragment.
func TextFromHTML(input io.Reader) (*styled.AnnotatedText, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	c := &collector{b: styled.NewTextBuilder()}
	for _, n := range nodes {
		if err := c.collect(n, PlainStyle); err != nil {
			return nil, err
		}
	}
	return c.b.Text(), nil
}

type collector struct {
	b       *styled.TextBuilder
	inBlock bool
	space   bool // last character appended is a space
}

func (c *collector) collect(n *html.Node, style Style) error {
	switch n.Type {
	case html.ElementNode:
		tracer().Debugf("inline text: collect text of <%s>", n.Data)
		switch n.Data {
		case "head", "script", "style", "title":
			return nil
		case "br":
			c.space = true
			return c.b.Append("\u2028", style.TextStyle())
		}
		if ps, ok := blockStyle(n); ok {
			if err := c.b.StartParagraph(ps); err != nil {
				return err
			}
			if isHeading(n.Data) {
				style = style.Add(BoldStyle)
			}
			c.inBlock, c.space = true, true
			defer func() {
				c.b.EndParagraph()
				c.inBlock = false
			}()
		}
		style = style.Add(StyleFromHTMLName(n.Data))
	case html.TextNode:
		s := c.collapse(n.Data)
		if s == "" || (!c.inBlock && strings.TrimSpace(s) == "") {
			return nil
		}
		tracer().Debugf("inline text = %q (%v)", s, style)
		if err := c.b.Append(s, style.TextStyle()); err != nil {
			return err
		}
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := c.collect(ch, style); err != nil {
			return err
		}
	}
	return nil
}

// collapse replaces runs of whitespace by a single space. Whitespace directly
// following a space already collected is dropped.
func (c *collector) collapse(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !c.space {
				b.WriteByte(' ')
			}
			c.space = true
			continue
		}
		b.WriteRune(r)
		c.space = false
	}
	return b.String()
}

func isHeading(name string) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}

// blockStyle returns the paragraph style for block elements.
func blockStyle(n *html.Node) (styled.ParagraphStyle, bool) {
	switch n.Data {
	case "p", "div", "li":
	default:
		if !isHeading(n.Data) {
			return styled.ParagraphStyle{}, false
		}
	}
	var ps styled.ParagraphStyle
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "dir":
			switch strings.ToLower(a.Val) {
			case "ltr":
				ps.Direction = styled.DirectionLTR
			case "rtl":
				ps.Direction = styled.DirectionRTL
			case "auto":
				ps.Direction = styled.DirectionAuto
			}
		case "align":
			ps.Align = alignments[strings.ToLower(a.Val)]
		}
	}
	return ps, true
}

var alignments = map[string]styled.Alignment{
	"start":   styled.AlignStart,
	"end":     styled.AlignEnd,
	"left":    styled.AlignLeft,
	"right":   styled.AlignRight,
	"center":  styled.AlignCenter,
	"justify": styled.AlignJustify,
}
