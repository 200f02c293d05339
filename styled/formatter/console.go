package formatter

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/textlayout/styled"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// ControlCodes holds certain escape sequences which a terminal uses to control
// Bidi behaviour.
type ControlCodes struct {
	Preamble, Postamble []byte
	LTR, RTL            []byte
	Newline             []byte
}

// DefaultCodes is the default set of control codes for terminals without
// Bidi support. Text is reordered by the formatter.
var DefaultCodes = ControlCodes{
	Preamble:  []byte{},
	Postamble: []byte{},
	LTR:       []byte{},
	RTL:       []byte{},
	Newline:   []byte{'\n'},
}

// ExplicitCodes switch a terminal to explicit Bidi mode and set the character
// path for every segment. The terminal is responsible for reordering.
// See https://terminal-wg.pages.freedesktop.org/bidi/recommendation/escape-sequences.html
var ExplicitCodes = ControlCodes{
	Preamble:  []byte{27, '[', '8', 'l'}, // switch to explicit mode
	Postamble: []byte{27, '[', '0', ' ', 'k'},
	LTR:       []byte{27, '[', '1', ' ', 'k'},
	RTL:       []byte{27, '[', '2', ' ', 'k'},
	Newline:   []byte{'\n'},
}

// Emphasis classifies resolved styles for display on a console.
type Emphasis int

// Emphasis a console is able to display
const (
	Plain Emphasis = iota
	Bold
	Italic
	BoldItalic
)

// EmphasisOf returns the emphasis of a resolved style.
func EmphasisOf(style *styled.Resolved) Emphasis {
	if style == nil {
		return Plain
	}
	switch {
	case style.IsBold() && style.IsItalic():
		return BoldItalic
	case style.IsBold():
		return Bold
	case style.IsItalic():
		return Italic
	}
	return Plain
}

// ConsoleFixedWidth is a type for outputting formatted text to a console with
// a fixed width font.
//
// Console/Terminal output is notoriously tricky for bi-directional text and for
// scripts other than Latin. To fully appreciate the difficulties behind this,
// refer for example to
// https://terminal-wg.pages.freedesktop.org/bidi/bidi-intro/why-terminals-are-special.html
//
// As long as there is not widely accepted standard for Bidi-handling in terminals, we
// have to rely on heuristics and explicitly set device-dependent configuration.
type ConsoleFixedWidth struct {
	Codes   *ControlCodes
	colors  map[Emphasis]*color.Color
	ccnt    int // number of character positions already printed for line
	ctarget int // line width in fixed-width ‘en’s
}

// Print outputs styled text to stdout.
//
// If parameter config is nil,
// a heuristic will create a config from the current terminal's properties (if
// stdout is interactive). Config.Context will also be created based on heuristics
// from the user environment.
func (fw *ConsoleFixedWidth) Print(text *styled.AnnotatedText, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Output(context.Background(), text, os.Stdout, config, fw)
}

// NewConsoleFixedWidthFormat creates a new formatter. It is to be used for consoles
// with a fixed width font.
//
// codes is a table of escape sequences to control Bidi behaviour of the console.
// With codes other than DefaultCodes, the console is expected to reorder
// right-to-left text itself.
// colors is a map from emphasis to colors, used for display. It may contain
// just a subset of the emphasis values.
func NewConsoleFixedWidthFormat(codes *ControlCodes, colors map[Emphasis]*color.Color) *ConsoleFixedWidth {
	fw := &ConsoleFixedWidth{
		Codes: &DefaultCodes,
	}
	if codes != nil {
		fw.Codes = codes
	}
	if colors == nil {
		fw.colors = makeDefaultPalette()
	} else {
		fw.colors = colors
	}
	return fw
}

func makeDefaultPalette() map[Emphasis]*color.Color {
	palette := map[Emphasis]*color.Color{
		Bold:       color.New(color.FgRed, color.Bold),
		Italic:     color.New(color.FgBlue, color.Italic),
		BoldItalic: color.New(color.FgMagenta, color.Bold, color.Italic),
	}
	return palette
}

// StyledText is called by the formatting driver to output a sequence of
// uniformly styled text (item). It uses colors to visualize styles.
// (Part of interface Format)
func (fw *ConsoleFixedWidth) StyledText(s string, style *styled.Resolved, w io.Writer) {
	if fw.ctarget > 0 {
		fw.ccnt += len([]rune(s))
	}
	if c, ok := fw.colors[EmphasisOf(style)]; ok {
		c.Fprint(w, s)
		return
	}
	w.Write([]byte(s))
}

// Preamble is called by the output driver before text will be formatted.
// It outputs the `Preamble` escape sequence from fw.Codes.
// (Part of interface Format)
func (fw *ConsoleFixedWidth) Preamble(w io.Writer) {
	w.Write(fw.Codes.Preamble)
}

// Postamble will be called after text has been formatted.
// It outputs the `Postamble` escape sequence from fw.Codes.
// (Part of interface Format)
func (fw *ConsoleFixedWidth) Postamble(w io.Writer) {
	w.Write(fw.Codes.Postamble)
}

// LTR signals to w that a left-to-right segment is to be output.
// (Part of interface Format)
func (fw *ConsoleFixedWidth) LTR(w io.Writer) {
	w.Write(fw.Codes.LTR)
}

// RTL signals to w that a right-to-left segment is to be output.
// (Part of interface Format)
func (fw *ConsoleFixedWidth) RTL(w io.Writer) {
	w.Write(fw.Codes.RTL)
}

// Line is a signal from the output driver that a new line is to be output.
// length is the width of the line, measured in “en”s, i.e. fixed width
// positions.
// (Part of interface Format)
func (fw *ConsoleFixedWidth) Line(n int, length int, w io.Writer) {
	fw.ccnt = 0
	fw.ctarget = length
}

// Newline will be called at the end of every formatted line of text.
// It outputs the `Newline` escape sequence from fw.Codes.
// (Part of interface Format)
func (fw *ConsoleFixedWidth) Newline(w io.Writer) {
	if fw.ccnt > fw.ctarget+1 {
		tracer().Debugf("console: line overfull, %d > %d", fw.ccnt, fw.ctarget)
	}
	w.Write(fw.Codes.Newline)
}

// NeedsReordering signals to the formatting driver what kind of support the
// console needs with Bidi text.
// (Part of interface Format)
func (fw *ConsoleFixedWidth) NeedsReordering() ReorderFlag {
	if fw.Codes == &DefaultCodes {
		return ReorderVisual
	}
	return ReorderNone
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a formatting Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		w, _, err := term.GetSize(fd)
		if err != nil {
			config.LineWidth = 65
		} else {
			if w > 65 {
				config.LineWidth = w - 10
			} else if w > 30 {
				config.LineWidth = w - 5
			} else if w > 10 {
				config.LineWidth = w
			} else {
				config.LineWidth = 10
			}
		}
	} else {
		config.LineWidth = 65
	}
	tracer().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
