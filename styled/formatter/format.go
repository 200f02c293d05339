package formatter

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/linebreak"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/multipara"
	"github.com/npillmayer/textlayout/paragraph"
	"github.com/npillmayer/textlayout/styled"
	"github.com/npillmayer/uax/uax11"
	"github.com/rivo/uniseg"
)

// Config represents a set of configuration parameters for formatting.
//
// LineWidth is measured in fixed-width positions (‘en’s). MaxLines limits the
// number of lines output, 0 meaning no limit; truncated text is ellipsized.
type Config struct {
	LineWidth int
	Justify   bool
	MaxLines  int
	Debug     bool
	Context   *uax11.Context
}

// ReorderFlag tells the output driver who is responsible for displaying
// right-to-left text in visual order.
type ReorderFlag int

const (
	// ReorderNone: the device reorders right-to-left text by itself. Text of
	// every segment is output in logical order.
	ReorderNone ReorderFlag = iota
	// ReorderVisual: grapheme clusters of right-to-left segments are output
	// in reverse order.
	ReorderVisual
)

// Format is an interface for formatting drivers, given an io.Writer.
//
// Line is called at the start of every line, with the line's number and its
// width in ‘en’s.
type Format interface {
	Preamble(io.Writer)
	Postamble(io.Writer)
	StyledText(string, *styled.Resolved, io.Writer)
	LTR(io.Writer)
	RTL(io.Writer)
	Line(int, int, io.Writer)
	Newline(io.Writer)
	NeedsReordering() ReorderFlag
}

// Output lays out styled text using a line width from config and outputs the
// lines using a given formatter. Paragraphs without an explicit direction
// derive it from their content.
//
// Neither text nor format may be nil. However, it is safe to have config or
// config.Context set to nil. In this case, a config from the terminal and
// uax11.LatinContext are used.
func Output(ctx context.Context, text *styled.AnnotatedText, out io.Writer, config *Config, format Format) error {
	if text == nil || format == nil || out == nil {
		return fmt.Errorf("formatter needs text, format and writer: %w", textlayout.ErrInvalidArgument)
	}
	if config == nil {
		config = ConfigFromTerminal()
	}
	if config.LineWidth <= 0 {
		return fmt.Errorf("line width must be positive, is %d: %w", config.LineWidth, textlayout.ErrInvalidArgument)
	}
	cellctx := config.Context
	if cellctx == nil {
		cellctx = uax11.LatinContext
	}
	overall := styled.ParagraphStyle{Direction: styled.DirectionAuto}
	if config.Justify {
		overall.Align = styled.AlignJustify
	}
	opts := []multipara.Option{multipara.Provider(metrics.Cells(cellctx))}
	if config.MaxLines > 0 {
		opts = append(opts, multipara.MaxLines(config.MaxLines), multipara.Overflow(linebreak.OverflowEllipsis))
	}
	ml, err := multipara.New(ctx, text, styled.TextStyle{}, overall,
		paragraph.Constraints{Width: float64(config.LineWidth)}, opts...)
	if err != nil {
		return err
	}
	index := text.Index()
	reorder := format.NeedsReordering()
	format.Preamble(out)
	for g := range ml.LineCount() {
		segs, err := ml.Segments(g)
		if err != nil {
			return err
		}
		w, _ := ml.LineWidth(g)
		format.Line(g, cells(w), out)
		col := 0
		for _, seg := range segs {
			if x := cells(seg.X); x > col {
				format.StyledText(strings.Repeat(" ", x-col), nil, out)
				col = x
			}
			s := paragraph.Ellipsis
			if !seg.Ellipsis {
				s = index.Substring(seg.Range)
			}
			if seg.RTL {
				format.RTL(out)
				if reorder == ReorderVisual {
					s = reverseClusters(s)
				}
			} else {
				format.LTR(out)
			}
			if config.Debug {
				tracer().Debugf("[%3d] %v = %q", g, seg, s)
			}
			format.StyledText(s, seg.Style, out)
			col = cells(seg.X + seg.Width)
		}
		format.Newline(out)
	}
	format.Postamble(out)
	return nil
}

// Print outputs styled text to stdout, using a console formatter.
//
// If parameter config is nil,
// a heuristic will create a config from the current terminal's properties (if
// stdout is interactive). Config.Context will also be created based on heuristics
// from the user environment.
func Print(text *styled.AnnotatedText, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	consoleFmt := NewConsoleFixedWidthFormat(nil, nil)
	return Output(context.Background(), text, os.Stdout, config, consoleFmt)
}

func cells(x float64) int {
	return int(math.Round(x))
}

// reverseClusters reverses the order of the grapheme clusters of s.
func reverseClusters(s string) string {
	var clusters []string
	rest, state := s, -1
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.StepString(rest, state)
		clusters = append(clusters, cluster)
	}
	slices.Reverse(clusters)
	return strings.Join(clusters, "")
}
