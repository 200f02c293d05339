package multipara

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/paragraph"
	"github.com/npillmayer/textlayout/styled"
)

// Placed is a laid out paragraph within a multi-paragraph layout.
type Placed struct {
	*paragraph.Layout
	Range textlayout.Range // global text range
	Top   float64          // y position of the paragraph
	Line  int              // global index of the paragraph's first line
}

// Layout is a stack of paragraph layouts. A Layout is immutable.
//
// If a line limit cuts off the text, trailing paragraphs may not have been
// laid out at all. Queries for text positions in these paragraphs are
// answered for the end of the last paragraph laid out.
type Layout struct {
	paras    []Placed
	n        int // length of the text
	lines    int
	width    float64
	height   float64
	exceeded bool
	cfg      config
}

// New splits text into paragraphs and lays them out.
//
// Every paragraph's style is merged with overall. Character styles are
// resolved against base. If the constraint width is infinite, every paragraph
// is laid out at the width of the widest paragraph, so that alignment is
// relative to a common width.
//
// If neither overall nor a paragraph's own style has a direction policy,
// New returns textlayout.ErrInvalidArgument. If ctx is cancelled before all
// paragraphs are laid out, New returns ctx.Err() and no layout.
func New(ctx context.Context, text *styled.AnnotatedText, base styled.TextStyle, overall styled.ParagraphStyle,
	c paragraph.Constraints, opts ...Option) (*Layout, error) {
	//
	if text == nil {
		return nil, fmt.Errorf("text must not be nil: %w", textlayout.ErrInvalidArgument)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.provider == nil {
		cfg.provider = metrics.NewFaceProvider()
	}
	spans, err := text.Paragraphs(overall)
	if err != nil {
		return nil, err
	}
	for _, sp := range spans {
		if sp.Style.Direction == styled.DirectionUnset {
			return nil, fmt.Errorf("paragraph %v has no direction policy: %w", sp.Range, textlayout.ErrInvalidArgument)
		}
	}
	ins := make([]*paragraph.Intrinsics, len(spans))
	err = forEach(ctx, len(spans), cfg.workers, func(k int) error {
		section, err := text.Section(spans[k].Range)
		if err != nil {
			return err
		}
		ins[k], err = paragraph.Prepare(section, base, spans[k].Style, cfg.provider)
		return err
	})
	if err != nil {
		return nil, err
	}
	width := c.Width
	if math.IsInf(width, 1) {
		var widest float64
		for _, in := range ins {
			widest = max(widest, in.MaxIntrinsicWidth())
		}
		if widest > 0 {
			width = widest
		}
	}
	popts := []paragraph.Option{
		paragraph.SoftWrap(cfg.softWrap),
		paragraph.Overflow(cfg.overflow),
		paragraph.CursorWidth(cfg.cursorWidth),
		paragraph.FillWidth(),
	}
	l := &Layout{n: text.Len(), cfg: cfg}
	layouts := make([]*paragraph.Layout, len(spans))
	layoutParagraph := func(k int, extra ...paragraph.Option) error {
		pl, err := ins[k].Layout(paragraph.Constraints{Width: width}, slices.Concat(popts, extra)...)
		if err != nil {
			return err
		}
		layouts[k] = pl
		if cfg.progress != nil {
			cfg.progress.Pub(ProgressEvent{Paragraph: k, Range: spans[k].Range, Lines: pl.LineCount(), Total: len(spans)})
		}
		return nil
	}
	if cfg.maxLines == 0 {
		err = forEach(ctx, len(spans), cfg.workers, func(k int) error {
			return layoutParagraph(k)
		})
	} else { // line budget is shared
		remaining := cfg.maxLines
		err = forEach(ctx, len(spans), 1, func(k int) error {
			if remaining == 0 {
				l.exceeded = true
				return errBudget
			}
			if err := layoutParagraph(k, paragraph.MaxLines(remaining)); err != nil {
				return err
			}
			remaining -= layouts[k].LineCount()
			if layouts[k].DidExceedMaxLines() {
				l.exceeded = true
				return errBudget
			}
			return nil
		})
		if err == errBudget {
			err = nil
		}
	}
	if err != nil {
		return nil, err
	}
	l.stack(spans, layouts)
	l.width = width
	if math.IsInf(width, 1) {
		l.width = 0
		for _, p := range l.paras {
			l.width = max(l.width, p.Width())
		}
	}
	l.height = max(l.height, c.MinHeight)
	if c.MaxHeight > 0 {
		l.height = min(l.height, c.MaxHeight)
	}
	tracer().Debugf("multi-paragraph layout: %d of %d paragraphs, %d lines, %.2f × %.2f",
		len(l.paras), len(spans), l.lines, l.width, l.height)
	return l, nil
}

var errBudget = textlayout.LayoutError("line budget exhausted")

// stack places the paragraphs laid out below each other.
func (l *Layout) stack(spans []styled.ParagraphSpan, layouts []*paragraph.Layout) {
	y := 0.0
	for k, pl := range layouts {
		if pl == nil {
			break
		}
		l.paras = append(l.paras, Placed{Layout: pl, Range: spans[k].Range, Top: y, Line: l.lines})
		y += pl.Height()
		l.lines += pl.LineCount()
	}
	l.height = y
}

// forEach calls f for k in [0, n), on up to workers goroutines. The context is
// checked before every call. The first error in order of k is returned.
func forEach(ctx context.Context, n, workers int, f func(k int) error) error {
	if workers <= 1 || n <= 1 {
		for k := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(k); err != nil {
				return err
			}
		}
		return nil
	}
	errs := make([]error, n)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for k := range n {
		if err := ctx.Err(); err != nil {
			errs[k] = err
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				errs[k] = err
				return
			}
			errs[k] = f(k)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// --- Accessors -------------------------------------------------------------

// Width returns the width of the layout.
func (l *Layout) Width() float64 {
	return l.width
}

// Height returns the height of the layout.
func (l *Layout) Height() float64 {
	return l.height
}

// DidExceedMaxLines is true if text has been cut off because of a line limit.
func (l *Layout) DidExceedMaxLines() bool {
	return l.exceeded
}

// FirstBaseline returns the baseline of the first line.
func (l *Layout) FirstBaseline() float64 {
	return l.paras[0].FirstBaseline()
}

// LastBaseline returns the baseline of the last line laid out.
func (l *Layout) LastBaseline() float64 {
	p := l.paras[len(l.paras)-1]
	return p.Top + p.LastBaseline()
}

// Len returns the length of the text in UTF-16 code units.
func (l *Layout) Len() int {
	return l.n
}

// Paragraphs returns the paragraphs laid out, from top to bottom.
func (l *Layout) Paragraphs() []Placed {
	return append([]Placed(nil), l.paras...)
}
