package paragraph

import (
	"fmt"
	"math"

	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/bidirun"
	"github.com/npillmayer/textlayout/linebreak"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/styled"
	"github.com/npillmayer/textlayout/styled/itemized"
)

// Intrinsics holds the width-independent measurements of a paragraph.
// It is immutable and may be laid out any number of times, concurrently.
type Intrinsics struct {
	text     *styled.AnnotatedText
	ix       *textlayout.UnitIndex
	pstyle   styled.ParagraphStyle
	timeline *styled.Timeline
	bidi     *bidirun.Paragraph
	bounds   *linebreak.Boundaries
	items    []itemized.Item
	provider metrics.Provider
	advances []float64             // one per UTF-16 code unit
	vmetrics []metrics.LineMetrics // per style index
	ellipsis float64               // advance of the ellipsis in the base style
	minW     float64
	maxW     float64
}

// Prepare measures a paragraph of text. Character styles of text are resolved
// against base. The paragraph style must have a direction policy; unset
// directions result in textlayout.ErrInvalidArgument.
func Prepare(text *styled.AnnotatedText, base styled.TextStyle, pstyle styled.ParagraphStyle,
	provider metrics.Provider) (*Intrinsics, error) {
	//
	if text == nil || provider == nil {
		return nil, fmt.Errorf("text and metrics provider must not be nil: %w", textlayout.ErrInvalidArgument)
	}
	if pstyle.Direction == styled.DirectionUnset {
		return nil, fmt.Errorf("paragraph has no direction policy: %w", textlayout.ErrInvalidArgument)
	}
	ix := text.Index()
	tl, err := styled.Resolve(base, text.Spans(), ix.Len())
	if err != nil {
		return nil, err
	}
	in := &Intrinsics{
		text:     text,
		ix:       ix,
		pstyle:   pstyle,
		timeline: tl,
		bidi:     bidirun.Segment(ix, pstyle.Direction),
		bounds:   linebreak.Analyze(ix),
		provider: provider,
	}
	in.items = itemized.Itemize(tl, in.bidi)
	in.measure()
	in.ellipsis = sum(provider.MeasureAdvances(metrics.Run{Text: Ellipsis, Style: tl.Base()}))
	in.minW = linebreak.MinIntrinsicWidth(in.bounds, in.advances) + max(in.firstIndent(), in.restIndent())
	in.maxW = in.maxIntrinsic()
	tracer().Debugf("prepared paragraph of %d positions, %d items, intrinsic width %.2f…%.2f",
		ix.Len(), len(in.items), in.minW, in.maxW)
	return in, nil
}

// measure asks the provider for the advances of every item and distributes
// them to UTF-16 positions. Letter spacing is added after every grapheme
// cluster. Hard line separators have no width.
func (in *Intrinsics) measure() {
	in.advances = make([]float64, in.ix.Len())
	in.vmetrics = make([]metrics.LineMetrics, in.timeline.StyleCount())
	have := make([]bool, in.timeline.StyleCount())
	in.vmetrics[0], have[0] = in.provider.LineMetrics(in.timeline.Base()), true
	for _, item := range in.items {
		runes := in.ix.RunesOf(item.Range)
		adv := in.provider.MeasureAdvances(metrics.Run{
			Text:  in.ix.Substring(item.Range),
			Style: item.Style,
			RTL:   item.RTL(),
		})
		if len(adv) != len(runes) {
			tracer().Errorf("metrics provider returned %d advances for %d runes", len(adv), len(runes))
		}
		k0 := in.ix.RuneIndex(item.Start)
		for k := 0; k < len(runes) && k < len(adv); k++ {
			in.advances[in.ix.UnitOffset(k0+k)] = adv[k]
		}
		if ls := item.Style.LetterSpacing; ls != 0 {
			for i := item.Start; i < item.End; i++ {
				if in.bounds.IsClusterStart(i) {
					in.advances[i] += ls
				}
			}
		}
		if !have[item.StyleIndex] {
			in.vmetrics[item.StyleIndex] = in.provider.LineMetrics(item.Style)
			have[item.StyleIndex] = true
		}
	}
	for i := range in.advances {
		if in.bounds.IsSeparator(i) {
			in.advances[i] = 0
		}
	}
}

func (in *Intrinsics) maxIntrinsic() float64 {
	res, err := linebreak.Break(in.bounds, in.advances, linebreak.Params{
		Width:       math.Inf(1),
		FirstIndent: in.firstIndent(),
		RestIndent:  in.restIndent(),
	})
	if err != nil {
		tracer().Errorf("cannot break paragraph for intrinsic width: %v", err)
		return 0
	}
	var w float64
	for _, l := range res.Lines {
		w = max(w, l.Indent+l.Width)
	}
	return w
}

func (in *Intrinsics) firstIndent() float64 {
	return in.pstyle.Indent.FirstLine.Or(0)
}

func (in *Intrinsics) restIndent() float64 {
	return in.pstyle.Indent.RestLine.Or(0)
}

// MinIntrinsicWidth returns the width of the widest word, including its
// trailing whitespace, plus indentation.
func (in *Intrinsics) MinIntrinsicWidth() float64 {
	return in.minW
}

// MaxIntrinsicWidth returns the width of the paragraph if it is broken at
// hard line separators only.
func (in *Intrinsics) MaxIntrinsicWidth() float64 {
	return in.maxW
}

// Len returns the length of the paragraph's text in UTF-16 code units.
func (in *Intrinsics) Len() int {
	return in.ix.Len()
}

// Text returns the paragraph's text.
func (in *Intrinsics) Text() *styled.AnnotatedText {
	return in.text
}

// Direction returns the resolved overall direction of the paragraph.
func (in *Intrinsics) Direction() bidirun.Direction {
	return in.bidi.Direction()
}

// New prepares and lays out a paragraph in one step.
func New(text *styled.AnnotatedText, base styled.TextStyle, pstyle styled.ParagraphStyle,
	provider metrics.Provider, c Constraints, opts ...Option) (*Layout, error) {
	//
	in, err := Prepare(text, base, pstyle, provider)
	if err != nil {
		return nil, err
	}
	return in.Layout(c, opts...)
}

func sum(a []float64) (s float64) {
	for _, x := range a {
		s += x
	}
	return
}
