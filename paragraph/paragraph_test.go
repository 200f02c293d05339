package paragraph

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/linebreak"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/styled"
)

var mono = metrics.Monospace(10, 8, 2, 0)

var auto = styled.ParagraphStyle{Direction: styled.DirectionAuto}

func layout(t *testing.T, s string, pstyle styled.ParagraphStyle, width float64, opts ...Option) *Layout {
	t.Helper()
	l, err := New(styled.TextFromString(s), styled.TextStyle{}, pstyle, mono, Constraints{Width: width}, opts...)
	if err != nil {
		t.Fatalf("layout of %q failed: %v", s, err)
	}
	return l
}

func TestWidthAccounting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	in, err := Prepare(styled.TextFromString("abcde"), styled.TextStyle{}, auto, mono)
	if err != nil {
		t.Fatal(err)
	}
	if in.MinIntrinsicWidth() != 50 || in.MaxIntrinsicWidth() != 50 {
		t.Errorf("expected intrinsic widths of 50, have %g/%g", in.MinIntrinsicWidth(), in.MaxIntrinsicWidth())
	}
	for _, w := range []float64{50, 80, math.Inf(1)} {
		l, err := in.Layout(Constraints{Width: w})
		if err != nil {
			t.Fatal(err)
		}
		if l.Width() != 50 || l.LineCount() != 1 {
			t.Errorf("width %g: expected 1 line of width 50, have %d lines of width %g", w, l.LineCount(), l.Width())
		}
	}
	l, _ := in.Layout(Constraints{Width: 80}, FillWidth())
	if l.Width() != 80 {
		t.Errorf("expected layout to fill width 80, is %g", l.Width())
	}
}

func TestRTLMirroring(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	l := layout(t, "\u05D0\u05D1\u05D2", auto, 30)
	for i := 0; i <= 3; i++ {
		x, err := l.PrimaryHorizontal(i)
		if err != nil {
			t.Fatal(err)
		}
		if x != 30-float64(i)*10 {
			t.Errorf("primary horizontal of %d: expected %g, have %g", i, 30-float64(i)*10, x)
		}
		if x2, _ := l.SecondaryHorizontal(i); x2 != x {
			t.Errorf("secondary horizontal of %d: expected %g, have %g", i, x, x2)
		}
	}
	if box, _ := l.BoundingBox(0); box.Left != 20 || box.Right != 30 {
		t.Errorf("expected first character at the right edge, is at %v", box)
	}
}

func TestLineBreakCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	for _, tc := range []struct {
		n     int
		width float64
		lines int
	}{
		{10, 100, 1},
		{7, 40, 2},
		{23, 50, 5},
		{12, 60, 2},
	} {
		s := ""
		for range tc.n {
			s += "x"
		}
		l := layout(t, s, auto, tc.width)
		if l.LineCount() != tc.lines {
			t.Errorf("%d characters at width %g: expected %d lines, have %d", tc.n, tc.width, tc.lines, l.LineCount())
		}
	}
}

func TestMaxLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	l := layout(t, "one\ntwo\nthree\nfour", auto, 1000, MaxLines(3))
	if !l.DidExceedMaxLines() || l.LineCount() != 3 {
		t.Errorf("expected 3 lines and exceeded max lines, have %d/%v", l.LineCount(), l.DidExceedMaxLines())
	}
	if k, _ := l.LineForOffset(16); k != 2 {
		t.Errorf("expected truncated text to belong to last line, is on line %d", k)
	}
	l = layout(t, "one\ntwo\nthree\nfour", auto, 1000, MaxLines(4))
	if l.DidExceedMaxLines() || l.LineCount() != 4 {
		t.Errorf("expected 4 lines, have %d/%v", l.LineCount(), l.DidExceedMaxLines())
	}
	l = layout(t, "one\ntwo", auto, 100, MaxLines(1), Overflow(linebreak.OverflowEllipsis))
	lines := l.Lines()
	if !l.DidExceedMaxLines() || !lines[0].IsEllipsized() || lines[0].EllipsisAt != 3 || lines[0].Width != 40 {
		t.Errorf("expected ellipsis after 'one', have %v at %d", lines[0], lines[0].EllipsisAt)
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	for _, s := range []string{"hello world", "\u05D0\u05D1\u05D2 \u05D3"} {
		l := layout(t, s, auto, 1000)
		for i := 0; i <= l.Len(); i++ {
			x, _ := l.PrimaryHorizontal(i)
			if j := l.OffsetForPosition(x, 5); j != i {
				t.Errorf("%q: offset %d maps to x=%g, maps back to %d", s, i, x, j)
			}
		}
	}
}

func TestOffsetClamping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	l := layout(t, "aaa bbb", auto, 40)
	if l.LineCount() != 2 {
		t.Fatalf("expected 2 lines, have %d", l.LineCount())
	}
	if i := l.OffsetForPosition(-10, -5); i != 0 {
		t.Errorf("expected top-left to map to 0, is %d", i)
	}
	if i := l.OffsetForPosition(1000, 1000); i != 7 {
		t.Errorf("expected bottom-right to map to 7, is %d", i)
	}
	if i := l.OffsetForPosition(35, 5); i != 3 {
		t.Errorf("expected end of first line to map before the space, is %d", i)
	}
	if k, _ := l.LineForOffset(4); k != 1 {
		t.Errorf("expected offset 4 on line 1, is on %d", k)
	}
	r, _ := l.CursorRect(4)
	if r != (textlayout.Rect{Left: -2, Top: 10, Right: 2, Bottom: 20}) {
		t.Errorf("unexpected cursor rect %v", r)
	}
}

func TestBidiSelectionPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	l := layout(t, "Hello\u05E9\u05DC\u05D5\u05DD", auto, math.Inf(1))
	path, err := l.PathForRange(2, 7)
	if err != nil {
		t.Fatal(err)
	}
	expected := []textlayout.Rect{
		{Left: 20, Top: 0, Right: 50, Bottom: 10},
		{Left: 70, Top: 0, Right: 90, Bottom: 10},
	}
	if len(path) != len(expected) {
		t.Fatalf("expected 2 rectangles, have %v", path)
	}
	for k := range path {
		if path[k] != expected[k] {
			t.Errorf("rectangle %d: expected %v, have %v", k, expected[k], path[k])
		}
	}
	if path, _ = l.PathForRange(3, 3); len(path) != 0 {
		t.Errorf("expected empty path for empty selection, have %v", path)
	}
	// caret between the runs
	p, _ := l.PrimaryHorizontal(5)
	s, _ := l.SecondaryHorizontal(5)
	if p != 50 || s != 90 {
		t.Errorf("expected carets at 50 and 90 at run boundary, have %g and %g", p, s)
	}
}

func TestEmptyParagraphHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	empty := layout(t, "", auto, 100)
	space := layout(t, " ", auto, 100)
	if empty.LineCount() != 1 || empty.Height() != space.Height() || empty.Height() != 10 {
		t.Errorf("expected empty paragraph of one line with height 10, have %d lines, height %g",
			empty.LineCount(), empty.Height())
	}
	if r, err := empty.CursorRect(0); err != nil || r.Bottom != 10 {
		t.Errorf("expected cursor in empty paragraph, have %v / %v", r, err)
	}
	if i := empty.OffsetForPosition(50, 5); i != 0 {
		t.Errorf("expected offset 0 in empty paragraph, is %d", i)
	}
}

func TestErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	text := styled.TextFromString("abc")
	for _, w := range []float64{0, -1, math.NaN()} {
		if _, err := New(text, styled.TextStyle{}, auto, mono, Constraints{Width: w}); !errors.Is(err, textlayout.ErrInvalidArgument) {
			t.Errorf("width %g: expected invalid argument, have %v", w, err)
		}
	}
	if _, err := New(text, styled.TextStyle{}, auto, mono, Constraints{Width: 10}, MaxLines(0)); !errors.Is(err, textlayout.ErrInvalidArgument) {
		t.Errorf("expected max lines 0 to be invalid, have %v", err)
	}
	if _, err := New(text, styled.TextStyle{}, styled.ParagraphStyle{}, mono, Constraints{Width: 10}); !errors.Is(err, textlayout.ErrInvalidArgument) {
		t.Errorf("expected unset direction to be invalid, have %v", err)
	}
	l := layout(t, "abc", auto, 100)
	if _, err := l.BoundingBox(3); !errors.Is(err, textlayout.ErrIndexOutOfRange) {
		t.Errorf("expected bounding box of end of text to be out of range, have %v", err)
	}
	if _, err := l.BoundingBox(-1); !errors.Is(err, textlayout.ErrIndexOutOfRange) {
		t.Errorf("expected bounding box of -1 to be out of range, have %v", err)
	}
	if _, err := l.LineForOffset(3); !errors.Is(err, textlayout.ErrIndexOutOfRange) {
		t.Errorf("expected line of end of text to be out of range, have %v", err)
	}
	if _, err := l.CursorRect(3); err != nil {
		t.Errorf("expected cursor at end of text to be valid, have %v", err)
	}
	if _, err := l.CursorRect(4); !errors.Is(err, textlayout.ErrIndexOutOfRange) {
		t.Errorf("expected cursor beyond end of text to be out of range, have %v", err)
	}
	if _, err := l.PathForRange(2, 1); !errors.Is(err, textlayout.ErrInvalidRange) {
		t.Errorf("expected inverted selection to be invalid, have %v", err)
	}
	if _, err := l.LineTop(1); !errors.Is(err, textlayout.ErrIndexOutOfRange) {
		t.Errorf("expected line 1 to be out of range, have %v", err)
	}
}

func TestAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	for _, tc := range []struct {
		text  string
		align styled.Alignment
		left  float64
	}{
		{"ab", styled.AlignStart, 0},
		{"ab", styled.AlignLeft, 0},
		{"ab", styled.AlignCenter, 40},
		{"ab", styled.AlignRight, 80},
		{"ab", styled.AlignEnd, 80},
		{"\u05D0\u05D1", styled.AlignStart, 80},
		{"\u05D0\u05D1", styled.AlignEnd, 0},
		{"\u05D0\u05D1", styled.AlignLeft, 0},
	} {
		ps := styled.ParagraphStyle{Direction: styled.DirectionAuto, Align: tc.align}
		l := layout(t, tc.text, ps, 100, FillWidth())
		if x, _ := l.LineLeft(0); x != tc.left {
			t.Errorf("%q aligned %s: expected line at %g, is at %g", tc.text, tc.align, tc.left, x)
		}
	}
}

func TestJustify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	ps := styled.ParagraphStyle{Direction: styled.DirectionLTR, Align: styled.AlignJustify}
	l := layout(t, "aa bb cc dd", ps, 60, FillWidth())
	if l.LineCount() != 2 {
		t.Fatalf("expected 2 lines, have %d", l.LineCount())
	}
	if w, _ := l.LineWidth(0); w != 60 {
		t.Errorf("expected first line to be stretched to 60, is %g", w)
	}
	if w, _ := l.LineWidth(1); w != 50 {
		t.Errorf("expected last line not to be stretched, is %g", w)
	}
	if box, _ := l.BoundingBox(2); box.Width() != 20 {
		t.Errorf("expected stretched space of width 20, is %v", box)
	}
	if box, _ := l.BoundingBox(3); box.Left != 40 {
		t.Errorf("expected second word at 40, is at %v", box)
	}
}

func TestIndent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	ps := styled.ParagraphStyle{Direction: styled.DirectionAuto}
	ps.Indent.FirstLine = styled.Some(20.0)
	l := layout(t, "abc", ps, 100)
	if x, _ := l.LineLeft(0); x != 20 || l.Width() != 50 {
		t.Errorf("expected indented line at 20 in layout of width 50, is at %g in %g", x, l.Width())
	}
	l = layout(t, "\u05D0\u05D1", ps, 100, FillWidth())
	if x, _ := l.LineRight(0); x != 80 {
		t.Errorf("expected RTL line indented from the right, ends at %g", x)
	}
	in, _ := Prepare(styled.TextFromString("abc def"), styled.TextStyle{}, ps, mono)
	if in.MinIntrinsicWidth() != 60 || in.MaxIntrinsicWidth() != 90 {
		t.Errorf("expected indent in intrinsic widths, have %g/%g", in.MinIntrinsicWidth(), in.MaxIntrinsicWidth())
	}
}

func TestEllipsisWithoutWrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	l := layout(t, "abcdefghij", auto, 50, SoftWrap(false), Overflow(linebreak.OverflowEllipsis))
	if ok, _ := l.IsLineEllipsized(0); !ok || l.LineCount() != 1 {
		t.Fatalf("expected a single ellipsized line")
	}
	if box, _ := l.BoundingBox(6); box.Width() != 0 || box.Left != 40 {
		t.Errorf("expected hidden character to collapse into ellipsis, is %v", box)
	}
	segs, _ := l.Segments(0)
	if len(segs) != 2 || segs[0].Range != (textlayout.Range{Start: 0, End: 4}) || !segs[1].Ellipsis || segs[1].X != 40 {
		t.Errorf("expected text and ellipsis segments, have %v", segs)
	}
	if i := l.OffsetForPosition(45, 5); i != 4 {
		t.Errorf("expected click on ellipsis to map to 4, is %d", i)
	}
	if end, _ := l.LineEnd(0, true); end != 4 {
		t.Errorf("expected visible end 4, is %d", end)
	}
}

func TestHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	text := styled.TextFromString("a\nb\nc")
	in, _ := Prepare(text, styled.TextStyle{}, auto, mono)
	for _, tc := range []struct {
		c      Constraints
		height float64
	}{
		{Constraints{Width: 100}, 30},
		{Constraints{Width: 100, MinHeight: 50}, 50},
		{Constraints{Width: 100, MaxHeight: 20}, 20},
	} {
		l, err := in.Layout(tc.c)
		if err != nil {
			t.Fatal(err)
		}
		if l.Height() != tc.height {
			t.Errorf("%v: expected height %g, have %g", tc.c, tc.height, l.Height())
		}
	}
	l, _ := in.Layout(Constraints{Width: 100})
	if l.FirstBaseline() != 8 || l.LastBaseline() != 28 {
		t.Errorf("expected baselines 8 and 28, have %g and %g", l.FirstBaseline(), l.LastBaseline())
	}
	if k := l.LineForVerticalPosition(15); k != 1 {
		t.Errorf("expected y=15 on line 1, is %d", k)
	}
	ps := styled.ParagraphStyle{Direction: styled.DirectionAuto, LineHeight: 20}
	l = layout(t, "a", ps, 100)
	if l.Height() != 20 || l.FirstBaseline() != 13 {
		t.Errorf("expected fixed line height 20 with baseline 13, have %g/%g", l.Height(), l.FirstBaseline())
	}
}

func TestSegmentsAndWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	bold := styled.SpanStyle{Style: styled.TextStyle{Weight: styled.WeightBold}, Range: textlayout.Range{Start: 1, End: 3}}
	text, err := styled.NewText("abcd", []styled.SpanStyle{bold}, nil)
	if err != nil {
		t.Fatal(err)
	}
	l, err := New(text, styled.TextStyle{}, auto, mono, Constraints{Width: 100})
	if err != nil {
		t.Fatal(err)
	}
	segs, _ := l.Segments(0)
	if len(segs) != 3 || segs[1].X != 10 || segs[1].Width != 20 || !segs[1].Style.IsBold() {
		t.Errorf("expected bold segment in the middle, have %v", segs)
	}
	l = layout(t, "hello, world", auto, 1000)
	if r, _ := l.WordBoundary(8); r != (textlayout.Range{Start: 7, End: 12}) {
		t.Errorf("expected word [7,12) at 8, have %v", r)
	}
	if d, _ := l.BidiRunDirection(3); d.String() != "LTR" {
		t.Errorf("expected LTR character, have %s", d)
	}
}
