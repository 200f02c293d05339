package multipara

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/guiguan/caster"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/paragraph"
	"github.com/npillmayer/textlayout/styled"
)

var mono = metrics.Monospace(10, 8, 2, 0)

var auto = styled.ParagraphStyle{Direction: styled.DirectionAuto}

func text(t *testing.T, s string, paras ...textlayout.Range) *styled.AnnotatedText {
	t.Helper()
	var spans []styled.ParagraphSpan
	for _, r := range paras {
		spans = append(spans, styled.ParagraphSpan{Range: r})
	}
	txt, err := styled.NewText(s, nil, spans)
	if err != nil {
		t.Fatal(err)
	}
	return txt
}

func TestStacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	txt := text(t, "abcdef", textlayout.Range{Start: 0, End: 3}, textlayout.Range{Start: 3, End: 6})
	l, err := New(context.Background(), txt, styled.TextStyle{}, auto, paragraph.Constraints{Width: 30}, Provider(mono))
	if err != nil {
		t.Fatal(err)
	}
	if l.LineCount() != 2 || l.Height() != 20 {
		t.Fatalf("expected 2 lines of total height 20, have %d/%g", l.LineCount(), l.Height())
	}
	if k, _ := l.LineForOffset(3); k != 1 {
		t.Errorf("expected start of second paragraph on line 1, is on %d", k)
	}
	if k, _ := l.LineForOffset(2); k != 0 {
		t.Errorf("expected end of first paragraph on line 0, is on %d", k)
	}
	if y, _ := l.LineTop(1); y != 10 {
		t.Errorf("expected line 1 at y=10, is at %g", y)
	}
	if b, _ := l.LineBaseline(1); b != 18 || l.LastBaseline() != 18 {
		t.Errorf("expected baseline of line 1 at 18, is at %g", b)
	}
	if i := l.OffsetForPosition(2, 15); i != 3 {
		t.Errorf("expected point (2,15) to map to 3, is %d", i)
	}
	if box, _ := l.BoundingBox(4); box != (textlayout.Rect{Left: 10, Top: 10, Right: 20, Bottom: 20}) {
		t.Errorf("unexpected bounding box %v", box)
	}
	path, _ := l.PathForRange(1, 5)
	expected := []textlayout.Rect{
		{Left: 10, Top: 0, Right: 30, Bottom: 10},
		{Left: 0, Top: 10, Right: 20, Bottom: 20},
	}
	if len(path) != 2 || path[0] != expected[0] || path[1] != expected[1] {
		t.Errorf("expected selection across paragraphs %v, have %v", expected, path)
	}
	if start, _ := l.LineStart(1); start != 3 {
		t.Errorf("expected line 1 to start at 3, starts at %d", start)
	}
	if _, err := l.LineStart(2); !errors.Is(err, textlayout.ErrIndexOutOfRange) {
		t.Errorf("expected line 2 to be out of range, have %v", err)
	}
}

func TestEmptyParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	txt := text(t, "abcdef",
		textlayout.Range{Start: 0, End: 3},
		textlayout.Range{Start: 3, End: 3},
		textlayout.Range{Start: 3, End: 6})
	l, err := New(context.Background(), txt, styled.TextStyle{}, auto, paragraph.Constraints{Width: 100}, Provider(mono))
	if err != nil {
		t.Fatal(err)
	}
	if l.LineCount() != 3 || l.Height() != 30 {
		t.Fatalf("expected 3 lines of height 10, have %d/%g", l.LineCount(), l.Height())
	}
	start, _ := l.LineStart(1)
	end, _ := l.LineEnd(1, false)
	if start != 3 || end != 3 {
		t.Errorf("expected empty line [3,3), have [%d,%d)", start, end)
	}
	if r, _ := l.CursorRect(3); r.Top != 20 {
		t.Errorf("expected position 3 to belong to the last paragraph, cursor is at %v", r)
	}
}

func TestDirectionPolicy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	txt := text(t, "ab")
	_, err := New(context.Background(), txt, styled.TextStyle{}, styled.ParagraphStyle{}, paragraph.Constraints{Width: 100}, Provider(mono))
	if !errors.Is(err, textlayout.ErrInvalidArgument) {
		t.Errorf("expected missing direction to be invalid, have %v", err)
	}
	rtl := styled.ParagraphSpan{Style: styled.ParagraphStyle{Direction: styled.DirectionRTL}, Range: textlayout.Range{Start: 0, End: 2}}
	txt, _ = styled.NewText("ab", nil, []styled.ParagraphSpan{rtl})
	l, err := New(context.Background(), txt, styled.TextStyle{}, styled.ParagraphStyle{}, paragraph.Constraints{Width: 100}, Provider(mono))
	if err != nil {
		t.Fatalf("expected paragraph's own direction to suffice, have %v", err)
	}
	if d, _ := l.ParagraphDirection(0); d.String() != "RTL" {
		t.Errorf("expected RTL paragraph, have %s", d)
	}
}

func TestLineBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	txt := text(t, "aaa\nbbbccc", textlayout.Range{Start: 0, End: 7}, textlayout.Range{Start: 7, End: 10})
	l, err := New(context.Background(), txt, styled.TextStyle{}, auto, paragraph.Constraints{Width: 100},
		Provider(mono), MaxLines(2), Concurrent(4))
	if err != nil {
		t.Fatal(err)
	}
	if !l.DidExceedMaxLines() || l.LineCount() != 2 || len(l.Paragraphs()) != 1 {
		t.Fatalf("expected 2 lines of first paragraph only, have %d lines, exceeded=%v", l.LineCount(), l.DidExceedMaxLines())
	}
	if k, _ := l.LineForOffset(8); k != 1 {
		t.Errorf("expected truncated text on last line, is on %d", k)
	}
	if box, _ := l.BoundingBox(8); box != (textlayout.Rect{Left: 30, Top: 10, Right: 30, Bottom: 20}) {
		t.Errorf("expected empty box at end of last line, have %v", box)
	}
	l, _ = New(context.Background(), txt, styled.TextStyle{}, auto, paragraph.Constraints{Width: 100},
		Provider(mono), MaxLines(3))
	if l.DidExceedMaxLines() || l.LineCount() != 3 {
		t.Errorf("expected 3 lines within budget, have %d lines, exceeded=%v", l.LineCount(), l.DidExceedMaxLines())
	}
}

func TestInfiniteWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	txt := text(t, "abcdab", textlayout.Range{Start: 0, End: 4}, textlayout.Range{Start: 4, End: 6})
	ps := styled.ParagraphStyle{Direction: styled.DirectionAuto, Align: styled.AlignRight}
	l, err := New(context.Background(), txt, styled.TextStyle{}, ps, paragraph.Constraints{Width: math.Inf(1)}, Provider(mono))
	if err != nil {
		t.Fatal(err)
	}
	if l.Width() != 40 {
		t.Errorf("expected width of widest paragraph, is %g", l.Width())
	}
	if x, _ := l.LineLeft(1); x != 20 {
		t.Errorf("expected short paragraph right aligned at 20, is at %g", x)
	}
}

func TestCancellation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	txt := text(t, "abcdef", textlayout.Range{Start: 0, End: 3}, textlayout.Range{Start: 3, End: 6})
	l, err := New(ctx, txt, styled.TextStyle{}, auto, paragraph.Constraints{Width: 30}, Provider(mono))
	if !errors.Is(err, context.Canceled) || l != nil {
		t.Errorf("expected cancelled layout, have %v", err)
	}
}

func TestConcurrentProgress(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	cast := caster.New(context.Background())
	defer cast.Close()
	events, ok := cast.Sub(context.Background(), 16)
	if !ok {
		t.Fatal("cannot subscribe to progress")
	}
	txt := text(t, "one two three",
		textlayout.Range{Start: 0, End: 4},
		textlayout.Range{Start: 4, End: 8},
		textlayout.Range{Start: 8, End: 13})
	l, err := New(context.Background(), txt, styled.TextStyle{}, auto, paragraph.Constraints{Width: 100},
		Provider(mono), Concurrent(3), Progress(cast))
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]bool)
	for len(seen) < 3 {
		select {
		case msg := <-events:
			ev := msg.(ProgressEvent)
			if ev.Total != 3 || ev.Lines != 1 {
				t.Errorf("unexpected progress event %v", ev)
			}
			seen[ev.Paragraph] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("expected 3 progress events, have %d", len(seen))
		}
	}
	if l.LineCount() != 3 || l.Height() != 30 {
		t.Errorf("expected 3 stacked paragraphs, have %d lines of height %g", l.LineCount(), l.Height())
	}
}
