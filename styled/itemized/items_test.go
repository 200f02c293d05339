package itemized

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/bidirun"
	"github.com/npillmayer/textlayout/styled"
)

func TestItemize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	s := "ab cdאב"
	ix := textlayout.IndexString(s)
	bold := styled.TextStyle{Weight: styled.WeightBold}
	tl, err := styled.Resolve(styled.TextStyle{}, []styled.SpanStyle{
		{Style: bold, Range: textlayout.Range{Start: 3, End: 6}},
	}, ix.Len())
	if err != nil {
		t.Fatal(err)
	}
	para := bidirun.Segment(ix, styled.DirectionLTR)
	items := Itemize(tl, para)
	expected := []textlayout.Range{{Start: 0, End: 3}, {Start: 3, End: 5}, {Start: 5, End: 6}, {Start: 6, End: 7}}
	if len(items) != len(expected) {
		t.Fatalf("expected %d items, have %v", len(expected), items)
	}
	for i, it := range items {
		if it.Range != expected[i] {
			t.Errorf("item %d: expected %v, have %v", i, expected[i], it)
		}
	}
	if items[0].RTL() || !items[2].RTL() || !items[2].Style.IsBold() || items[3].Style.IsBold() {
		t.Errorf("unexpected item attributes: %v", items)
	}
	clipped := Clip(items, textlayout.Range{Start: 4, End: 6})
	if len(clipped) != 2 || clipped[0].Range != (textlayout.Range{Start: 4, End: 5}) {
		t.Errorf("expected clipping to cut items, have %v", clipped)
	}
	iter := IterateItems(items)
	n := 0
	for iter.Next() {
		if st, from, to := iter.Style(); st == nil || to <= from {
			t.Errorf("iterator yields invalid item")
		}
		n++
	}
	if n != len(items) {
		t.Errorf("expected iterator to visit %d items, visited %d", len(items), n)
	}
}

func TestItemizeEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	ix := textlayout.IndexString("")
	tl, err := styled.Resolve(styled.TextStyle{}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if items := Itemize(tl, bidirun.Segment(ix, styled.DirectionAuto)); len(items) != 0 {
		t.Errorf("expected no items for empty text, have %v", items)
	}
}
