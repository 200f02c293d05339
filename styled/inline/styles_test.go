package inline

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout/styled"
)

func TestStyleSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	s := ItalicsStyle
	if s.String() != "i" {
		t.Errorf("expected italics to be named 'i', is %q", s)
	}
	s = s.Add(MarkedStyle)
	if s.String() != "i+mark" {
		t.Errorf("expected combined style 'i+mark', is %q", s)
	}
	if s.Minus(ItalicsStyle) != MarkedStyle {
		t.Errorf("expected only marked style to remain, have %v", s.Minus(ItalicsStyle))
	}
	if StyleFromHTMLName("strong") != StrongStyle || StyleFromHTMLName("span") != PlainStyle {
		t.Errorf("HTML element names not mapped correctly")
	}
}

func TestTextStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	ts := StrongStyle.Add(EmStyle).Add(SmallStyle).TextStyle()
	if ts.Weight != styled.WeightBold || ts.Slant != styled.SlantItalic || ts.SizeScale != 0.8 {
		t.Errorf("unexpected text style %+v", ts)
	}
	if !PlainStyle.TextStyle().IsZero() {
		t.Errorf("expected plain style to translate to a zero text style")
	}
	if BigStyle.Add(SmallStyle).TextStyle().SizeScale != 0 {
		t.Errorf("expected big and small to cancel out")
	}
}
