package shaper

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/styled"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func style(size float64) *styled.Resolved {
	return &styled.Resolved{Family: "Go", Size: size, Weight: styled.WeightNormal, Slant: styled.SlantNormal}
}

func TestShapedAdvances(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	p, err := New(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	adv := p.MeasureAdvances(metrics.Run{Text: "im\n", Style: style(20)})
	if len(adv) != 3 {
		t.Fatalf("expected one advance per rune, have %v", adv)
	}
	if adv[0] <= 0 || adv[0] >= adv[1] {
		t.Errorf("expected 'i' to be narrower than 'm', have %v", adv)
	}
	if adv[2] != 0 {
		t.Errorf("expected newline to have zero width, have %g", adv[2])
	}
	if len(p.MeasureAdvances(metrics.Run{Text: "", Style: style(20)})) != 0 {
		t.Errorf("expected no advances for empty text")
	}
}

func TestShapedRTL(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	p, err := New(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	ltr := p.MeasureAdvances(metrics.Run{Text: "abc", Style: style(12)})
	rtl := p.MeasureAdvances(metrics.Run{Text: "abc", Style: style(12), RTL: true})
	for i := range ltr {
		if rtl[i] <= 0 {
			t.Errorf("expected positive advance for rune %d in RTL run, have %v", i, rtl)
		}
	}
	if len(rtl) != len(ltr) {
		t.Errorf("expected advances in logical order for both directions")
	}
}

func TestShaperLineMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	p, err := New(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	m10, m20 := p.LineMetrics(style(10)), p.LineMetrics(style(20))
	if m10.Ascent <= 0 || m10.Descent <= 0 {
		t.Errorf("implausible line metrics %v", m10)
	}
	if d := m20.Ascent - 2*m10.Ascent; d > 1e-6 || d < -1e-6 {
		t.Errorf("expected metrics to scale linearly, have %v and %v", m10, m20)
	}
}

func TestShaperFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	if _, err := New([]byte("no font")); err == nil {
		t.Errorf("expected error for invalid font data")
	}
	p, err := New(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	bold := metrics.Descriptor{Family: "Go", Weight: styled.WeightBold, Slant: styled.SlantNormal}
	if f, _ := p.LoadFont(bold); f.Descriptor().Family != DefaultFamily {
		t.Errorf("expected unregistered font to resolve to default, have %v", f.Descriptor())
	}
	if err := p.Register(bold, gobold.TTF); err != nil {
		t.Fatal(err)
	}
	if f, _ := p.LoadFont(bold); f.Descriptor() != bold {
		t.Errorf("expected registered bold font, have %v", f.Descriptor())
	}
	st := style(20)
	st.Features = []styled.Feature{{Tag: "kern", Value: 0}, {Tag: "bad", Value: 1}}
	if adv := p.MeasureAdvances(metrics.Run{Text: "AV", Style: st}); len(adv) != 2 {
		t.Errorf("expected shaping with features to succeed, have %v", adv)
	}
}
