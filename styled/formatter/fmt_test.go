package formatter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/styled"
	"github.com/npillmayer/textlayout/styled/inline"
	"github.com/npillmayer/uax/uax11"
)

func TestConsoleLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	color.NoColor = true
	text := styled.TextFromString("Hello World, how are you?")
	config := &Config{
		LineWidth: 8,
		Context:   uax11.LatinContext,
		Debug:     true,
	}
	var out bytes.Buffer
	if err := Output(context.Background(), text, &out, config, NewConsoleFixedWidthFormat(nil, nil)); err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", out.String())
	if out.String() != "Hello\nWorld,\nhow are\nyou?\n" {
		t.Errorf("unexpected console output %q", out.String())
	}
}

func TestConsoleReordering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	color.NoColor = true
	text := styled.TextFromString("abc \u05D0\u05D1\u05D2")
	config := &Config{LineWidth: 20}
	var out bytes.Buffer
	console := NewConsoleFixedWidthFormat(nil, nil)
	if console.NeedsReordering() != ReorderVisual {
		t.Errorf("expected console with default codes to need reordering")
	}
	if err := Output(context.Background(), text, &out, config, console); err != nil {
		t.Fatal(err)
	}
	if out.String() != "abc \u05D2\u05D1\u05D0\n" {
		t.Errorf("expected Hebrew to be output in visual order, have %q", out.String())
	}
	out.Reset()
	explicit := NewConsoleFixedWidthFormat(&ExplicitCodes, nil)
	if err := Output(context.Background(), text, &out, config, explicit); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[2 k\u05D0\u05D1\u05D2") {
		t.Errorf("expected Hebrew in logical order after RTL code, have %q", out.String())
	}
}

func TestHTMLOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	text, err := inline.TextFromHTML(strings.NewReader("<p>a <b>bold</b> word</p>"))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := NewHTML(ReorderNone).Print(text, &out, &Config{LineWidth: 40}); err != nil {
		t.Fatal(err)
	}
	expected := "<pre>\n" +
		`<span dir="ltr">a </span><span dir="ltr"><b>bold</b></span><span dir="ltr"> word</span>` +
		"\n</pre>\n"
	if out.String() != expected {
		t.Errorf("unexpected HTML output %q", out.String())
	}
}

func TestStyleMapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	bold := &styled.Resolved{Weight: styled.WeightBold}
	boldItalic := &styled.Resolved{Weight: styled.WeightBold, Slant: styled.SlantItalic}
	if EmphasisOf(nil) != Plain || EmphasisOf(bold) != Bold || EmphasisOf(boldItalic) != BoldItalic {
		t.Errorf("emphasis not derived correctly from resolved styles")
	}
	if s := HTMLStyleOf(boldItalic).String(); s != "<b><i>" {
		t.Errorf("expected tags <b><i>, have %q", s)
	}
	if s := HTMLStyleOf(boldItalic).tags(true); s != "</i></b>" {
		t.Errorf("expected closing tags </i></b>, have %q", s)
	}
}

func TestOutputErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	var out bytes.Buffer
	err := Output(context.Background(), nil, &out, &Config{LineWidth: 10}, NewHTML(ReorderNone))
	if !errors.Is(err, textlayout.ErrInvalidArgument) {
		t.Errorf("expected invalid argument error for missing text, have %v", err)
	}
	err = Output(context.Background(), styled.TextFromString("x"), &out, &Config{}, NewHTML(ReorderNone))
	if !errors.Is(err, textlayout.ErrInvalidArgument) {
		t.Errorf("expected invalid argument error for zero line width, have %v", err)
	}
}
