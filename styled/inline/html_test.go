package inline

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/styled"
	"golang.org/x/net/html"
)

func TestHTMLFromTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	r := strings.NewReader(`
	<!DOCTYPE html>
	<html>
	<head><title>Ignored</title></head>
	<body>

	<h1>My First Heading</h1>
	<p>My <b>first</b> paragraph.</p>

	</body>
	</html>
`)
	doc, err := html.Parse(r)
	if err != nil {
		t.Fatal(err.Error())
	}
	text, err := InnerText(doc)
	if err != nil {
		t.Fatal(err.Error())
	}
	t.Logf("text = '%s'", text)
	if text.String() != "My First HeadingMy first paragraph." {
		t.Errorf("unexpected inner text %q", text)
	}
	paras := text.ParagraphStyles()
	if len(paras) != 2 || paras[0].Range != (textlayout.Range{Start: 0, End: 16}) ||
		paras[1].Range != (textlayout.Range{Start: 16, End: 35}) {
		t.Errorf("unexpected paragraphs %v", paras)
	}
	spans := text.Spans()
	if len(spans) != 2 || spans[1].Range != (textlayout.Range{Start: 19, End: 24}) ||
		spans[1].Style.Weight != styled.WeightBold {
		t.Errorf("expected heading and 'first' to be bold, have %v", spans)
	}
	if _, err := InnerText(nil); err == nil {
		t.Errorf("expected error for nil node")
	}
}

func TestHTMLParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	r := strings.NewReader(`<p dir="rtl" align="center">My   <i>first</i>
	paragraph.<br>Next line</p>`)
	text, err := TextFromHTML(r)
	if err != nil {
		t.Fatal(err.Error())
	}
	t.Logf("text = '%s'", text)
	if text.String() != "My first paragraph.\u2028Next line" {
		t.Errorf("unexpected text %q", text)
	}
	paras := text.ParagraphStyles()
	if len(paras) != 1 || paras[0].Style.Direction != styled.DirectionRTL ||
		paras[0].Style.Align != styled.AlignCenter {
		t.Errorf("unexpected paragraph styles %v", paras)
	}
	spans := text.Spans()
	if len(spans) != 1 || spans[0].Style.Slant != styled.SlantItalic {
		t.Errorf("expected one italic span, have %v", spans)
	}
}
