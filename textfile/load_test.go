package textfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guiguan/caster"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/styled"
)

const lorem = "Lorem ipsum dolor sit amet,\r\n  consectetur adipiscing elit.\n\n\n" +
	"Sed do eiusmod tempor\nincididunt ut labore.\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "lorem.txt")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	name := writeFile(t, lorem)
	cast := caster.New(context.Background())
	defer cast.Close()
	ch, ok := cast.Sub(context.Background(), 8)
	if !ok {
		t.Fatal("cannot subscribe to broadcaster")
	}
	text, err := Load(context.Background(), name, styled.ParagraphStyle{Align: styled.AlignJustify}, cast)
	if err != nil {
		t.Fatal(err)
	}
	first := "Lorem ipsum dolor sit amet, consectetur adipiscing elit.\n"
	if text.String() != first+"Sed do eiusmod tempor incididunt ut labore." {
		t.Errorf("unexpected text %q", text)
	}
	paras := text.ParagraphStyles()
	if len(paras) != 2 || paras[0].Range.End != len(first) || paras[1].Range.End != text.Len() {
		t.Fatalf("unexpected paragraphs %v", paras)
	}
	if paras[1].Style.Align != styled.AlignJustify {
		t.Errorf("expected paragraph style to be applied")
	}
	timeout := time.After(2 * time.Second)
	for k := range 2 {
		select {
		case msg := <-ch:
			e := msg.(LoadEvent)
			t.Logf("%v", e)
			if e.Paragraph != k || e.Lines != 2 || e.Range != paras[k].Range {
				t.Errorf("unexpected load event %v", e)
			}
		case <-timeout:
			t.Fatalf("no load event for paragraph %d", k)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayout")
	defer teardown()
	//
	if _, err := Load(context.Background(), t.TempDir(), styled.ParagraphStyle{}, nil); !errors.Is(err, textlayout.ErrInvalidArgument) {
		t.Errorf("expected directory to be rejected, have %v", err)
	}
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "none.txt"), styled.ParagraphStyle{}, nil); err == nil {
		t.Errorf("expected error for missing file")
	}
	name := writeFile(t, "ok\n\xff\xfe\n")
	if _, err := Load(context.Background(), name, styled.ParagraphStyle{}, nil); !errors.Is(err, textlayout.ErrInvalidArgument) {
		t.Errorf("expected invalid UTF-8 to be rejected, have %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, writeFile(t, lorem), styled.ParagraphStyle{}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, have %v", err)
	}
	text, err := Load(context.Background(), writeFile(t, "\n\n"), styled.ParagraphStyle{}, nil)
	if err != nil || text.Len() != 0 {
		t.Errorf("expected empty text for blank file, have %v / %v", text, err)
	}
}
