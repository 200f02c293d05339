package metrics

import (
	"sync"

	"github.com/npillmayer/textlayout/styled"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"github.com/rivo/uniseg"
)

// CellProvider measures text in terms of character cells of a terminal.
// Every grapheme cluster occupies one or two cells, depending on its East
// Asian width in the provider's context. A line is exactly one cell high.
type CellProvider struct {
	context *uax11.Context
}

var _ Provider = (*CellProvider)(nil)

var setupClasses sync.Once

// Cells creates a provider for fixed-width terminal output. If context is nil,
// uax11.LatinContext is used.
func Cells(context *uax11.Context) *CellProvider {
	setupClasses.Do(grapheme.SetupGraphemeClasses)
	if context == nil {
		context = uax11.LatinContext
	}
	return &CellProvider{context: context}
}

// MeasureAdvances is part of interface Provider. A grapheme cluster's width
// is attributed to its first rune.
func (cp *CellProvider) MeasureAdvances(run Run) []float64 {
	advances := make([]float64, 0, len(run.Text))
	rest, state := run.Text, -1
	var cluster string
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.StepString(rest, state)
		w := 0
		if first := []rune(cluster)[0]; !IsZeroWidth(first) {
			w = uax11.StringWidth(grapheme.StringFromString(cluster), cp.context)
		}
		advances = append(advances, float64(w))
		for range []rune(cluster)[1:] {
			advances = append(advances, 0)
		}
	}
	return advances
}

// LineMetrics is part of interface Provider.
func (cp *CellProvider) LineMetrics(*styled.Resolved) LineMetrics {
	return LineMetrics{Ascent: 1}
}

// LoadFont is part of interface Provider. Terminals have a single font.
func (cp *CellProvider) LoadFont(d Descriptor) (Font, error) {
	return descriptorFont(Descriptor{Family: "monospace", Weight: d.Weight, Slant: d.Slant}), nil
}
