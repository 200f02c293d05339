package metrics

import (
	"github.com/npillmayer/textlayout/styled"
)

// MonospaceProvider measures every visible character with the same advance,
// independent of style. Line metrics are constant as well.
type MonospaceProvider struct {
	advance float64
	metrics LineMetrics
}

var _ Provider = (*MonospaceProvider)(nil)

// Monospace creates a provider with a constant advance for every visible
// character and constant line metrics.
func Monospace(advance, ascent, descent, gap float64) *MonospaceProvider {
	return &MonospaceProvider{
		advance: advance,
		metrics: LineMetrics{Ascent: ascent, Descent: descent, LineGap: gap},
	}
}

// MeasureAdvances is part of interface Provider.
func (mp *MonospaceProvider) MeasureAdvances(run Run) []float64 {
	advances := make([]float64, 0, len(run.Text))
	for _, r := range run.Text {
		if IsZeroWidth(r) {
			advances = append(advances, 0)
		} else {
			advances = append(advances, mp.advance)
		}
	}
	return advances
}

// LineMetrics is part of interface Provider.
func (mp *MonospaceProvider) LineMetrics(*styled.Resolved) LineMetrics {
	return mp.metrics
}

// LoadFont is part of interface Provider. Every descriptor is served.
func (mp *MonospaceProvider) LoadFont(d Descriptor) (Font, error) {
	return descriptorFont(d), nil
}
