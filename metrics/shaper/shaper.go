/*
Package shaper implements a metrics provider on top of HarfBuzz-style shaping,
as provided by package github.com/go-text/typesetting.

Shaping applies kerning, ligatures and contextual forms of complex scripts.
Advances of the resulting glyphs are attributed to the first rune of their
cluster.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package shaper

import (
	"bytes"
	"fmt"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textlayout/metrics"
	"github.com/npillmayer/textlayout/styled"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'textlayout'
func tracer() tracing.Trace {
	return tracing.Select("textlayout")
}

// DefaultFamily is reported for fonts resolved to the default font.
const DefaultFamily = "default"

// Provider measures text by shaping it. It is safe for concurrent use:
// parsed fonts are shared, whereas faces and shapers are created or pooled
// per call.
type Provider struct {
	shapers  sync.Pool
	mu       sync.RWMutex
	fonts    map[metrics.Descriptor]*font.Font
	fallback *font.Font
	lang     language.Language
}

var _ metrics.Provider = (*Provider)(nil)

// New creates a shaping provider with a default font, given as OpenType or
// TrueType data. The default font is used for every style without a
// registered font.
func New(defaultFont []byte) (*Provider, error) {
	f, err := parse(defaultFont)
	if err != nil {
		return nil, err
	}
	return &Provider{
		shapers: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fonts:    make(map[metrics.Descriptor]*font.Font),
		fallback: f,
		lang:     language.NewLanguage("en"),
	}, nil
}

func parse(data []byte) (*font.Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot parse font: %w", err)
	}
	return face.Font, nil
}

// SetLanguage sets the language used for shaping. It is not safe to call
// SetLanguage concurrently with measuring.
func (p *Provider) SetLanguage(tag string) {
	p.lang = language.NewLanguage(tag)
}

// Register parses font data and registers it for a descriptor.
func (p *Provider) Register(d metrics.Descriptor, data []byte) error {
	f, err := parse(data)
	if err != nil {
		return fmt.Errorf("font %v: %w", d, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fonts[d] = f
	return nil
}

func (p *Provider) lookup(d metrics.Descriptor) (*font.Font, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if f, ok := p.fonts[d]; ok {
		return f, true
	}
	d.Weight, d.Slant = styled.WeightNormal, styled.SlantNormal
	if f, ok := p.fonts[d]; ok {
		return f, true
	}
	return p.fallback, false
}

// MeasureAdvances is part of interface metrics.Provider.
func (p *Provider) MeasureAdvances(run metrics.Run) []float64 {
	runes := []rune(run.Text)
	advances := make([]float64, len(runes))
	if len(runes) == 0 {
		return advances
	}
	f, _ := p.lookup(metrics.DescriptorOf(run.Style))
	dir := di.DirectionLTR
	if run.RTL {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    dir,
		Face:         font.NewFace(f),
		FontFeatures: features(run.Style.Features),
		Size:         floatToFixed(run.Style.Size),
		Script:       detectScript(runes),
		Language:     p.lang,
	}
	hb := p.shapers.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	p.shapers.Put(hb)
	for _, g := range output.Glyphs {
		if g.ClusterIndex >= 0 && g.ClusterIndex < len(advances) {
			advances[g.ClusterIndex] += fixedToFloat(g.Advance)
		}
	}
	for i, r := range runes {
		if metrics.IsZeroWidth(r) {
			advances[i] = 0
		}
	}
	return advances
}

// LineMetrics is part of interface metrics.Provider.
func (p *Provider) LineMetrics(style *styled.Resolved) metrics.LineMetrics {
	f, _ := p.lookup(metrics.DescriptorOf(style))
	face := font.NewFace(f)
	ext, ok := face.FontHExtents()
	if !ok || face.Upem() == 0 {
		tracer().Infof("font has no horizontal extents, estimating from size")
		return metrics.LineMetrics{Ascent: 0.8 * style.Size, Descent: 0.2 * style.Size}
	}
	scale := style.Size / float64(face.Upem())
	return metrics.LineMetrics{
		Ascent:  float64(ext.Ascender) * scale,
		Descent: -float64(ext.Descender) * scale,
		LineGap: max(0, float64(ext.LineGap)*scale),
	}
}

// LoadFont is part of interface metrics.Provider. Descriptors without a
// registered font resolve to the default font.
func (p *Provider) LoadFont(d metrics.Descriptor) (metrics.Font, error) {
	if _, ok := p.lookup(d); !ok {
		return loaded{metrics.Descriptor{Family: DefaultFamily}}, nil
	}
	return loaded{d}, nil
}

type loaded struct {
	d metrics.Descriptor
}

func (l loaded) Descriptor() metrics.Descriptor {
	return l.d
}

func features(ff []styled.Feature) []shaping.FontFeature {
	var out []shaping.FontFeature
	for _, f := range ff {
		if len(f.Tag) != 4 {
			tracer().Infof("ignoring font feature with malformed tag %q", f.Tag)
			continue
		}
		out = append(out, shaping.FontFeature{Tag: ot.MustNewTag(f.Tag), Value: uint32(max(0, f.Value))})
	}
	return out
}

// detectScript returns the script of the first letter.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return language.LookupScript(r)
		}
	}
	return language.Latin
}

func floatToFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(x * 64)
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
