package metrics

import (
	"fmt"
	"sync"

	"github.com/npillmayer/textlayout/styled"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FaceProvider measures text with golang.org/x/image font faces.
//
// Fonts are registered as OpenType/TrueType data for a descriptor. When a
// style asks for a font which has not been registered, the provider falls back
// to a font of the same family with normal weight and slant, then to the
// default font, and finally to the built-in 7×13 bitmap face, scaled to the
// requested size.
type FaceProvider struct {
	mu       sync.Mutex // guards the maps and the faces, which are not safe for concurrent use
	fonts    map[Descriptor]*opentype.Font
	faces    map[faceKey]font.Face
	fallback string // family of the default font
	dpi      float64
}

// BasicFamily names the built-in bitmap font.
const BasicFamily = "basic"

type faceKey struct {
	d    Descriptor
	size float64
}

var _ Provider = (*FaceProvider)(nil)

// NewFaceProvider creates a provider without any registered fonts.
func NewFaceProvider() *FaceProvider {
	return &FaceProvider{
		fonts: make(map[Descriptor]*opentype.Font),
		faces: make(map[faceKey]font.Face),
		dpi:   72,
	}
}

// Register parses font data and registers it for a descriptor. The first font
// registered becomes the default font.
func (fp *FaceProvider) Register(d Descriptor, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("cannot parse font %v: %w", d, err)
	}
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.fonts[d] = f
	if fp.fallback == "" {
		fp.fallback = d.Family
	}
	for k, face := range fp.faces { // faces may resolve differently now
		_ = face.Close()
		delete(fp.faces, k)
	}
	tracer().Debugf("registered font %v", d)
	return nil
}

// lookup finds the best matching font for a descriptor. Caller must hold the lock.
func (fp *FaceProvider) lookup(d Descriptor) (*opentype.Font, Descriptor) {
	if f, ok := fp.fonts[d]; ok {
		return f, d
	}
	regular := Descriptor{Family: d.Family, Weight: styled.WeightNormal, Slant: styled.SlantNormal}
	if f, ok := fp.fonts[regular]; ok {
		return f, regular
	}
	for dd, f := range fp.fonts {
		if dd.Family == d.Family {
			return f, dd
		}
	}
	dflt := Descriptor{Family: fp.fallback, Weight: styled.WeightNormal, Slant: styled.SlantNormal}
	if f, ok := fp.fonts[dflt]; ok {
		return f, dflt
	}
	for dd, f := range fp.fonts {
		if dd.Family == fp.fallback {
			return f, dd
		}
	}
	return nil, Descriptor{}
}

// face returns a face for a style, together with a scaling factor for its
// measurements. Caller must hold the lock.
func (fp *FaceProvider) face(style *styled.Resolved) (font.Face, float64) {
	f, d := fp.lookup(DescriptorOf(style))
	if f == nil {
		return basicfont.Face7x13, style.Size / float64(basicfont.Face7x13.Height)
	}
	key := faceKey{d: d, size: style.Size}
	if face, ok := fp.faces[key]; ok {
		return face, 1
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    style.Size,
		DPI:     fp.dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		tracer().Errorf("cannot create face for %v at %g: %v", d, style.Size, err)
		return basicfont.Face7x13, style.Size / float64(basicfont.Face7x13.Height)
	}
	fp.faces[key] = face
	return face, 1
}

// MeasureAdvances is part of interface Provider. Kerning is applied to the
// advance of the first rune of a kerning pair.
func (fp *FaceProvider) MeasureAdvances(run Run) []float64 {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	face, scale := fp.face(run.Style)
	advances := make([]float64, 0, len(run.Text))
	prev, at := rune(-1), -1
	for _, r := range run.Text {
		if IsZeroWidth(r) {
			advances = append(advances, 0)
			continue
		}
		if r == '\t' {
			r = ' '
		}
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance('\ufffd')
		}
		if prev >= 0 {
			advances[at] += fixedToFloat(face.Kern(prev, r)) * scale
		}
		advances = append(advances, fixedToFloat(adv)*scale)
		prev, at = r, len(advances)-1
	}
	return advances
}

// LineMetrics is part of interface Provider.
func (fp *FaceProvider) LineMetrics(style *styled.Resolved) LineMetrics {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	face, scale := fp.face(style)
	m := face.Metrics()
	lm := LineMetrics{
		Ascent:  fixedToFloat(m.Ascent) * scale,
		Descent: fixedToFloat(m.Descent) * scale,
	}
	lm.LineGap = max(0, fixedToFloat(m.Height)*scale-lm.Ascent-lm.Descent)
	return lm
}

// LoadFont is part of interface Provider. It reports the descriptor of the
// font which will actually be used for d.
func (fp *FaceProvider) LoadFont(d Descriptor) (Font, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	f, dd := fp.lookup(d)
	if f == nil {
		return descriptorFont(Descriptor{Family: BasicFamily}), nil
	}
	return descriptorFont(dd), nil
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
