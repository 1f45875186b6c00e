package card

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultScale = 3

	cardWidth    = 512
	minHeight    = 400
	paddingX     = 32
	paddingY     = 48
	bodySize     = 15
	lineSpacing  = 1.6
	footerSize   = 12
	footerTrack  = 0.2
	dividerGap   = 32
	dividerWidth = 320
)

var (
	textColor    = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	accentColor  = color.RGBA{R: 0xf4, G: 0x3f, B: 0x5e, A: 0xff}
	dividerColor = color.RGBA{R: 0xff, G: 0xe4, B: 0xe6, A: 0xff}
)

// Renderer rasterizes a card to PNG on a white background. Fonts are parsed
// once; faces are created per call since they are not safe for concurrent use.
type Renderer struct {
	scale      int
	bodyFont   *opentype.Font
	footerFont *opentype.Font
}

func NewRenderer(scale int) (*Renderer, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	bodyFont, err := opentype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse body font: %w", err)
	}

	footerFont, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footer font: %w", err)
	}

	return &Renderer{
		scale:      scale,
		bodyFont:   bodyFont,
		footerFont: footerFont,
	}, nil
}

func (r *Renderer) Scale() int {
	return r.scale
}

func (r *Renderer) Render(c Card) ([]byte, error) {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return nil, ErrNoTarget
	}

	s := r.scale

	bodyFace, err := r.face(r.bodyFont, bodySize)
	if err != nil {
		return nil, err
	}
	defer bodyFace.Close()

	footerFace, err := r.face(r.footerFont, footerSize)
	if err != nil {
		return nil, err
	}
	defer footerFace.Close()

	width := cardWidth * s
	textWidth := width - 2*paddingX*s
	lines := wrap(bodyFace, "“"+text+"”", textWidth)

	lineHeight := int(bodySize * lineSpacing * float64(s))
	footerHeight := footerFace.Metrics().Height.Ceil()
	contentHeight := len(lines)*lineHeight + dividerGap*s + footerHeight
	height := max(minHeight*s, contentHeight+2*paddingY*s)

	canvas := imaging.New(width, height, color.White)

	y := (height - contentHeight) / 2
	bodyMetrics := bodyFace.Metrics()
	baseline := (lineHeight + bodyMetrics.Ascent.Ceil() - bodyMetrics.Descent.Ceil()) / 2
	for _, line := range lines {
		advance := font.MeasureString(bodyFace, line).Ceil()
		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(textColor),
			Face: bodyFace,
			Dot:  fixed.P((width-advance)/2, y+baseline),
		}
		d.DrawString(line)
		y += lineHeight
	}

	rule := min(dividerWidth*s, textWidth)
	x0 := (width - rule) / 2
	draw.Draw(canvas, image.Rect(x0, y, x0+rule, y+s), image.NewUniform(dividerColor), image.Point{}, draw.Src)
	y += dividerGap * s

	label := strings.TrimSpace("FOR " + strings.ToUpper(strings.TrimSpace(c.Name)))
	tracking := fixed.Int26_6(footerTrack * footerSize * float64(s) * 64)
	drawTracked(canvas, footerFace, label, tracking, width, y+footerFace.Metrics().Ascent.Ceil())

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) face(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size * float64(r.scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	return face, nil
}

// drawTracked draws label centered horizontally with extra spacing between
// glyphs.
func drawTracked(dst draw.Image, face font.Face, label string, tracking fixed.Int26_6, width int, baseline int) {
	runes := []rune(label)
	if len(runes) == 0 {
		return
	}

	total := tracking * fixed.Int26_6(len(runes)-1)
	for _, r := range runes {
		advance, _ := face.GlyphAdvance(r)
		total += advance
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(accentColor),
		Face: face,
		Dot:  fixed.P((width-total.Ceil())/2, baseline),
	}
	for _, r := range runes {
		d.DrawString(string(r))
		d.Dot.X += tracking
	}
}
