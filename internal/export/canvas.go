package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jonathan/resume-builder/internal/rendering"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

type fontWeight int

const (
	weightRegular fontWeight = iota
	weightBold
	weightItalic
)

type faceKey struct {
	weight fontWeight
	size   float64
}

// CanvasCapturer draws the layout tree in-process. It needs no browser, so it
// is what the CLI and tests use when Chrome is unavailable.
type CanvasCapturer struct {
	scale float64
	fonts map[fontWeight]*truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewCanvasCapturer creates a canvas capturer. When fontPath is set, that TTF is used for
// every weight; otherwise the Go font family is used.
func NewCanvasCapturer(fontPath string) (*CanvasCapturer, error) {
	fonts := make(map[fontWeight]*truetype.Font, 3)
	if fontPath != "" {
		raw, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		f, err := truetype.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TTF: %w", err)
		}
		for _, w := range []fontWeight{weightRegular, weightBold, weightItalic} {
			fonts[w] = f
		}
	} else {
		builtin := map[fontWeight][]byte{
			weightRegular: goregular.TTF,
			weightBold:    gobold.TTF,
			weightItalic:  goitalic.TTF,
		}
		for w, raw := range builtin {
			f, err := truetype.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse builtin font: %w", err)
			}
			fonts[w] = f
		}
	}

	return &CanvasCapturer{
		scale: CaptureScale,
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}, nil
}

// Capture implements Capturer
func (c *CanvasCapturer) Capture(ctx context.Context, surface Surface) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &CaptureError{Message: "capture cancelled", Cause: err}
	}
	if err := surface.Check(); err != nil {
		return nil, err
	}

	layout := surface.Layout
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, &CaptureError{Message: "preview surface has no size"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := &painter{
		c:     c,
		dc:    gg.NewContext(int(float64(layout.Width)*c.scale), int(float64(layout.Height)*c.scale)),
		style: layout.Style,
		width: float64(layout.Width),
	}
	p.dc.SetHexColor("#ffffff")
	p.dc.Clear()
	p.paint(layout)

	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, &CaptureError{Message: "failed to encode PNG", Cause: err}
	}
	return buf.Bytes(), nil
}

func (c *CanvasCapturer) face(weight fontWeight, size float64) font.Face {
	key := faceKey{weight: weight, size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(c.fonts[weight], &truetype.Options{
		Size:    size * c.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = f
	return f
}

// painter works in CSS px and scales to device pixels when drawing.
type painter struct {
	c     *CanvasCapturer
	dc    *gg.Context
	style rendering.Style
	width float64
	y     float64
}

func (p *painter) px(v float64) float64 { return v * p.c.scale }

func (p *painter) setFont(weight fontWeight, size float64, hex string) {
	p.dc.SetFontFace(p.c.face(weight, size))
	p.dc.SetHexColor(hex)
}

func (p *painter) left() float64  { return p.style.Padding }
func (p *painter) inner() float64 { return p.width - 2*p.style.Padding }

// line draws one line of text with its top at p.y and advances p.y.
func (p *painter) line(text string, x, size float64, align rendering.Align) {
	lineHeight := size * 1.5
	baseline := p.y + size*1.15
	if align == rendering.AlignCenter {
		p.dc.DrawStringAnchored(text, p.px(p.width/2), p.px(baseline), 0.5, 0)
	} else {
		p.dc.DrawString(text, p.px(x), p.px(baseline))
	}
	p.y += lineHeight
}

// wrapped draws text word-wrapped to width starting at x.
func (p *painter) wrapped(text string, x, width, size float64) {
	if strings.TrimSpace(text) == "" {
		p.y += size * 1.5
		return
	}
	for _, l := range p.dc.WordWrap(text, p.px(width)) {
		p.line(l, x, size, rendering.AlignLeft)
	}
}

func (p *painter) rule(hex string, thickness float64) {
	p.dc.SetHexColor(hex)
	p.dc.SetLineWidth(p.px(thickness))
	p.dc.DrawLine(p.px(p.left()), p.px(p.y), p.px(p.left()+p.inner()), p.px(p.y))
	p.dc.Stroke()
}

func (p *painter) paint(layout rendering.Layout) {
	s := p.style
	p.y = s.Padding

	nameWeight := weightBold
	if layout.Variant == rendering.VariantMinimal {
		nameWeight = weightRegular
	}
	p.setFont(nameWeight, s.NameSize, "#111827")
	p.line(layout.Header.Name, p.left(), s.NameSize, s.HeaderAlign)

	p.setFont(weightRegular, s.SmallSize, s.Muted)
	for _, row := range layout.Header.ContactRows {
		p.line(strings.Join(row, layout.Header.ContactSeparator), p.left(), s.SmallSize, s.HeaderAlign)
	}

	switch layout.Variant {
	case rendering.VariantModern:
		p.y += 12
		p.rule("#fbbf24", 2)
		p.y += 24
	case rendering.VariantClassic:
		p.y += 12
		p.rule("#9ca3af", 1)
		p.y += 24
	default:
		p.y += 32
	}

	for _, section := range layout.Sections {
		p.section(section)
	}
}

func (p *painter) section(section rendering.Section) {
	s := p.style

	if section.Title != "" {
		p.setFont(weightBold, s.HeadingSize, s.Accent)
		p.line(section.Title, p.left(), s.HeadingSize, rendering.AlignLeft)
		if s.HeadingRule {
			p.rule("#d1d5db", 1)
			p.y += 8
		}
	}

	if section.Paragraph != "" {
		p.setFont(weightRegular, s.BodySize, s.Text)
		p.wrapped(section.Paragraph, p.left(), p.inner(), s.BodySize)
	}

	for _, entry := range section.Entries {
		p.entry(entry)
	}

	if len(section.Skills) > 0 {
		sep := section.SkillSeparator
		if sep == "" {
			sep = "   "
		}
		p.setFont(weightRegular, s.SmallSize, s.Text)
		p.wrapped(strings.Join(section.Skills, sep), p.left(), p.inner(), s.SmallSize)
	}

	p.y += 16
}

func (p *painter) entry(entry rendering.Entry) {
	s := p.style
	top := p.y

	dateWeight := weightRegular
	if s.Serif {
		dateWeight = weightItalic
	}
	p.setFont(dateWeight, s.SmallSize, s.Muted)
	datesWidth, _ := p.dc.MeasureString(entry.Dates)
	p.dc.DrawString(entry.Dates, p.px(p.left()+p.inner())-datesWidth, p.px(top+s.SmallSize*1.15))

	p.setFont(weightBold, s.BodySize, "#111827")
	p.line(entry.Title, p.left(), s.BodySize, rendering.AlignLeft)
	p.setFont(weightRegular, s.BodySize, s.Accent)
	p.line(entry.Subtitle, p.left(), s.BodySize, rendering.AlignLeft)

	p.setFont(weightRegular, s.SmallSize, s.Text)
	for _, bullet := range entry.Bullets {
		p.wrapped("• "+bullet, p.left()+8, p.inner()-8, s.SmallSize)
	}
	p.y += 8
}
