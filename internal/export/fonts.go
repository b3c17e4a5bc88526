package export

import (
	"fmt"
	"image/color"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cardpress/cardpress/pkg/textwrap"
)

// FontManager owns the faces embedded into exported documents: a
// small set of standard Latin faces compiled into the binary, plus
// one CJK face loaded from a configured path or URL. Text containing
// CJK script renders with the CJK face; everything else uses the
// standard set.
type FontManager struct {
	latin *canvas.FontFamily
	cjk   *canvas.FontFamily
}

// NewFontManager loads the embedded standard faces and the CJK asset.
// A missing or unreadable CJK asset is a fatal export error: callers
// must not start an export without it.
func NewFontManager(cjkSource string) (*FontManager, error) {
	latin := canvas.NewFontFamily("standard")
	if err := latin.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("failed to load standard face: %w", err)
	}
	if err := latin.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("failed to load bold face: %w", err)
	}
	if err := latin.LoadFont(goitalic.TTF, 0, canvas.FontItalic); err != nil {
		return nil, fmt.Errorf("failed to load italic face: %w", err)
	}

	data, err := loadFontBytes(cjkSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontAsset, err)
	}
	cjk := canvas.NewFontFamily("cjk")
	if err := cjk.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontAsset, err)
	}

	return &FontManager{latin: latin, cjk: cjk}, nil
}

// Face picks the embedded face for the given text and template font
// family. sizePt is in points; the returned face measures in document
// millimeters.
func (m *FontManager) Face(text, family string, sizePt float64, col color.Color) *canvas.FontFace {
	style := styleForFamily(family)
	if ContainsCJK(text) {
		return m.cjk.Face(sizePt, col, canvas.FontRegular, canvas.FontNormal)
	}
	return m.latin.Face(sizePt, col, style, canvas.FontNormal)
}

func styleForFamily(family string) canvas.FontStyle {
	f := strings.ToLower(family)
	style := canvas.FontRegular
	if strings.Contains(f, "bold") {
		style = canvas.FontBold
	}
	if strings.Contains(f, "italic") || strings.Contains(f, "oblique") {
		style |= canvas.FontItalic
	}
	return style
}

// ContainsCJK reports whether any rune falls in the Han, kana or
// hangul ranges, which the standard faces cannot shape.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) ||
			unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) ||
			unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

func loadFontBytes(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch font %s: %w", source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch font %s: status %d", source, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", source, err)
	}
	return data, nil
}

// faceMeasurer adapts a canvas face to textwrap.Measurer so the
// exporter wraps with the exact metrics it renders with.
type faceMeasurer struct {
	face *canvas.FontFace
}

func (m faceMeasurer) TextWidth(s string) float64 {
	return m.face.TextWidth(s)
}

// PixelMeasurer measures in template pixel units, treating one pixel
// as one point. Used for the live overflow validation, which runs in
// template space rather than page space.
func (m *FontManager) PixelMeasurer(family string, sizePx float64) textwrap.Measurer {
	return pixelMeasurer{fonts: m, family: family, sizePt: sizePx}
}

type pixelMeasurer struct {
	fonts  *FontManager
	family string
	sizePt float64
}

func (p pixelMeasurer) TextWidth(s string) float64 {
	face := p.fonts.Face(s, p.family, p.sizePt, canvas.Black)
	return face.TextWidth(s) * PtPerMM
}
