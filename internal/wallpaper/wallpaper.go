// Package wallpaper composes a quote into a desktop background image.
package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/codeabiswas/quotescape/internal/config"
	"github.com/codeabiswas/quotescape/internal/quote"
)

// Font sizes are tuned for the 8K reference resolution and scaled by
// the square root of the area ratio for other resolutions.
const (
	referenceWidth  = 7680
	referenceHeight = 4320
	quoteFontSize   = 110
	metaFontSize    = 60
	downloadTimeout = 10 * time.Second
)

// Generator renders quotes onto wallpaper images.
type Generator struct {
	cfg     *config.Config
	colours config.ColourSet
	scale   float64
	http    *resty.Client
}

func New(cfg *config.Config) *Generator {
	area := float64(cfg.Dimension.Width) * float64(cfg.Dimension.Height)
	return &Generator{
		cfg:     cfg,
		colours: cfg.ActiveColours(),
		scale:   math.Sqrt(area / (referenceWidth * referenceHeight)),
		http:    resty.New().SetTimeout(downloadTimeout),
	}
}

// Generate renders the quote and writes a PNG into the output
// directory, returning its path.
func (g *Generator) Generate(ctx context.Context, q quote.Quote) (string, error) {
	w, h := g.cfg.Dimension.Width, g.cfg.Dimension.Height

	dc := gg.NewContext(w, h)
	dc.SetHexColor(g.colours.Background)
	dc.Clear()

	quoteFace, err := loadFace(goregular.TTF, g.scaled(quoteFontSize))
	if err != nil {
		return "", fmt.Errorf("loading quote font: %w", err)
	}
	metaFace, err := loadFace(goitalic.TTF, g.scaled(metaFontSize))
	if err != nil {
		return "", fmt.Errorf("loading metadata font: %w", err)
	}

	quoteY := float64(h) * 0.5
	if cover := g.cover(ctx, q); cover != nil {
		g.drawCover(dc, cover)
		quoteY = float64(h) * 0.62
	}

	dc.SetFontFace(quoteFace)
	dc.SetHexColor(g.colours.QuoteText)
	dc.DrawStringWrapped(
		"“"+q.Text+"”",
		float64(w)/2, quoteY, 0.5, 0.5,
		float64(w)*0.7, 1.5, gg.AlignCenter)

	metaY := quoteY + float64(h)*0.18
	dc.SetFontFace(metaFace)
	if g.cfg.ShowAuthor && q.Author != "" {
		dc.SetHexColor(g.colours.AuthorText)
		dc.DrawStringAnchored("- "+q.Author, float64(w)/2, metaY, 0.5, 0.5)
		metaY += g.scaled(metaFontSize) * 1.8
	}
	if g.cfg.Kindle.ShowBookTitle && q.BookTitle != "" {
		dc.SetHexColor(g.colours.TitleText)
		dc.DrawStringAnchored(q.BookTitle, float64(w)/2, metaY, 0.5, 0.5)
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(g.cfg.OutputDir, "quotescape.png")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("writing wallpaper: %w", err)
	}

	logrus.WithField("file", path).Info("wallpaper generated")
	return path, nil
}

func (g *Generator) scaled(size float64) float64 {
	return size * g.scale
}

// cover downloads and decodes the book cover. Any failure degrades to a
// layout without a cover; the URL is a hint that may be unreachable.
func (g *Generator) cover(ctx context.Context, q quote.Quote) image.Image {
	if q.CoverURL == "" || !g.cfg.Kindle.ShowBookCover {
		return nil
	}

	res, err := g.http.R().SetContext(ctx).Get(q.CoverURL)
	if err != nil || res.IsError() {
		logrus.WithField("url", q.CoverURL).Warn("error downloading book cover, skipping it")
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(res.Body()))
	if err != nil {
		logrus.WithError(err).Warn("error decoding book cover, skipping it")
		return nil
	}
	return img
}

// drawCover scales the cover to roughly a third of the wallpaper height
// and centers it in the upper region.
func (g *Generator) drawCover(dc *gg.Context, cover image.Image) {
	h := g.cfg.Dimension.Height
	bounds := cover.Bounds()

	targetH := int(float64(h) * 0.35)
	targetW := bounds.Dx() * targetH / bounds.Dy()

	scaled := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), cover, bounds, draw.Over, nil)

	dc.DrawImageAnchored(scaled, g.cfg.Dimension.Width/2, int(float64(h)*0.25), 0.5, 0.5)
}

func loadFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
