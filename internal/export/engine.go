// Package export implements the document export engine: it paginates
// a flashcard set into a fixed page grid, re-projects the template
// geometry into page space, and renders a print-ready PDF with
// embedded fonts and images. Per-row image failures are collected,
// never fatal; a missing font asset aborts the whole export.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/cardpress/cardpress/pkg/logger"
	"github.com/cardpress/cardpress/pkg/models"
	"github.com/cardpress/cardpress/pkg/textwrap"
)

var (
	// ErrFontAsset marks the fatal case: the required CJK font could
	// not be obtained, so no document is produced.
	ErrFontAsset = errors.New("required font asset unavailable")

	// ErrExportBusy rejects a new export while one is running.
	ErrExportBusy = errors.New("an export is already in progress")
)

const (
	cutGuideWidthMM = 0.2
	yieldEvery      = 4
)

// ProgressFunc receives live stage text and a 0-100 percentage.
type ProgressFunc func(stage string, percent int)

// Engine turns flashcard sets into paginated PDF bytes.
type Engine struct {
	page   PageGeometry
	fonts  *FontManager
	images *ImageFetcher
	log    *logger.Logger
	active atomic.Bool
}

// NewEngine loads the font manager up front; a missing CJK asset
// fails construction rather than the first export.
func NewEngine(page PageGeometry, cjkFontSource string, log *logger.Logger) (*Engine, error) {
	fonts, err := NewFontManager(cjkFontSource)
	if err != nil {
		return nil, err
	}
	return &Engine{
		page:   page,
		fonts:  fonts,
		images: NewImageFetcher(),
		log:    log,
	}, nil
}

// Measurer exposes the engine's font metrics for template-space text
// validation, so the editor's overflow checks and the exported line
// breaks come from the same metric backend.
func (e *Engine) Measurer(family string, sizePx float64) textwrap.Measurer {
	return e.fonts.PixelMeasurer(family, sizePx)
}

// Result is the externally visible product of one export.
type Result struct {
	Bytes       []byte
	ImageIssues map[string]string // row id -> reason
	Report      Report
}

// Export renders the set. Pages and slots fill in deterministic
// row-major order, so re-running on unchanged input reproduces the
// same geometry. Only one export runs at a time; concurrent calls get
// ErrExportBusy instead of queueing.
func (e *Engine) Export(ctx context.Context, set *models.FlashcardSet, progress ProgressFunc) (*Result, error) {
	if !e.active.CompareAndSwap(false, true) {
		return nil, ErrExportBusy
	}
	defer e.active.Store(false)

	if progress == nil {
		progress = func(string, int) {}
	}
	started := time.Now()
	progress("preparing layout", 5)

	plan, err := BuildPlan(set, e.page, e.fonts)
	if err != nil {
		return nil, fmt.Errorf("failed to plan export: %w", err)
	}
	e.log.Debug("export plan: %d pages, %dx%d grid, card %.1fx%.1fmm",
		len(plan.Pages), plan.Cols, plan.Rows, plan.CardW, plan.CardH)
	progress("preparing layout", 10)

	issues := map[string]string{}
	renderer := newPageRenderer(plan, e.fonts)

	// resolve images and draw cards row by row so progress tracks
	// rows, not pages; a failed fetch records an issue and the card
	// still renders its text and borders
	total := len(set.Rows)
	for i := range set.Rows {
		row := &set.Rows[i]
		img, imgErr := e.images.Resolve(ctx, row)
		if imgErr != nil {
			e.log.Warn("row %s image skipped: %v", row.ID, imgErr)
			issues[row.ID] = imgErr.Error()
		}
		renderer.drawRow(row.ID, img)

		progress(fmt.Sprintf("rendering card %d of %d", i+1, total), 10+(i+1)*80/max(total, 1))
		if (i+1)%yieldEvery == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
	}

	progress("finalizing document", 92)
	out, err := renderer.finish()
	if err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	progress("done", 100)

	report := Report{
		StartTime:  started,
		EndTime:    time.Now(),
		Pages:      len(plan.Pages),
		Cards:      total,
		ImageCount: total - len(issues),
		Issues:     issues,
	}
	return &Result{Bytes: out, ImageIssues: issues, Report: report}, nil
}

// pageRenderer draws the plan onto per-page canvases. Canvases stay
// open for the whole run because a row touches both its front page and
// the paired back page; they are flushed to the PDF writer in page
// order at the end.
type pageRenderer struct {
	plan   *Plan
	fonts  *FontManager
	pages  []*canvas.Canvas
	ctxs   []*canvas.Context
	byRow  map[string][]cardRef
}

type cardRef struct {
	page int
	card int
}

func newPageRenderer(plan *Plan, fonts *FontManager) *pageRenderer {
	r := &pageRenderer{
		plan:  plan,
		fonts: fonts,
		byRow: map[string][]cardRef{},
	}
	for pi, page := range plan.Pages {
		c := canvas.New(plan.Page.WidthMM, plan.Page.HeightMM)
		cc := canvas.NewContext(c)
		// top-left origin to match template space; the PDF backend
		// flips into the document's bottom-up convention on write
		cc.SetCoordSystem(canvas.CartesianIV)
		r.pages = append(r.pages, c)
		r.ctxs = append(r.ctxs, cc)
		for ci, card := range page.Cards {
			r.byRow[card.RowID] = append(r.byRow[card.RowID], cardRef{page: pi, card: ci})
		}
	}
	return r
}

// drawRow renders every placement of one row (front card, plus the
// mirrored back card when double-sided).
func (r *pageRenderer) drawRow(rowID string, img image.Image) {
	for _, ref := range r.byRow[rowID] {
		card := r.plan.Pages[ref.page].Cards[ref.card]
		r.drawCard(r.ctxs[ref.page], card, img)
	}
}

func (r *pageRenderer) drawCard(cc *canvas.Context, card CardPlan, img image.Image) {
	// card background
	cc.SetFillColor(colorFromHex(card.Background))
	cc.SetStrokeColor(canvas.Transparent)
	cc.DrawPath(card.X, card.Y, canvas.Rectangle(card.W, card.H))

	if r.plan.CutGuides {
		cc.SetFillColor(canvas.Transparent)
		cc.SetStrokeColor(canvas.Lightgray)
		cc.SetStrokeWidth(cutGuideWidthMM)
		cc.DrawPath(card.X, card.Y, canvas.Rectangle(card.W, card.H))
	}

	if card.Image != nil && img != nil {
		drawImageFit(cc, *card.Image, img)
	}

	for _, tp := range card.Texts {
		r.drawText(cc, tp)
	}
}

// drawImageFit scales the image uniformly to fit the region box and
// centers it, preserving the source aspect ratio.
func drawImageFit(cc *canvas.Context, box ImagePlan, img image.Image) {
	pxW := float64(img.Bounds().Dx())
	pxH := float64(img.Bounds().Dy())
	if pxW <= 0 || pxH <= 0 || box.W <= 0 || box.H <= 0 {
		return
	}
	mmPerPx := min(box.W/pxW, box.H/pxH)
	drawW := pxW * mmPerPx
	drawH := pxH * mmPerPx
	x := box.X + (box.W-drawW)/2
	y := box.Y + (box.H-drawH)/2
	cc.DrawImage(x, y, img, canvas.DPMM(1/mmPerPx))
}

func (r *pageRenderer) drawText(cc *canvas.Context, tp TextPlan) {
	if len(tp.Lines) == 0 {
		return
	}
	joined := ""
	if tp.CJK {
		joined = "一" // any CJK rune forces the CJK face
	}
	col := colorFromHex(tp.Color)

	var align canvas.TextAlign
	var anchorX float64
	switch tp.Align {
	case "center":
		align = canvas.Center
		anchorX = tp.X + tp.W/2
	case "right":
		align = canvas.Right
		anchorX = tp.X + tp.W
	default:
		align = canvas.Left
		anchorX = tp.X
	}

	cursorY := tp.Y
	for _, line := range tp.Lines {
		face := r.fonts.Face(line+joined, tp.FontFamily, tp.FontPt, col)
		baseline := cursorY + face.Metrics().Ascent
		cc.DrawText(anchorX, baseline, canvas.NewTextLine(face, line, align))
		cursorY += tp.LineMM
	}
}

func (r *pageRenderer) finish() ([]byte, error) {
	var buf bytes.Buffer
	w := pdf.New(&buf, r.plan.Page.WidthMM, r.plan.Page.HeightMM, nil)
	for i, c := range r.pages {
		if i > 0 {
			w.NewPage(r.plan.Page.WidthMM, r.plan.Page.HeightMM)
		}
		c.RenderTo(w)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func colorFromHex(hex string) color.RGBA {
	if hex == "" {
		return canvas.Black
	}
	return canvas.Hex(hex)
}
