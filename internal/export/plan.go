package export

import (
	"fmt"

	"github.com/cardpress/cardpress/pkg/models"
	"github.com/cardpress/cardpress/pkg/textwrap"
)

// PtPerMM converts document millimeters to font points.
const PtPerMM = 72.0 / 25.4

// PageGeometry is the fixed page shape every export uses. The print
// grid never depends on the editor's stacking orientation or screen
// size; export always lays out the canonical vertical page.
type PageGeometry struct {
	WidthMM  float64
	HeightMM float64
	MarginMM float64
	GutterMM float64
}

// SlotSize returns the bounding box of one grid slot for the preset.
func (g PageGeometry) SlotSize(cols, rows int) (w, h float64) {
	w = (g.WidthMM - 2*g.MarginMM - float64(cols-1)*g.GutterMM) / float64(cols)
	h = (g.HeightMM - 2*g.MarginMM - float64(rows-1)*g.GutterMM) / float64(rows)
	return w, h
}

// SlotOrigin returns the top-left corner of a grid slot.
func (g PageGeometry) SlotOrigin(col, row int, slotW, slotH float64) (x, y float64) {
	x = g.MarginMM + float64(col)*(slotW+g.GutterMM)
	y = g.MarginMM + float64(row)*(slotH+g.GutterMM)
	return x, y
}

// TextPlan is one text region resolved to page space: wrapped, clipped
// lines plus the face parameters needed to draw them.
type TextPlan struct {
	Lines      []string
	Role       string
	FontFamily string
	FontPt     float64
	LineMM     float64
	Align      string
	Color      string
	CJK        bool
	X, Y, W, H float64 // page-space box, mm, top-left origin
}

// ImagePlan is the page-space image box for one card.
type ImagePlan struct {
	X, Y, W, H float64
}

// CardPlan places one row's face into one grid slot.
type CardPlan struct {
	RowID      string
	Side       int
	Col, Row   int
	X, Y, W, H float64 // card box in page space, mm
	Scale      float64 // mm per template pixel
	Background string
	Texts      []TextPlan
	Image      *ImagePlan
}

// PagePlan is one output page in emit order.
type PagePlan struct {
	Back  bool
	Cards []CardPlan
}

// Plan is the deterministic geometry of a whole export: same set in,
// same plan out.
type Plan struct {
	Page      PageGeometry
	Cols      int
	Rows      int
	CardW     float64
	CardH     float64
	CutGuides bool
	Pages     []PagePlan
}

// BuildPlan paginates the set's rows into page-space card placements.
// Pages alternate front/back when the set is double-sided, with the
// back card mirrored into column cols-1-col so a printed, cut and
// flipped card pairs with its own front. Text wrapping measures with
// the faces the renderer will actually embed, via the font manager.
func BuildPlan(set *models.FlashcardSet, page PageGeometry, fonts *FontManager) (*Plan, error) {
	t := &set.Template
	if t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("template has non-positive dimensions %gx%g", t.Width, t.Height)
	}
	cols, rows := set.Preset.Grid()
	slotW, slotH := page.SlotSize(cols, rows)

	// one aspect-preserving card footprint shared by every slot
	scale := min(slotW/t.Width, slotH/t.Height)
	cardW := t.Width * scale
	cardH := t.Height * scale

	plan := &Plan{
		Page:      page,
		Cols:      cols,
		Rows:      rows,
		CardW:     cardW,
		CardH:     cardH,
		CutGuides: set.ShowCutGuides,
	}

	perPage := cols * rows
	for start := 0; start < len(set.Rows); start += perPage {
		end := min(start+perPage, len(set.Rows))
		front := PagePlan{}
		back := PagePlan{Back: true}
		for i := start; i < end; i++ {
			slot := i - start
			col := slot % cols
			row := slot / cols
			front.Cards = append(front.Cards, buildCard(&set.Rows[i], t, plan, models.SideFront, col, row, fonts, set.DoubleSided))
			if set.DoubleSided {
				mirrored := cols - 1 - col
				back.Cards = append(back.Cards, buildCard(&set.Rows[i], t, plan, models.SideBack, mirrored, row, fonts, true))
			}
		}
		plan.Pages = append(plan.Pages, front)
		if set.DoubleSided {
			plan.Pages = append(plan.Pages, back)
		}
	}
	return plan, nil
}

// buildCard re-projects the template-local geometry of one face into
// page space by linear scaling from the card origin.
func buildCard(row *models.FlashcardRow, t *models.CardTemplate, plan *Plan, side, col, gridRow int, fonts *FontManager, doubleSided bool) CardPlan {
	slotW, slotH := plan.Page.SlotSize(plan.Cols, plan.Rows)
	slotX, slotY := plan.Page.SlotOrigin(col, gridRow, slotW, slotH)
	// center the card footprint in its slot
	cardX := slotX + (slotW-plan.CardW)/2
	cardY := slotY + (slotH-plan.CardH)/2
	scale := plan.CardW / t.Width

	card := CardPlan{
		RowID:      row.ID,
		Side:       side,
		Col:        col,
		Row:        gridRow,
		X:          cardX,
		Y:          cardY,
		W:          plan.CardW,
		H:          plan.CardH,
		Scale:      scale,
		Background: t.BackgroundColor,
	}

	onThisSide := func(regionSide int) bool {
		if !doubleSided {
			// single-sided sets render everything on the front face,
			// tolerating regions still tagged side 2
			return side == models.SideFront
		}
		return regionSide == side
	}

	if onThisSide(t.Image.Side) && row.HasImage() {
		card.Image = &ImagePlan{
			X: cardX + t.Image.X*scale,
			Y: cardY + t.Image.Y*scale,
			W: t.Image.Width * scale,
			H: t.Image.Height * scale,
		}
	}

	for i := range t.TextElements {
		el := &t.TextElements[i]
		if !onThisSide(el.Side) {
			continue
		}
		card.Texts = append(card.Texts, buildText(el, row.TextForRole(el.Role), cardX, cardY, scale, fonts))
	}
	return card
}

func buildText(el *models.TextRegion, text string, cardX, cardY, scale float64, fonts *FontManager) TextPlan {
	boxW := el.Width * scale
	boxH := el.Height * scale
	fontMM := el.FontSize * scale
	fontPt := fontMM * PtPerMM
	lineMM := fontMM * el.LineHeight

	tp := TextPlan{
		Role:       el.Role,
		FontFamily: el.FontFamily,
		FontPt:     fontPt,
		LineMM:     lineMM,
		Align:      el.Align,
		Color:      el.Color,
		CJK:        ContainsCJK(text),
		X:          cardX + el.X*scale,
		Y:          cardY + el.Y*scale,
		W:          boxW,
		H:          boxH,
	}

	if text == "" {
		return tp
	}
	face := fonts.Face(text, el.FontFamily, fontPt, colorFromHex(el.Color))
	lines := textwrap.Wrap(text, faceMeasurer{face}, boxW)
	tp.Lines = textwrap.Clip(lines, textwrap.MaxLines(boxH, lineMM))
	return tp
}
