// Package validate computes the derived per-row warnings shown inline
// in the editor: text overflow against the current template and
// missing image sources. Warnings never block editing or export and
// are recomputed on every template or row change, never persisted.
package validate

import (
	"github.com/cardpress/cardpress/pkg/models"
	"github.com/cardpress/cardpress/pkg/textwrap"
)

// MeasurerFor supplies a text measurer for a font family and size in
// template pixels. The editor passes its on-screen metrics backend;
// tests pass a fixed-width stub.
type MeasurerFor func(fontFamily string, fontSizePx float64) textwrap.Measurer

type Validator struct {
	measure MeasurerFor
}

func New(measure MeasurerFor) *Validator {
	return &Validator{measure: measure}
}

// Row checks one row against the template.
func (v *Validator) Row(t *models.CardTemplate, row *models.FlashcardRow) models.RowValidation {
	var rv models.RowValidation
	if word := t.Text(models.RoleWord); word != nil {
		rv.WordOverflow = v.overflows(word, row.Word)
	}
	if sub := t.Text(models.RoleSubtitle); sub != nil {
		rv.SubtitleOverflow = v.overflows(sub, row.Subtitle)
	}
	if !row.HasImage() {
		rv.ImageIssue = "no image source"
	}
	return rv
}

// Rows checks every row of a set, keyed by row id.
func (v *Validator) Rows(set *models.FlashcardSet) map[string]models.RowValidation {
	out := make(map[string]models.RowValidation, len(set.Rows))
	for i := range set.Rows {
		out[set.Rows[i].ID] = v.Row(&set.Template, &set.Rows[i])
	}
	return out
}

func (v *Validator) overflows(el *models.TextRegion, text string) bool {
	if text == "" {
		return false
	}
	m := v.measure(el.FontFamily, el.FontSize)
	lines := textwrap.Wrap(text, m, el.Width)
	return textwrap.Overflows(lines, el.FontSize, el.LineHeight, el.Height)
}
