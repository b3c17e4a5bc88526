package editor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardpress/cardpress/internal/editor"
	"github.com/cardpress/cardpress/pkg/logger"
	"github.com/cardpress/cardpress/pkg/models"
)

func editorTestLogger() *logger.Logger {
	log := logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[editor-test] "),
		logger.WithFlags(0),
	)
	log.SetVerbose(true)
	log.SetLevel(logger.LevelTrace)
	return log
}

func newTestSet() *models.FlashcardSet {
	return &models.FlashcardSet{
		ID:          "set1",
		Template:    models.DefaultTemplate(),
		DoubleSided: true,
		Rows: []models.FlashcardRow{
			{ID: "r1", Word: "Dog", Subtitle: "inu"},
			{ID: "r2", Word: "Cat", Subtitle: "neko"},
		},
		SelectedRowID: "r1",
		Preset:        models.Preset6,
	}
}

var _ = Describe("Editor controller", func() {
	var (
		set *models.FlashcardSet
		c   *editor.Controller
	)

	// 1400x1000 container: wide enough for the horizontal split, so
	// the content footprint is 1400x500 and the stage scale is 1
	BeforeEach(func() {
		set = newTestSet()
		c = editor.NewController(set, 1400, 1000, editorTestLogger())
	})

	Context("selection", func() {
		It("selects an element on click", func() {
			c.Apply(editor.SelectElement{Element: editor.ElementImage})
			Expect(c.State().Selected).To(Equal(editor.ElementImage))
		})

		It("deselects on empty canvas pointer-down", func() {
			c.Apply(editor.SelectElement{Element: editor.ElementImage})
			c.Apply(editor.PointerDown{Element: editor.ElementNone})
			Expect(c.State().Selected).To(Equal(editor.ElementNone))
		})
	})

	Context("dragging", func() {
		It("does not write the template while moving within one side", func() {
			before := set.Template.Image.Region
			c.Apply(editor.PointerDown{Element: editor.ElementImage, X: 210, Y: 50})
			patches := c.Apply(editor.PointerMove{X: 300, Y: 100})
			Expect(patches).To(BeEmpty())
			Expect(set.Template.Image.Region).To(Equal(before))
			Expect(c.State().Dragging()).To(BeTrue())
		})

		It("always commits final geometry on pointer-up", func() {
			c.Apply(editor.PointerDown{Element: editor.ElementImage, X: 210, Y: 50})
			c.Apply(editor.PointerMove{X: 300, Y: 100})
			patches := c.Apply(editor.PointerUp{})
			Expect(patches).To(HaveLen(1))
			Expect(set.Template.Image.X).To(Equal(290.0))
			Expect(set.Template.Image.Y).To(Equal(90.0))
			Expect(c.State().Dragging()).To(BeFalse())
		})

		It("commits mid-move when the drag crosses the side boundary", func() {
			c.Apply(editor.PointerDown{Element: editor.ElementImage, X: 210, Y: 50})
			patches := c.Apply(editor.PointerMove{X: 1000, Y: 50})
			Expect(patches).To(HaveLen(1))
			p, ok := patches[0].(editor.SetRegionGeometry)
			Expect(ok).To(BeTrue())
			Expect(p.Side).To(Equal(models.SideBack))
			Expect(set.Template.Image.Side).To(Equal(models.SideBack))
			// local position is relative to the back face origin
			Expect(set.Template.Image.X).To(Equal(290.0))
		})

		It("clamps wild drop points to finite valid positions", func() {
			c.Apply(editor.PointerDown{Element: editor.ElementImage, X: 210, Y: 50})
			c.Apply(editor.PointerMove{X: 1e9, Y: -1e9})
			c.Apply(editor.PointerUp{})

			r := set.Template.Image.Region
			layout := c.State().Layout
			cx, cy := layout.ToCanvas(r.X, r.Y, r.Side)
			Expect(cx + r.Width/2).To(BeNumerically(">=", 0))
			Expect(cx + r.Width/2).To(BeNumerically("<=", layout.ContentWidth()))
			Expect(cy + r.Height/2).To(BeNumerically(">=", 0))
			Expect(cy + r.Height/2).To(BeNumerically("<=", layout.ContentHeight()))
		})

		It("ignores pointer-up without movement", func() {
			before := set.Template.Image.Region
			c.Apply(editor.PointerDown{Element: editor.ElementImage, X: 210, Y: 50})
			patches := c.Apply(editor.PointerUp{})
			Expect(patches).To(BeEmpty())
			Expect(set.Template.Image.Region).To(Equal(before))
		})
	})

	Context("resizing", func() {
		It("enforces minimum sizes", func() {
			c.Apply(editor.ResizeStart{Element: editor.ElementWord, X: 600, Y: 430})
			c.Apply(editor.ResizeMove{X: 110, Y: 315})
			c.Apply(editor.ResizeEnd{})

			word := set.Template.Text(models.RoleWord)
			Expect(word.Width).To(Equal(models.MinTextWidth))
			Expect(word.Height).To(Equal(models.MinTextHeight))
		})

		It("re-derives the side when growth pushes the midpoint across", func() {
			// word box starts at canvas x=100; grow it until its
			// midpoint crosses the split at x=700
			c.Apply(editor.ResizeStart{Element: editor.ElementWord, X: 600, Y: 430})
			patches := c.Apply(editor.ResizeMove{X: 1350, Y: 430})
			Expect(patches).To(HaveLen(1))

			word := set.Template.Text(models.RoleWord)
			Expect(word.Side).To(Equal(models.SideBack))
		})

		It("keeps the image minimum square", func() {
			c.Apply(editor.ResizeStart{Element: editor.ElementImage, X: 500, Y: 280})
			c.Apply(editor.ResizeMove{X: 201, Y: 41})
			c.Apply(editor.ResizeEnd{})
			Expect(set.Template.Image.Width).To(Equal(models.MinImageSize))
			Expect(set.Template.Image.Height).To(Equal(models.MinImageSize))
		})
	})

	Context("text edit mode", func() {
		It("seeds the draft from the committed row text", func() {
			c.Apply(editor.BeginTextEdit{Element: editor.ElementWord})
			Expect(c.State().EditingElement()).To(Equal(editor.ElementWord))
			Expect(c.State().Draft()).To(Equal("Dog"))
		})

		It("commits the draft into the row and exits", func() {
			c.Apply(editor.BeginTextEdit{Element: editor.ElementWord})
			c.Apply(editor.DraftChanged{Text: "Doggo"})
			patches := c.Apply(editor.CommitDraft{})
			Expect(patches).To(ConsistOf(editor.SetRowText{RowID: "r1", Role: models.RoleWord, Text: "Doggo"}))
			Expect(set.Rows[0].Word).To(Equal("Doggo"))
			Expect(c.State().EditingElement()).To(Equal(editor.ElementNone))
		})

		It("discards the draft on cancel", func() {
			c.Apply(editor.BeginTextEdit{Element: editor.ElementSubtitle})
			c.Apply(editor.DraftChanged{Text: "changed"})
			patches := c.Apply(editor.CancelDraft{})
			Expect(patches).To(BeEmpty())
			Expect(set.Rows[0].Subtitle).To(Equal("inu"))
		})

		It("cancels silently when a different row is selected", func() {
			c.Apply(editor.BeginTextEdit{Element: editor.ElementWord})
			c.Apply(editor.DraftChanged{Text: "half-typed"})
			patches := c.Apply(editor.SelectRow{RowID: "r2"})
			Expect(patches).To(BeEmpty())
			Expect(set.Rows[0].Word).To(Equal("Dog"))
			Expect(c.State().EditingElement()).To(Equal(editor.ElementNone))
			Expect(set.SelectedRowID).To(Equal("r2"))
		})

		It("edits the newly selected row afterwards", func() {
			c.Apply(editor.SelectRow{RowID: "r2"})
			c.Apply(editor.BeginTextEdit{Element: editor.ElementWord})
			Expect(c.State().Draft()).To(Equal("Cat"))
		})
	})

	Context("double-sided toggle", func() {
		It("restores all region positions after toggling off and back on", func() {
			original := set.Template

			c.Apply(editor.ToggleDoubleSided{Enabled: false})
			Expect(c.State().DoubleSided).To(BeFalse())
			// the subtitle lived on side 2; single-sided mode shows it
			// on the only face
			Expect(set.Template.Text(models.RoleSubtitle).Side).To(Equal(models.SideFront))

			c.Apply(editor.ToggleDoubleSided{Enabled: true})
			Expect(c.State().DoubleSided).To(BeTrue())
			Expect(set.Template).To(Equal(original))
		})

		It("is a no-op when the mode does not change", func() {
			patches := c.Apply(editor.ToggleDoubleSided{Enabled: true})
			Expect(patches).To(BeEmpty())
		})
	})

	Context("viewport reconciliation", func() {
		It("re-clamps regions when the viewport forces vertical stacking", func() {
			// drag the image onto the back face, far right
			c.Apply(editor.PointerDown{Element: editor.ElementImage, X: 210, Y: 50})
			c.Apply(editor.PointerMove{X: 1300, Y: 50})
			c.Apply(editor.PointerUp{})

			// shrink below the stack breakpoint: faces now stack
			// vertically and every region must fit the new footprint
			c.Apply(editor.ViewportChanged{Width: 600, Height: 800})

			layout := c.State().Layout
			Expect(layout.HorizontalSplit).To(BeFalse())
			for _, el := range []string{models.RoleWord, models.RoleSubtitle} {
				r := set.Template.Text(el).Region
				cx, cy := layout.ToCanvas(r.X, r.Y, r.Side)
				Expect(cx + r.Width/2).To(BeNumerically("<=", layout.ContentWidth()))
				Expect(cy + r.Height/2).To(BeNumerically("<=", layout.ContentHeight()))
			}
			img := set.Template.Image.Region
			cx, cy := layout.ToCanvas(img.X, img.Y, img.Side)
			Expect(cx + img.Width/2).To(BeNumerically("<=", layout.ContentWidth()))
			Expect(cy + img.Height/2).To(BeNumerically("<=", layout.ContentHeight()))
		})
	})
})
