package export_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardpress/cardpress/internal/export"
)

var _ = Describe("FontManager", func() {
	It("fails construction when the font asset is missing", func() {
		_, err := export.NewFontManager("/nonexistent/font.ttf")
		Expect(err).To(MatchError(export.ErrFontAsset))
	})

	It("measures wider text as wider", func() {
		fonts, err := export.NewFontManager(cjkFontPath)
		Expect(err).NotTo(HaveOccurred())

		m := fonts.PixelMeasurer("sans-serif", 64)
		Expect(m.TextWidth("elephant")).To(BeNumerically(">", m.TextWidth("cat")))
		Expect(m.TextWidth("")).To(BeZero())
	})
})

var _ = DescribeTable("CJK detection",
	func(text string, want bool) {
		Expect(export.ContainsCJK(text)).To(Equal(want))
	},
	Entry("latin only", "Dog", false),
	Entry("empty", "", false),
	Entry("han", "犬", true),
	Entry("hiragana", "いぬ", true),
	Entry("katakana", "イヌ", true),
	Entry("hangul", "개", true),
	Entry("mixed", "Dog 犬", true),
)
