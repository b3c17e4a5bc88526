package textwrap_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardpress/cardpress/pkg/textwrap"
)

// fixedMeasurer gives every rune a width of 10, spaces included.
type fixedMeasurer struct{}

func (fixedMeasurer) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * 10
}

var _ = Describe("Greedy word wrap", func() {
	m := fixedMeasurer{}

	It("keeps text on one line when it fits", func() {
		Expect(textwrap.Wrap("hello world", m, 110)).To(Equal([]string{"hello world"}))
	})

	It("moves the overflowing word to the next line", func() {
		Expect(textwrap.Wrap("hello world", m, 100)).To(Equal([]string{"hello", "world"}))
	})

	It("accumulates greedily with single spaces", func() {
		Expect(textwrap.Wrap("a b c d", m, 30)).To(Equal([]string{"a b", "c d"}))
	})

	It("keeps an oversized word on its own line rather than dropping it", func() {
		Expect(textwrap.Wrap("tiny extraordinarily", m, 50)).To(Equal([]string{"tiny", "extraordinarily"}))
	})

	It("wraps each paragraph independently", func() {
		Expect(textwrap.Wrap("one two\nthree", m, 70)).To(Equal([]string{"one two", "three"}))
	})

	It("preserves blank-line intent as an empty line", func() {
		Expect(textwrap.Wrap("one\n\ntwo", m, 200)).To(Equal([]string{"one", "", "two"}))
	})

	It("yields a single empty line for empty input", func() {
		Expect(textwrap.Wrap("", m, 200)).To(Equal([]string{""}))
	})

	It("collapses repeated spaces into single separators", func() {
		Expect(textwrap.Wrap("a    b", m, 200)).To(Equal([]string{"a b"}))
	})

	DescribeTable("wrapping already-wrapped text is idempotent",
		func(text string, budget float64) {
			first := textwrap.Wrap(text, m, budget)
			again := textwrap.Wrap(strings.Join(first, "\n"), m, budget)
			Expect(again).To(Equal(first))
		},
		Entry("simple sentence", "the quick brown fox jumps over the lazy dog", 120.0),
		Entry("tight budget", "alpha beta gamma delta epsilon", 60.0),
		Entry("with paragraphs", "one two three\n\nfour five six seven", 90.0),
		Entry("oversized words", "a extraordinarily b", 50.0),
	)
})

var _ = Describe("Overflow and clipping", func() {
	It("flags text taller than the box", func() {
		lines := []string{"a", "b", "c"}
		Expect(textwrap.Overflows(lines, 20, 1.5, 80)).To(BeTrue())
		Expect(textwrap.Overflows(lines, 20, 1.5, 90)).To(BeFalse())
	})

	DescribeTable("MaxLines floors whole lines",
		func(boxH, lineH float64, want int) {
			Expect(textwrap.MaxLines(boxH, lineH)).To(Equal(want))
		},
		Entry("exact fit", 90.0, 30.0, 3),
		Entry("partial last line is dropped", 89.0, 30.0, 2),
		Entry("box shorter than one line", 10.0, 30.0, 0),
		Entry("zero line height", 90.0, 0.0, 0),
	)

	It("clips to the limit but never below one line", func() {
		lines := []string{"a", "b", "c"}
		Expect(textwrap.Clip(lines, 2)).To(Equal([]string{"a", "b"}))
		Expect(textwrap.Clip(lines, 0)).To(Equal([]string{"a"}))
		Expect(textwrap.Clip(lines, 5)).To(Equal(lines))
	})
})
