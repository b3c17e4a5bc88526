package models

// Element roles and sides used across the editor and exporter.
const (
	RoleWord     = "word"
	RoleSubtitle = "subtitle"

	SideFront = 1
	SideBack  = 2
)

// Minimum region sizes enforced on resize, in template pixels.
const (
	MinImageSize  = 20.0
	MinTextWidth  = 40.0
	MinTextHeight = 30.0
)

// Region is the shared geometry of every placeable element. Positions
// are template-local: relative to the element's own card face origin,
// never pre-offset by side.
type Region struct {
	Side   int     `json:"side"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ImageRegion struct {
	Region
}

type TextRegion struct {
	Region
	Role       string  `json:"role"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	Color      string  `json:"color"`
	Align      string  `json:"align"`
	LineHeight float64 `json:"lineHeight"`
}

// CardTemplate is the single master layout every row is rendered
// through. Both faces share the same dimensions; which face an
// element lands on is carried per region.
type CardTemplate struct {
	Width           float64       `json:"width"`
	Height          float64       `json:"height"`
	BackgroundColor string        `json:"backgroundColor"`
	Image           ImageRegion   `json:"image"`
	TextElements    [2]TextRegion `json:"textElements"`
}

// Text returns the text region with the given role. The template
// always holds exactly one region per role.
func (t *CardTemplate) Text(role string) *TextRegion {
	for i := range t.TextElements {
		if t.TextElements[i].Role == role {
			return &t.TextElements[i]
		}
	}
	return nil
}

// DefaultTemplate mirrors the layout a fresh set starts with: image on
// the front face upper half, word below it, subtitle on the back face.
func DefaultTemplate() CardTemplate {
	return CardTemplate{
		Width:           700,
		Height:          500,
		BackgroundColor: "#ffffff",
		Image: ImageRegion{
			Region: Region{Side: SideFront, X: 200, Y: 40, Width: 300, Height: 240},
		},
		TextElements: [2]TextRegion{
			{
				Region:     Region{Side: SideFront, X: 100, Y: 310, Width: 500, Height: 120},
				Role:       RoleWord,
				FontFamily: "sans-serif",
				FontSize:   64,
				Color:      "#1a1a1a",
				Align:      "center",
				LineHeight: 1.2,
			},
			{
				Region:     Region{Side: SideBack, X: 100, Y: 190, Width: 500, Height: 120},
				Role:       RoleSubtitle,
				FontFamily: "sans-serif",
				FontSize:   40,
				Color:      "#444444",
				Align:      "center",
				LineHeight: 1.3,
			},
		},
	}
}
