// Package render draws the coverage ideogram and serializes it to an image
// file whose format follows the file extension.
package render

import (
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/inodb/ideocoverage/internal/coverage"
)

// Fill describes how a region is painted. A non-nil Hatch adds vertical
// hatching on top of Color.
type Fill struct {
	Color color.Color
	Hatch color.Color
}

// Palette holds the colours of every drawn element. Centromere and Telomere
// are indexed by coverage.Status.
type Palette struct {
	Body       color.Color
	Outline    color.Color
	Coverage   color.Color
	Ticks      color.Color
	Text       color.Color
	Centromere [2]Fill
	Telomere   [2]Fill
}

// CentromereFill returns the fill for a centromere with the given status.
func (p Palette) CentromereFill(s coverage.Status) Fill {
	return p.Centromere[s]
}

// TelomereFill returns the fill for a telomere with the given status.
func (p Palette) TelomereFill(s coverage.Status) Fill {
	return p.Telomere[s]
}

// BandColor returns the shade of a cytoband stain drawn over the body, or
// nil when the body colour shows through. gposN bands darken with N.
func (p Palette) BandColor(stain string) color.Color {
	switch {
	case stain == "gvar":
		return gvarGray
	case strings.HasPrefix(stain, "gpos"):
		n, err := strconv.Atoi(strings.TrimPrefix(stain, "gpos"))
		if err != nil || n <= 0 {
			n = 100
		}
		n = min(n, 100)
		y := uint8(int(lightGray.G) - (int(lightGray.G)-int(darkGray.Y))*n/100)
		return color.Gray{Y: y}
	}
	return nil
}

var (
	gvarGray  = color.Gray{Y: 180}
	darkGray  = color.Gray{Y: 110}
	lightGray = color.RGBA{R: 211, G: 211, B: 211, A: 255}
	navy      = color.RGBA{B: 128, A: 255}
	red       = color.RGBA{R: 255, A: 255}
	paleRed   = color.RGBA{R: 255, G: 204, B: 204, A: 255}
	green     = color.RGBA{G: 128, A: 255}
	paleGreen = color.RGBA{R: 204, G: 255, B: 204, A: 255}
)

// DefaultPalette uses saturated colours for covered landmarks and pale,
// hatched fills for uncovered ones so the two remain distinct in greyscale.
func DefaultPalette() Palette {
	return Palette{
		Body:     lightGray,
		Outline:  color.Black,
		Coverage: navy,
		Ticks:    color.Gray{Y: 64},
		Text:     color.Black,
		Centromere: [2]Fill{
			coverage.Uncovered: {Color: paleRed, Hatch: red},
			coverage.Covered:   {Color: red},
		},
		Telomere: [2]Fill{
			coverage.Uncovered: {Color: paleGreen, Hatch: green},
			coverage.Covered:   {Color: green},
		},
	}
}

// Style holds the figure geometry.
type Style struct {
	Width           vg.Length
	Margin          vg.Length
	LabelWidth      vg.Length
	BarHeight       vg.Length
	CoverageHeight  vg.Length
	RowGap          vg.Length
	TelomereWidth   vg.Length
	MinFeatureWidth vg.Length
	FontSize        vg.Length
	MaxTicks        int
	Title           string
	Palette         Palette
}

// DefaultTitle is the figure title unless configured otherwise.
const DefaultTitle = "BED Coverage Ideogram with Centromeres and Telomeres"

// DefaultStyle returns the default figure geometry.
func DefaultStyle() Style {
	return Style{
		Width:           vg.Points(800),
		Margin:          vg.Points(20),
		LabelWidth:      vg.Points(50),
		BarHeight:       vg.Points(12),
		CoverageHeight:  vg.Points(4),
		RowGap:          vg.Points(10),
		TelomereWidth:   vg.Points(3),
		MinFeatureWidth: vg.Points(0.5),
		FontSize:        vg.Points(9),
		MaxTicks:        25,
		Title:           DefaultTitle,
		Palette:         DefaultPalette(),
	}
}
