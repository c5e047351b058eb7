package render

import (
	"gonum.org/v1/plot/vg"

	"github.com/inodb/ideocoverage/internal/coverage"
	"github.com/inodb/ideocoverage/internal/ideogram"
	"github.com/inodb/ideocoverage/internal/layout"
)

// Row is one laid-out chromosome. Top is measured downward from the top edge
// of the figure.
type Row struct {
	Chrom   *ideogram.Chromosome
	Top     vg.Length
	Bar     layout.Bar
	Bands   []BandSpan
	Centre  coverage.Status
	PStatus coverage.Status
	QStatus coverage.Status
}

// BandSpan is the laid-out extent of one cytoband.
type BandSpan struct {
	layout.Span
	Stain string
}

// LegendEntry is one swatch of the legend.
type LegendEntry struct {
	Label string
	Fill  Fill
	// Strip draws the swatch at coverage-strip height.
	Strip bool
}

// Figure is the complete page plan. Drawing it is a pure function of the
// plan, so equal inputs yield identical output.
type Figure struct {
	Style  Style
	Width  vg.Length
	Height vg.Length
	Rows   []Row
	Legend []LegendEntry

	legendTop vg.Length
}

const (
	stripGap  = 2
	minorTick = 2
	majorTick = 4
)

func (st Style) titleHeight() vg.Length {
	return st.FontSize * 2.5
}

func (st Style) tickLabelSize() vg.Length {
	return st.FontSize * 0.75
}

func (st Style) rowPitch() vg.Length {
	return st.BarHeight + stripGap + st.CoverageHeight + majorTick + st.tickLabelSize()*1.5 + st.RowGap
}

func (st Style) legendLine() vg.Length {
	return st.FontSize * 1.6
}

// NewFigure lays out every chromosome of g on one shared scale.
func NewFigure(g *ideogram.Genome, st Style) *Figure {
	f := &Figure{Style: st, Width: st.Width}

	origin := st.Margin + st.LabelWidth
	avail := st.Width - origin - st.Margin
	if avail < 1 {
		avail = 1
	}
	scale := layout.NewScale(g.Longest, float64(origin), float64(avail))
	opts := layout.Options{
		TelomereWidth:   float64(st.TelomereWidth),
		MinFeatureWidth: float64(st.MinFeatureWidth),
		TickSpacing:     layout.TickSpacing(g.Longest, st.MaxTicks),
	}

	top := st.Margin + st.titleHeight()
	for i := range g.Chromosomes {
		chr := &g.Chromosomes[i]

		var cen *layout.Region
		row := Row{Chrom: chr, Top: top}
		if chr.Centromere != nil {
			cen = &layout.Region{Start: chr.Centromere.Region.Start, End: chr.Centromere.Region.End}
			row.Centre = chr.Centromere.Status
		}
		p, q := chr.Telomeres[0], chr.Telomeres[1]
		row.PStatus, row.QStatus = p.Status, q.Status

		regions := make([]layout.Region, len(chr.Coverage))
		for j, iv := range chr.Coverage {
			regions[j] = layout.Region{Start: iv.Start, End: iv.End}
		}

		row.Bar = scale.Layout(chr.Length, cen, p.Boundary, q.Boundary, regions, opts)
		for _, b := range chr.Bands {
			if b.Start >= chr.Length {
				continue
			}
			sp := scale.Span(b.Start, b.End, chr.Length, 0)
			row.Bands = append(row.Bands, BandSpan{Span: sp, Stain: b.Stain})
		}
		f.Rows = append(f.Rows, row)
		top += st.rowPitch()
	}

	pal := st.Palette
	f.Legend = []LegendEntry{
		{Label: "Chromosome body", Fill: Fill{Color: pal.Body}},
		{Label: "BED coverage", Fill: Fill{Color: pal.Coverage}, Strip: true},
		{Label: "Covered centromere", Fill: pal.CentromereFill(coverage.Covered)},
		{Label: "Uncovered centromere", Fill: pal.CentromereFill(coverage.Uncovered)},
		{Label: "Covered telomere", Fill: pal.TelomereFill(coverage.Covered)},
		{Label: "Uncovered telomere", Fill: pal.TelomereFill(coverage.Uncovered)},
	}
	f.legendTop = top + st.RowGap
	f.Height = f.legendTop + vg.Length(len(f.Legend))*st.legendLine() + st.Margin
	return f
}
