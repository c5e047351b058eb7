package render

import (
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/inodb/ideocoverage/internal/layout"
)

const hatchStep = 2

// Draw paints the figure onto c. c must be Width x Height.
func (f *Figure) Draw(c draw.Canvas) {
	st := f.Style

	c.FillPolygon(color.White, rect(0, 0, f.Width, f.Height))

	title := f.text(st.FontSize*1.3, draw.XCenter, draw.YCenter)
	c.FillText(title, vg.Point{X: f.Width / 2, Y: f.y(st.Margin + st.titleHeight()/2)}, st.Title)

	for _, row := range f.Rows {
		f.drawRow(&c, row)
	}

	label := f.text(st.FontSize, draw.XLeft, draw.YCenter)
	swatch := st.BarHeight
	x := st.Margin + st.LabelWidth
	for i, e := range f.Legend {
		mid := f.legendTop + (vg.Length(i)+0.5)*st.legendLine()
		h := swatch
		if e.Strip {
			h = st.CoverageHeight
		}
		f.fillRect(&c, e.Fill, x, mid-h/2, x+2*swatch, mid+h/2)
		c.StrokeLines(f.outline(), outlinePts(x, f.y(mid-h/2), x+2*swatch, f.y(mid+h/2)))
		c.FillText(label, vg.Point{X: x + 2*swatch + st.FontSize/2, Y: f.y(mid)}, e.Label)
	}
}

func (f *Figure) drawRow(c *draw.Canvas, row Row) {
	st := f.Style
	pal := st.Palette
	top, bottom := row.Top, row.Top+st.BarHeight
	bar := row.Bar

	name := f.text(st.FontSize, draw.XRight, draw.YCenter)
	c.FillText(name, vg.Point{X: st.Margin + st.LabelWidth - st.FontSize/2, Y: f.y(top + st.BarHeight/2)}, row.Chrom.Name.String())

	x0, x1 := vg.Length(bar.Body.Start), vg.Length(bar.Body.End)
	f.fillRect(c, Fill{Color: pal.Body}, x0, top, x1, bottom)
	for _, b := range row.Bands {
		if clr := pal.BandColor(b.Stain); clr != nil {
			f.fillSpan(c, Fill{Color: clr}, b.Span, top, bottom)
		}
	}

	if bar.Centromere != nil {
		f.fillSpan(c, pal.CentromereFill(row.Centre), *bar.Centromere, top, bottom)
	}
	f.fillSpan(c, pal.TelomereFill(row.PStatus), bar.PTelomere, top, bottom)
	f.fillSpan(c, pal.TelomereFill(row.QStatus), bar.QTelomere, top, bottom)

	c.StrokeLines(f.outline(), outlinePts(x0, f.y(top), x1, f.y(bottom)))

	stripTop := bottom + stripGap
	stripBottom := stripTop + st.CoverageHeight
	for _, sp := range bar.Coverage {
		f.fillSpan(c, Fill{Color: pal.Coverage}, sp, stripTop, stripBottom)
	}

	tick := draw.LineStyle{Color: pal.Ticks, Width: vg.Points(0.5)}
	tickLabel := f.text(st.tickLabelSize(), draw.XCenter, draw.YTop)
	for _, t := range bar.Ticks {
		x := vg.Length(t.X)
		length := vg.Length(minorTick)
		if t.Major {
			length = majorTick
		}
		c.StrokeLine2(tick, x, f.y(stripBottom), x, f.y(stripBottom+length))
		if t.Major {
			c.FillText(tickLabel, vg.Point{X: x, Y: f.y(stripBottom + majorTick + 1)}, tickText(t.Pos))
		}
	}
}

func (f *Figure) fillSpan(c *draw.Canvas, fill Fill, sp layout.Span, top, bottom vg.Length) {
	f.fillRect(c, fill, vg.Length(sp.Start), top, vg.Length(sp.End), bottom)
}

// fillRect fills the rectangle given in top-down coordinates.
func (f *Figure) fillRect(c *draw.Canvas, fill Fill, x0, top, x1, bottom vg.Length) {
	if x1 <= x0 {
		return
	}
	c.FillPolygon(fill.Color, rect(x0, f.y(bottom), x1, f.y(top)))
	if fill.Hatch == nil {
		return
	}
	hatch := draw.LineStyle{Color: fill.Hatch, Width: vg.Points(0.4)}
	for x := x0 + hatchStep/2; x < x1; x += hatchStep {
		c.StrokeLine2(hatch, x, f.y(bottom), x, f.y(top))
	}
}

// y converts a top-down offset into the canvas' bottom-up coordinate.
func (f *Figure) y(top vg.Length) vg.Length {
	return f.Height - top
}

func (f *Figure) text(size vg.Length, x draw.XAlignment, y draw.YAlignment) draw.TextStyle {
	return draw.TextStyle{
		Color:   f.Style.Palette.Text,
		Font:    font.Font{Typeface: "Liberation", Variant: "Sans", Size: size},
		XAlign:  x,
		YAlign:  y,
		Handler: plot.DefaultTextHandler,
	}
}

func (f *Figure) outline() draw.LineStyle {
	return draw.LineStyle{Color: f.Style.Palette.Outline, Width: vg.Points(0.5)}
}

func rect(x0, y0, x1, y1 vg.Length) []vg.Point {
	return []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func outlinePts(x0, y0, x1, y1 vg.Length) []vg.Point {
	return append(rect(x0, y0, x1, y1), vg.Point{X: x0, Y: y0})
}

// tickText formats a major tick position in the largest unit that divides it.
func tickText(pos int64) string {
	switch {
	case pos == 0:
		return "0"
	case pos%1_000_000 == 0:
		return strconv.FormatInt(pos/1_000_000, 10) + " Mb"
	case pos%1_000 == 0:
		return strconv.FormatInt(pos/1_000, 10) + " kb"
	}
	return strconv.FormatInt(pos, 10) + " bp"
}
