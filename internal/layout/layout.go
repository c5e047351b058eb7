// Package layout maps genomic coordinates onto horizontal canvas coordinates.
// All chromosomes share one scale: the longest chromosome in the drawn set
// fills the available width.
package layout

import "math"

// Span is a horizontal extent in canvas units, Start <= End.
type Span struct {
	Start, End float64
}

// Width returns End - Start.
func (s Span) Width() float64 {
	return s.End - s.Start
}

// Scale converts genomic positions to canvas x coordinates.
type Scale struct {
	longest int64
	origin  float64
	width   float64
}

// NewScale maps [0, longest) onto [origin, origin+width).
func NewScale(longest int64, origin, width float64) Scale {
	return Scale{longest: longest, origin: origin, width: width}
}

// X returns the canvas x coordinate of a genomic position. Positions are
// clamped to [0, longest].
func (s Scale) X(pos int64) float64 {
	if s.longest <= 0 {
		return s.origin
	}
	if pos < 0 {
		pos = 0
	}
	if pos > s.longest {
		pos = s.longest
	}
	return s.origin + s.width*float64(pos)/float64(s.longest)
}

// Span returns the canvas extent of [start, end), clamped to a chromosome of
// the given length and widened to at least minWidth so short features stay
// visible. The widened span is kept inside the chromosome bar.
func (s Scale) Span(start, end, length int64, minWidth float64) Span {
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if end < start {
		end = start
	}
	sp := Span{Start: s.X(start), End: s.X(end)}
	if sp.Width() >= minWidth {
		return sp
	}

	bar := Span{Start: s.X(0), End: s.X(length)}
	mid := (sp.Start + sp.End) / 2
	sp = Span{Start: mid - minWidth/2, End: mid + minWidth/2}
	if sp.Start < bar.Start {
		sp = Span{Start: bar.Start, End: bar.Start + minWidth}
	}
	if sp.End > bar.End {
		sp = Span{Start: bar.End - minWidth, End: bar.End}
	}
	if sp.Start < bar.Start {
		sp.Start = bar.Start
	}
	return sp
}

// Tick is a tick mark on a chromosome bar.
type Tick struct {
	X     float64
	Pos   int64
	Major bool
}

// MajorEvery is the number of minor ticks per major tick.
const MajorEvery = 5

// TickSpacing picks a spacing from the 1-2-5 series such that a chromosome
// of the given length gets at most maxTicks ticks. The human genome gets
// 10 Mb at the default of 25.
func TickSpacing(longest int64, maxTicks int) int64 {
	if longest <= 0 || maxTicks <= 0 {
		return 0
	}
	raw := float64(longest) / float64(maxTicks)
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		step := int64(m * pow)
		if step < 1 {
			step = 1
		}
		if longest/step < int64(maxTicks) {
			return step
		}
	}
	return int64(10 * pow)
}

// Ticks returns tick marks every spacing bases from 0 up to length.
func (s Scale) Ticks(length, spacing int64) []Tick {
	if spacing <= 0 || length <= 0 {
		return nil
	}
	var ticks []Tick
	for i, pos := int64(0), int64(0); pos <= length; i, pos = i+1, pos+spacing {
		ticks = append(ticks, Tick{X: s.X(pos), Pos: pos, Major: i%MajorEvery == 0})
	}
	return ticks
}

// Bar is the geometry of one chromosome.
type Bar struct {
	Body       Span
	Centromere *Span
	PTelomere  Span
	QTelomere  Span
	Coverage   []Span
	Ticks      []Tick
}

// Options holds the fixed visual sizes used for a bar.
type Options struct {
	TelomereWidth   float64
	MinFeatureWidth float64
	TickSpacing     int64
}

// Region is a genomic interval on the chromosome being laid out.
type Region struct {
	Start, End int64
}

// Layout lays out one chromosome. pBoundary and qBoundary are the telomere
// coordinates; telomere markers have a fixed width, at most half the bar.
func (s Scale) Layout(length int64, centromere *Region, pBoundary, qBoundary int64, coverage []Region, opts Options) Bar {
	bar := Bar{Body: Span{Start: s.X(0), End: s.X(length)}}

	if centromere != nil {
		sp := s.Span(centromere.Start, centromere.End, length, opts.MinFeatureWidth)
		bar.Centromere = &sp
	}

	tw := math.Min(opts.TelomereWidth, bar.Body.Width()/2)
	px := s.X(clamp(pBoundary, 0, length))
	qx := s.X(clamp(qBoundary, 0, length))
	bar.PTelomere = Span{Start: px, End: math.Min(px+tw, bar.Body.End)}
	bar.QTelomere = Span{Start: math.Max(qx-tw, bar.Body.Start), End: qx}

	for _, r := range coverage {
		if r.Start >= length {
			continue
		}
		bar.Coverage = append(bar.Coverage, s.Span(r.Start, r.End, length, opts.MinFeatureWidth))
	}

	bar.Ticks = s.Ticks(length, opts.TickSpacing)
	return bar
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
