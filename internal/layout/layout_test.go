package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale_X(t *testing.T) {
	s := NewScale(1000, 50, 700)

	assert.InDelta(t, 50, s.X(0), 1e-9)
	assert.InDelta(t, 750, s.X(1000), 1e-9)
	assert.InDelta(t, 400, s.X(500), 1e-9)
	assert.InDelta(t, 50, s.X(-10), 1e-9, "clamped below")
	assert.InDelta(t, 750, s.X(5000), 1e-9, "clamped above")

	empty := NewScale(0, 50, 700)
	assert.InDelta(t, 50, empty.X(100), 1e-9)
}

func TestScale_SharedAcrossChromosomes(t *testing.T) {
	s := NewScale(1000, 0, 800)
	opts := Options{TelomereWidth: 3, TickSpacing: 100}

	longest := s.Layout(1000, nil, 0, 1000, nil, opts)
	shorter := s.Layout(600, nil, 0, 600, nil, opts)

	assert.InDelta(t, 800, longest.Body.Width(), 1e-9, "longest fills the width")
	assert.InDelta(t, 480, shorter.Body.Width(), 1e-9, "shorter scaled by length")
	assert.InDelta(t, longest.Body.Start, shorter.Body.Start, 1e-9)
}

func TestScale_SingleChromosomeFillsWidth(t *testing.T) {
	const chr17 = 83257441
	s := NewScale(chr17, 60, 700)
	bar := s.Layout(chr17, nil, 0, chr17, nil, Options{TelomereWidth: 3})

	assert.InDelta(t, 60, bar.Body.Start, 1e-9)
	assert.InDelta(t, 760, bar.Body.End, 1e-9)
}

func TestScale_Layout(t *testing.T) {
	s := NewScale(1000, 0, 1000)
	bar := s.Layout(1000, &Region{Start: 250, End: 360}, 0, 1000,
		[]Region{{Start: 20, End: 40}, {Start: 500, End: 500 + 0}, {Start: 2000, End: 2100}},
		Options{TelomereWidth: 4, MinFeatureWidth: 1, TickSpacing: 100})

	require.NotNil(t, bar.Centromere)
	assert.Equal(t, Span{Start: 250, End: 360}, *bar.Centromere)

	assert.Equal(t, Span{Start: 0, End: 4}, bar.PTelomere)
	assert.Equal(t, Span{Start: 996, End: 1000}, bar.QTelomere)

	require.Len(t, bar.Coverage, 2, "intervals past the end are not drawn")
	assert.Equal(t, Span{Start: 20, End: 40}, bar.Coverage[0])
	assert.InDelta(t, 1, bar.Coverage[1].Width(), 1e-9, "widened to the minimum")

	require.Len(t, bar.Ticks, 11)
	assert.True(t, bar.Ticks[0].Major)
	assert.False(t, bar.Ticks[1].Major)
	assert.True(t, bar.Ticks[5].Major)
	assert.Equal(t, int64(1000), bar.Ticks[10].Pos)
}

func TestScale_TelomereMarkersOnTinyBar(t *testing.T) {
	s := NewScale(1000, 0, 100)
	bar := s.Layout(20, nil, 0, 20, nil, Options{TelomereWidth: 5})

	assert.InDelta(t, 2, bar.Body.Width(), 1e-9)
	assert.InDelta(t, 1, bar.PTelomere.Width(), 1e-9, "at most half the bar")
	assert.InDelta(t, 1, bar.QTelomere.Width(), 1e-9)
	assert.GreaterOrEqual(t, bar.PTelomere.Start, bar.Body.Start)
	assert.LessOrEqual(t, bar.QTelomere.End, bar.Body.End)
}

func TestScale_SpanStaysInsideBar(t *testing.T) {
	s := NewScale(1000, 0, 1000)

	sp := s.Span(0, 1, 1000, 6)
	assert.InDelta(t, 0, sp.Start, 1e-9)
	assert.InDelta(t, 6, sp.End, 1e-9)

	sp = s.Span(999, 1000, 1000, 6)
	assert.InDelta(t, 994, sp.Start, 1e-9)
	assert.InDelta(t, 1000, sp.End, 1e-9)

	sp = s.Span(900, 1500, 1000, 0)
	assert.InDelta(t, 1000, sp.End, 1e-9, "clamped to the chromosome length")
}

func TestTickSpacing(t *testing.T) {
	tests := []struct {
		name     string
		longest  int64
		maxTicks int
		want     int64
	}{
		{"GRCh38 chr1", 248956422, 25, 10_000_000},
		{"GRCh38 chr17 alone", 83257441, 25, 5_000_000},
		{"GRCh38 chr21 alone", 46709983, 25, 2_000_000},
		{"small synthetic", 1000, 25, 50},
		{"tiny", 10, 25, 1},
		{"no length", 0, 25, 0},
		{"no ticks", 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TickSpacing(tt.longest, tt.maxTicks)
			assert.Equal(t, tt.want, got)
			if got > 0 {
				assert.LessOrEqual(t, len(NewScale(tt.longest, 0, 1).Ticks(tt.longest, got)), tt.maxTicks)
			}
		})
	}
}

func TestLayout_Deterministic(t *testing.T) {
	s := NewScale(248956422, 70, 700)
	opts := Options{TelomereWidth: 3, MinFeatureWidth: 0.5, TickSpacing: TickSpacing(248956422, 25)}
	cov := []Region{{Start: 1000, End: 2000}, {Start: 121_700_000, End: 125_100_000}}

	a := s.Layout(248956422, &Region{Start: 121_700_000, End: 125_100_000}, 0, 248956422, cov, opts)
	b := s.Layout(248956422, &Region{Start: 121_700_000, End: 125_100_000}, 0, 248956422, cov, opts)
	assert.Equal(t, a, b)
}
