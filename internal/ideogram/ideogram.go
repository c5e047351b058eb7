// Package ideogram runs the input loaders and the overlap classifier and
// assembles the read-only per-chromosome model that is drawn or reported.
package ideogram

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/ideocoverage/internal/coverage"
	"github.com/inodb/ideocoverage/internal/cytoband"
	"github.com/inodb/ideocoverage/internal/genome"
	"github.com/inodb/ideocoverage/internal/reference"
)

// Inputs names the three input files.
type Inputs struct {
	FASTA    string
	BED      string
	Cytoband string
}

// Kind identifies a classified landmark.
type Kind uint8

const (
	Centromere Kind = iota
	PTelomere
	QTelomere
)

func (k Kind) String() string {
	switch k {
	case PTelomere:
		return "p_telomere"
	case QTelomere:
		return "q_telomere"
	}
	return "centromere"
}

// Feature is a centromere or telomere with its coverage state.
type Feature struct {
	Kind Kind
	// Region is the span tested against the BED intervals.
	Region genome.Region
	// Boundary is the chromosome extremity a telomere marks. Unused for
	// centromeres.
	Boundary int64
	Status   coverage.Status
	// Overlaps counts the BED intervals intersecting Region.
	Overlaps int
}

// Chromosome is everything drawn for one chromosome.
type Chromosome struct {
	Name       genome.Chromosome
	Length     int64
	Centromere *Feature
	Telomeres  [2]Feature // p, q
	Bands      []cytoband.Band
	Coverage   []coverage.Interval
}

// Features returns the centromere (when present) followed by the p and q telomeres.
func (c *Chromosome) Features() []Feature {
	out := make([]Feature, 0, 3)
	if c.Centromere != nil {
		out = append(out, *c.Centromere)
	}
	return append(out, c.Telomeres[0], c.Telomeres[1])
}

// Genome is the complete model, chromosomes in canonical order.
type Genome struct {
	Chromosomes []Chromosome
	Longest     int64
}

// Builder runs the pipeline.
type Builder struct {
	telomereWindow int64
	logger         *zap.Logger
}

// NewBuilder creates a builder with default options.
func NewBuilder() *Builder {
	return &Builder{logger: zap.NewNop()}
}

// SetLogger sets the logger passed on to the loaders.
func (b *Builder) SetLogger(l *zap.Logger) {
	b.logger = l
}

// SetTelomereWindow sets the number of bases at each extremity classified as
// telomere. Zero uses the terminal cytoband entry.
func (b *Builder) SetTelomereWindow(bases int64) {
	b.telomereWindow = bases
}

// Load reads all inputs to completion and builds the model.
func (b *Builder) Load(in Inputs) (*Genome, error) {
	bandLoader := cytoband.NewLoader(in.Cytoband)
	bandLoader.SetLogger(b.logger)
	bands, err := bandLoader.Load()
	if err != nil {
		return nil, err
	}

	idxLoader := reference.NewIndexLoader(in.FASTA)
	idxLoader.SetLogger(b.logger)
	idx, err := idxLoader.Load()
	if err != nil {
		return nil, err
	}

	bedLoader := coverage.NewLoader(in.BED)
	bedLoader.SetLogger(b.logger)
	track, err := bedLoader.Load()
	if err != nil {
		return nil, err
	}

	lengths, err := reference.Resolve(idx, bands)
	if err != nil {
		return nil, err
	}

	return b.Build(bands, lengths, track)
}

// Build classifies every chromosome with a resolved length.
func (b *Builder) Build(bands cytoband.Table, lengths reference.Lengths, track coverage.Track) (*Genome, error) {
	index, err := coverage.NewIndex(track)
	if err != nil {
		return nil, fmt.Errorf("index coverage intervals: %w", err)
	}

	g := &Genome{Longest: lengths.Longest()}
	for _, c := range lengths.Chromosomes() {
		length := lengths[c]
		intervals := track[c]
		chr := Chromosome{
			Name:     c,
			Length:   length,
			Bands:    bands[c],
			Coverage: intervals,
		}

		classify := func(kind Kind, r genome.Region, boundary int64) Feature {
			return Feature{
				Kind:     kind,
				Region:   r,
				Boundary: boundary,
				Status:   coverage.Classify(r, intervals),
				Overlaps: index.Count(r),
			}
		}

		if cen, ok := bands.Centromere(c); ok {
			if r := cen.Region.Clamp(length); r.Len() > 0 {
				f := classify(Centromere, r, 0)
				chr.Centromere = &f
			} else {
				b.logger.Warn("centromere lies beyond the chromosome length, ignored",
					zap.String("chrom", c.String()),
					zap.Int64("length", length),
					zap.Stringer("centromere", cen.Region))
			}
		}

		p, q, ok := bands.Telomeres(c, b.telomereWindow, length)
		if !ok {
			return nil, &genome.MissingLengthError{Chrom: c.String()}
		}
		chr.Telomeres[0] = classify(PTelomere, p.Region, p.Boundary)
		chr.Telomeres[1] = classify(QTelomere, q.Region, q.Boundary)

		fields := []zap.Field{
			zap.String("chrom", c.String()),
			zap.Int64("length", length),
			zap.Int("intervals", len(intervals)),
		}
		for _, f := range chr.Features() {
			fields = append(fields, zap.Stringer(f.Kind.String(), f.Status))
		}
		b.logger.Debug("classified chromosome", fields...)

		g.Chromosomes = append(g.Chromosomes, chr)
	}
	return g, nil
}
