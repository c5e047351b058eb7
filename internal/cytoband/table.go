package cytoband

import "github.com/inodb/ideocoverage/internal/genome"

// Table holds the bands of each chromosome in file order.
type Table map[genome.Chromosome][]Band

// Chromosomes returns the chromosomes present in the table in canonical order.
func (t Table) Chromosomes() []genome.Chromosome {
	chroms := make([]genome.Chromosome, 0, len(t))
	for _, c := range genome.Canonical() {
		if len(t[c]) > 0 {
			chroms = append(chroms, c)
		}
	}
	return chroms
}

// MaxEnd returns the largest band end of a chromosome, or 0 if it has no bands.
func (t Table) MaxEnd(c genome.Chromosome) int64 {
	var end int64
	for _, b := range t[c] {
		if b.End > end {
			end = b.End
		}
	}
	return end
}

// Centromere is the span of contiguous acen bands.
type Centromere struct {
	genome.Region
}

// Centromere returns the first maximal run of consecutive acen bands.
// ok is false when the chromosome has no centromeric band.
func (t Table) Centromere(c genome.Chromosome) (Centromere, bool) {
	bands := t[c]
	for i := 0; i < len(bands); i++ {
		if bands[i].Stain != StainCentromere {
			continue
		}
		r := bands[i].Region()
		for j := i + 1; j < len(bands) && bands[j].Stain == StainCentromere; j++ {
			if bands[j].Start < r.Start {
				r.Start = bands[j].Start
			}
			if bands[j].End > r.End {
				r.End = bands[j].End
			}
		}
		return Centromere{Region: r}, true
	}
	return Centromere{}, false
}

// Arm identifies a chromosome arm.
type Arm uint8

const (
	PArm Arm = iota
	QArm
)

func (a Arm) String() string {
	if a == QArm {
		return "q"
	}
	return "p"
}

// Telomere marks one chromosome extremity. Boundary is the outermost
// coordinate; Region is the span used for coverage classification.
type Telomere struct {
	genome.Region
	Arm      Arm
	Boundary int64
}

// Telomeres returns the p and q telomeres of a chromosome. By default the
// classification span is the terminal band; a positive window replaces it
// with window bases at the extremity. With a positive length, bands starting
// at or past length are ignored and both telomeres are kept within
// [0, length].
func (t Table) Telomeres(c genome.Chromosome, window, length int64) (p, q Telomere, ok bool) {
	bands := t[c]
	if len(bands) == 0 {
		return Telomere{}, Telomere{}, false
	}
	first, last := bands[0], bands[len(bands)-1]
	if length > 0 {
		for i := len(bands) - 1; i > 0 && bands[i].Start >= length; i-- {
			last = bands[i-1]
		}
	}

	p = Telomere{Region: first.Region(), Arm: PArm, Boundary: first.Start}
	q = Telomere{Region: last.Region(), Arm: QArm, Boundary: last.End}

	if length > 0 {
		p.Boundary = min(max(p.Boundary, 0), length)
		q.Boundary = min(max(q.Boundary, 0), length)
	}
	if window > 0 {
		p.Region = genome.Region{Chrom: c, Start: p.Boundary, End: p.Boundary + window}
		q.Region = genome.Region{Chrom: c, Start: q.Boundary - window, End: q.Boundary}
	}
	if length > 0 {
		p.Region = p.Region.Clamp(length)
		q.Region = q.Region.Clamp(length)
	}
	return p, q, true
}

func countRuns(bands []Band, stain string) int {
	runs := 0
	in := false
	for _, b := range bands {
		match := b.Stain == stain
		if match && !in {
			runs++
		}
		in = match
	}
	return runs
}
