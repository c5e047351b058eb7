package reference

import (
	"github.com/inodb/ideocoverage/internal/cytoband"
	"github.com/inodb/ideocoverage/internal/genome"
)

// Lengths maps each chromosome to draw to its length in bases.
type Lengths map[genome.Chromosome]int64

// Chromosomes returns the chromosomes in canonical order.
func (l Lengths) Chromosomes() []genome.Chromosome {
	chroms := make([]genome.Chromosome, 0, len(l))
	for _, c := range genome.Canonical() {
		if _, ok := l[c]; ok {
			chroms = append(chroms, c)
		}
	}
	return chroms
}

// Longest returns the largest length, or 0 for an empty set.
func (l Lengths) Longest() int64 {
	var longest int64
	for _, n := range l {
		if n > longest {
			longest = n
		}
	}
	return longest
}

// Resolve derives the length of every chromosome in the cytoband table,
// preferring the FASTA index and falling back to the largest band end.
//
// A FASTA holding exactly one sequence restricts the result to that
// chromosome; if it cannot be matched to the cytoband table the result is a
// MissingLengthError. idx may be nil.
func Resolve(idx *Index, bands cytoband.Table) (Lengths, error) {
	lengths := make(Lengths)

	if idx != nil && idx.Len() == 1 {
		name := idx.Names()[0]
		c, ok := genome.Parse(name)
		if !ok || len(bands[c]) == 0 {
			return nil, &genome.MissingLengthError{Chrom: name, Path: idx.Path()}
		}
		n := lengthOf(idx, bands, c)
		if n <= 0 {
			return nil, &genome.MissingLengthError{Chrom: name, Path: idx.Path()}
		}
		lengths[c] = n
		return lengths, nil
	}

	for _, c := range bands.Chromosomes() {
		n := lengthOf(idx, bands, c)
		if n <= 0 {
			path := ""
			if idx != nil {
				path = idx.Path()
			}
			return nil, &genome.MissingLengthError{Chrom: c.String(), Path: path}
		}
		lengths[c] = n
	}
	return lengths, nil
}

func lengthOf(idx *Index, bands cytoband.Table, c genome.Chromosome) int64 {
	if idx != nil {
		if n, ok := idx.Length(c); ok && n > 0 {
			return n
		}
	}
	return bands.MaxEnd(c)
}
