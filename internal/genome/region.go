package genome

import "fmt"

// Region is a 0-based half-open interval [Start, End) on a chromosome.
type Region struct {
	Chrom Chromosome
	Start int64
	End   int64
}

// Len returns the number of bases covered by the region.
func (r Region) Len() int64 {
	return r.End - r.Start
}

// Overlaps reports whether two regions on the same chromosome share at least one base.
func (r Region) Overlaps(o Region) bool {
	return r.Chrom == o.Chrom && r.Start < o.End && o.Start < r.End
}

// Clamp restricts the region to [0, length).
func (r Region) Clamp(length int64) Region {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > length {
		r.End = length
	}
	if r.Start > r.End {
		r.Start = r.End
	}
	return r
}

func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}
