package coverage

import (
	"github.com/biogo/store/interval"

	"github.com/inodb/ideocoverage/internal/genome"
)

// Status is the coverage state of a centromere or telomere.
type Status uint8

const (
	Uncovered Status = iota
	Covered
)

func (s Status) String() string {
	if s == Covered {
		return "covered"
	}
	return "uncovered"
}

// Classify reports Covered iff at least one interval on the region's
// chromosome intersects it. Both sides are half-open.
func Classify(region genome.Region, intervals []Interval) Status {
	for _, iv := range intervals {
		if region.Overlaps(iv.Region()) {
			return Covered
		}
	}
	return Uncovered
}

// Index answers overlap queries against a Track using one interval tree per
// chromosome. The Track is read once and not retained.
type Index struct {
	trees map[genome.Chromosome]*interval.IntTree
}

// treeInterval adapts an Interval to the interval tree.
type treeInterval struct {
	start, end int
	uid        uintptr
}

func (i treeInterval) Overlap(b interval.IntRange) bool {
	return i.end > b.Start && i.start < b.End
}
func (i treeInterval) ID() uintptr              { return i.uid }
func (i treeInterval) Range() interval.IntRange { return interval.IntRange{Start: i.start, End: i.end} }

// query is a half-open probe range.
type query struct {
	start, end int
}

func (q query) Overlap(b interval.IntRange) bool {
	return q.start < b.End && b.Start < q.end
}

// NewIndex builds the per-chromosome trees.
func NewIndex(track Track) (*Index, error) {
	idx := &Index{trees: make(map[genome.Chromosome]*interval.IntTree, len(track))}
	for chrom, ivs := range track {
		tree := &interval.IntTree{}
		for i, iv := range ivs {
			if err := tree.Insert(treeInterval{start: int(iv.Start), end: int(iv.End), uid: uintptr(i)}, true); err != nil {
				return nil, err
			}
		}
		tree.AdjustRanges()
		idx.trees[chrom] = tree
	}
	return idx, nil
}

// Count returns the number of intervals intersecting the region.
// Count(r) > 0 exactly when Classify reports Covered.
func (x *Index) Count(region genome.Region) int {
	tree := x.trees[region.Chrom]
	if tree == nil || tree.Len() == 0 || region.Len() <= 0 {
		return 0
	}
	n := 0
	tree.DoMatching(func(interval.IntInterface) bool {
		n++
		return false
	}, query{start: int(region.Start), end: int(region.End)})
	return n
}
