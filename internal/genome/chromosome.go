// Package genome defines the canonical human chromosome set, genomic regions
// and the error types shared by the input loaders.
package genome

import (
	"strconv"
	"strings"
)

// Chromosome identifies one of the 24 drawable chromosomes. The numeric value
// is the canonical drawing order: chr1..chr22, chrX, chrY.
type Chromosome uint8

// NumChromosomes is the size of the canonical chromosome set.
const NumChromosomes = 24

const (
	ChrX Chromosome = 22
	ChrY Chromosome = 23
)

var canonical = func() [NumChromosomes]Chromosome {
	var all [NumChromosomes]Chromosome
	for i := range all {
		all[i] = Chromosome(i)
	}
	return all
}()

// Canonical returns the canonical chromosome order.
func Canonical() []Chromosome {
	out := canonical
	return out[:]
}

// String returns the UCSC-style name, e.g. "chr17".
func (c Chromosome) String() string {
	switch {
	case !c.Valid():
		return "chr?" + strconv.Itoa(int(c))
	case c < ChrX:
		return "chr" + strconv.Itoa(int(c)+1)
	case c == ChrX:
		return "chrX"
	}
	return "chrY"
}

// Valid reports whether c is one of the canonical chromosomes.
func (c Chromosome) Valid() bool {
	return c < NumChromosomes
}

// Parse normalizes a sequence name to a canonical chromosome.
// Accepts an optional case-insensitive "chr" prefix followed by 1-22, X or Y.
func Parse(name string) (Chromosome, bool) {
	name = strings.TrimSpace(name)
	if len(name) > 3 && strings.EqualFold(name[:3], "chr") {
		name = name[3:]
	}

	switch name {
	case "X", "x":
		return ChrX, true
	case "Y", "y":
		return ChrY, true
	case "":
		return 0, false
	}

	if name[0] < '1' || name[0] > '9' || len(name) > 2 {
		return 0, false
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 1 || n > 22 {
		return 0, false
	}
	return Chromosome(n - 1), true
}
