// Package output provides the tab-delimited coverage report.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/ideocoverage/internal/coverage"
	"github.com/inodb/ideocoverage/internal/ideogram"
)

// TabWriter writes one row per centromere and telomere.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
	summary Summary
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"Chromosome",
			"Region",
			"Start",
			"End",
			"Status",
			"Overlapping_intervals",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes the rows of one chromosome: centromere first when present,
// then the p and q telomeres.
func (tw *TabWriter) Write(chr *ideogram.Chromosome) error {
	for _, f := range chr.Features() {
		values := []string{
			chr.Name.String(),
			f.Kind.String(),
			strconv.FormatInt(f.Region.Start, 10),
			strconv.FormatInt(f.Region.End, 10),
			f.Status.String(),
			strconv.Itoa(f.Overlaps),
		}
		if _, err := tw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
		tw.summary.Add(f)
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// Summary returns the counts of the rows written so far.
func (tw *TabWriter) Summary() Summary {
	return tw.summary
}

// Summary counts covered regions per kind.
type Summary struct {
	Covered [3]int
	Total   [3]int
}

// Add counts one feature.
func (s *Summary) Add(f ideogram.Feature) {
	s.Total[f.Kind]++
	if f.Status == coverage.Covered {
		s.Covered[f.Kind]++
	}
}

// String formats the summary as "centromeres 2/4 covered, telomeres 3/10 covered".
func (s Summary) String() string {
	tel := func(a [3]int) int { return a[ideogram.PTelomere] + a[ideogram.QTelomere] }
	return fmt.Sprintf("centromeres %d/%d covered, telomeres %d/%d covered",
		s.Covered[ideogram.Centromere], s.Total[ideogram.Centromere],
		tel(s.Covered), tel(s.Total))
}
