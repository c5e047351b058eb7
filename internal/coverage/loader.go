// Package coverage loads BED coverage intervals and classifies genomic
// regions as covered or uncovered.
package coverage

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/ideocoverage/internal/genome"
)

// Interval is a single BED record, 0-based half-open.
type Interval struct {
	Chrom genome.Chromosome
	Start int64
	End   int64
}

// Region returns the genomic span of the interval.
func (iv Interval) Region() genome.Region {
	return genome.Region{Chrom: iv.Chrom, Start: iv.Start, End: iv.End}
}

// Track holds the BED intervals of each chromosome in file order.
// Overlapping intervals are kept as they are.
type Track map[genome.Chromosome][]Interval

// Count returns the total number of intervals.
func (t Track) Count() int {
	n := 0
	for _, ivs := range t {
		n += len(ivs)
	}
	return n
}

// Loader reads BED files (chrom, start, end, ...). Extra columns are ignored.
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a BED loader. Gzipped files are accepted.
func NewLoader(path string) *Loader {
	return &Loader{path: path, logger: zap.NewNop()}
}

// SetLogger sets the logger for diagnostic messages.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load reads the whole BED file.
func (l *Loader) Load() (Track, error) {
	r, err := genome.Open(l.path, "open BED file")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return l.parse(r)
}

func (l *Loader) parse(reader io.Reader) (Track, error) {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	track := make(Track)
	skipped := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if isBEDHeader(line) {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			// Some BED producers separate columns with spaces.
			fields = strings.Fields(line)
		}
		if len(fields) < 3 {
			return nil, &genome.ParseError{
				Path:    l.path,
				Line:    lineNum,
				Message: fmt.Sprintf("expected at least 3 columns, found %d", len(fields)),
			}
		}

		chrom, ok := genome.TolerantName(fields[0])
		if !ok {
			skipped++
			continue
		}

		start, end, err := genome.StrictCoords(fields[1], fields[2])
		if err != nil {
			return nil, &genome.ParseError{Path: l.path, Line: lineNum, Message: err.Error()}
		}

		track[chrom] = append(track[chrom], Interval{Chrom: chrom, Start: start, End: end})
	}

	if err := scanner.Err(); err != nil {
		return nil, &genome.IOError{Op: "read BED file", Path: l.path, Err: err}
	}

	if skipped > 0 {
		l.logger.Debug("dropped BED records on unrecognized sequences",
			zap.String("path", l.path),
			zap.Int("records", skipped))
	}
	l.logger.Debug("loaded BED intervals",
		zap.String("path", l.path),
		zap.Int("intervals", track.Count()))

	return track, nil
}

func isBEDHeader(line string) bool {
	return strings.TrimSpace(line) == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "track") ||
		strings.HasPrefix(line, "browser")
}
