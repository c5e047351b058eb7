// Package cytoband loads UCSC cytoband tables and derives centromere and
// telomere regions from them.
package cytoband

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/ideocoverage/internal/genome"
)

// StainCentromere is the gieStain value marking centromeric bands.
const StainCentromere = "acen"

// Band is a single row of the cytoband table.
type Band struct {
	Chrom genome.Chromosome
	Start int64 // 0-based
	End   int64 // exclusive
	Name  string
	Stain string
}

// Region returns the genomic span of the band.
func (b Band) Region() genome.Region {
	return genome.Region{Chrom: b.Chrom, Start: b.Start, End: b.End}
}

// Loader reads a cytoband table (chrom, chromStart, chromEnd, name, gieStain).
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a loader for the given path. Gzipped files are accepted.
func NewLoader(path string) *Loader {
	return &Loader{path: path, logger: zap.NewNop()}
}

// SetLogger sets the logger for diagnostic messages.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load reads the whole table.
func (l *Loader) Load() (Table, error) {
	r, err := genome.Open(l.path, "open cytoband file")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return l.parse(r)
}

// parse reads cytoband rows. Rows on non-canonical sequences are skipped;
// any other malformed row fails the load.
func (l *Loader) parse(reader io.Reader) (Table, error) {
	scanner := bufio.NewScanner(reader)

	table := make(Table)
	skipped := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, l.parseError(lineNum, fmt.Sprintf("expected 5 columns, found %d", len(fields)))
		}

		chrom, ok := genome.TolerantName(fields[0])
		if !ok {
			skipped++
			continue
		}

		start, end, err := genome.StrictCoords(fields[1], fields[2])
		if err != nil {
			return nil, l.parseError(lineNum, err.Error())
		}

		bands := table[chrom]
		if n := len(bands); n > 0 && start < bands[n-1].End {
			return nil, l.parseError(lineNum, fmt.Sprintf(
				"band %s:%d-%d starts before the end of the previous band (%d)",
				fields[0], start, end, bands[n-1].End))
		}

		table[chrom] = append(bands, Band{
			Chrom: chrom,
			Start: start,
			End:   end,
			Name:  fields[3],
			Stain: strings.TrimSpace(fields[4]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, &genome.IOError{Op: "read cytoband file", Path: l.path, Err: err}
	}

	if skipped > 0 {
		l.logger.Debug("skipped cytoband rows on unrecognized sequences",
			zap.String("path", l.path),
			zap.Int("rows", skipped))
	}
	l.warnSplitCentromeres(table)

	return table, nil
}

func (l *Loader) parseError(line int, msg string) error {
	return &genome.ParseError{Path: l.path, Line: line, Message: msg}
}

func (l *Loader) warnSplitCentromeres(table Table) {
	for _, c := range table.Chromosomes() {
		if runs := countRuns(table[c], StainCentromere); runs > 1 {
			l.logger.Warn("multiple centromere runs, using the first",
				zap.String("chrom", c.String()),
				zap.Int("runs", runs))
		}
	}
}
