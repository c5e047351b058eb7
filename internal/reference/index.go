// Package reference reads sequence lengths from a FASTA index and resolves
// the length of every chromosome to draw.
package reference

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/biogo/hts/fai"
	"go.uber.org/zap"

	"github.com/inodb/ideocoverage/internal/genome"
)

// Index maps FASTA sequence names to their lengths.
type Index struct {
	path    string
	lengths map[string]int64
}

// IndexLoader reads sequence lengths for a FASTA file, preferring an
// existing samtools index (<fasta>.fai) and otherwise scanning the FASTA.
type IndexLoader struct {
	path   string
	logger *zap.Logger
}

// NewIndexLoader creates a loader for the FASTA at path.
func NewIndexLoader(path string) *IndexLoader {
	return &IndexLoader{path: path, logger: zap.NewNop()}
}

// SetLogger sets the logger for diagnostic messages.
func (l *IndexLoader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load reads the index.
func (l *IndexLoader) Load() (*Index, error) {
	faiPath := l.path + ".fai"
	if _, err := os.Stat(faiPath); err == nil {
		l.logger.Debug("reading FASTA index", zap.String("path", faiPath))
		f, err := os.Open(faiPath)
		if err != nil {
			return nil, &genome.IOError{Op: "open FASTA index", Path: faiPath, Err: err}
		}
		defer f.Close()

		idx, err := fai.ReadFrom(f)
		if err != nil {
			return nil, &genome.ParseError{Path: faiPath, Message: err.Error()}
		}
		return newIndex(l.path, idx), nil
	}

	l.logger.Debug("no .fai index, scanning FASTA", zap.String("path", l.path))
	r, err := genome.Open(l.path, "open FASTA file")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return l.scan(r)
}

func (l *IndexLoader) scan(r io.Reader) (*Index, error) {
	idx, err := fai.NewIndex(r)
	if err != nil {
		return nil, &genome.ParseError{Path: l.path, Message: fmt.Sprintf("index FASTA: %v", err)}
	}
	return newIndex(l.path, idx), nil
}

func newIndex(path string, idx fai.Index) *Index {
	lengths := make(map[string]int64, len(idx))
	for name, rec := range idx {
		lengths[name] = int64(rec.Length)
	}
	return &Index{path: path, lengths: lengths}
}

// NewIndexFromLengths builds an index from known sequence lengths.
func NewIndexFromLengths(path string, lengths map[string]int64) *Index {
	copied := make(map[string]int64, len(lengths))
	for name, n := range lengths {
		copied[name] = n
	}
	return &Index{path: path, lengths: copied}
}

// Path returns the FASTA path the index describes.
func (x *Index) Path() string {
	return x.path
}

// Len returns the number of sequences.
func (x *Index) Len() int {
	return len(x.lengths)
}

// Names returns the sequence names in lexical order.
func (x *Index) Names() []string {
	names := make([]string, 0, len(x.lengths))
	for name := range x.lengths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Length returns the length of a chromosome, matching sequence names after
// normalization (so "17", "chr17" and "Chr17" all match chr17).
func (x *Index) Length(c genome.Chromosome) (int64, bool) {
	if n, ok := x.lengths[c.String()]; ok {
		return n, true
	}
	for _, name := range x.Names() {
		if got, ok := genome.Parse(name); ok && got == c {
			return x.lengths[name], true
		}
	}
	return 0, false
}
