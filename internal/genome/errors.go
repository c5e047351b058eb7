package genome

import "fmt"

// ParseError reports a malformed record in one of the input files.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// MissingLengthError reports a chromosome that has to be drawn but has no
// length from either the FASTA index or the cytoband table.
type MissingLengthError struct {
	Chrom string
	Path  string
}

func (e *MissingLengthError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("no length for %s in the cytoband table", e.Chrom)
	}
	return fmt.Sprintf("no length for %s: not found in %s or the cytoband table", e.Chrom, e.Path)
}

// IOError reports a file that could not be opened, read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
