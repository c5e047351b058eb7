package genome

import (
	"fmt"
	"strconv"
)

// Records are checked with two separate policies. Sequence names are
// tolerant: anything outside the canonical set is dropped by the caller.
// Coordinates are strict: any malformed value aborts the whole load.

// TolerantName resolves a record's sequence name. ok is false when the record
// belongs to a sequence that is not drawn and must be skipped without error.
func TolerantName(name string) (c Chromosome, ok bool) {
	return Parse(name)
}

// StrictCoords parses a 0-based half-open coordinate pair. It fails on
// non-numeric or negative values and on empty or inverted intervals.
func StrictCoords(startField, endField string) (start, end int64, err error) {
	start, err = strconv.ParseInt(startField, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start coordinate %q", startField)
	}
	end, err = strconv.ParseInt(endField, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end coordinate %q", endField)
	}
	if start < 0 {
		return 0, 0, fmt.Errorf("negative start coordinate %d", start)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("start %d is not before end %d", start, end)
	}
	return start, end, nil
}
