package genome

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/brentp/xopen"
)

// Open opens an input file for reading, decompressing gzip/bgzip content
// transparently. An empty file yields an empty reader. Failures are
// reported as *IOError with the given operation description.
func Open(path, op string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &IOError{Op: op, Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Op: op, Path: path, Err: errIsDirectory}
	}
	if info.Size() == 0 {
		return io.NopCloser(strings.NewReader("")), nil
	}

	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, &IOError{Op: op, Path: path, Err: err}
	}
	return r, nil
}

var errIsDirectory = errors.New("is a directory")
