package sink

import (
	"fmt"
	"io"
	"os"

	"firestige.xyz/burstgen/internal/core"
)

// Stdout is the path selecting the terminal instead of a file.
const Stdout = "-"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenOutput opens the destination for the duration of a run. "" and "-"
// select stdout, which is never closed. Callers must Close the result on
// every path.
func OpenOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == Stdout {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSinkUnavailable, err)
	}
	return f, nil
}
