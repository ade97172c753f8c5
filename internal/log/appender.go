package log

import (
	"io"

	"go.uber.org/multierr"
)

// MultiWriter copies each log line to every appender. A failing appender
// does not stop the others; Write reports all failures combined.
type MultiWriter struct {
	writers []io.Writer
}

func (m *MultiWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range m.writers {
		n, e := w.Write(p)
		if e == nil && n < len(p) {
			e = io.ErrShortWrite
		}
		err = multierr.Append(err, e)
	}
	return len(p), err
}

func (m *MultiWriter) Add(writer io.Writer) *MultiWriter {
	m.writers = append(m.writers, writer)
	return m
}

func NewMultiWriter() *MultiWriter {
	return &MultiWriter{}
}
