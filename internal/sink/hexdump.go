// Package sink renders the generated stream to its destinations.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"firestige.xyz/burstgen/internal/core"
	"firestige.xyz/burstgen/internal/schedule"
)

const hexDigits = "0123456789abcdef"

// WriteGroups writes b as lowercase "xx " groups, four per line. A short
// final row still ends with a newline.
func WriteGroups(w *bufio.Writer, b []byte) error {
	for i, v := range b {
		w.WriteByte(hexDigits[v>>4])
		w.WriteByte(hexDigits[v&0x0f])
		w.WriteByte(' ')
		if (i+1)%core.GapPatternLen == 0 {
			w.WriteByte('\n')
		}
	}
	if len(b)%core.GapPatternLen != 0 {
		w.WriteByte('\n')
	}
	// bufio keeps the first write error sticky
	_, err := w.Write(nil)
	return err
}

// TextSink writes the human readable hex dump of a run.
type TextSink struct {
	w *bufio.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: bufio.NewWriterSize(w, 64*1024)}
}

func (s *TextSink) EmitFrame(ev *schedule.FrameEvent) error {
	fmt.Fprintf(s.w, "Building and showing Packet %d:\n", ev.Number)
	s.w.WriteString("Ethernet frame in groups of 4 bytes (with IFG padding):\n")
	return WriteGroups(s.w, ev.Bytes)
}

func (s *TextSink) EmitGap(ev *schedule.GapEvent) error {
	fmt.Fprintf(s.w, "Transmitting IFG bytes during interval of %s microseconds...\n", FormatInterval(ev.IntervalUs))
	return WriteGroups(s.w, ev.Bytes)
}

// Flush writes any buffered output.
func (s *TextSink) Flush() error {
	return s.w.Flush()
}

// FormatInterval renders v with six significant digits, e.g. 75.808.
func FormatInterval(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
