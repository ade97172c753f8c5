package sink

import (
	"fmt"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"firestige.xyz/burstgen/internal/schedule"
)

const pcapSnaplen = 65536

// PcapSink records every frame's L2 bytes (addresses through checksum) in a
// nanosecond pcap file. Preamble, SFD and filler are not captured.
type PcapSink struct {
	w    *pcapgo.Writer
	base time.Time
}

// NewPcapSink writes the file header. Frame timestamps are base plus the
// frame's offset in the schedule.
func NewPcapSink(w io.Writer, base time.Time) (*PcapSink, error) {
	pw := pcapgo.NewWriterNanos(w)
	if err := pw.WriteFileHeader(pcapSnaplen, layers.LinkTypeEthernet); err != nil {
		return nil, fmt.Errorf("write pcap header: %w", err)
	}
	return &PcapSink{w: pw, base: base}, nil
}

func (s *PcapSink) EmitFrame(ev *schedule.FrameEvent) error {
	ci := gopacket.CaptureInfo{
		Timestamp:     s.base.Add(ev.Offset),
		CaptureLength: len(ev.Wire),
		Length:        len(ev.Wire),
	}
	return s.w.WritePacket(ci, ev.Wire)
}

func (s *PcapSink) EmitGap(*schedule.GapEvent) error {
	return nil
}

// ScanPcap reads a capture file and calls fn for every record in order.
func ScanPcap(r io.Reader, fn func(ci gopacket.CaptureInfo, data []byte) error) error {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return fmt.Errorf("read pcap header: %w", err)
	}
	if lt := pr.LinkType(); lt != layers.LinkTypeEthernet {
		return fmt.Errorf("unsupported link type %s", lt)
	}
	for {
		data, ci, err := pr.ReadPacketData()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read packet: %w", err)
		}
		if err := fn(ci, data); err != nil {
			return err
		}
	}
}
