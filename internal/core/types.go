// Package core defines core types with zero external dependencies.
package core

// On-wire constants shared by the assembler and the scheduler.
const (
	// MaxFrameSize is the assumed size of every frame when timing the burst.
	MaxFrameSize = 1512
	// FrameOverhead is the framing overhead subtracted from 1500 to size payloads.
	FrameOverhead = 26
	// PayloadPerFrame is the payload fragment carried by each frame (1500 - 26).
	PayloadPerFrame = 1500 - FrameOverhead

	// ChecksumLen is the length of the trailing check value.
	ChecksumLen = 4
	// FrameTailGap is the filler appended after every frame.
	FrameTailGap = 12
	// GapPatternLen is the width of the repeating gap pattern and of a dump row.
	GapPatternLen = 4

	DefaultSFD    byte = 0xD5
	DefaultFiller byte = 0x07
)

var (
	defaultPreamble  = []byte{0xFB, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}
	defaultEtherType = []byte{0xDD, 0xDD}
)

// FrameSpec holds the fixed per-capture header fields.
// It is built once at startup and shared read-only by every frame.
type FrameSpec struct {
	Preamble  []byte
	SFD       byte
	Dst       []byte
	Src       []byte
	EtherType []byte
	Filler    byte
}

// DefaultFrameSpec returns a FrameSpec carrying the fixed preamble, SFD,
// type field and filler together with the given addresses.
func DefaultFrameSpec(dst, src []byte) *FrameSpec {
	return &FrameSpec{
		Preamble:  append([]byte(nil), defaultPreamble...),
		SFD:       DefaultSFD,
		Dst:       dst,
		Src:       src,
		EtherType: append([]byte(nil), defaultEtherType...),
		Filler:    DefaultFiller,
	}
}

// LeadLen is the preamble plus SFD length.
func (s *FrameSpec) LeadLen() int {
	return len(s.Preamble) + 1
}

// HeaderLen is the address plus type field length.
func (s *FrameSpec) HeaderLen() int {
	return len(s.Dst) + len(s.Src) + len(s.EtherType)
}

// TimingParameters is the rate and burst configuration of a capture run.
type TimingParameters struct {
	LineRate          float64 // bits per second
	CaptureDurationMs int
	MinIFGPerPacket   int // informational
	MaxPacketSize     int // informational
	BurstCount        int // frames per burst
	BurstPeriodUs     int
}
