package frame

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"firestige.xyz/burstgen/internal/checksum"
	"firestige.xyz/burstgen/internal/core"
)

// Header is a decoded L2 frame as written to capture files.
type Header struct {
	Dst       net.HardwareAddr
	Src       net.HardwareAddr
	EtherType layers.EthernetType
	Payload   []byte
	Checksum  uint32
}

// Valid reports whether the trailing checksum matches the payload.
func (h *Header) Valid() bool {
	return checksum.Sum(h.Payload) == h.Checksum
}

// Decode parses an L2 frame (see WireSpan) with 6 byte addresses and a
// trailing 4 byte checksum.
func Decode(wire []byte) (*Header, error) {
	if len(wire) < 14+core.ChecksumLen {
		return nil, fmt.Errorf("%w: %d bytes", core.ErrFrameTooShort, len(wire))
	}

	var eth layers.Ethernet
	if err := eth.DecodeFromBytes(wire, gopacket.NilDecodeFeedback); err != nil {
		return nil, fmt.Errorf("decode ethernet header: %w", err)
	}

	body := eth.LayerPayload()
	n := len(body) - core.ChecksumLen
	return &Header{
		Dst:       eth.DstMAC,
		Src:       eth.SrcMAC,
		EtherType: eth.EthernetType,
		Payload:   body[:n],
		Checksum:  binary.BigEndian.Uint32(body[n:]),
	}, nil
}
