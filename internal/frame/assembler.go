// Package frame assembles generated frames and the idle filler between them.
package frame

import (
	"bytes"

	"firestige.xyz/burstgen/internal/checksum"
	"firestige.xyz/burstgen/internal/core"
)

// Assemble builds the on-wire bytes of one frame:
// preamble, SFD, addresses, type, payload, checksum(payload), a 12 byte
// filler tail and filler padding up to a multiple of 4.
//
// The checksum covers the payload only. payload is not modified.
func Assemble(spec *core.FrameSpec, payload []byte) []byte {
	raw := RawLen(spec, len(payload))
	out := make([]byte, 0, raw+Padding(raw))

	out = append(out, spec.Preamble...)
	out = append(out, spec.SFD)
	out = append(out, spec.Dst...)
	out = append(out, spec.Src...)
	out = append(out, spec.EtherType...)
	out = append(out, payload...)
	out = checksum.AppendBigEndian(out, checksum.Sum(payload))
	out = appendFiller(out, spec.Filler, core.FrameTailGap)

	if pad := Padding(len(out)); pad != 0 {
		out = appendFiller(out, spec.Filler, pad)
	}
	return out
}

// RawLen is the frame length before alignment padding.
func RawLen(spec *core.FrameSpec, payloadLen int) int {
	return spec.LeadLen() + spec.HeaderLen() + payloadLen + core.ChecksumLen + core.FrameTailGap
}

// Padding returns the filler needed to bring n up to a multiple of 4.
// An aligned n needs none.
func Padding(n int) int {
	return (core.GapPatternLen - n%core.GapPatternLen) % core.GapPatternLen
}

// WireSpan locates the L2 frame (addresses through checksum) inside an
// assembled frame carrying payloadLen bytes of payload.
func WireSpan(spec *core.FrameSpec, payloadLen int) (start, end int) {
	start = spec.LeadLen()
	end = start + spec.HeaderLen() + payloadLen + core.ChecksumLen
	return start, end
}

// Gap returns n filler bytes. A non-positive n yields an empty gap.
func Gap(n int64, filler byte) []byte {
	if n <= 0 {
		return []byte{}
	}
	return bytes.Repeat([]byte{filler}, int(n))
}

func appendFiller(dst []byte, filler byte, n int) []byte {
	return append(dst, bytes.Repeat([]byte{filler}, n)...)
}
