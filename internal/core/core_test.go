package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFrameSpec(t *testing.T) {
	dst := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	src := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	s := DefaultFrameSpec(dst, src)

	assert.Equal(t, []byte{0xFB, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55}, s.Preamble)
	assert.Equal(t, byte(0xD5), s.SFD)
	assert.Equal(t, []byte{0xDD, 0xDD}, s.EtherType)
	assert.Equal(t, byte(0x07), s.Filler)
	assert.Equal(t, 8, s.LeadLen())
	assert.Equal(t, 14, s.HeaderLen())

	// specs must not share the package-level constants
	s.Preamble[0] = 0
	assert.Equal(t, byte(0xFB), DefaultFrameSpec(dst, src).Preamble[0])
}

func TestPayloadConstants(t *testing.T) {
	assert.Equal(t, 1474, PayloadPerFrame)
	assert.Equal(t, 1500, PayloadPerFrame+FrameOverhead)
	assert.Equal(t, 1512, MaxFrameSize)
}

func TestDecodeAddress(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"AABBCCDDEEFF", []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}},
		{"001122334455", []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}},
		{"aabb", []byte{0xAA, 0xBB}},
		{" 0a0b\r", []byte{0x0A, 0x0B}},
		{"", []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeAddress(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAddressMalformed(t *testing.T) {
	for _, in := range []string{"ABC", "ZZ"} {
		_, err := DecodeAddress(in)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfigInvalid))
	}
}
