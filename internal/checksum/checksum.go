// Package checksum implements the bit-serial trailing check value carried by
// every generated frame.
//
// The code is a plain shift register with polynomial 0x814141AB that is fed
// the input MSB-first followed by 32 zero bits. It is intentionally not
// IEEE CRC-32 and must not be swapped for hash/crc32.
package checksum

// Polynomial is the feedback constant of the shift register.
const Polynomial uint32 = 0x814141AB

// flushBits is the number of zero bits clocked in after the data.
const flushBits = 32

// Sum returns the check value of data. Sum(nil) is 0.
func Sum(data []byte) uint32 {
	var reg uint32
	total := len(data)*8 + flushBits
	for i := 0; i < total; i++ {
		var bit uint32
		if i < len(data)*8 {
			bit = uint32(data[i/8]>>(7-uint(i%8))) & 1
		}
		if reg&0x80000000 != 0 {
			reg = (reg << 1) ^ Polynomial
		} else {
			reg <<= 1
		}
		reg ^= bit
	}
	return reg
}

// AppendBigEndian appends v to dst most significant byte first.
func AppendBigEndian(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
