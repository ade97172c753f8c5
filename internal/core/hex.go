package core

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeAddress converts a delimiter-free hex string (e.g. "AABBCCDDEEFF")
// into bytes, two characters per byte, most significant nibble first.
func DecodeAddress(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: address %q: %v", ErrConfigInvalid, s, err)
	}
	return b, nil
}
