package schedule

// NewPayload allocates the shared payload buffer of a run.
// A non-positive size yields an empty buffer.
func NewPayload(size int64, fill byte) []byte {
	if size <= 0 {
		return []byte{}
	}
	buf := make([]byte, size)
	if fill != 0 {
		for i := range buf {
			buf[i] = fill
		}
	}
	return buf
}
