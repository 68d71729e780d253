package utils

import "bytes"

// FindForward returns the offset of the first occurrence of pattern in buf
// at or after start, or -1 if pattern does not occur in that range.
func FindForward(buf, pattern []byte, start int) int {
	if start < 0 {
		start = 0
	}
	if start >= len(buf) || len(pattern) == 0 {
		return -1
	}
	rel := bytes.Index(buf[start:], pattern)
	if rel < 0 {
		return -1
	}
	return start + rel
}

// FindLastBackward scans buf backwards, from the highest offset at or
// before limit down to 0, and returns the offset of the last (highest)
// occurrence of pattern whose first byte lies at or before limit. Returns
// -1 if pattern does not occur.
func FindLastBackward(buf, pattern []byte, limit int) int {
	n := len(pattern)
	if n == 0 {
		return -1
	}
	if limit > len(buf)-n {
		limit = len(buf) - n
	}
	for off := limit; off >= 0; off-- {
		if bytes.Equal(buf[off:off+n], pattern) {
			return off
		}
	}
	return -1
}
