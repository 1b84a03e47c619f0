// Package goid extracts the identifier of the calling goroutine.
//
// The identifier is parsed from the runtime.Stack header, which is portable
// but slow (microseconds). Callers on hot paths should cache per scope entry
// rather than per read.
package goid

import "runtime"

const header = "goroutine "

// Current returns the ID of the calling goroutine. IDs are unique across the
// life of the process and never reused for live goroutines.
func Current() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parse(buf[:n])
}

// parse extracts N from a "goroutine N [state]:" stack header.
// Returns 0 if the buffer does not look like a stack header.
func parse(buf []byte) int64 {
	if len(buf) < len(header) || string(buf[:len(header)]) != header {
		return 0
	}
	buf = buf[len(header):]
	var id int64
	for _, c := range buf {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
