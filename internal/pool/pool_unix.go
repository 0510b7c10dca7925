//go:build unix

package pool

import (
	"bytes"
	"errors"

	"golang.org/x/sys/unix"
)

// tokenBytes builds the preload payload: one 'x' byte per token, matching
// what GNU Make writes back on release.
func tokenBytes(n int) []byte {
	return bytes.Repeat([]byte{'x'}, n)
}

// drainFD reads single bytes from a non-blocking descriptor until nothing is
// immediately available and reports how many were consumed.
func drainFD(fd int) (int, error) {
	count := 0
	buf := make([]byte, 1)
	for {
		n, err := unix.Read(fd, buf)
		if n > 0 {
			count++
			continue
		}
		switch {
		case err == nil:
			// Zero-byte read: no writer left and nothing buffered.
			return count, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK):
			return count, nil
		default:
			return count, err
		}
	}
}
