package eblb

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// reader is a bounded cursor over the raw file contents. Every accessor
// fails with ErrParsing once the buffer runs out; nothing backtracks.
type reader struct {
	b   []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.b) - r.off
}

func (r *reader) take(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrParsing, n, r.off, r.remaining())
	}
	b := r.b[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) skip(n int) error {
	_, err := r.take(n)
	return err
}

// rest consumes and returns everything left in the buffer.
func (r *reader) rest() []byte {
	b := r.b[r.off:]
	r.off = len(r.b)
	return b
}

func (r *reader) uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) int32() (int32, error) {
	u, err := r.uint32()
	return int32(u), err
}

// cstring scans forward to the next null byte and returns the ASCII
// string before it, consuming the terminator as well.
func (r *reader) cstring() (string, error) {
	i := bytes.IndexByte(r.b[r.off:], 0)
	if i < 0 {
		return "", fmt.Errorf("%w: unterminated string at offset %d", ErrParsing, r.off)
	}
	s := r.b[r.off : r.off+i]
	r.off += i + 1
	if !isASCII(string(s)) {
		return "", fmt.Errorf("%w: non-ASCII string %q", ErrParsing, s)
	}
	return string(s), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}
