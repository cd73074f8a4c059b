package serialize

import "io"

// BytesSink is an io.Writer that writes to a pre-allocated byte slice.
// It will not grow the slice's capacity. If a write exceeds the available
// space, it writes as much as it can and returns io.ErrShortWrite.
type BytesSink struct {
	B []byte // destination slice
	N int    // current write position
}

// NewBytesSink creates a new BytesSink over p's full capacity.
func NewBytesSink(p []byte) *BytesSink {
	return &BytesSink{B: p[:cap(p)]}
}

// Write implements the io.Writer interface.
func (s *BytesSink) Write(p []byte) (int, error) {
	if s.N >= len(s.B) {
		return 0, io.ErrShortWrite
	}
	n := copy(s.B[s.N:], p)
	s.N += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteString implements the io.StringWriter interface for efficiency.
func (s *BytesSink) WriteString(str string) (int, error) {
	if s.N >= len(s.B) {
		return 0, io.ErrShortWrite
	}
	n := copy(s.B[s.N:], str)
	s.N += n
	if n < len(str) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Reset allows the underlying byte slice to be reused.
func (s *BytesSink) Reset() { s.N = 0 }

// Len returns the number of bytes written.
func (s *BytesSink) Len() int { return s.N }

// Size returns the capacity of the underlying byte slice.
func (s *BytesSink) Size() int { return len(s.B) }

// Available returns the number of bytes available for writing.
func (s *BytesSink) Available() int { return len(s.B) - s.N }

// Bytes returns a slice view of the written data.
func (s *BytesSink) Bytes() []byte { return s.B[:s.N] }
