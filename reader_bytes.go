package serialize

import "io"

// BytesSource is a ByteSource over an in-memory byte slice.
type BytesSource struct {
	B []byte // source slice
	N int    // current read position
}

// NewBytesSource creates a new BytesSource.
func NewBytesSource(b []byte) *BytesSource {
	return &BytesSource{B: b}
}

// Read implements the [io.Reader] interface.
func (s *BytesSource) Read(p []byte) (int, error) {
	if s.N >= len(s.B) {
		return 0, io.EOF
	}
	n := copy(p, s.B[s.N:])
	s.N += n
	return n, nil
}

// Seek implements the [io.Seeker] interface.
func (s *BytesSource) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(s.N) + offset
	case io.SeekEnd:
		abs = int64(len(s.B)) + offset
	default:
		return 0, ErrInvalidWhence
	}

	if abs < 0 {
		return 0, ErrInvalidSeek
	}

	s.N = int(abs)
	return abs, nil
}

// Reset allows the underlying byte slice to be reused.
func (s *BytesSource) Reset() {
	s.N = 0
}

// Len returns the number of bytes read.
func (s *BytesSource) Len() int {
	return s.N
}

// Size returns the size of the underlying byte slice.
func (s *BytesSource) Size() int {
	return len(s.B)
}

// Available returns the number of bytes available for reading.
func (s *BytesSource) Available() int {
	length := len(s.B) - s.N
	if length <= 0 {
		return 0
	}
	return length
}
