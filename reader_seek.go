package serialize

import (
	"fmt"
	"io"
	"math"
)

// seekSource adapts an io.ReadSeeker (typically an open file) to the
// ByteSource contract. The remaining byte count is probed once at
// construction by seeking to the end and back, then tracked as reads
// consume the stream.
type seekSource struct {
	r         io.ReadSeeker
	remaining int64
}

func newSeekSource(r io.ReadSeeker) (*seekSource, error) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("serialize: probing source position: %w", err)
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("serialize: probing source size: %w", err)
	}
	if _, err := r.Seek(cur, io.SeekStart); err != nil {
		return nil, fmt.Errorf("serialize: restoring source position: %w", err)
	}
	return &seekSource{r: r, remaining: end - cur}, nil
}

// Read implements the [io.Reader] interface.
func (s *seekSource) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if n > 0 {
		s.remaining -= int64(n)
		if s.remaining < 0 {
			s.remaining = 0
		}
	}
	return n, err
}

// Available returns the number of bytes between the current position and
// the end of the stream as measured at construction.
func (s *seekSource) Available() int {
	if s.remaining <= 0 {
		return 0
	}
	if s.remaining > math.MaxInt {
		return math.MaxInt
	}
	return int(s.remaining)
}
