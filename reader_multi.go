package serialize

import "io"

// MultiSource concatenates several sources into one logical stream, so a
// message split across separate buffers, such as reassembled packets,
// decodes without first being copied into one allocation.
type MultiSource struct {
	S []ByteSource // S holds the remaining segments, the active one first.
}

// NewMultiSource creates a source that reads the segments in order.
func NewMultiSource(segments ...ByteSource) *MultiSource {
	return &MultiSource{S: segments}
}

// Read implements the io.Reader interface. It drains the active segment
// before moving to the next and reports io.EOF only once every segment is
// spent.
func (m *MultiSource) Read(p []byte) (int, error) {
	for len(m.S) > 0 {
		if m.S[0].Available() == 0 {
			m.S = m.S[1:]
			continue
		}
		n, err := m.S[0].Read(p)
		if err == io.EOF {
			// A segment may hand over its final bytes together with io.EOF.
			m.S = m.S[1:]
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
	return 0, io.EOF
}

// Available returns the unread byte count summed over all segments.
func (m *MultiSource) Available() int {
	total := 0
	for _, s := range m.S {
		total += s.Available()
	}
	return total
}
