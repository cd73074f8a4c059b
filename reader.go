package serialize

import (
	"bytes"
	"io"
	"strings"
)

// ByteSource is the contract a byte source must satisfy to feed a Reader:
// sequential reads plus visibility of how many bytes remain. The remaining
// count is what lets decoders detect truncation before a read instead of
// failing in the middle of one.
type ByteSource interface {
	io.Reader

	// Available returns the number of bytes that remain readable.
	Available() int
}

// Reader wraps a ByteSource and tracks decode state: the running byte
// offset, the first hard I/O error, and whether the source ran out of data.
//
// The two failure channels are deliberately separate. Err and Good reflect
// hard failure of the underlying medium; once set, every subsequent
// operation becomes a no-op. Exhausted reports that a decode wanted more
// bytes than the source holds, which is the expected condition when a newer
// reader consumes data written by an older schema; the stream stays good
// and decoding continues.
type Reader struct {
	src     ByteSource
	name    string
	count   int64 // total bytes read
	err     error // first hard error encountered. Subsequent reads become no-ops.
	short   bool  // the source ran out of bytes at least once
	scratch [8]byte
}

// NewReader creates a Reader over a ByteSource. A nil source yields a
// Reader that is already failed with ErrNilIO.
func NewReader(src ByteSource) *Reader {
	if src == nil {
		return &Reader{err: ErrNilIO}
	}
	return &Reader{src: src}
}

// NewReaderFrom creates a Reader over any io.Reader, adapting it to the
// ByteSource contract. Sources with a knowable remaining count (in-memory
// readers, seekable files) are adapted in place; anything else is read
// fully into memory first.
func NewReaderFrom(r io.Reader) *Reader {
	switch src := r.(type) {
	case nil:
		return &Reader{err: ErrNilIO}
	case *bytes.Reader:
		return NewReader(lenSource{src, src.Len})
	case *bytes.Buffer:
		// Buffer's own Available method reports spare write capacity, not
		// unread bytes, so this arm has to stay ahead of the ByteSource
		// match below.
		return NewReader(lenSource{src, src.Len})
	case *strings.Reader:
		return NewReader(lenSource{src, src.Len})
	case ByteSource:
		return NewReader(src)
	case io.ReadSeeker:
		ss, err := newSeekSource(src)
		if err != nil {
			return &Reader{err: err}
		}
		return NewReader(ss)
	default:
		data, err := io.ReadAll(r)
		if err != nil {
			return &Reader{err: err}
		}
		return NewReader(NewBytesSource(data))
	}
}

// lenSource adapts in-memory readers whose Len method reports the number of
// unread bytes.
type lenSource struct {
	io.Reader
	len func() int
}

func (s lenSource) Available() int { return s.len() }

// WithName labels the reader for diagnostics and returns it for chaining.
// The name is handed to the engine's ErrorHandler as the source identifier.
func (r *Reader) WithName(name string) *Reader {
	r.name = name
	return r
}

// Name returns the diagnostic label set with WithName.
func (r *Reader) Name() string { return r.name }

// Count returns the total number of bytes read so far.
func (r *Reader) Count() int64 { return r.count }

// Err returns the first hard error encountered, or nil.
func (r *Reader) Err() error { return r.err }

// Good reports whether the source is still healthy. Exhaustion does not
// make a source unhealthy; see Exhausted.
func (r *Reader) Good() bool { return r.err == nil }

// Exhausted reports whether any decode ran out of source bytes. Fields that
// could not be read keep the values they already held.
func (r *Reader) Exhausted() bool { return r.short }

// Available returns the number of bytes that remain readable, or zero once
// the reader has failed.
func (r *Reader) Available() int {
	if r.err != nil {
		return 0
	}
	return r.src.Available()
}

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// take reads exactly n bytes the caller has verified to be available. The
// returned slice aliases the reader's scratch buffer for small reads, so it
// is only valid until the next read.
func (r *Reader) take(n int) []byte {
	if r.err != nil || n <= 0 {
		return nil
	}
	var buf []byte
	if n <= len(r.scratch) {
		buf = r.scratch[:n]
	} else {
		buf = make([]byte, n)
	}
	if !r.takeInto(buf) {
		return nil
	}
	return buf
}

// takeInto fills dst from the source. Available has already promised the
// bytes exist, so a short read here is a failure of the medium, not plain
// exhaustion.
func (r *Reader) takeInto(dst []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := io.ReadFull(r.src, dst)
	if n < 0 {
		n = 0
		if err == nil {
			err = ErrInvalidRead
		}
	}
	r.count += int64(n)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		r.setError(err)
		return false
	}
	return true
}
