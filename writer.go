package serialize

import "io"

// Writer wraps an io.Writer and tracks the first error that occurs.
// After an error, all subsequent write operations become no-ops, so a
// sequence of writes can be issued without checking each one; callers
// inspect Err or Good once at the end.
type Writer struct {
	w     io.Writer
	count int64 // total bytes written
	err   error // first error encountered. Subsequent writes become no-ops.
}

// NewWriter creates a Writer over any io.Writer. A nil sink yields a Writer
// that is already failed with ErrNilIO.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		return &Writer{err: ErrNilIO}
	}
	return &Writer{w: w}
}

// Count returns the total number of bytes written so far.
func (w *Writer) Count() int64 { return w.count }

// Err returns the first error encountered, or nil.
func (w *Writer) Err() error { return w.err }

// Good reports whether the sink is still healthy.
func (w *Writer) Good() bool { return w.err == nil }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(buf []byte) {
	if len(buf) == 0 || w.err != nil {
		return
	}
	n, err := w.w.Write(buf)
	if n < 0 {
		n = 0
		if err == nil {
			err = ErrInvalidWrite
		}
	}
	w.count += int64(n)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	w.setError(err)
}

// WriteString writes the raw bytes of a string without a length prefix.
func (w *Writer) WriteString(s string) {
	if s == "" || w.err != nil {
		return
	}
	n, err := io.WriteString(w.w, s)
	if n < 0 {
		n = 0
		if err == nil {
			err = ErrInvalidWrite
		}
	}
	w.count += int64(n)
	if err == nil && n < len(s) {
		err = io.ErrShortWrite
	}
	w.setError(err)
}

// WriteZeros writes n zero bytes in chunks of the shared zero array, used
// for padding fixed-capacity buffers.
func (w *Writer) WriteZeros(n int64) {
	if w.err != nil || n <= 0 {
		return
	}
	for n > bufferSize {
		w.WriteBytes(empty[:])
		if w.err != nil {
			return
		}
		n -= bufferSize
	}
	w.WriteBytes(empty[:n])
}
