package serialize

import (
	"bytes"
	"unicode/utf16"
)

// WriteString encodes s as a 32-bit byte count followed by the raw bytes.
func (e *Engine) WriteString(w *Writer, s string) {
	e.writeCount(w, uint32(len(s)))
	w.WriteString(s)
}

// ReadString decodes a count-prefixed string. The target is only assigned
// when both the count and the content could be read.
func (e *Engine) ReadString(r *Reader, s *string) {
	n, ok := e.readCount(r, 1)
	if !ok {
		return
	}
	if n == 0 {
		*s = ""
		return
	}
	buf := e.need(r, n)
	if buf == nil {
		return
	}
	*s = string(buf)
}

// WriteWideString encodes s as a 32-bit code unit count followed by that
// many UTF-16 units, two bytes each. Characters outside the basic plane
// become surrogate pairs and so occupy two units.
func (e *Engine) WriteWideString(w *Writer, s string) {
	units := utf16.Encode([]rune(s))
	e.writeCount(w, uint32(len(units)))
	if len(units) == 0 {
		return
	}
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		wireOrder.PutUint16(buf[2*i:], u)
	}
	w.WriteBytes(buf)
}

// ReadWideString decodes a count-prefixed UTF-16 string.
func (e *Engine) ReadWideString(r *Reader, s *string) {
	n, ok := e.readCount(r, 2)
	if !ok {
		return
	}
	if n == 0 {
		*s = ""
		return
	}
	buf := e.need(r, 2*n)
	if buf == nil {
		return
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = wireOrder.Uint16(buf[2*i:])
	}
	*s = string(utf16.Decode(units))
}

// WriteFixedBytes writes exactly size raw bytes with no prefix. Input
// longer than size is silently truncated; shorter input is zero-padded so
// the wire size is constant. Both sides must agree on size statically.
func (e *Engine) WriteFixedBytes(w *Writer, buf []byte, size int) {
	if size <= 0 {
		return
	}
	if len(buf) >= size {
		w.WriteBytes(buf[:size])
		return
	}
	w.WriteBytes(buf)
	w.WriteZeros(int64(size - len(buf)))
}

// ReadFixedBytes fills dst with exactly len(dst) raw bytes. On truncation
// dst is left untouched.
func (e *Engine) ReadFixedBytes(r *Reader, dst []byte) {
	if len(dst) == 0 {
		return
	}
	if !e.ensure(r, len(dst)) {
		return
	}
	r.takeInto(dst)
}

// WriteFixedString writes s as a fixed-capacity character buffer of size
// bytes, truncating or zero-padding like WriteFixedBytes.
func (e *Engine) WriteFixedString(w *Writer, s string, size int) {
	if size <= 0 {
		return
	}
	if len(s) >= size {
		w.WriteString(s[:size])
		return
	}
	w.WriteString(s)
	w.WriteZeros(int64(size - len(s)))
}

// ReadFixedString reads a fixed-capacity character buffer of size bytes and
// assigns the content up to the first zero byte.
func (e *Engine) ReadFixedString(r *Reader, s *string, size int) {
	if size <= 0 {
		return
	}
	buf := e.need(r, size)
	if buf == nil {
		return
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	*s = string(buf)
}
