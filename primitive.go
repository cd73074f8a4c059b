package serialize

import "math"

// ensure checks that n more bytes can be read. On shortfall it marks the
// reader exhausted and reports Truncated, leaving the stream healthy so
// that decoding of later reads, which may well be satisfiable, continues.
func (e *Engine) ensure(r *Reader, n int) bool {
	if r == nil || r.err != nil {
		return false
	}
	if r.src.Available() < n {
		r.short = true
		e.reportError(Truncated, r)
		return false
	}
	return true
}

// need reads exactly n verified-available bytes. The returned slice may
// alias the reader's scratch buffer; nil means the read did not happen.
func (e *Engine) need(r *Reader, n int) []byte {
	if !e.ensure(r, n) {
		return nil
	}
	return r.take(n)
}

func (e *Engine) writeCount(w *Writer, n uint32) {
	var b [4]byte
	wireOrder.PutUint32(b[:], n)
	w.WriteBytes(b[:])
}

// readCount reads a u32 length prefix and checks it for plausibility
// against the bytes remaining, given the minimum wire size of one element.
// An implausible count is reported as BadCount without attempting any
// element reads.
func (e *Engine) readCount(r *Reader, elemSize int) (int, bool) {
	buf := e.need(r, 4)
	if buf == nil {
		return 0, false
	}
	n := wireOrder.Uint32(buf)
	if n == 0 {
		return 0, true
	}
	if int64(n)*int64(elemSize) > int64(r.Available()) {
		r.short = true
		e.reportError(BadCount, r)
		return 0, false
	}
	return int(n), true
}

// --- Scalar codecs ---
//
// Every scalar is encoded at its declared width in the fixed wire order.
// Use the sized types; the engine deliberately has no codec for bare int,
// whose width varies by platform.

func (e *Engine) WriteBool(w *Writer, v bool) {
	var b [1]byte
	if v {
		b[0] = 1
	}
	w.WriteBytes(b[:])
}

func (e *Engine) ReadBool(r *Reader, v *bool) {
	if buf := e.need(r, 1); buf != nil {
		*v = buf[0] != 0
	}
}

func (e *Engine) WriteInt8(w *Writer, v int8) {
	b := [1]byte{byte(v)}
	w.WriteBytes(b[:])
}

func (e *Engine) ReadInt8(r *Reader, v *int8) {
	if buf := e.need(r, 1); buf != nil {
		*v = int8(buf[0])
	}
}

func (e *Engine) WriteUint8(w *Writer, v uint8) {
	b := [1]byte{v}
	w.WriteBytes(b[:])
}

func (e *Engine) ReadUint8(r *Reader, v *uint8) {
	if buf := e.need(r, 1); buf != nil {
		*v = buf[0]
	}
}

func (e *Engine) WriteInt16(w *Writer, v int16) {
	var b [2]byte
	wireOrder.PutUint16(b[:], uint16(v))
	w.WriteBytes(b[:])
}

func (e *Engine) ReadInt16(r *Reader, v *int16) {
	if buf := e.need(r, 2); buf != nil {
		*v = int16(wireOrder.Uint16(buf))
	}
}

func (e *Engine) WriteUint16(w *Writer, v uint16) {
	var b [2]byte
	wireOrder.PutUint16(b[:], v)
	w.WriteBytes(b[:])
}

func (e *Engine) ReadUint16(r *Reader, v *uint16) {
	if buf := e.need(r, 2); buf != nil {
		*v = wireOrder.Uint16(buf)
	}
}

func (e *Engine) WriteInt32(w *Writer, v int32) {
	var b [4]byte
	wireOrder.PutUint32(b[:], uint32(v))
	w.WriteBytes(b[:])
}

func (e *Engine) ReadInt32(r *Reader, v *int32) {
	if buf := e.need(r, 4); buf != nil {
		*v = int32(wireOrder.Uint32(buf))
	}
}

func (e *Engine) WriteUint32(w *Writer, v uint32) {
	var b [4]byte
	wireOrder.PutUint32(b[:], v)
	w.WriteBytes(b[:])
}

func (e *Engine) ReadUint32(r *Reader, v *uint32) {
	if buf := e.need(r, 4); buf != nil {
		*v = wireOrder.Uint32(buf)
	}
}

func (e *Engine) WriteInt64(w *Writer, v int64) {
	var b [8]byte
	wireOrder.PutUint64(b[:], uint64(v))
	w.WriteBytes(b[:])
}

func (e *Engine) ReadInt64(r *Reader, v *int64) {
	if buf := e.need(r, 8); buf != nil {
		*v = int64(wireOrder.Uint64(buf))
	}
}

func (e *Engine) WriteUint64(w *Writer, v uint64) {
	var b [8]byte
	wireOrder.PutUint64(b[:], v)
	w.WriteBytes(b[:])
}

func (e *Engine) ReadUint64(r *Reader, v *uint64) {
	if buf := e.need(r, 8); buf != nil {
		*v = wireOrder.Uint64(buf)
	}
}

func (e *Engine) WriteFloat32(w *Writer, v float32) {
	var b [4]byte
	wireOrder.PutUint32(b[:], math.Float32bits(v))
	w.WriteBytes(b[:])
}

func (e *Engine) ReadFloat32(r *Reader, v *float32) {
	if buf := e.need(r, 4); buf != nil {
		*v = math.Float32frombits(wireOrder.Uint32(buf))
	}
}

func (e *Engine) WriteFloat64(w *Writer, v float64) {
	var b [8]byte
	wireOrder.PutUint64(b[:], math.Float64bits(v))
	w.WriteBytes(b[:])
}

func (e *Engine) ReadFloat64(r *Reader, v *float64) {
	if buf := e.need(r, 8); buf != nil {
		*v = math.Float64frombits(wireOrder.Uint64(buf))
	}
}

// --- Enumerated values ---

// Enum16 constrains enumerations declared over a 16-bit integer.
type Enum16 interface{ ~int16 | ~uint16 }

// Enum32 constrains enumerations declared over a 32-bit integer.
type Enum32 interface{ ~int32 | ~uint32 }

// WriteEnum16 encodes v at its declared 16-bit width.
func WriteEnum16[E Enum16](e *Engine, w *Writer, v E) {
	var b [2]byte
	wireOrder.PutUint16(b[:], uint16(v))
	w.WriteBytes(b[:])
}

// ReadEnum16 decodes a 16-bit enumeration. max is the highest declared
// value; a decoded value outside [0, max] is reported as EnumRange but
// stored anyway, bit pattern preserved, so the caller sees what was on the
// wire.
func ReadEnum16[E Enum16](e *Engine, r *Reader, v *E, max E) {
	buf := e.need(r, 2)
	if buf == nil {
		return
	}
	val := E(wireOrder.Uint16(buf))
	if val < 0 || val > max {
		e.reportError(EnumRange, r)
	}
	*v = val
}

// WriteEnum32 encodes v at its declared 32-bit width.
func WriteEnum32[E Enum32](e *Engine, w *Writer, v E) {
	var b [4]byte
	wireOrder.PutUint32(b[:], uint32(v))
	w.WriteBytes(b[:])
}

// ReadEnum32 decodes a 32-bit enumeration with the same range rules as
// ReadEnum16.
func ReadEnum32[E Enum32](e *Engine, r *Reader, v *E, max E) {
	buf := e.need(r, 4)
	if buf == nil {
		return
	}
	val := E(wireOrder.Uint32(buf))
	if val < 0 || val > max {
		e.reportError(EnumRange, r)
	}
	*v = val
}
