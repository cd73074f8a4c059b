package serialize

import "bytes"

// Marshal encodes m into a fresh byte slice. It returns the first hard
// write error, if any.
func (e *Engine) Marshal(m Message) ([]byte, error) {
	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	w := NewWriter(buf)
	e.WriteMessage(w, m)
	if err := w.Err(); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Unmarshal decodes data into m. Only hard failures are returned; running
// out of data against a reader type with appended fields is reported
// through the error handler and tolerated, per the engine's compatibility
// rules. Callers that need to distinguish a drifted read should decode
// through a Reader and inspect Exhausted.
func (e *Engine) Unmarshal(data []byte, m Message) error {
	r := NewReader(NewBytesSource(data))
	e.ReadMessage(r, m)
	return r.Err()
}
