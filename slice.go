package serialize

import "reflect"

// WriteSlice encodes items as a 32-bit count followed by each element in
// order. elem encodes one element; engine scalar methods slot in directly,
// as in WriteSlice(e, w, values, e.WriteInt16).
func WriteSlice[T any](e *Engine, w *Writer, items []T, elem func(*Writer, T)) {
	e.writeCount(w, uint32(len(items)))
	for _, it := range items {
		elem(w, it)
	}
}

// ReadSlice decodes a count-prefixed sequence into a fresh slice, appending
// elements in wire order. Elements past the point of exhaustion decode to
// their zero values, so a stream written by an older schema still yields a
// sequence of the announced length.
func ReadSlice[T any](e *Engine, r *Reader, items *[]T, elem func(*Reader, *T)) {
	*items = nil
	n, ok := e.readCount(r, 1)
	if !ok || n == 0 {
		return
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		if r.err != nil {
			break
		}
		var it T
		elem(r, &it)
		out = append(out, it)
	}
	*items = out
}

// WriteMessageSlice encodes a sequence of messages, recursing into each
// element's own Write.
func WriteMessageSlice[M Message](e *Engine, w *Writer, items []M) {
	e.writeCount(w, uint32(len(items)))
	for _, m := range items {
		e.WriteMessage(w, m)
	}
}

// ReadMessageSlice decodes a count-prefixed sequence of messages. Each
// element is decoded into a fresh allocation, leaving the slice as the sole
// holder of the new instances.
func ReadMessageSlice[M Message](e *Engine, r *Reader, items *[]M) {
	*items = nil
	n, ok := e.readCount(r, 1)
	if !ok || n == 0 {
		return
	}
	out := make([]M, 0, n)
	for i := 0; i < n; i++ {
		if r.err != nil {
			break
		}
		m := newMessage[M]()
		e.ReadMessage(r, m)
		out = append(out, m)
	}
	*items = out
}

// newMessage allocates a fresh instance of the concrete message type,
// resolving through the pointer so that *T elements decode into a valid
// target.
func newMessage[M Message]() M {
	t := reflect.TypeOf((*M)(nil)).Elem()
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(M)
	}
	var m M
	return m
}
