package serialize

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// WriteMap encodes a map as a 32-bit pair count followed by each key/value
// pair, keys in ascending order so the encoding is deterministic.
func WriteMap[K constraints.Ordered, V any](e *Engine, w *Writer, m map[K]V, key func(*Writer, K), val func(*Writer, V)) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	e.writeCount(w, uint32(len(keys)))
	for _, k := range keys {
		key(w, k)
		val(w, m[k])
	}
}

// WriteMapFunc is WriteMap for key types without a natural order; cmp
// follows the slices.SortFunc contract.
func WriteMapFunc[K comparable, V any](e *Engine, w *Writer, m map[K]V, cmp func(K, K) int, key func(*Writer, K), val func(*Writer, V)) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp)
	e.writeCount(w, uint32(len(keys)))
	for _, k := range keys {
		key(w, k)
		val(w, m[k])
	}
}

// ReadMap decodes count key/value pairs into the map, allocating it if nil.
// A later duplicate key overwrites the earlier entry.
func ReadMap[K comparable, V any](e *Engine, r *Reader, m *map[K]V, key func(*Reader, *K), val func(*Reader, *V)) {
	n, ok := e.readCount(r, 2)
	if !ok {
		return
	}
	if *m == nil {
		*m = make(map[K]V, n)
	}
	for i := 0; i < n; i++ {
		if r.err != nil {
			break
		}
		var k K
		var v V
		key(r, &k)
		val(r, &v)
		(*m)[k] = v
	}
}

// WriteMessageMap encodes a map whose values are messages, keys in
// ascending order.
func WriteMessageMap[K constraints.Ordered, M Message](e *Engine, w *Writer, m map[K]M, key func(*Writer, K)) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	e.writeCount(w, uint32(len(keys)))
	for _, k := range keys {
		key(w, k)
		e.WriteMessage(w, m[k])
	}
}

// ReadMessageMap decodes count key/message pairs, decoding each value into
// a fresh allocation. A later duplicate key overwrites the earlier entry.
func ReadMessageMap[K comparable, M Message](e *Engine, r *Reader, m *map[K]M, key func(*Reader, *K)) {
	n, ok := e.readCount(r, 2)
	if !ok {
		return
	}
	if *m == nil {
		*m = make(map[K]M, n)
	}
	for i := 0; i < n; i++ {
		if r.err != nil {
			break
		}
		var k K
		key(r, &k)
		v := newMessage[M]()
		e.ReadMessage(r, v)
		(*m)[k] = v
	}
}
