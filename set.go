package serialize

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// WriteSet encodes a set as a 32-bit count followed by the elements in
// ascending order. Sorting fixes the element order on the wire, which map
// iteration would otherwise randomize.
func WriteSet[T constraints.Ordered](e *Engine, w *Writer, set map[T]struct{}, elem func(*Writer, T)) {
	keys := make([]T, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	e.writeCount(w, uint32(len(keys)))
	for _, k := range keys {
		elem(w, k)
	}
}

// WriteSetFunc is WriteSet for element types without a natural order; cmp
// follows the slices.SortFunc contract.
func WriteSetFunc[T comparable](e *Engine, w *Writer, set map[T]struct{}, cmp func(T, T) int, elem func(*Writer, T)) {
	keys := make([]T, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp)
	e.writeCount(w, uint32(len(keys)))
	for _, k := range keys {
		elem(w, k)
	}
}

// ReadSet decodes a count-prefixed run of elements into the set, allocating
// it if nil. Elements that compare equal merge into one entry.
func ReadSet[T comparable](e *Engine, r *Reader, set *map[T]struct{}, elem func(*Reader, *T)) {
	n, ok := e.readCount(r, 1)
	if !ok {
		return
	}
	if *set == nil {
		*set = make(map[T]struct{}, n)
	}
	for i := 0; i < n; i++ {
		if r.err != nil {
			break
		}
		var it T
		elem(r, &it)
		(*set)[it] = struct{}{}
	}
}

// WriteMessageSet encodes a set of message pointers. cmp orders the
// elements on the wire; pointer identity cannot provide a stable order.
func WriteMessageSet[M interface {
	comparable
	Message
}](e *Engine, w *Writer, set map[M]struct{}, cmp func(M, M) int) {
	items := make([]M, 0, len(set))
	for m := range set {
		items = append(items, m)
	}
	slices.SortFunc(items, cmp)
	e.writeCount(w, uint32(len(items)))
	for _, m := range items {
		e.WriteMessage(w, m)
	}
}

// ReadMessageSet decodes message elements into the set, allocating it if
// nil. Every element decodes into a distinct fresh allocation, so entries
// never merge even when their contents are equal.
func ReadMessageSet[M interface {
	comparable
	Message
}](e *Engine, r *Reader, set *map[M]struct{}) {
	n, ok := e.readCount(r, 1)
	if !ok {
		return
	}
	if *set == nil {
		*set = make(map[M]struct{}, n)
	}
	for i := 0; i < n; i++ {
		if r.err != nil {
			break
		}
		m := newMessage[M]()
		e.ReadMessage(r, m)
		(*set)[m] = struct{}{}
	}
}
