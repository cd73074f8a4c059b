package serialize

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// Message is the capability a type implements to take part in encoding and
// decoding. Write and Read receive the engine so that nested fields can
// reuse every codec, and the field order in Read must exactly match the
// field order in Write.
//
// A type composed over an embedded base must call the base's Write/Read
// first, before its own fields, and must do so in both methods. New fields
// may only ever be appended after existing ones; that is what lets old and
// new revisions of a type exchange data (see Engine).
type Message interface {
	Write(e *Engine, w *Writer)
	Read(e *Engine, r *Reader)
}

// Engine encodes and decodes values against a fixed little-endian wire
// layout. It holds no per-call state; only the diagnostic handler slots
// persist, so one engine can serve many streams. Methods are safe for
// concurrent use as long as the handlers are configured before the engine
// is shared and no single Writer or Reader is used from two goroutines.
//
// Decoding is tolerant by default: running out of source bytes reports
// Truncated through the ErrorHandler and leaves the unread fields at their
// prior values, but does not fail the stream. A reader type with appended
// fields can therefore consume data written before those fields existed,
// and extra trailing bytes from a newer writer are simply left unread.
// This only holds for append-only schema changes; reordering or removing
// non-trailing fields produces silent misdecodes and is unsupported.
type Engine struct {
	onError ErrorHandler
	onParse ParseHandler
	maxLen  uint32
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithErrorHandler sets the decode anomaly observer.
func WithErrorHandler(h ErrorHandler) Option {
	return func(e *Engine) { e.onError = h }
}

// WithParseHandler sets the decode progress observer.
func WithParseHandler(h ParseHandler) Option {
	return func(e *Engine) { e.onParse = h }
}

// WithMaxFrameLen caps the payload length accepted by ReadFrame.
func WithMaxFrameLen(n uint32) Option {
	return func(e *Engine) { e.maxLen = n }
}

// New creates an Engine. Without options it has no handlers, so anomalies
// are silently absorbed, and frames are capped at DefaultMaxFrameLen.
func New(opts ...Option) *Engine {
	e := &Engine{maxLen: DefaultMaxFrameLen}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetErrorHandler replaces the decode anomaly observer. A nil handler
// silences anomaly reporting.
func (e *Engine) SetErrorHandler(h ErrorHandler) { e.onError = h }

// SetParseHandler replaces the decode progress observer.
func (e *Engine) SetParseHandler(h ParseHandler) { e.onParse = h }

// WriteMessage encodes m by delegating to its own Write method. A nil
// message, typed nil pointers included, fails the sink with ErrNilMessage.
func (e *Engine) WriteMessage(w *Writer, m Message) {
	if w == nil || w.err != nil {
		return
	}
	if isNilMessage(m) {
		w.setError(ErrNilMessage)
		return
	}
	m.Write(e, w)
}

// ReadMessage decodes into m by delegating to its own Read method. The
// caller supplies the exact concrete instance to decode into; nothing is
// inferred from the stream. After a decode that leaves the stream healthy,
// the parse handler is told the concrete type's name and the number of
// bytes consumed.
func (e *Engine) ReadMessage(r *Reader, m Message) {
	if r == nil || r.err != nil {
		return
	}
	if isNilMessage(m) {
		r.setError(ErrNilMessage)
		return
	}
	start := r.count
	m.Read(e, r)
	if r.err == nil && e.onParse != nil {
		e.onParse(messageName(m), int(r.count-start))
	}
}

// reportError hands a decode anomaly to the error handler, if one is set.
func (e *Engine) reportError(kind ParseError, r *Reader) {
	if e.onError != nil {
		e.onError(kind, r.count, r.name)
	}
}

// isNilMessage reports whether m holds no instance to dispatch to. A typed
// nil pointer stored in the interface compares unequal to plain nil but
// still has no receiver behind it.
func isNilMessage(m Message) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// typeNames caches the display name per concrete message type so that the
// parse handler does not pay for reflection on every decode.
var typeNames = xsync.NewMapOf[reflect.Type, string]()

func messageName(m Message) string {
	t := reflect.TypeOf(m)
	if name, ok := typeNames.Load(t); ok {
		return name
	}
	u := t
	for u.Kind() == reflect.Pointer {
		u = u.Elem()
	}
	name := u.Name()
	if name == "" {
		name = u.String()
	}
	typeNames.Store(t, name)
	return name
}
