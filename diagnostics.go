package serialize

// ParseError identifies a recoverable decode anomaly. Anomalies are reported
// through the engine's ErrorHandler and never abort decoding on their own;
// see the Engine documentation for the tolerance rules.
type ParseError uint8

const (
	// Truncated reports that the source ran out of bytes before a value
	// of the declared width could be read. The unread target keeps the
	// value it already held.
	Truncated ParseError = iota

	// BadCount reports a length prefix announcing more data than the
	// source could possibly hold. The string or container decode stops
	// without attempting the reads.
	BadCount

	// EnumRange reports a decoded enumerated value outside its declared
	// range. The raw bit pattern is stored regardless.
	EnumRange
)

func (p ParseError) String() string {
	switch p {
	case Truncated:
		return "truncated source"
	case BadCount:
		return "malformed count prefix"
	case EnumRange:
		return "enum value out of range"
	default:
		return "unknown parse error"
	}
}

// ErrorHandler observes decode anomalies. offset is the byte position in the
// stream at which the anomaly was detected and source is the name given to
// the Reader, if any. Handlers must not retain or mutate engine state; they
// are observers only.
type ErrorHandler func(kind ParseError, offset int64, source string)

// ParseHandler observes decode progress. It is invoked once per message-level
// decode with the concrete type's name and the number of bytes it consumed.
type ParseHandler func(typeName string, size int)
