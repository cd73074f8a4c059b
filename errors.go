package serialize

import "errors"

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with a nil source or sink.
	ErrNilIO = errors.New("serialize: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrNilMessage indicates that WriteMessage/ReadMessage was handed a nil Message.
	ErrNilMessage = errors.New("serialize: nil Message")

	// ErrInvalidSeek indicates a seek was attempted to an invalid position.
	ErrInvalidSeek = errors.New("serialize: seek to an invalid position")

	// ErrInvalidWhence indicates that an invalid 'whence' parameter was provided to a Seek operation.
	ErrInvalidWhence = errors.New("serialize: unsupported whence for seek")

	// ErrInvalidRead indicates that an io.Reader returned an invalid (negative or outbound) count from Read.
	ErrInvalidRead = errors.New("serialize: reader returned invalid count from Read")

	// ErrInvalidWrite indicates that an io.Writer returned an invalid (negative) count from Write.
	ErrInvalidWrite = errors.New("serialize: writer returned invalid count from Write")

	// ErrBadMagic indicates that frame decoding found bytes other than the frame marker.
	ErrBadMagic = errors.New("serialize: frame marker mismatch")

	// ErrFrameTooLarge indicates a frame header announcing a payload above the configured limit.
	ErrFrameTooLarge = errors.New("serialize: frame payload exceeds limit")

	// ErrChecksumMismatch indicates that a frame payload does not hash to its trailer value.
	ErrChecksumMismatch = errors.New("serialize: frame checksum mismatch")

	// ErrShortFrame indicates that the input ended before the announced payload and trailer.
	ErrShortFrame = errors.New("serialize: truncated frame")
)
