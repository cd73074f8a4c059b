package serialize

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spaolacci/murmur3"
)

// Frame layout: a 16-bit marker, a 32-bit payload length, the payload, and
// a 64-bit murmur3 hash of the payload, all in the wire byte order. Framing
// delimits one encoded message on a shared byte pipe and lets the far end
// verify integrity before decoding; it is not a transport.
//
// Frame problems surface as ordinary errors rather than through the
// diagnostics handlers. A broken envelope means there is no trustworthy
// payload to decode tolerantly.

// FrameMagic marks the start of every frame.
const FrameMagic uint16 = 0x4D53

// DefaultMaxFrameLen caps accepted payload lengths unless overridden with
// WithMaxFrameLen, bounding what a corrupt or hostile header can make the
// reader allocate.
const DefaultMaxFrameLen = 16 << 20

const frameHeaderLen = 6 // marker + payload length

// WriteFrame encodes m and writes it to dst as one delimited frame.
func (e *Engine) WriteFrame(dst io.Writer, m Message) error {
	if dst == nil {
		return ErrNilIO
	}
	payload, err := e.Marshal(m)
	if err != nil {
		return err
	}
	if int64(len(payload)) > int64(e.maxLen) {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}

	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	var hdr [frameHeaderLen]byte
	wireOrder.PutUint16(hdr[0:2], FrameMagic)
	wireOrder.PutUint32(hdr[2:6], uint32(len(payload)))
	buf.Write(hdr[:])
	buf.Write(payload)
	var sum [8]byte
	wireOrder.PutUint64(sum[:], murmur3.Sum64(payload))
	buf.Write(sum[:])

	_, err = dst.Write(buf.Bytes())
	return err
}

// ReadFrame reads one frame from src, verifies the marker, length, and
// checksum, and decodes the payload into m. It returns io.EOF when src is
// cleanly exhausted at a frame boundary, so callers can loop over a stream
// of frames.
func (e *Engine) ReadFrame(src io.Reader, m Message) error {
	if src == nil {
		return ErrNilIO
	}
	var hdr [frameHeaderLen]byte
	if _, err := io.ReadFull(src, hdr[:]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return shortFrame(err)
	}
	if magic := wireOrder.Uint16(hdr[0:2]); magic != FrameMagic {
		return fmt.Errorf("%w: 0x%04X", ErrBadMagic, magic)
	}
	length := wireOrder.Uint32(hdr[2:6])
	if length > e.maxLen {
		return fmt.Errorf("%w: header announces %d bytes", ErrFrameTooLarge, length)
	}
	payload := make([]byte, int(length))
	if _, err := io.ReadFull(src, payload); err != nil {
		return shortFrame(err)
	}
	var sum [8]byte
	if _, err := io.ReadFull(src, sum[:]); err != nil {
		return shortFrame(err)
	}
	if got := murmur3.Sum64(payload); got != wireOrder.Uint64(sum[:]) {
		return ErrChecksumMismatch
	}
	return e.Unmarshal(payload, m)
}

// shortFrame maps an end-of-stream inside a frame to ErrShortFrame, keeping
// genuine I/O failures intact.
func shortFrame(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrShortFrame
	}
	return err
}
