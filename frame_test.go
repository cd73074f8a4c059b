package serialize

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	e := New()
	out := &date{day: 1, month: 1, year: 2001}

	var buf bytes.Buffer
	require.NoError(t, e.WriteFrame(&buf, out))
	assert.Equal(t, frameHeaderLen+6+8, buf.Len(), "header, payload, checksum")

	in := &date{}
	require.NoError(t, e.ReadFrame(&buf, in))
	assert.Equal(t, out, in)
}

func TestFrameChecksumMismatch(t *testing.T) {
	e := New()
	var buf bytes.Buffer
	require.NoError(t, e.WriteFrame(&buf, &date{day: 1, month: 1, year: 2001}))

	data := buf.Bytes()
	data[frameHeaderLen] ^= 0xFF

	err := e.ReadFrame(bytes.NewReader(data), &date{})
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestFrameBadMagic(t *testing.T) {
	e := New()
	var buf bytes.Buffer
	require.NoError(t, e.WriteFrame(&buf, &date{day: 1, month: 1, year: 2001}))

	data := buf.Bytes()
	data[0] ^= 0xFF

	err := e.ReadFrame(bytes.NewReader(data), &date{})
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestFrameTruncated(t *testing.T) {
	e := New()
	var buf bytes.Buffer
	require.NoError(t, e.WriteFrame(&buf, &date{day: 1, month: 1, year: 2001}))
	data := buf.Bytes()

	t.Run("MidHeader", func(t *testing.T) {
		err := e.ReadFrame(bytes.NewReader(data[:3]), &date{})
		assert.ErrorIs(t, err, ErrShortFrame)
	})

	t.Run("MidPayload", func(t *testing.T) {
		err := e.ReadFrame(bytes.NewReader(data[:len(data)-3]), &date{})
		assert.ErrorIs(t, err, ErrShortFrame)
	})
}

func TestFrameEOFAtBoundary(t *testing.T) {
	e := New()
	err := e.ReadFrame(bytes.NewReader(nil), &date{})
	assert.Equal(t, io.EOF, err, "a clean boundary must surface as plain EOF")
}

func TestFrameTooLarge(t *testing.T) {
	t.Run("WriteSide", func(t *testing.T) {
		e := New(WithMaxFrameLen(4))
		var buf bytes.Buffer
		err := e.WriteFrame(&buf, &date{day: 1, month: 1, year: 2001})
		assert.ErrorIs(t, err, ErrFrameTooLarge)
		assert.Zero(t, buf.Len(), "nothing may reach the stream")
	})

	t.Run("ReadSide", func(t *testing.T) {
		var hdr [frameHeaderLen]byte
		wireOrder.PutUint16(hdr[0:2], FrameMagic)
		wireOrder.PutUint32(hdr[2:6], DefaultMaxFrameLen+1)

		e := New()
		err := e.ReadFrame(bytes.NewReader(hdr[:]), &date{})
		assert.ErrorIs(t, err, ErrFrameTooLarge)
	})
}

func TestFrameStream(t *testing.T) {
	e := New()
	var buf bytes.Buffer
	require.NoError(t, e.WriteFrame(&buf, &date{day: 1, month: 1, year: 2001}))
	require.NoError(t, e.WriteFrame(&buf, &date{day: 2, month: 2, year: 2002}))

	var got []date
	for {
		var d date
		err := e.ReadFrame(&buf, &d)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, d)
	}
	assert.Equal(t, []date{
		{day: 1, month: 1, year: 2001},
		{day: 2, month: 2, year: 2002},
	}, got)
}
