package serialize

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// failSource claims bytes are available but fails every read, simulating a
// broken medium behind a healthy-looking source.
type failSource struct {
	avail int
	err   error
}

func (f *failSource) Read(p []byte) (int, error) { return 0, f.err }
func (f *failSource) Available() int             { return f.avail }

// eofSource hands over all of its bytes and io.EOF in a single call, a
// result the io.Reader contract permits.
type eofSource struct {
	data []byte
}

func (f *eofSource) Read(p []byte) (int, error) {
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, io.EOF
}

func (f *eofSource) Available() int { return len(f.data) }

// --- Writer Test Suite ---

type WriterTestSuite struct {
	suite.Suite
	buf    *bytes.Buffer
	writer *Writer
}

// SetupTest runs before each test in the suite, ensuring a clean state.
func (s *WriterTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	s.writer = NewWriter(s.buf)
}

func (s *WriterTestSuite) TestNilSink() {
	w := NewWriter(nil)
	s.Assert().ErrorIs(w.Err(), ErrNilIO)
	s.Assert().False(w.Good())

	// Born failed: writes are no-ops, not panics.
	w.WriteBytes([]byte{1})
	w.WriteString("x")
	w.WriteZeros(8)
	s.Assert().Zero(w.Count())
}

func (s *WriterTestSuite) TestBasicWrites() {
	s.writer.WriteBytes([]byte{5, 6, 7})
	s.writer.WriteString("ab")
	s.writer.WriteZeros(2)

	s.Require().NoError(s.writer.Err())
	s.Assert().True(s.writer.Good())
	s.Assert().EqualValues(3+2+2, s.writer.Count())
	s.Assert().Equal([]byte{5, 6, 7, 'a', 'b', 0, 0}, s.buf.Bytes())
}

func (s *WriterTestSuite) TestLargeZeroPadding() {
	n := bufferSize + 100
	s.writer.WriteZeros(int64(n))

	s.Require().NoError(s.writer.Err())
	s.Assert().EqualValues(n, s.writer.Count())
	s.Assert().Equal(n, bytes.Count(s.buf.Bytes(), []byte{0}))
}

func (s *WriterTestSuite) TestErrorLatch() {
	s.T().Run("ShortSink", func(t *testing.T) {
		sink := NewBytesSink(make([]byte, 5))
		w := NewWriter(sink)

		w.WriteBytes([]byte{1, 2, 3, 4}) // fits
		w.WriteBytes([]byte{5, 6})       // overflows after one byte

		require.ErrorIs(t, w.Err(), io.ErrShortWrite)
		assert.False(t, w.Good())
		assert.EqualValues(t, 5, w.Count())

		// Latched: nothing moves any more.
		w.WriteBytes([]byte{7})
		assert.EqualValues(t, 5, w.Count())
		assert.Equal(t, []byte{1, 2, 3, 4, 5}, sink.Bytes())
	})

	s.T().Run("FirstErrorWins", func(t *testing.T) {
		w := NewWriter(NewBytesSink(make([]byte, 0)))
		w.WriteString("x")
		first := w.Err()
		require.Error(t, first)

		w.WriteBytes([]byte{1, 2})
		assert.Equal(t, first, w.Err(), "the latched error should not change")
	})
}

// TestWriter runs the WriterTestSuite.
func TestWriter(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

// --- Reader Test Suite ---

type ReaderTestSuite struct {
	suite.Suite
	engine *Engine
}

func (s *ReaderTestSuite) SetupTest() {
	s.engine = New()
}

func (s *ReaderTestSuite) TestNilSource() {
	r := NewReader(nil)
	s.Assert().ErrorIs(r.Err(), ErrNilIO)
	s.Assert().False(r.Good())
	s.Assert().Zero(r.Available())

	r = NewReaderFrom(nil)
	s.Assert().ErrorIs(r.Err(), ErrNilIO)
}

func (s *ReaderTestSuite) TestSourceAdapters() {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	readTwo := func(t *testing.T, r *Reader) {
		var v uint16
		s.engine.ReadUint16(r, &v)
		require.NoError(t, r.Err())
		assert.Equal(t, uint16(0x0201), v)
	}

	s.T().Run("BytesSource", func(t *testing.T) {
		r := NewReader(NewBytesSource(data))
		assert.Equal(t, 8, r.Available())
		readTwo(t, r)
		assert.Equal(t, 6, r.Available())
	})

	s.T().Run("BytesReader", func(t *testing.T) {
		r := NewReaderFrom(bytes.NewReader(data))
		assert.Equal(t, 8, r.Available())
		readTwo(t, r)
		assert.Equal(t, 6, r.Available())
	})

	s.T().Run("BytesBuffer", func(t *testing.T) {
		// A freshly filled buffer has zero spare capacity; its own
		// Available method would report 0 even though nothing has been
		// read yet. The adapter counts unread bytes.
		r := NewReaderFrom(bytes.NewBuffer(data))
		assert.Equal(t, 8, r.Available())
		readTwo(t, r)
		assert.Equal(t, 6, r.Available())
		assert.False(t, r.Exhausted())
	})

	s.T().Run("BytesBufferSpareCapacity", func(t *testing.T) {
		// With room to grow, the buffer's own Available method reports
		// write capacity, 56 here, not the 8 unread bytes.
		buf := bytes.NewBuffer(make([]byte, 0, 64))
		buf.Write(data)
		r := NewReaderFrom(buf)
		assert.Equal(t, 8, r.Available())
		readTwo(t, r)
		assert.Equal(t, 6, r.Available())
		assert.False(t, r.Exhausted())
	})

	s.T().Run("StringsReader", func(t *testing.T) {
		r := NewReaderFrom(strings.NewReader("\x01\x02\x03\x04"))
		assert.Equal(t, 4, r.Available())
		readTwo(t, r)
		assert.Equal(t, 2, r.Available())
	})

	s.T().Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stream.bin")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		// Start mid-file so the size probe has to respect the position.
		_, err = f.Seek(2, io.SeekStart)
		require.NoError(t, err)

		r := NewReaderFrom(f)
		require.NoError(t, r.Err())
		assert.Equal(t, 6, r.Available())

		var v uint16
		s.engine.ReadUint16(r, &v)
		require.NoError(t, r.Err())
		assert.Equal(t, uint16(0x0403), v)
		assert.Equal(t, 4, r.Available())
	})

	s.T().Run("PlainReaderSlurp", func(t *testing.T) {
		// io.MultiReader hides the seeker, forcing the read-all fallback.
		r := NewReaderFrom(io.MultiReader(bytes.NewReader(data)))
		assert.Equal(t, 8, r.Available())
		readTwo(t, r)
		assert.Equal(t, 6, r.Available())
	})

	s.T().Run("MultiSegment", func(t *testing.T) {
		// Split mid-value so the read crosses the segment boundary.
		r := NewReader(NewMultiSource(
			NewBytesSource(data[:1]),
			NewBytesSource(data[1:]),
		))
		assert.Equal(t, 8, r.Available())
		readTwo(t, r)
		assert.Equal(t, 6, r.Available())
	})
}

func (s *ReaderTestSuite) TestExhaustionIsNotFailure() {
	r := NewReader(NewBytesSource([]byte{0x2A}))
	var v uint32
	s.engine.ReadUint32(r, &v)

	s.Assert().True(r.Good(), "running dry must not fail the stream")
	s.Assert().True(r.Exhausted())
	s.Assert().Zero(v, "target keeps its prior value")
	s.Assert().EqualValues(0, r.Count(), "the short read is detected before consuming")
	s.Assert().Equal(1, r.Available())
}

func (s *ReaderTestSuite) TestHardErrorLatch() {
	boom := errors.New("boom")
	var reported []ParseError
	e := New(WithErrorHandler(func(kind ParseError, offset int64, source string) {
		reported = append(reported, kind)
	}))

	r := NewReader(&failSource{avail: 64, err: boom})
	var v uint32
	e.ReadUint32(r, &v)

	s.Require().ErrorIs(r.Err(), boom)
	s.Assert().False(r.Good())
	s.Assert().Zero(v)
	s.Assert().Empty(reported, "hard failures latch; they are not decode anomalies")

	// Latched: the second read never touches the source.
	e.ReadUint32(r, &v)
	s.Assert().ErrorIs(r.Err(), boom)
	s.Assert().False(r.Exhausted())
}

func (s *ReaderTestSuite) TestWithName() {
	var src string
	e := New(WithErrorHandler(func(_ ParseError, _ int64, source string) { src = source }))

	r := NewReader(NewBytesSource(nil)).WithName("telemetry feed")
	var v uint8
	e.ReadUint8(r, &v)

	s.Assert().Equal("telemetry feed", r.Name())
	s.Assert().Equal("telemetry feed", src)
}

// TestReader runs the ReaderTestSuite.
func TestReader(t *testing.T) {
	suite.Run(t, new(ReaderTestSuite))
}

func TestBytesSourceSeek(t *testing.T) {
	src := NewBytesSource([]byte{1, 2, 3, 4})

	pos, err := src.Seek(2, io.SeekStart)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pos)
	assert.Equal(t, 2, src.Available())

	_, err = src.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, ErrInvalidSeek)

	_, err = src.Seek(0, 9)
	assert.ErrorIs(t, err, ErrInvalidWhence)

	pos, err = src.Seek(-1, io.SeekEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pos)
	assert.Equal(t, 1, src.Available())
}

func TestMultiSourceDataWithEOF(t *testing.T) {
	// The first segment delivers its final bytes and io.EOF in the same
	// call; none of them may be dropped on the way to the next segment.
	src := NewMultiSource(
		&eofSource{data: []byte{1, 2}},
		NewBytesSource([]byte{3, 4}),
	)
	assert.Equal(t, 4, src.Available())

	got, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
	assert.Zero(t, src.Available())
}
