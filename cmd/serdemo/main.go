// serdemo exercises the serialize engine end to end: scalar, string and
// container fields, log records built by composition, schema drift in both
// directions, and framed transport over a single stream. Payloads round
// trip through memory and through a file on disk.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/msgwire/serialize"
)

// Color pins the enumeration to 16 bits. An explicit width keeps the
// message identical across platforms and smaller on the wire.
type Color uint16

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
)

type Date struct {
	Day, Month, Year int16
}

func (d *Date) Write(e *serialize.Engine, w *serialize.Writer) {
	e.WriteInt16(w, d.Day)
	e.WriteInt16(w, d.Month)
	e.WriteInt16(w, d.Year)
}

func (d *Date) Read(e *serialize.Engine, r *serialize.Reader) {
	e.ReadInt16(r, &d.Day)
	e.ReadInt16(r, &d.Month)
	e.ReadInt16(r, &d.Year)
}

func compareDates(a, b *Date) int {
	if a.Year != b.Year {
		return int(a.Year) - int(b.Year)
	}
	if a.Month != b.Month {
		return int(a.Month) - int(b.Month)
	}
	return int(a.Day) - int(b.Day)
}

type LogKind uint16

const (
	LogAlarm LogKind = iota
	LogDiagnostic
)

type Log struct {
	Kind LogKind
	Date Date
}

func (l *Log) Write(e *serialize.Engine, w *serialize.Writer) {
	serialize.WriteEnum16(e, w, l.Kind)
	e.WriteMessage(w, &l.Date)
}

func (l *Log) Read(e *serialize.Engine, r *serialize.Reader) {
	serialize.ReadEnum16(e, r, &l.Kind, LogDiagnostic)
	e.ReadMessage(r, &l.Date)
}

// AlarmLog extends Log; the embedded base encodes first.
type AlarmLog struct {
	Log
	AlarmValue uint32
}

func (a *AlarmLog) Write(e *serialize.Engine, w *serialize.Writer) {
	a.Log.Write(e, w)
	e.WriteUint32(w, a.AlarmValue)
}

func (a *AlarmLog) Read(e *serialize.Engine, r *serialize.Reader) {
	a.Log.Read(e, r)
	e.ReadUint32(r, &a.AlarmValue)
}

const cstrCap = 32

// AllData carries one field of every kind the engine encodes.
type AllData struct {
	Int    int32
	Int8   int8
	Int16  int16
	Int32  int32
	Int64  int64
	UInt8  uint8
	UInt16 uint16
	UInt32 uint32
	UInt64 uint64
	Float  float32
	Double float64
	Color  Color
	CStr   string
	Str    string
	WStr   string

	VectorBool  []bool
	VectorFloat []float32
	VectorPtr   []*Date
	VectorValue []Date
	VectorInt   []int32
	ListPtr     []*Date
	ListValue   []Date
	ListInt     []int32
	MapPtr      map[int32]*Date
	MapValue    map[int32]Date
	MapInt      map[int32]int32
	SetPtr      map[*Date]struct{}
	SetValue    map[Date]struct{}
	SetInt      map[int32]struct{}
}

func (d *AllData) Write(e *serialize.Engine, w *serialize.Writer) {
	e.WriteInt32(w, d.Int)
	e.WriteInt8(w, d.Int8)
	e.WriteInt16(w, d.Int16)
	e.WriteInt32(w, d.Int32)
	e.WriteInt64(w, d.Int64)
	e.WriteUint8(w, d.UInt8)
	e.WriteUint16(w, d.UInt16)
	e.WriteUint32(w, d.UInt32)
	e.WriteUint64(w, d.UInt64)
	e.WriteFloat32(w, d.Float)
	e.WriteFloat64(w, d.Double)
	serialize.WriteEnum16(e, w, d.Color)
	e.WriteFixedString(w, d.CStr, cstrCap)
	e.WriteString(w, d.Str)
	e.WriteWideString(w, d.WStr)

	serialize.WriteSlice(e, w, d.VectorBool, e.WriteBool)
	serialize.WriteSlice(e, w, d.VectorFloat, e.WriteFloat32)
	serialize.WriteMessageSlice(e, w, d.VectorPtr)
	serialize.WriteSlice(e, w, d.VectorValue, func(w *serialize.Writer, v Date) {
		e.WriteMessage(w, &v)
	})
	serialize.WriteSlice(e, w, d.VectorInt, e.WriteInt32)
	serialize.WriteMessageSlice(e, w, d.ListPtr)
	serialize.WriteSlice(e, w, d.ListValue, func(w *serialize.Writer, v Date) {
		e.WriteMessage(w, &v)
	})
	serialize.WriteSlice(e, w, d.ListInt, e.WriteInt32)
	serialize.WriteMessageMap(e, w, d.MapPtr, e.WriteInt32)
	serialize.WriteMap(e, w, d.MapValue, e.WriteInt32, func(w *serialize.Writer, v Date) {
		e.WriteMessage(w, &v)
	})
	serialize.WriteMap(e, w, d.MapInt, e.WriteInt32, e.WriteInt32)
	serialize.WriteMessageSet(e, w, d.SetPtr, compareDates)
	serialize.WriteSetFunc(e, w, d.SetValue, func(a, b Date) int {
		return compareDates(&a, &b)
	}, func(w *serialize.Writer, v Date) {
		e.WriteMessage(w, &v)
	})
	serialize.WriteSet(e, w, d.SetInt, e.WriteInt32)
}

func (d *AllData) Read(e *serialize.Engine, r *serialize.Reader) {
	e.ReadInt32(r, &d.Int)
	e.ReadInt8(r, &d.Int8)
	e.ReadInt16(r, &d.Int16)
	e.ReadInt32(r, &d.Int32)
	e.ReadInt64(r, &d.Int64)
	e.ReadUint8(r, &d.UInt8)
	e.ReadUint16(r, &d.UInt16)
	e.ReadUint32(r, &d.UInt32)
	e.ReadUint64(r, &d.UInt64)
	e.ReadFloat32(r, &d.Float)
	e.ReadFloat64(r, &d.Double)
	serialize.ReadEnum16(e, r, &d.Color, ColorBlue)
	e.ReadFixedString(r, &d.CStr, cstrCap)
	e.ReadString(r, &d.Str)
	e.ReadWideString(r, &d.WStr)

	serialize.ReadSlice(e, r, &d.VectorBool, e.ReadBool)
	serialize.ReadSlice(e, r, &d.VectorFloat, e.ReadFloat32)
	serialize.ReadMessageSlice(e, r, &d.VectorPtr)
	serialize.ReadSlice(e, r, &d.VectorValue, func(r *serialize.Reader, v *Date) {
		e.ReadMessage(r, v)
	})
	serialize.ReadSlice(e, r, &d.VectorInt, e.ReadInt32)
	serialize.ReadMessageSlice(e, r, &d.ListPtr)
	serialize.ReadSlice(e, r, &d.ListValue, func(r *serialize.Reader, v *Date) {
		e.ReadMessage(r, v)
	})
	serialize.ReadSlice(e, r, &d.ListInt, e.ReadInt32)
	serialize.ReadMessageMap(e, r, &d.MapPtr, e.ReadInt32)
	serialize.ReadMap(e, r, &d.MapValue, e.ReadInt32, func(r *serialize.Reader, v *Date) {
		e.ReadMessage(r, v)
	})
	serialize.ReadMap(e, r, &d.MapInt, e.ReadInt32, e.ReadInt32)
	serialize.ReadMessageSet(e, r, &d.SetPtr)
	serialize.ReadSet(e, r, &d.SetValue, func(r *serialize.Reader, v *Date) {
		e.ReadMessage(r, v)
	})
	serialize.ReadSet(e, r, &d.SetInt, e.ReadInt32)
}

func newAllData() *AllData {
	return &AllData{
		Int:    4,
		Int8:   8,
		Int16:  16,
		Int32:  32,
		Int64:  64,
		UInt8:  8,
		UInt16: 16,
		UInt32: 32,
		UInt64: 64,
		Float:  1.23,
		Double: 3.21,
		Color:  ColorBlue,
		CStr:   "Hello World!",
		Str:    "Hello World!",
		WStr:   "Hello World Wide!",

		VectorBool:  []bool{false, true},
		VectorFloat: []float32{1.23, 3.21},
		VectorPtr:   []*Date{{1, 1, 2001}, {2, 2, 2002}},
		VectorValue: []Date{{1, 1, 2001}, {2, 2, 2002}},
		VectorInt:   []int32{1, 2},
		ListPtr:     []*Date{{1, 1, 2001}, {2, 2, 2002}},
		ListValue:   []Date{{1, 1, 2001}, {2, 2, 2002}},
		ListInt:     []int32{1, 2},
		MapPtr:      map[int32]*Date{0: {1, 1, 2001}, 1: {2, 2, 2002}},
		MapValue:    map[int32]Date{0: {1, 1, 2001}, 1: {2, 2, 2002}},
		MapInt:      map[int32]int32{0: 1, 1: 2},
		SetPtr:      map[*Date]struct{}{{1, 1, 2001}: {}, {2, 2, 2002}: {}},
		SetValue:    map[Date]struct{}{{1, 1, 2001}: {}, {2, 2, 2002}: {}},
		SetInt:      map[int32]struct{}{1: {}, 2: {}},
	}
}

// DataV1 and DataV2 model two revisions of one record type; V2 appends a
// field. Either side may be the older party on a live link.
type DataV1 struct {
	Data int32
}

func (d *DataV1) Write(e *serialize.Engine, w *serialize.Writer) { e.WriteInt32(w, d.Data) }
func (d *DataV1) Read(e *serialize.Engine, r *serialize.Reader)  { e.ReadInt32(r, &d.Data) }

type DataV2 struct {
	Data    int32
	DataNew int32
}

func (d *DataV2) Write(e *serialize.Engine, w *serialize.Writer) {
	e.WriteInt32(w, d.Data)
	e.WriteInt32(w, d.DataNew)
}

func (d *DataV2) Read(e *serialize.Engine, r *serialize.Reader) {
	e.ReadInt32(r, &d.Data)
	e.ReadInt32(r, &d.DataNew)
}

func main() {
	out := pflag.String("out", "serialize.bin", "path for the file round trip")
	trace := pflag.Bool("trace", false, "log every decoded message")
	pflag.Parse()

	level := zerolog.InfoLevel
	if *trace {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Str("app", "serdemo").Logger()

	if err := run(logger, *out); err != nil {
		logger.Fatal().Err(err).Msg("demo failed")
	}
}

func run(logger zerolog.Logger, out string) error {
	e := serialize.New(
		serialize.WithErrorHandler(func(kind serialize.ParseError, offset int64, source string) {
			logger.Warn().
				Stringer("kind", kind).
				Int64("offset", offset).
				Str("source", source).
				Msg("decode anomaly")
		}),
		serialize.WithParseHandler(func(typeName string, size int) {
			logger.Debug().Str("type", typeName).Int("size", size).Msg("parsed")
		}),
	)

	// Alarm log through memory.
	alarm := &AlarmLog{
		Log:        Log{Kind: LogAlarm, Date: Date{Day: 3, Month: 9, Year: 2024}},
		AlarmValue: 123,
	}
	data, err := e.Marshal(alarm)
	if err != nil {
		return err
	}
	decoded := &AlarmLog{}
	if err := e.Unmarshal(data, decoded); err != nil {
		return err
	}
	logger.Info().
		Uint32("alarm_value", decoded.AlarmValue).
		Int("bytes", len(data)).
		Msg("alarm log round trip")

	// Full payload through a file.
	all := newAllData()
	if err := writeFile(e, out, all); err != nil {
		return err
	}
	fromFile := &AllData{}
	if err := readFile(e, out, fromFile); err != nil {
		return err
	}
	logger.Info().
		Str("path", out).
		Str("str", fromFile.Str).
		Str("wstr", fromFile.WStr).
		Int("vector_ptr", len(fromFile.VectorPtr)).
		Int("set_int", len(fromFile.SetInt)).
		Msg("file round trip")

	// Full payload through an in-memory stream.
	var buf bytes.Buffer
	w := serialize.NewWriter(&buf)
	e.WriteMessage(w, all)
	if err := w.Err(); err != nil {
		return err
	}
	fromMemory := &AllData{}
	r := serialize.NewReaderFrom(&buf).WithName("memory stream")
	e.ReadMessage(r, fromMemory)
	if err := r.Err(); err != nil {
		return err
	}
	logger.Info().
		Int64("bytes", w.Count()).
		Int("map_ptr", len(fromMemory.MapPtr)).
		Msg("memory round trip")

	// An older writer feeding a newer reader: the appended field keeps its
	// default and the anomaly is logged, but the decode is usable.
	v1 := &DataV1{Data: 111}
	v1data, err := e.Marshal(v1)
	if err != nil {
		return err
	}
	v2 := &DataV2{}
	r = serialize.NewReader(serialize.NewBytesSource(v1data)).WithName("v1 payload")
	e.ReadMessage(r, v2)
	if err := r.Err(); err != nil {
		return err
	}
	logger.Info().
		Int32("data", v2.Data).
		Int32("data_new", v2.DataNew).
		Bool("exhausted", r.Exhausted()).
		Msg("v1 payload decoded by v2 reader")

	// A newer writer feeding an older reader: trailing bytes stay unread.
	v2full := &DataV2{Data: 111, DataNew: 222}
	v2data, err := e.Marshal(v2full)
	if err != nil {
		return err
	}
	v1back := &DataV1{}
	r = serialize.NewReader(serialize.NewBytesSource(v2data)).WithName("v2 payload")
	e.ReadMessage(r, v1back)
	if err := r.Err(); err != nil {
		return err
	}
	logger.Info().
		Int32("data", v1back.Data).
		Int("unread", r.Available()).
		Msg("v2 payload decoded by v1 reader")

	// Framed transport: length-delimited, checksummed messages over one
	// stream, the shape a send/receive link between two hosts would use.
	var wire bytes.Buffer
	for _, v := range []uint32{100, 200} {
		entry := &AlarmLog{
			Log:        Log{Kind: LogAlarm, Date: Date{Day: 3, Month: 9, Year: 2024}},
			AlarmValue: v,
		}
		if err := e.WriteFrame(&wire, entry); err != nil {
			return err
		}
	}
	for {
		entry := &AlarmLog{}
		err := e.ReadFrame(&wire, entry)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		logger.Info().Uint32("alarm_value", entry.AlarmValue).Msg("frame received")
	}

	return nil
}

func writeFile(e *serialize.Engine, path string, m serialize.Message) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	w := serialize.NewWriter(bw)
	e.WriteMessage(w, m)
	if err := w.Err(); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readFile(e *serialize.Engine, path string, m serialize.Message) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	r := serialize.NewReaderFrom(f).WithName(path)
	e.ReadMessage(r, m)
	return r.Err()
}
