package record

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/solidcoredata/reccodec/dt"
	"github.com/solidcoredata/reccodec/rectype"
	"github.com/solidcoredata/reccodec/wire"
)

// The six dispatch tables below realize "dynamic dispatch by scalar type"
// as arrays of function values indexed by rectype.ScalarType, rather than a
// switch repeated six times. get/set/clear operate on a Record's user-value
// layer; read/write/size operate purely on wire bytes and a columnValue and
// never touch the user-object layer, so the hot encode/decode loop never
// needs to materialize anything.

type getFunc func(r *Record, i int) (any, error)
type setFunc func(r *Record, i int, v any) error
type clearFunc func(cv *columnValue)
type readFunc func(c *wire.Cursor) (columnValue, error)
type writeFunc func(c *wire.Cursor, cv columnValue) error
type sizeFunc func(cv columnValue) int

var (
	getTable   [rectype.ScalarTypeCount]getFunc
	setTable   [rectype.ScalarTypeCount]setFunc
	clearTable [rectype.ScalarTypeCount]clearFunc
	readTable  [rectype.ScalarTypeCount]readFunc
	writeTable [rectype.ScalarTypeCount]writeFunc
	sizeTable  [rectype.ScalarTypeCount]sizeFunc
)

func init() {
	registerBytesLike(rectype.Bytes, 0)
	registerBytesLike(rectype.String, 0)
	for scalar, n := range map[rectype.ScalarType]int{
		rectype.Char1: 1, rectype.Char2: 2, rectype.Char4: 4, rectype.Char8: 8,
		rectype.Char16: 16, rectype.Char32: 32, rectype.Char64: 64,
		rectype.Char128: 128, rectype.Char256: 256,
	} {
		registerCharN(scalar, n)
	}
	registerDouble()
	registerFloat()
	registerInt32Like(rectype.Int, math.MinInt32, math.MaxInt32)
	registerInt32Like(rectype.Int8, math.MinInt8, math.MaxInt8)
	registerInt32Like(rectype.Int16, math.MinInt16, math.MaxInt16)
	registerLong()
	registerDate()
	registerTime()
	registerDateTime()
	registerTimestamp()
}

// --- bytes / string (always heap-buffered or user-object-aliased) ---

func registerBytesLike(scalar rectype.ScalarType, _ int) {
	getTable[scalar] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		if scalar == rectype.String {
			return string(cv.bytes), nil
		}
		out := make([]byte, len(cv.bytes))
		copy(out, cv.bytes)
		return out, nil
	}
	setTable[scalar] = func(r *Record, i int, v any) error {
		var b []byte
		switch scalar {
		case rectype.String:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: column %q expects a string", ErrTypeMismatch, r.typ.Column(i).Name())
			}
			b = []byte(s)
		default:
			raw, ok := v.([]byte)
			if !ok {
				return fmt.Errorf("%w: column %q expects []byte", ErrTypeMismatch, r.typ.Column(i).Name())
			}
			b = append([]byte(nil), raw...)
		}
		r.raw[i] = columnValue{length: len(b), bytes: b}
		return nil
	}
	clearTable[scalar] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[scalar] = func(c *wire.Cursor) (columnValue, error) {
		b, err := c.ReadBytes()
		if err != nil {
			return columnValue{}, err
		}
		return columnValue{length: len(b), bytes: append([]byte(nil), b...)}, nil
	}
	writeTable[scalar] = func(c *wire.Cursor, cv columnValue) error {
		return c.WriteBytes(cv.bytes)
	}
	sizeTable[scalar] = func(cv columnValue) int {
		return wire.SizeBytes(cv.bytes)
	}
}

func registerCharN(scalar rectype.ScalarType, n int) {
	inline := n <= 8
	getTable[scalar] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		if inline {
			return string(cv.inline[:cv.length]), nil
		}
		return string(cv.bytes), nil
	}
	setTable[scalar] = func(r *Record, i int, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: column %q expects a string", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		if utf8.RuneCountInString(s) > n || len(s) > n {
			return fmt.Errorf("%w: column %q value exceeds %d bytes", ErrRange, r.typ.Column(i).Name(), n)
		}
		b := []byte(s)
		if inline {
			var cv columnValue
			cv.length = len(b)
			copy(cv.inline[:], b)
			r.raw[i] = cv
			return nil
		}
		r.raw[i] = columnValue{length: len(b), bytes: append([]byte(nil), b...)}
		return nil
	}
	clearTable[scalar] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[scalar] = func(c *wire.Cursor) (columnValue, error) {
		b, err := c.ReadBytes()
		if err != nil {
			return columnValue{}, err
		}
		if len(b) > n {
			return columnValue{}, wire.Overflow
		}
		var cv columnValue
		cv.length = len(b)
		if inline {
			copy(cv.inline[:], b)
		} else {
			cv.bytes = append([]byte(nil), b...)
		}
		return cv, nil
	}
	writeTable[scalar] = func(c *wire.Cursor, cv columnValue) error {
		if inline {
			return c.WriteBytes(cv.inline[:cv.length])
		}
		return c.WriteBytes(cv.bytes)
	}
	sizeTable[scalar] = func(cv columnValue) int {
		return wire.SizeBytes(make([]byte, cv.length))
	}
}

// --- double / float ---

func registerDouble() {
	getTable[rectype.Double] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		return cv.f64, nil
	}
	setTable[rectype.Double] = func(r *Record, i int, v any) error {
		f, ok := toFloat64(v)
		if !ok {
			return fmt.Errorf("%w: column %q expects a float", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		r.raw[i] = columnValue{length: lengthPresent, f64: f}
		return nil
	}
	clearTable[rectype.Double] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[rectype.Double] = func(c *wire.Cursor) (columnValue, error) {
		f, err := c.ReadFloat64()
		if err != nil {
			return columnValue{}, err
		}
		return columnValue{length: lengthPresent, f64: f}, nil
	}
	writeTable[rectype.Double] = func(c *wire.Cursor, cv columnValue) error { return c.WriteFloat64(cv.f64) }
	sizeTable[rectype.Double] = func(columnValue) int { return 8 }
}

func registerFloat() {
	getTable[rectype.Float] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		return cv.f32, nil
	}
	setTable[rectype.Float] = func(r *Record, i int, v any) error {
		f, ok := toFloat64(v)
		if !ok {
			return fmt.Errorf("%w: column %q expects a float", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		r.raw[i] = columnValue{length: lengthPresent, f32: float32(f)}
		return nil
	}
	clearTable[rectype.Float] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[rectype.Float] = func(c *wire.Cursor) (columnValue, error) {
		f, err := c.ReadFloat32()
		if err != nil {
			return columnValue{}, err
		}
		return columnValue{length: lengthPresent, f32: f}, nil
	}
	writeTable[rectype.Float] = func(c *wire.Cursor, cv columnValue) error { return c.WriteFloat32(cv.f32) }
	sizeTable[rectype.Float] = func(columnValue) int { return 4 }
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// --- int / int8 / int16 / long ---

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func registerInt32Like(scalar rectype.ScalarType, min, max int64) {
	getTable[scalar] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		switch scalar {
		case rectype.Int8:
			return int8(cv.i32), nil
		case rectype.Int16:
			return int16(cv.i32), nil
		default:
			return cv.i32, nil
		}
	}
	setTable[scalar] = func(r *Record, i int, v any) error {
		n, ok := toInt64(v)
		if !ok {
			return fmt.Errorf("%w: column %q expects an integer", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		if n < min || n > max {
			return fmt.Errorf("%w: column %q value %d outside [%d, %d]", ErrRange, r.typ.Column(i).Name(), n, min, max)
		}
		r.raw[i] = columnValue{length: lengthPresent, i32: int32(n)}
		return nil
	}
	clearTable[scalar] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[scalar] = func(c *wire.Cursor) (columnValue, error) {
		n, err := c.ReadVarint32()
		if err != nil {
			return columnValue{}, err
		}
		if int64(n) < min || int64(n) > max {
			return columnValue{}, wire.Overflow
		}
		return columnValue{length: lengthPresent, i32: n}, nil
	}
	writeTable[scalar] = func(c *wire.Cursor, cv columnValue) error { return c.WriteVarint32(cv.i32) }
	sizeTable[scalar] = func(cv columnValue) int { return wire.SizeVarint32(cv.i32) }
}

func registerLong() {
	getTable[rectype.Long] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		return cv.i64, nil
	}
	setTable[rectype.Long] = func(r *Record, i int, v any) error {
		n, ok := toInt64(v)
		if !ok {
			return fmt.Errorf("%w: column %q expects an integer", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		r.raw[i] = columnValue{length: lengthPresent, i64: n}
		return nil
	}
	clearTable[rectype.Long] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[rectype.Long] = func(c *wire.Cursor) (columnValue, error) {
		n, err := c.ReadVarint64()
		if err != nil {
			return columnValue{}, err
		}
		return columnValue{length: lengthPresent, i64: n}, nil
	}
	writeTable[rectype.Long] = func(c *wire.Cursor, cv columnValue) error { return c.WriteVarint64(cv.i64) }
	sizeTable[rectype.Long] = func(cv columnValue) int { return wire.SizeVarint64(cv.i64) }
}

// --- date / time / datetime / timestamp ---

func registerDate() {
	getTable[rectype.Date] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		return cv.date, nil
	}
	setTable[rectype.Date] = func(r *Record, i int, v any) error {
		d, ok := v.(dt.Date)
		if !ok {
			return fmt.Errorf("%w: column %q expects dt.Date", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		r.raw[i] = columnValue{length: lengthPresent, date: d}
		return nil
	}
	clearTable[rectype.Date] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[rectype.Date] = func(c *wire.Cursor) (columnValue, error) {
		b, err := c.ReadBytes()
		if err != nil {
			return columnValue{}, err
		}
		sub := wire.NewCursor(b)
		d, err := dt.ReadDateASCII(sub)
		if err != nil {
			return columnValue{}, err
		}
		if !sub.Done() {
			return columnValue{}, wire.Overflow
		}
		return columnValue{length: lengthPresent, date: d}, nil
	}
	writeTable[rectype.Date] = func(c *wire.Cursor, cv columnValue) error {
		buf := make([]byte, dt.SizeDateASCII)
		sub := wire.NewCursor(buf)
		if err := dt.WriteDateASCII(sub, cv.date); err != nil {
			return err
		}
		return c.WriteBytes(buf)
	}
	sizeTable[rectype.Date] = func(columnValue) int { return wire.SizeBytes(make([]byte, dt.SizeDateASCII)) }
}

func registerTime() {
	getTable[rectype.Time] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		return cv.tm, nil
	}
	setTable[rectype.Time] = func(r *Record, i int, v any) error {
		tv, ok := v.(dt.Time)
		if !ok {
			return fmt.Errorf("%w: column %q expects dt.Time", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		r.raw[i] = columnValue{length: lengthPresent, tm: tv}
		return nil
	}
	clearTable[rectype.Time] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[rectype.Time] = func(c *wire.Cursor) (columnValue, error) {
		b, err := c.ReadBytes()
		if err != nil {
			return columnValue{}, err
		}
		sub := wire.NewCursor(b)
		tv, err := dt.ReadTimeASCII(sub)
		if err != nil {
			return columnValue{}, err
		}
		if !sub.Done() {
			return columnValue{}, wire.Overflow
		}
		return columnValue{length: lengthPresent, tm: tv}, nil
	}
	writeTable[rectype.Time] = func(c *wire.Cursor, cv columnValue) error {
		buf := make([]byte, dt.SizeTimeASCII)
		sub := wire.NewCursor(buf)
		if err := dt.WriteTimeASCII(sub, cv.tm); err != nil {
			return err
		}
		return c.WriteBytes(buf)
	}
	sizeTable[rectype.Time] = func(columnValue) int { return wire.SizeBytes(make([]byte, dt.SizeTimeASCII)) }
}

func registerDateTime() {
	getTable[rectype.DateTimeType] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		return cv.dtm, nil
	}
	setTable[rectype.DateTimeType] = func(r *Record, i int, v any) error {
		d, ok := v.(dt.DateTime)
		if !ok {
			return fmt.Errorf("%w: column %q expects dt.DateTime", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		r.raw[i] = columnValue{length: lengthPresent, dtm: d}
		return nil
	}
	clearTable[rectype.DateTimeType] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[rectype.DateTimeType] = func(c *wire.Cursor) (columnValue, error) {
		b, err := c.ReadBytes()
		if err != nil {
			return columnValue{}, err
		}
		sub := wire.NewCursor(b)
		d, err := dt.ReadDateTimeASCII(sub)
		if err != nil {
			return columnValue{}, err
		}
		if !sub.Done() {
			return columnValue{}, wire.Overflow
		}
		return columnValue{length: lengthPresent, dtm: d}, nil
	}
	writeTable[rectype.DateTimeType] = func(c *wire.Cursor, cv columnValue) error {
		buf := make([]byte, dt.SizeDateTimeASCII)
		sub := wire.NewCursor(buf)
		if err := dt.WriteDateTimeASCII(sub, cv.dtm); err != nil {
			return err
		}
		return c.WriteBytes(buf)
	}
	sizeTable[rectype.DateTimeType] = func(columnValue) int {
		return wire.SizeBytes(make([]byte, dt.SizeDateTimeASCII))
	}
}

func registerTimestamp() {
	getTable[rectype.Timestamp] = func(r *Record, i int) (any, error) {
		cv := &r.raw[i]
		if cv.length == lengthNull {
			return nil, nil
		}
		return cv.ts, nil
	}
	setTable[rectype.Timestamp] = func(r *Record, i int, v any) error {
		n, ok := toInt64(v)
		if !ok {
			return fmt.Errorf("%w: column %q expects an integer epoch-ms", ErrTypeMismatch, r.typ.Column(i).Name())
		}
		if n < dt.MinEpochMs || n > dt.MaxEpochMs {
			return fmt.Errorf("%w: column %q timestamp %d out of range", ErrRange, r.typ.Column(i).Name(), n)
		}
		r.raw[i] = columnValue{length: lengthPresent, ts: n}
		return nil
	}
	clearTable[rectype.Timestamp] = func(cv *columnValue) { *cv = columnValue{} }
	readTable[rectype.Timestamp] = func(c *wire.Cursor) (columnValue, error) {
		n, err := c.ReadVarint64()
		if err != nil {
			return columnValue{}, err
		}
		return columnValue{length: lengthPresent, ts: n}, nil
	}
	writeTable[rectype.Timestamp] = func(c *wire.Cursor, cv columnValue) error { return c.WriteVarint64(cv.ts) }
	sizeTable[rectype.Timestamp] = func(cv columnValue) int { return wire.SizeVarint64(cv.ts) }
}
