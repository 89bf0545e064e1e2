// Package dt implements the bit-packed date, time, and datetime
// representations used by the record codec's date/time scalar types, plus
// conversion to and from epoch milliseconds.
//
// Values are packed into fixed-width integers with a fixed bit layout; the
// layout and shift order are part of the wire contract, not an
// implementation detail, so they are never changed independently of the
// format this package's callers serialize.
package dt

import "errors"

// MinYear and MaxYear bound the calendar range representable on the wire.
const (
	MinYear = 1000
	MaxYear = 2900
)

// ErrOutOfRange is returned for any calendar or clock component outside its
// legal domain: a year outside [MinYear, MaxYear], a day past the end of its
// month, an hour/minute/second/millisecond outside its field width.
var ErrOutOfRange = errors.New("dt: value out of range")

// Date bit layout, most significant field first: year-1900 (11 bits) |
// month (4 bits) | day (5 bits) | day-of-year (9 bits) | day-of-week (3
// bits). Total 32 bits.
type Date uint32

const (
	dateDowShift, dateDowBits = 0, 3
	dateDoyShift, dateDoyBits = 3, 9
	dateDayShift, dateDayBits = 12, 5
	dateMonShift, dateMonBits = 17, 4
	dateYrShift, dateYrBits   = 21, 11
)

// Time bit layout: hour (5 bits) | minute (6 bits) | second (6 bits) |
// millisecond (10 bits). Total 27 of 32 bits used.
type Time uint32

const (
	timeMsShift, timeMsBits   = 0, 10
	timeSecShift, timeSecBits = 10, 6
	timeMinShift, timeMinBits = 16, 6
	timeHrShift, timeHrBits   = 22, 5
)

// DateTime bit layout: year-1900 (11) | month (4) | day (5) | hour (5) |
// minute (6) | second (6) | millisecond (10) | day-of-year (9) |
// day-of-week (3). Total 59 of 64 bits used.
type DateTime uint64

const (
	dtDowShift, dtDowBits = 0, 3
	dtDoyShift, dtDoyBits = 3, 9
	dtMsShift, dtMsBits   = 12, 10
	dtSecShift, dtSecBits = 22, 6
	dtMinShift, dtMinBits = 28, 6
	dtHrShift, dtHrBits   = 34, 5
	dtDayShift, dtDayBits = 39, 5
	dtMonShift, dtMonBits = 44, 4
	dtYrShift, dtYrBits   = 48, 11
)

func mask(bits uint) uint64 { return (uint64(1) << bits) - 1 }

func packField(dst *uint64, shift, bits uint, value int) {
	*dst |= (uint64(value) & mask(bits)) << shift
}

func unpackField(src uint64, shift, bits uint) int {
	return int((src >> shift) & mask(bits))
}

// unpackSignedField reads a two's-complement field; the year-1900 field is
// negative for years before 1900.
func unpackSignedField(src uint64, shift, bits uint) int {
	v := unpackField(src, shift, bits)
	if v >= 1<<(bits-1) {
		v -= 1 << bits
	}
	return v
}

// DATEDEFAULT is the bit pattern for 1000-01-01, substituted for a raw zero
// date field before wire formatting.
var DATEDEFAULT = mustPackDate(MinYear, 1, 1)

// DATETIMEDEFAULT is the bit pattern for 1000-01-01T00:00:00.000.
var DATETIMEDEFAULT = mustPackDateTime(MinYear, 1, 1, 0, 0, 0, 0)

func mustPackDate(year, month, day int) Date {
	d, err := PackDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func mustPackDateTime(year, month, day, hour, min, sec, ms int) DateTime {
	d, err := PackDateTime(year, month, day, hour, min, sec, ms)
	if err != nil {
		panic(err)
	}
	return d
}

var daysInMonthTable = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether year is a leap year under the standard Gregorian
// rule.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) int {
	if month == 2 && IsLeap(year) {
		return 29
	}
	return daysInMonthTable[month]
}

// ComputeDays validates (year, month, day) and returns its day-of-year
// (1-based) and day-of-week (0 = Sunday .. 6 = Saturday).
func ComputeDays(year, month, day int) (dayOfYear, dayOfWeek int, err error) {
	if year < MinYear || year > MaxYear {
		return 0, 0, ErrOutOfRange
	}
	if month < 1 || month > 12 {
		return 0, 0, ErrOutOfRange
	}
	if day < 1 || day > daysInMonth(year, month) {
		return 0, 0, ErrOutOfRange
	}
	doy := day
	for m := 1; m < month; m++ {
		doy += daysInMonth(year, m)
	}
	z := daysFromCivil(year, month, day)
	dow := int(((z%7)+7+4)%7 + 7)
	dow %= 7
	return doy, dow, nil
}

// daysFromCivil is Howard Hinnant's days-from-civil algorithm: the number
// of days relative to 1970-01-01, treating March as month zero of a shifted
// year so that the leap day falls at the end of the shifted year.
func daysFromCivil(y, m, d int) int64 {
	yy := int64(y)
	if m <= 2 {
		yy--
	}
	era := yy
	if era < 0 {
		era -= 399
	}
	era /= 400
	yoe := yy - era*400 // [0, 399]
	var mp int64
	if int64(m) > 2 {
		mp = int64(m) - 3
	} else {
		mp = int64(m) + 9
	}
	doy := (153*mp+2)/5 + int64(d) - 1 // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(z int64) (y, m, d int) {
	z += 719468
	era := z
	if era < 0 {
		era -= 146096
	}
	era /= 146097
	doe := z - era*146097                                     // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365     // [0, 399]
	yy := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	dd := doy - (153*mp+2)/5 + 1             // [1, 31]
	var mm int64
	if mp < 10 {
		mm = mp + 3
	} else {
		mm = mp - 9
	}
	if mm <= 2 {
		yy++
	}
	return int(yy), int(mm), int(dd)
}

// PackDate validates and bit-packs a calendar date.
func PackDate(year, month, day int) (Date, error) {
	doy, dow, err := ComputeDays(year, month, day)
	if err != nil {
		return 0, err
	}
	var v uint64
	packField(&v, dateYrShift, dateYrBits, year-1900)
	packField(&v, dateMonShift, dateMonBits, month)
	packField(&v, dateDayShift, dateDayBits, day)
	packField(&v, dateDoyShift, dateDoyBits, doy)
	packField(&v, dateDowShift, dateDowBits, dow)
	return Date(v), nil
}

// Unpack returns the year, month, day, day-of-year, and day-of-week packed
// into d.
func (d Date) Unpack() (year, month, day, dayOfYear, dayOfWeek int) {
	v := uint64(d)
	year = unpackSignedField(v, dateYrShift, dateYrBits) + 1900
	month = unpackField(v, dateMonShift, dateMonBits)
	day = unpackField(v, dateDayShift, dateDayBits)
	dayOfYear = unpackField(v, dateDoyShift, dateDoyBits)
	dayOfWeek = unpackField(v, dateDowShift, dateDowBits)
	return
}

// OrDefault substitutes DATEDEFAULT when d is the zero value.
func (d Date) OrDefault() Date {
	if d == 0 {
		return DATEDEFAULT
	}
	return d
}

// PackTime validates and bit-packs a time of day.
func PackTime(hour, minute, second, ms int) (Time, error) {
	if hour < 0 || hour > 23 {
		return 0, ErrOutOfRange
	}
	if minute < 0 || minute > 59 {
		return 0, ErrOutOfRange
	}
	if second < 0 || second > 59 {
		return 0, ErrOutOfRange
	}
	if ms < 0 || ms > 999 {
		return 0, ErrOutOfRange
	}
	var v uint64
	packField(&v, timeHrShift, timeHrBits, hour)
	packField(&v, timeMinShift, timeMinBits, minute)
	packField(&v, timeSecShift, timeSecBits, second)
	packField(&v, timeMsShift, timeMsBits, ms)
	return Time(v), nil
}

// Unpack returns the hour, minute, second, and millisecond packed into t.
func (t Time) Unpack() (hour, minute, second, ms int) {
	v := uint64(t)
	hour = unpackField(v, timeHrShift, timeHrBits)
	minute = unpackField(v, timeMinShift, timeMinBits)
	second = unpackField(v, timeSecShift, timeSecBits)
	ms = unpackField(v, timeMsShift, timeMsBits)
	return
}

// PackDateTime validates and bit-packs a date and time of day.
func PackDateTime(year, month, day, hour, minute, second, ms int) (DateTime, error) {
	doy, dow, err := ComputeDays(year, month, day)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 || ms < 0 || ms > 999 {
		return 0, ErrOutOfRange
	}
	var v uint64
	packField(&v, dtYrShift, dtYrBits, year-1900)
	packField(&v, dtMonShift, dtMonBits, month)
	packField(&v, dtDayShift, dtDayBits, day)
	packField(&v, dtHrShift, dtHrBits, hour)
	packField(&v, dtMinShift, dtMinBits, minute)
	packField(&v, dtSecShift, dtSecBits, second)
	packField(&v, dtMsShift, dtMsBits, ms)
	packField(&v, dtDoyShift, dtDoyBits, doy)
	packField(&v, dtDowShift, dtDowBits, dow)
	return DateTime(v), nil
}

// Unpack returns every field packed into dt.
func (dtv DateTime) Unpack() (year, month, day, hour, minute, second, ms, dayOfYear, dayOfWeek int) {
	v := uint64(dtv)
	year = unpackSignedField(v, dtYrShift, dtYrBits) + 1900
	month = unpackField(v, dtMonShift, dtMonBits)
	day = unpackField(v, dtDayShift, dtDayBits)
	hour = unpackField(v, dtHrShift, dtHrBits)
	minute = unpackField(v, dtMinShift, dtMinBits)
	second = unpackField(v, dtSecShift, dtSecBits)
	ms = unpackField(v, dtMsShift, dtMsBits)
	dayOfYear = unpackField(v, dtDoyShift, dtDoyBits)
	dayOfWeek = unpackField(v, dtDowShift, dtDowBits)
	return
}

// OrDefault substitutes DATETIMEDEFAULT when dt is the zero value.
func (dtv DateTime) OrDefault() DateTime {
	if dtv == 0 {
		return DATETIMEDEFAULT
	}
	return dtv
}

const msPerDay = 24 * 60 * 60 * 1000

// MinEpochMs and MaxEpochMs bound the timestamp range implied by
// [MinYear, MaxYear].
var (
	MinEpochMs = daysFromCivil(MinYear, 1, 1) * msPerDay
	MaxEpochMs = (daysFromCivil(MaxYear, 12, 31)+1)*msPerDay - 1
)

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// DateTimeToEpochMs converts a packed datetime value to milliseconds since
// the Unix epoch.
func DateTimeToEpochMs(v DateTime) int64 {
	year, month, day, hour, minute, second, ms, _, _ := v.Unpack()
	days := daysFromCivil(year, month, day)
	return days*msPerDay + int64(hour)*3600000 + int64(minute)*60000 + int64(second)*1000 + int64(ms)
}

// EpochMsToDateTime converts milliseconds since the Unix epoch to a packed
// datetime value. It fails if the result falls outside [MinYear, MaxYear].
func EpochMsToDateTime(epochMs int64) (DateTime, error) {
	if epochMs < MinEpochMs || epochMs > MaxEpochMs {
		return 0, ErrOutOfRange
	}
	days := floorDiv(epochMs, msPerDay)
	rem := floorMod(epochMs, msPerDay)
	year, month, day := civilFromDays(days)
	hour := int(rem / 3600000)
	rem %= 3600000
	minute := int(rem / 60000)
	rem %= 60000
	second := int(rem / 1000)
	ms := int(rem % 1000)
	return PackDateTime(year, month, day, hour, minute, second, ms)
}
