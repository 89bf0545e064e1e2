package dt

import "github.com/solidcoredata/reccodec/wire"

// WriteDateASCII writes "YYYY-MM-DD" (10 bytes) using c's raw byte/digit
// primitives; c must already be positioned past any length prefix.
func WriteDateASCII(c *wire.Cursor, d Date) error {
	year, month, day, _, _ := d.OrDefault().Unpack()
	if err := c.WriteASCIIDigits(year, 4); err != nil {
		return err
	}
	if err := c.WriteByte('-'); err != nil {
		return err
	}
	if err := c.WriteASCIIDigits(month, 2); err != nil {
		return err
	}
	if err := c.WriteByte('-'); err != nil {
		return err
	}
	return c.WriteASCIIDigits(day, 2)
}

// SizeDateASCII is the fixed encoded length of a date's ASCII form.
const SizeDateASCII = 10

// ReadDateASCII parses "YYYY-MM-DD" from c.
func ReadDateASCII(c *wire.Cursor) (Date, error) {
	year, err := c.ReadASCIIDigits(4, 4, MinYear, MaxYear)
	if err != nil {
		return 0, err
	}
	if err := c.ExpectByte('-'); err != nil {
		return 0, err
	}
	month, err := c.ReadASCIIDigits(2, 2, 1, 12)
	if err != nil {
		return 0, err
	}
	if err := c.ExpectByte('-'); err != nil {
		return 0, err
	}
	day, err := c.ReadASCIIDigits(2, 2, 1, 31)
	if err != nil {
		return 0, err
	}
	return PackDate(year, month, day)
}

// SizeTimeASCII is the fixed encoded length of a time's ASCII form,
// "HH:MM:SS.mmm".
const SizeTimeASCII = 12

// WriteTimeASCII writes "HH:MM:SS.mmm" (12 bytes).
func WriteTimeASCII(c *wire.Cursor, t Time) error {
	hour, minute, second, ms := t.Unpack()
	if err := c.WriteASCIIDigits(hour, 2); err != nil {
		return err
	}
	if err := c.WriteByte(':'); err != nil {
		return err
	}
	if err := c.WriteASCIIDigits(minute, 2); err != nil {
		return err
	}
	if err := c.WriteByte(':'); err != nil {
		return err
	}
	if err := c.WriteASCIIDigits(second, 2); err != nil {
		return err
	}
	if err := c.WriteByte('.'); err != nil {
		return err
	}
	return c.WriteASCIIDigits(ms, 3)
}

// ReadTimeASCII parses "HH:MM:SS.mmm" from c.
func ReadTimeASCII(c *wire.Cursor) (Time, error) {
	hour, err := c.ReadASCIIDigits(2, 2, 0, 23)
	if err != nil {
		return 0, err
	}
	if err := c.ExpectByte(':'); err != nil {
		return 0, err
	}
	minute, err := c.ReadASCIIDigits(2, 2, 0, 59)
	if err != nil {
		return 0, err
	}
	if err := c.ExpectByte(':'); err != nil {
		return 0, err
	}
	second, err := c.ReadASCIIDigits(2, 2, 0, 59)
	if err != nil {
		return 0, err
	}
	if err := c.ExpectByte('.'); err != nil {
		return 0, err
	}
	ms, err := c.ReadASCIIDigits(3, 3, 0, 999)
	if err != nil {
		return 0, err
	}
	return PackTime(hour, minute, second, ms)
}

// SizeDateTimeASCII is the fixed encoded length of a datetime's ASCII form,
// "YYYY-MM-DD HH:MM:SS.mmm".
const SizeDateTimeASCII = SizeDateASCII + 1 + SizeTimeASCII

// WriteDateTimeASCII writes "YYYY-MM-DD HH:MM:SS.mmm" (23 bytes). The
// time-of-day portion is always emitted; §3's bracketed optional suffix
// describes what a writer MAY omit, and this codec always writes the full
// form so that decode is unambiguous without schema context.
func WriteDateTimeASCII(c *wire.Cursor, v DateTime) error {
	v = v.OrDefault()
	year, month, day, hour, minute, second, ms, _, _ := v.Unpack()
	d, err := PackDate(year, month, day)
	if err != nil {
		return err
	}
	if err := WriteDateASCII(c, d); err != nil {
		return err
	}
	if err := c.WriteByte(' '); err != nil {
		return err
	}
	t, err := PackTime(hour, minute, second, ms)
	if err != nil {
		return err
	}
	return WriteTimeASCII(c, t)
}

// ReadDateTimeASCII parses "YYYY-MM-DD" optionally followed by " HH:MM:SS"
// and an optional ".mmm" suffix.
func ReadDateTimeASCII(c *wire.Cursor) (DateTime, error) {
	d, err := ReadDateASCII(c)
	if err != nil {
		return 0, err
	}
	year, month, day, _, _ := d.Unpack()
	if c.Done() || c.Buf[c.Pos] != ' ' {
		return PackDateTime(year, month, day, 0, 0, 0, 0)
	}
	if err := c.ExpectByte(' '); err != nil {
		return 0, err
	}
	hour, err := c.ReadASCIIDigits(2, 2, 0, 23)
	if err != nil {
		return 0, err
	}
	if err := c.ExpectByte(':'); err != nil {
		return 0, err
	}
	minute, err := c.ReadASCIIDigits(2, 2, 0, 59)
	if err != nil {
		return 0, err
	}
	if err := c.ExpectByte(':'); err != nil {
		return 0, err
	}
	second, err := c.ReadASCIIDigits(2, 2, 0, 59)
	if err != nil {
		return 0, err
	}
	ms := 0
	if !c.Done() && c.Buf[c.Pos] == '.' {
		if err := c.ExpectByte('.'); err != nil {
			return 0, err
		}
		ms, err = c.ReadASCIIDigits(3, 3, 0, 999)
		if err != nil {
			return 0, err
		}
	}
	return PackDateTime(year, month, day, hour, minute, second, ms)
}
