package hijri

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Date is a Hijri date as reported by a Converter for one Gregorian day.
// MonthName is kept exactly as the converter spelled it; month boundaries are
// detected by comparing these names.
type Date struct {
	Day       int    `json:"day"`
	MonthName string `json:"month"`
	Year      int    `json:"year"`
}

// Month resolves MonthName to its canonical month.
func (d Date) Month() Month {
	return ParseMonth(d.MonthName)
}

// DisplayMonth returns the canonical month name when the converter's
// spelling is recognized, and the converter's spelling otherwise.
func (d Date) DisplayMonth() string {
	if m := d.Month(); m.Valid() {
		return m.String()
	}
	return d.MonthName
}

// String formats the date as "DD MonthName YYYY AH".
func (d Date) String() string {
	if d.MonthName == "" {
		return ""
	}
	return strconv.Itoa(d.Day) + " " + d.DisplayMonth() + " " + strconv.Itoa(d.Year) + " AH"
}

// Converter maps a Gregorian civil date to its Hijri date. Only the year,
// month and day of the argument are meaningful. Implementations must be
// deterministic for a given civil date.
type Converter interface {
	Convert(date time.Time) (Date, error)
}

// DayConverter is implemented by converters with a cheaper path for one
// isolated date than for a run of consecutive dates. Calendar uses it for
// single conversions and Convert for grids.
type DayConverter interface {
	ConvertDay(date time.Time) (Date, error)
}

// ConverterFunc adapts an ordinary function to the Converter interface.
type ConverterFunc func(date time.Time) (Date, error)

// Convert calls f(date).
func (f ConverterFunc) Convert(date time.Time) (Date, error) {
	return f(date)
}

// ErrUnavailable matches every UnavailableError via errors.Is.
var ErrUnavailable = errors.New("hijri calendar unavailable")

// UnavailableError reports that the converter could not resolve a Hijri date
// for some Gregorian date, so no grid can be built.
type UnavailableError struct {
	Date time.Time
	Err  error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("hijri calendar unavailable for %s", e.Date.Format(dateLayout))
	}
	return fmt.Sprintf("hijri calendar unavailable for %s: %v", e.Date.Format(dateLayout), e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnavailable) true for any UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

const dateLayout = "2006-01-02"

// ParseDate parses a civil date in YYYY-MM-DD form in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}

// civil moves t to noon of its own calendar day. Midnight does not exist on
// days where a zone starts DST at 00:00, and stepping from it with AddDate
// lands on the previous date; noon is always present.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same civil date, each read in
// its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
