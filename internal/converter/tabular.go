package converter

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
)

// civilEpoch is the Julian Day Number of 1 Muharram 1 AH in the civil
// (Friday epoch) reckoning: Julian 16 July 622, proleptic Gregorian 19 July 622.
const civilEpoch = 1948440

// Tabular is the arithmetical Islamic calendar: a 30-year cycle with 11 leap
// years, months alternating 30 and 29 days, and Dhul-Hijjah taking the leap
// day. It needs no network and always agrees with itself, but may differ
// from Umm al-Qura or a sighted calendar by a day or two.
type Tabular struct{}

// Convert implements hijri.Converter.
func (Tabular) Convert(date time.Time) (hijri.Date, error) {
	y, m, d := date.Date()
	jdn := gregorianToJDN(y, int(m), d)
	if jdn < civilEpoch {
		return hijri.Date{}, fmt.Errorf("%s is before the Hijri epoch", date.Format("2006-01-02"))
	}

	hy, hm, hd := jdnToHijri(jdn)
	return hijri.Date{Day: hd, MonthName: hijri.Month(hm).String(), Year: hy}, nil
}

// ToGregorian returns the Gregorian date, at noon in loc, of a tabular
// Hijri date. Month must be 1-12 and day 1-30.
func (Tabular) ToGregorian(year int, month hijri.Month, day int, loc *time.Location) (time.Time, error) {
	if year < 1 || !month.Valid() || day < 1 || day > 30 {
		return time.Time{}, fmt.Errorf("invalid hijri date %d-%d-%d", year, int(month), day)
	}
	if day > monthLength(year, int(month)) {
		return time.Time{}, fmt.Errorf("%s %d has only %d days", month, year, monthLength(year, int(month)))
	}
	if loc == nil {
		loc = time.Local
	}
	y, m, d := jdnToGregorian(hijriToJDN(year, int(month), day))
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, loc), nil
}

func hijriToJDN(y, m, d int) int {
	return d + ceilDiv(59*(m-1), 2) + (y-1)*354 + floorDiv(3+11*y, 30) + civilEpoch - 1
}

func jdnToHijri(jdn int) (y, m, d int) {
	y = floorDiv(30*(jdn-civilEpoch)+10646, 10631)
	m = min(12, ceilDiv(2*(jdn-(29+hijriToJDN(y, 1, 1))), 59)+1)
	d = jdn - hijriToJDN(y, m, 1) + 1
	return y, m, d
}

// monthLength is 30 for odd months, 29 for even ones, and 30 for
// Dhul-Hijjah in a leap year of the cycle.
func monthLength(y, m int) int {
	if m == 12 {
		return hijriToJDN(y+1, 1, 1) - hijriToJDN(y, 12, 1)
	}
	return hijriToJDN(y, m+1, 1) - hijriToJDN(y, m, 1)
}

func gregorianToJDN(y, m, d int) int {
	a := (14 - m) / 12
	yy := y + 4800 - a
	mm := m + 12*a - 3
	return d + (153*mm+2)/5 + 365*yy + floorDiv(yy, 4) - floorDiv(yy, 100) + floorDiv(yy, 400) - 32045
}

func jdnToGregorian(jdn int) (y, m, d int) {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	dd := (4*c + 3) / 1461
	e := c - 1461*dd/4
	mm := (5*e + 2) / 153
	d = e - (153*mm+2)/5 + 1
	m = mm + 3 - 12*(mm/10)
	y = 100*b + dd - 4800 + mm/10
	return y, m, d
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
