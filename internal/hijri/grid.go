package hijri

import (
	"errors"
	"fmt"
	"time"
)

// maxMonthDays is the longest possible Hijri month. A boundary walk that
// stays inside one month for more steps than this has a broken converter.
const maxMonthDays = 30

var errNoBoundary = errors.New("month boundary not found within 30 days")

// DayCell is one day of a MonthGrid.
type DayCell struct {
	HijriDay  int       `json:"hijri_day"`
	Hijri     Date      `json:"hijri"`
	Month     Month     `json:"month"`
	Gregorian time.Time `json:"gregorian"`
	IsToday   bool      `json:"is_today"`
	Event     *Event    `json:"event,omitempty"`
}

// MonthGrid is a Hijri month laid out on Sunday-first weeks.
//
// Days starts with FirstDay.Weekday() nil padding cells, followed by one cell
// per day of the month in ascending Gregorian order.
type MonthGrid struct {
	MonthName string     `json:"month_name"`
	Year      int        `json:"year"`
	Days      []*DayCell `json:"days"`
	FirstDay  time.Time  `json:"first_day"`
	LastDay   time.Time  `json:"last_day"`
}

// Month resolves the grid's month name to its canonical month.
func (g *MonthGrid) Month() Month {
	return ParseMonth(g.MonthName)
}

// Title returns "MonthName YYYY", preferring the canonical spelling.
func (g *MonthGrid) Title() string {
	return Date{MonthName: g.MonthName}.DisplayMonth() + " " + fmt.Sprint(g.Year)
}

// Padding is the number of leading blank cells.
func (g *MonthGrid) Padding() int {
	n := 0
	for _, c := range g.Days {
		if c != nil {
			break
		}
		n++
	}
	return n
}

// Len is the number of days in the month.
func (g *MonthGrid) Len() int {
	return len(g.Days) - g.Padding()
}

// Cells returns the non-blank cells in order.
func (g *MonthGrid) Cells() []*DayCell {
	return g.Days[g.Padding():]
}

// Today returns the cell marked as today, or nil.
func (g *MonthGrid) Today() *DayCell {
	for _, c := range g.Days {
		if c != nil && c.IsToday {
			return c
		}
	}
	return nil
}

// Events returns the cells that carry an event.
func (g *MonthGrid) Events() []*DayCell {
	var out []*DayCell
	for _, c := range g.Days {
		if c != nil && c.Event != nil {
			out = append(out, c)
		}
	}
	return out
}

// Weeks splits Days into rows of seven, padding the final row with nils.
func (g *MonthGrid) Weeks() [][]*DayCell {
	var weeks [][]*DayCell
	for i := 0; i < len(g.Days); i += 7 {
		row := make([]*DayCell, 7)
		copy(row, g.Days[i:min(i+7, len(g.Days))])
		weeks = append(weeks, row)
	}
	return weeks
}

// Calendar builds month grids from a Converter.
type Calendar struct {
	conv Converter

	// Now reports the current time and decides which cell is today.
	// Defaults to time.Now.
	Now func() time.Time
}

// NewCalendar returns a Calendar backed by conv.
func NewCalendar(conv Converter) *Calendar {
	return &Calendar{conv: conv, Now: time.Now}
}

// Today converts the current date.
func (c *Calendar) Today() (Date, time.Time, error) {
	now := civil(c.now())
	d, err := c.convertOne(now)
	return d, now, err
}

// Convert converts a single date, validating the converter's answer.
func (c *Calendar) Convert(date time.Time) (Date, error) {
	return c.convertOne(civil(date))
}

// MonthGrid builds the grid for the Hijri month containing ref.
//
// Month start and end are found by stepping one day at a time away from ref
// until the converter reports a different month name. Any converter failure
// aborts the whole build with an *UnavailableError; no partial grid is
// returned.
func (c *Calendar) MonthGrid(ref time.Time) (*MonthGrid, error) {
	ref = civil(ref)

	target, err := c.convert(ref)
	if err != nil {
		return nil, err
	}

	first, err := c.walkEdge(ref, target.MonthName, -1)
	if err != nil {
		return nil, err
	}
	last, err := c.walkEdge(ref, target.MonthName, 1)
	if err != nil {
		return nil, err
	}

	today := civil(c.now().In(ref.Location()))

	days := make([]*DayCell, int(first.Weekday()), int(first.Weekday())+maxMonthDays)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		h, err := c.convert(d)
		if err != nil {
			return nil, err
		}
		m := h.Month()
		days = append(days, &DayCell{
			HijriDay:  h.Day,
			Hijri:     h,
			Month:     m,
			Gregorian: d,
			IsToday:   SameDay(d, today),
			Event:     LookupEvent(m, h.Day),
		})
	}

	return &MonthGrid{
		MonthName: target.MonthName,
		Year:      target.Year,
		Days:      days,
		FirstDay:  first,
		LastDay:   last,
	}, nil
}

// walkEdge walks from start in direction dir (+1 or -1) and returns the last
// date whose month name is still monthName.
func (c *Calendar) walkEdge(start time.Time, monthName string, dir int) (time.Time, error) {
	edge := start
	for i := 0; i < maxMonthDays; i++ {
		next := edge.AddDate(0, 0, dir)
		h, err := c.convert(next)
		if err != nil {
			return time.Time{}, err
		}
		if h.MonthName != monthName {
			return edge, nil
		}
		edge = next
	}
	return time.Time{}, &UnavailableError{Date: edge, Err: errNoBoundary}
}

func (c *Calendar) convertOne(date time.Time) (Date, error) {
	if dc, ok := c.conv.(DayConverter); ok {
		h, err := dc.ConvertDay(date)
		return check(date, h, err)
	}
	return c.convert(date)
}

func (c *Calendar) convert(date time.Time) (Date, error) {
	if c.conv == nil {
		return Date{}, &UnavailableError{Date: date, Err: errors.New("no converter configured")}
	}
	h, err := c.conv.Convert(date)
	return check(date, h, err)
}

// check wraps converter failures and rejects answers no grid can use.
func check(date time.Time, h Date, err error) (Date, error) {
	if err != nil {
		var ue *UnavailableError
		if errors.As(err, &ue) {
			return Date{}, err
		}
		return Date{}, &UnavailableError{Date: date, Err: err}
	}
	if h.MonthName == "" || h.Day < 1 || h.Day > maxMonthDays {
		return Date{}, &UnavailableError{Date: date, Err: fmt.Errorf("unparseable hijri date %+v", h)}
	}
	return h, nil
}

func (c *Calendar) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// PreviousMonth returns a date inside the Hijri month before g.
func PreviousMonth(g *MonthGrid) time.Time {
	return g.FirstDay.AddDate(0, 0, -1)
}

// NextMonth returns a date inside the Hijri month after g.
func NextMonth(g *MonthGrid) time.Time {
	return g.LastDay.AddDate(0, 0, 1)
}

// Navigate returns the grid n months away from g: n < 0 walks backward,
// n > 0 forward, n == 0 returns g itself.
func (c *Calendar) Navigate(g *MonthGrid, n int) (*MonthGrid, error) {
	var err error
	for ; n < 0 && err == nil; n++ {
		g, err = c.MonthGrid(PreviousMonth(g))
	}
	for ; n > 0 && err == nil; n-- {
		g, err = c.MonthGrid(NextMonth(g))
	}
	return g, err
}
