package api

import (
	"fmt"
	"strconv"
	"time"
)

// Response is the Al Adhan envelope for single-day conversions (gToH).
type Response struct {
	Code   int      `json:"code"`
	Status string   `json:"status"`
	Data   DateInfo `json:"data"`
}

// CalendarResponse is the Al Adhan envelope for month conversions
// (gToHCalendar). Data holds one record per Gregorian day of the month.
type CalendarResponse struct {
	Code   int        `json:"code"`
	Status string     `json:"status"`
	Data   []DateInfo `json:"data"`
}

// DateInfo pairs a Gregorian day with its Hijri date.
type DateInfo struct {
	Hijri     HijriDate     `json:"hijri"`
	Gregorian GregorianDate `json:"gregorian"`
}

// HijriDate represents the Hijri (Islamic) date from the API response.
type HijriDate struct {
	Date        string           `json:"date"` // e.g. "27-09-1447"
	Day         string           `json:"day"`
	Month       HijriMonth       `json:"month"`
	Year        string           `json:"year"`
	Designation HijriDesignation `json:"designation"`
	Holidays    []string         `json:"holidays,omitempty"`
}

// HijriMonth represents the month in the Hijri calendar.
type HijriMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"` // English name, e.g. "Ramaḍān"
	Ar     string `json:"ar"` // Arabic name
	Days   int    `json:"days,omitempty"`
}

// HijriDesignation contains the calendar designation labels.
type HijriDesignation struct {
	Abbreviated string `json:"abbreviated"` // "AH"
	Expanded    string `json:"expanded"`    // "Anno Hegirae"
}

// Format returns the Hijri date as "DD MonthName YYYY AH".
func (h HijriDate) Format() string {
	if h.Day == "" || h.Month.En == "" || h.Year == "" {
		return ""
	}
	abbr := h.Designation.Abbreviated
	if abbr == "" {
		abbr = "AH"
	}
	return h.Day + " " + h.Month.En + " " + h.Year + " " + abbr
}

// Numbers parses Day and Year.
func (h HijriDate) Numbers() (day, year int, err error) {
	day, err = strconv.Atoi(h.Day)
	if err != nil {
		return 0, 0, fmt.Errorf("bad hijri day %q: %w", h.Day, err)
	}
	year, err = strconv.Atoi(h.Year)
	if err != nil {
		return 0, 0, fmt.Errorf("bad hijri year %q: %w", h.Year, err)
	}
	return day, year, nil
}

// GregorianDate represents the Gregorian date from the API response.
type GregorianDate struct {
	Date    string         `json:"date"` // e.g. "16-03-2026"
	Day     string         `json:"day"`
	Weekday GregorianDay   `json:"weekday"`
	Month   GregorianMonth `json:"month"`
	Year    string         `json:"year"`
}

// GregorianDay contains the weekday name.
type GregorianDay struct {
	En string `json:"en"` // e.g. "Monday"
}

// GregorianMonth contains the month details.
type GregorianMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"` // e.g. "March"
}

// Time parses Date ("DD-MM-YYYY") as midnight UTC.
func (g GregorianDate) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, g.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad gregorian date %q: %w", g.Date, err)
	}
	return t, nil
}
