// Package export writes Hijri event days as an iCalendar feed.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
	"github.com/smokyabdulrahman/hijri-cal/internal/log"
)

// ProductID identifies the generator in the PRODID property.
const ProductID = "-//hijri-cal//Hijri Events//EN"

// Occurrence is one catalog event on a concrete Gregorian day.
type Occurrence struct {
	Event     hijri.Event `json:"event"`
	Hijri     hijri.Date  `json:"hijri"`
	Gregorian time.Time   `json:"gregorian"`
}

// UID is stable across exports so calendar clients update instead of
// duplicating entries.
func (o Occurrence) UID() string {
	return fmt.Sprintf("%d-%02d-%02d@hijri-cal", o.Hijri.Year, int(o.Event.Month), o.Event.Day)
}

// Collect walks months Hijri months starting with the one containing from
// and returns every event day in order. Any month that cannot be built
// aborts the walk.
func Collect(cal *hijri.Calendar, from time.Time, months int) ([]Occurrence, error) {
	if months < 1 {
		return nil, fmt.Errorf("months must be at least 1, got %d", months)
	}

	g, err := cal.MonthGrid(from)
	if err != nil {
		return nil, err
	}

	var out []Occurrence
	for i := 0; ; i++ {
		for _, c := range g.Events() {
			out = append(out, Occurrence{Event: *c.Event, Hijri: c.Hijri, Gregorian: c.Gregorian})
		}
		log.Debug("export month collected", "month", g.Title(), "events", len(g.Events()))
		if i == months-1 {
			break
		}
		if g, err = cal.Navigate(g, 1); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Calendar builds an all-day VEVENT per occurrence. stamp is used for
// DTSTAMP on every event.
func Calendar(occs []Occurrence, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName("Hijri events")

	for _, o := range occs {
		ev := cal.AddEvent(o.UID())
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(o.Gregorian)
		ev.SetAllDayEndAt(o.Gregorian.AddDate(0, 0, 1))
		ev.SetSummary(o.Event.Name)
		ev.SetDescription(o.Hijri.String() + " (" + o.Event.Description + ")")
	}
	return cal
}

// Write serializes occs to w.
func Write(w io.Writer, occs []Occurrence, stamp time.Time) error {
	if _, err := io.Copy(w, strings.NewReader(Calendar(occs, stamp).Serialize())); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}
