package hijri

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Format constants for the status-line display modes.
const (
	FormatDate     = "date"      // 27 Ramadan 1447 AH
	FormatShort    = "short"     // 27/09/1447
	FormatDayMonth = "day-month" // 27 Ramadan
	FormatEvent    = "event"     // Laylat al-Qadr, or 27 Ramadan when no event
	FormatFull     = "full"      // Mon 27 Ramadan 1447 AH · Laylat al-Qadr
)

// FormatModes lists the built-in modes in help order.
var FormatModes = []string{FormatDate, FormatShort, FormatDayMonth, FormatEvent, FormatFull}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Day         int    // Hijri day of month
	Month       string // Month name, canonical when recognized
	MonthNumber int    // 1-12, or -1 when the name is not recognized
	Year        int    // Hijri year
	Weekday     string // Gregorian weekday, e.g. "Monday"
	Gregorian   string // Gregorian date, e.g. "2026-03-16"
	Event       string // Event name, empty when none
}

// FormatOutput renders the Hijri date d of Gregorian day greg according to
// mode. A mode containing "{{" is a Go template over FormatData, e.g.
// "{{.Day}} {{.Month}}{{if .Event}} ({{.Event}}){{end}}".
func FormatOutput(d Date, greg time.Time, mode string) string {
	m := d.Month()
	event := ""
	if e := LookupEvent(m, d.Day); e != nil {
		event = e.Name
	}

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Day:         d.Day,
			Month:       d.DisplayMonth(),
			MonthNumber: int(m),
			Year:        d.Year,
			Weekday:     greg.Weekday().String(),
			Gregorian:   greg.Format(dateLayout),
			Event:       event,
		})
	}

	dayMonth := fmt.Sprintf("%d %s", d.Day, d.DisplayMonth())

	switch mode {
	case FormatShort:
		if !m.Valid() {
			return fmt.Sprintf("%02d %s %d", d.Day, d.MonthName, d.Year)
		}
		return fmt.Sprintf("%02d/%02d/%d", d.Day, int(m), d.Year)
	case FormatDayMonth:
		return dayMonth
	case FormatEvent:
		if event != "" {
			return event
		}
		return dayMonth
	case FormatFull:
		out := greg.Format("Mon") + " " + d.String()
		if event != "" {
			out += " · " + event
		}
		return out
	default:
		return d.String()
	}
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
