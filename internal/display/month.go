package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
)

// cellWidth fits "hh gg" (Hijri day, Gregorian day) plus one space.
const cellWidth = 6

const gridWidth = 7*cellWidth - 1

// WeekStart parses "sunday" or "monday"; anything else is Sunday.
func WeekStart(s string) time.Weekday {
	if strings.EqualFold(s, "monday") {
		return time.Monday
	}
	return time.Sunday
}

// RenderMonth draws g as a 7-column calendar. Each cell shows the Hijri day
// and, dimmed, the Gregorian day of month. Event days are marked and listed
// in a legend below the grid; today is shown in reverse video.
//
// The grid itself is always Sunday-based; weekStart only rotates the columns.
func RenderMonth(g *hijri.MonthGrid, weekStart time.Weekday) string {
	var sb strings.Builder

	sb.WriteString(Bold(center(g.Title()+" AH", gridWidth)) + "\n")
	sb.WriteString(Dim(center(gregorianSpan(g.FirstDay, g.LastDay), gridWidth)) + "\n\n")

	heads := make([]string, 7)
	for i := range heads {
		wd := time.Weekday((int(weekStart) + i) % 7)
		heads[i] = fmt.Sprintf("%-*s", cellWidth-1, wd.String()[:3])
	}
	sb.WriteString(Bold(strings.Join(heads, " ")) + "\n")

	for _, week := range weeks(g, weekStart) {
		cells := make([]string, 7)
		for i, c := range week {
			cells[i] = renderCell(c)
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " ") + "\n")
	}

	if legend := renderLegend(g); legend != "" {
		sb.WriteString("\n" + legend)
	}

	return sb.String()
}

// weeks lays the month's cells on rows of seven starting at weekStart.
func weeks(g *hijri.MonthGrid, weekStart time.Weekday) [][]*hijri.DayCell {
	if weekStart == time.Sunday {
		return g.Weeks()
	}

	cells := g.Cells()
	if len(cells) == 0 {
		return nil
	}
	offset := (int(g.FirstDay.Weekday()) - int(weekStart) + 7) % 7
	row := make([]*hijri.DayCell, 7)
	var out [][]*hijri.DayCell
	pos := offset
	for _, c := range cells {
		row[pos] = c
		pos++
		if pos == 7 {
			out = append(out, row)
			row = make([]*hijri.DayCell, 7)
			pos = 0
		}
	}
	if pos > 0 {
		out = append(out, row)
	}
	return out
}

func renderCell(c *hijri.DayCell) string {
	if c == nil {
		return strings.Repeat(" ", cellWidth-1)
	}

	day := fmt.Sprintf("%2d", c.HijriDay)
	greg := fmt.Sprintf("%-2d", c.Gregorian.Day())

	switch {
	case c.IsToday:
		return Today(day) + " " + Today(greg)
	case c.Event != nil:
		return Yellow(day) + Yellow("*") + Gray(greg)
	default:
		return day + " " + Gray(greg)
	}
}

func renderLegend(g *hijri.MonthGrid) string {
	events := g.Events()
	if len(events) == 0 {
		return ""
	}
	t := NewTable([]string{"Day", "Date", "Event"})
	t.RightAlign(0)
	for _, c := range events {
		t.AddRow([]string{
			fmt.Sprint(c.HijriDay),
			c.Gregorian.Format("Mon 02 Jan"),
			c.Event.Name,
		})
		if c.IsToday {
			t.SetHighlightRow(len(t.rows) - 1)
		}
	}
	return t.Render()
}

// gregorianSpan renders "18 Feb – 19 Mar 2026", folding shared months and years.
func gregorianSpan(first, last time.Time) string {
	switch {
	case first.Year() != last.Year():
		return first.Format("2 Jan 2006") + " – " + last.Format("2 Jan 2006")
	case first.Month() != last.Month():
		return first.Format("2 Jan") + " – " + last.Format("2 Jan 2006")
	default:
		return first.Format("2") + " – " + last.Format("2 Jan 2006")
	}
}

func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s
}
