package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/hijri-cal/internal/display"
	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
)

func newMonthCmd() *cobra.Command {
	var prev, next int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a Hijri month grid",
		Long: `Display the Hijri month containing --date (default: today) as a calendar
grid, with Gregorian days alongside, today highlighted and Islamic events marked.

Examples:
  hijri-cal month
  hijri-cal month --next 1
  hijri-cal month --date 2026-03-01 --prev 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleError(cmd, runMonth(cmd, next-prev))
		},
	}

	cmd.Flags().IntVar(&prev, "prev", 0, "Go back N Hijri months")
	cmd.Flags().IntVar(&next, "next", 0, "Go forward N Hijri months")
	cmd.MarkFlagsMutuallyExclusive("prev", "next")

	return cmd
}

func runMonth(cmd *cobra.Command, offset int) error {
	if offset < -maxNavigate || offset > maxNavigate {
		return fmt.Errorf("--prev/--next must be at most %d", maxNavigate)
	}

	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	cal, err := newCalendar(cfg)
	if err != nil {
		return err
	}
	ref, err := referenceDate()
	if err != nil {
		return err
	}

	g, err := cal.MonthGrid(ref)
	if err == nil {
		g, err = cal.Navigate(g, offset)
	}
	if err != nil {
		return explain(err)
	}

	if FlagJSON {
		return printJSON(cmd.OutOrStdout(), newMonthJSON(g))
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), display.RenderMonth(g, display.WeekStart(cfg.WeekStart)))
	return nil
}

// maxNavigate bounds --prev/--next; each step costs a month of conversions.
const maxNavigate = 120

// monthJSON is the JSON output of the month command. Weeks keep the
// Sunday-first layout with null padding cells.
type monthJSON struct {
	Month       string            `json:"month"`
	MonthNumber int               `json:"month_number"`
	Year        int               `json:"year"`
	FirstDay    string            `json:"first_day"`
	LastDay     string            `json:"last_day"`
	Padding     int               `json:"padding"`
	Days        []monthDayJSON    `json:"days"`
	Weeks       [][]*monthDayJSON `json:"weeks"`
}

type monthDayJSON struct {
	HijriDay  int          `json:"hijri_day"`
	Gregorian string       `json:"gregorian"`
	Weekday   string       `json:"weekday"`
	IsToday   bool         `json:"is_today"`
	Event     *hijri.Event `json:"event,omitempty"`
}

func newMonthJSON(g *hijri.MonthGrid) monthJSON {
	day := func(c *hijri.DayCell) *monthDayJSON {
		if c == nil {
			return nil
		}
		return &monthDayJSON{
			HijriDay:  c.HijriDay,
			Gregorian: c.Gregorian.Format("2006-01-02"),
			Weekday:   c.Gregorian.Weekday().String(),
			IsToday:   c.IsToday,
			Event:     c.Event,
		}
	}

	out := monthJSON{
		Month:       hijri.Date{MonthName: g.MonthName}.DisplayMonth(),
		MonthNumber: int(g.Month()),
		Year:        g.Year,
		FirstDay:    g.FirstDay.Format("2006-01-02"),
		LastDay:     g.LastDay.Format("2006-01-02"),
		Padding:     g.Padding(),
	}
	for _, c := range g.Cells() {
		out.Days = append(out.Days, *day(c))
	}
	for _, w := range g.Weeks() {
		row := make([]*monthDayJSON, len(w))
		for i, c := range w {
			row[i] = day(c)
		}
		out.Weeks = append(out.Weeks, row)
	}
	return out
}
