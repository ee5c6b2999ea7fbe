package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/hijri-cal/internal/display"
	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
)

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's Hijri date",
		Long:  "Show the Hijri date for today (or --date) and the Islamic event falling on it, if any.",
		Args:  cobra.NoArgs,
		RunE:  runToday,
	}
}

func runToday(cmd *cobra.Command, args []string) error {
	err := func() error {
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

		d, err := cal.Convert(ref)
		if err != nil {
			return explain(err)
		}
		event := hijri.LookupEvent(d.Month(), d.Day)

		if FlagJSON {
			return printJSON(cmd.OutOrStdout(), newDateJSON(d, ref, event))
		}
		printTodayRich(cmd.OutOrStdout(), d, ref, event)
		return nil
	}()
	return handleError(cmd, err)
}

// printTodayRich renders the colored terminal output for one date.
func printTodayRich(w io.Writer, d hijri.Date, greg time.Time, event *hijri.Event) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(d.String()))
	fmt.Fprintf(w, "  %s\n", display.Dim(greg.Format("Monday, 02 January 2006")))
	if event != nil {
		fmt.Fprintf(w, "  %s %s\n", display.Yellow("*"), display.Yellow(event.Name))
	}
	fmt.Fprintln(w)
}

// dateJSON is the JSON output structure for a single converted date.
type dateJSON struct {
	Gregorian string       `json:"gregorian"`
	Weekday   string       `json:"weekday"`
	Hijri     hijriJSON    `json:"hijri"`
	Formatted string       `json:"formatted"`
	Event     *hijri.Event `json:"event,omitempty"`
}

type hijriJSON struct {
	Day         int    `json:"day"`
	Month       string `json:"month"`
	MonthNumber int    `json:"month_number"`
	Year        int    `json:"year"`
}

func newDateJSON(d hijri.Date, greg time.Time, event *hijri.Event) dateJSON {
	return dateJSON{
		Gregorian: greg.Format("2006-01-02"),
		Weekday:   greg.Weekday().String(),
		Hijri: hijriJSON{
			Day:         d.Day,
			Month:       d.DisplayMonth(),
			MonthNumber: int(d.Month()),
			Year:        d.Year,
		},
		Formatted: d.String(),
		Event:     event,
	}
}
