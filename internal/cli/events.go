package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/hijri-cal/internal/converter"
	"github.com/smokyabdulrahman/hijri-cal/internal/display"
	"github.com/smokyabdulrahman/hijri-cal/internal/export"
	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "List Islamic events",
		Long:  "List the annual Islamic events tracked by hijri-cal with their Hijri dates.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events := hijri.UpcomingEvents()
			if FlagJSON {
				return handleError(cmd, printJSON(cmd.OutOrStdout(), events))
			}

			tbl := display.NewTable([]string{"#", "Event", "Hijri date"})
			tbl.RightAlign(0)
			for i, e := range events {
				tbl.AddRow([]string{strconv.Itoa(i + 1), e.Name, e.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	var toGregorian bool

	cmd := &cobra.Command{
		Use:   "convert <YYYY-MM-DD>...",
		Short: "Convert Gregorian dates to Hijri, or back",
		Long: `Convert one or more Gregorian dates to the Hijri calendar.

With --to-gregorian the arguments are Hijri dates (year-month-day) and are
converted with the arithmetical calendar, which may differ by a day from
Umm al-Qura.

Examples:
  hijri-cal convert 2026-03-20
  hijri-cal convert 2026-02-18 2026-03-16 --source tabular
  hijri-cal convert --to-gregorian 1447-10-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toGregorian {
				return handleError(cmd, runConvertToGregorian(cmd, args))
			}
			return handleError(cmd, runConvert(cmd, args))
		},
	}

	cmd.Flags().BoolVar(&toGregorian, "to-gregorian", false, "Treat arguments as Hijri dates and convert them to Gregorian")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	dates := make([]time.Time, len(args))
	for i, a := range args {
		t, err := hijri.ParseDate(a, time.Local)
		if err != nil {
			return err
		}
		dates[i] = t
	}

	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	cal, err := newCalendar(cfg)
	if err != nil {
		return err
	}

	out := make([]dateJSON, len(dates))
	for i, t := range dates {
		d, err := cal.Convert(t)
		if err != nil {
			return explain(err)
		}
		out[i] = newDateJSON(d, t, hijri.LookupEvent(d.Month(), d.Day))
	}

	if FlagJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}

	tbl := display.NewTable([]string{"Gregorian", "Day", "Hijri", "Event"})
	for _, r := range out {
		event := ""
		if r.Event != nil {
			event = r.Event.Name
		}
		tbl.AddRow([]string{r.Gregorian, r.Weekday[:3], r.Formatted, event})
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
	return nil
}

func runConvertToGregorian(cmd *cobra.Command, args []string) error {
	out := make([]dateJSON, len(args))
	for i, a := range args {
		d, err := parseHijriDate(a)
		if err != nil {
			return err
		}
		greg, err := converter.Tabular{}.ToGregorian(d.Year, d.Month(), d.Day, time.Local)
		if err != nil {
			return err
		}
		out[i] = newDateJSON(d, greg, hijri.LookupEvent(d.Month(), d.Day))
	}

	if FlagJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}

	tbl := display.NewTable([]string{"Hijri", "Gregorian", "Day", "Event"})
	for _, r := range out {
		event := ""
		if r.Event != nil {
			event = r.Event.Name
		}
		tbl.AddRow([]string{r.Formatted, r.Gregorian, r.Weekday[:3], event})
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
	return nil
}

// parseHijriDate parses a Hijri date written year-month-day, e.g. 1447-09-27.
func parseHijriDate(s string) (hijri.Date, error) {
	invalid := fmt.Errorf("invalid hijri date %q: must be YYYY-MM-DD", s)
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return hijri.Date{}, invalid
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return hijri.Date{}, invalid
		}
		n[i] = v
	}
	m := hijri.Month(n[1])
	if !m.Valid() {
		return hijri.Date{}, fmt.Errorf("invalid hijri month %d in %q", n[1], s)
	}
	return hijri.Date{Day: n[2], MonthName: m.String(), Year: n[0]}, nil
}

func newExportCmd() *cobra.Command {
	var (
		months int
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export Islamic events as iCalendar",
		Long: `Write an iCalendar (.ics) file with one all-day event per Islamic event day
across N Hijri months, starting with the month containing --date.

Examples:
  hijri-cal export --months 12 -o hijri.ics
  hijri-cal export --source tabular > events.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleError(cmd, runExport(cmd, months, output))
		},
	}

	cmd.Flags().IntVar(&months, "months", 12, "Number of Hijri months to cover")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, months int, output string) error {
	if months < 1 || months > maxNavigate {
		return fmt.Errorf("--months must be between 1 and %d", maxNavigate)
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

	occs, err := export.Collect(cal, ref, months)
	if err != nil {
		return explain(err)
	}

	if output == "" || output == "-" {
		return export.Write(cmd.OutOrStdout(), occs, now())
	}

	var sb strings.Builder
	if err := export.Write(&sb, occs, now()); err != nil {
		return err
	}
	if err := os.WriteFile(output, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d events to %s\n", len(occs), output)
	return nil
}
